package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// RewardTransaction logs a single points movement against a redemption
type RewardTransaction struct {
	Amount      int       `bson:"amount" json:"amount"`
	Description string    `bson:"description" json:"description"`
	Date        time.Time `bson:"date" json:"date"`
}

// RedeemedReward records one redeemed catalog reward
type RedeemedReward struct {
	RewardName   string              `bson:"rewardName" json:"rewardName"`
	PointsUsed   int                 `bson:"pointsUsed" json:"pointsUsed"`
	RedeemedAt   time.Time           `bson:"redeemedAt" json:"redeemedAt"`
	Description  string              `bson:"description,omitempty" json:"description,omitempty"`
	Transactions []RewardTransaction `bson:"transactions" json:"transactions"`
}

// Reward holds the redemption history for a single user
type Reward struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	UserID          primitive.ObjectID `bson:"user" json:"userId"`
	RedeemedRewards []RedeemedReward   `bson:"redeemedRewards" json:"redeemedRewards"`
	CreatedAt       time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt       time.Time          `bson:"updatedAt" json:"updatedAt"`
}
