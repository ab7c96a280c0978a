package controllers

import (
	"context"
	"log"
	"net/http"
	"time"

	"bingo/db"
	"bingo/models"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type redeemRequest struct {
	RewardName     string `json:"rewardName" binding:"required"`
	PointsRequired int    `json:"pointsRequired" binding:"required,gt=0"`
	Description    string `json:"description"`
}

// RedeemReward spends points on a reward. This is the only operation
// that decreases totalPoints; the conditional $inc only matches while
// the balance still covers the cost.
func RedeemReward(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req redeemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	users := db.GetCollection("users")

	var user models.User
	err := users.FindOneAndUpdate(ctx,
		bson.M{"_id": userID, "totalPoints": bson.M{"$gte": req.PointsRequired}},
		bson.M{"$inc": bson.M{"totalPoints": -req.PointsRequired}, "$set": bson.M{"updatedAt": time.Now()}},
		options.FindOneAndUpdate().SetReturnDocument(options.After)).Decode(&user)
	if err != nil {
		if err != mongo.ErrNoDocuments {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
			return
		}
		// Distinguish a missing user from an insufficient balance
		count, countErr := users.CountDocuments(ctx, bson.M{"_id": userID})
		if countErr == nil && count == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": "Not enough points to redeem"})
		return
	}

	now := time.Now()
	redeemed := models.RedeemedReward{
		RewardName:  req.RewardName,
		PointsUsed:  req.PointsRequired,
		RedeemedAt:  now,
		Description: req.Description,
		Transactions: []models.RewardTransaction{{
			Amount:      req.PointsRequired,
			Description: "Redeemed: " + req.RewardName,
			Date:        now,
		}},
	}

	rewards := db.GetCollection("rewards")
	_, err = rewards.UpdateOne(ctx,
		bson.M{"user": userID},
		bson.M{
			"$push":        bson.M{"redeemedRewards": redeemed},
			"$set":         bson.M{"updatedAt": now},
			"$setOnInsert": bson.M{"createdAt": now},
		},
		options.Update().SetUpsert(true))
	if err != nil {
		log.Printf("Error recording redemption: %v", err)
		// Points were already deducted, surface the history failure
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Redemption recorded partially"})
		return
	}

	var rewardDoc models.Reward
	if err := rewards.FindOne(ctx, bson.M{"user": userID}).Decode(&rewardDoc); err != nil {
		log.Printf("Error fetching reward history: %v", err)
	}

	c.JSON(http.StatusOK, gin.H{
		"message":       "Reward redeemed successfully",
		"updatedPoints": user.TotalPoints,
		"rewardHistory": rewardDoc.RedeemedRewards,
	})
}

// GetRewardHistory returns the caller's redemption log
func GetRewardHistory(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var rewardDoc models.Reward
	err := db.GetCollection("rewards").FindOne(ctx, bson.M{"user": userID}).Decode(&rewardDoc)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusOK, gin.H{"redeemedRewards": []models.RedeemedReward{}})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch reward history"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"redeemedRewards": rewardDoc.RedeemedRewards})
}
