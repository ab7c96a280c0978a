package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Question is a quiz question. CorrectAnswer is an index into Options
// and is never sent to clients.
type Question struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Question      string             `bson:"question" json:"question"`
	Options       []string           `bson:"options" json:"options"`
	CorrectAnswer int                `bson:"correctAnswer" json:"-"`
	CreatedAt     time.Time          `bson:"createdAt" json:"createdAt"`
}

// QuizAttempt is one user's attempt for one calendar day. The
// (userId, date) pair carries a unique index so a second submission on
// the same day fails at the database.
type QuizAttempt struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	UserID       primitive.ObjectID `bson:"userId" json:"userId"`
	Date         string             `bson:"date" json:"date"` // YYYY-MM-DD in IST
	Score        int                `bson:"score" json:"score"`
	Total        int                `bson:"total" json:"total"`
	PointsEarned int                `bson:"pointsEarned" json:"pointsEarned"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
}
