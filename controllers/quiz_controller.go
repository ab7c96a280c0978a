package controllers

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"bingo/db"
	"bingo/models"
	"bingo/utils"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// QuizBaseDate is Day 0 of the rotation, an IST calendar date
const QuizBaseDate = "2025-06-23"

// QuizBatchSize is how many questions each day serves
const QuizBatchSize = 5

// QuizPointsPerCorrect is the points credited per correct answer
const QuizPointsPerCorrect = 2

// DailyBatch picks the deterministic question batch for a day: start
// at (daysSinceBase * batchSize) mod bankSize and take batchSize
// questions with wraparound. Every user sees the same batch on the
// same IST day.
func DailyBatch(bank []models.Question, daysSinceBase int) []models.Question {
	total := len(bank)
	if total == 0 {
		return nil
	}

	start := (daysSinceBase * QuizBatchSize) % total
	batch := make([]models.Question, 0, QuizBatchSize)
	for i := 0; i < QuizBatchSize; i++ {
		batch = append(batch, bank[(start+i)%total])
	}
	return batch
}

func loadQuestionBank(ctx context.Context) ([]models.Question, error) {
	cursor, err := db.GetCollection("questions").Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var bank []models.Question
	if err := cursor.All(ctx, &bank); err != nil {
		return nil, err
	}
	return bank, nil
}

// GetDailyQuiz returns today's batch without answer keys, plus the
// caller's prior attempt for the day if one exists
func GetDailyQuiz(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	now := time.Now()
	today := utils.ISTDateString(now)

	var attempt models.QuizAttempt
	attempted := true
	err := db.GetCollection("quiz_attempts").FindOne(ctx, bson.M{"userId": userID, "date": today}).Decode(&attempt)
	if err != nil {
		if err != mongo.ErrNoDocuments {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
			return
		}
		attempted = false
	}

	bank, err := loadQuestionBank(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch questions"})
		return
	}
	if len(bank) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Question bank is empty"})
		return
	}

	batch := DailyBatch(bank, utils.DaysSinceBase(QuizBaseDate, now))

	type quizQuestion struct {
		ID       string   `json:"id"`
		Question string   `json:"question"`
		Options  []string `json:"options"`
	}
	questions := make([]quizQuestion, 0, len(batch))
	for _, q := range batch {
		questions = append(questions, quizQuestion{
			ID:       q.ID.Hex(),
			Question: q.Question,
			Options:  q.Options,
		})
	}

	resp := gin.H{
		"date":      today,
		"attempted": attempted,
		"questions": questions,
	}
	if attempted {
		resp["previousScore"] = attempt.Score
		resp["previousPoints"] = attempt.PointsEarned
	}
	c.JSON(http.StatusOK, resp)
}

type submitQuizRequest struct {
	Answers []int `json:"answers" binding:"required"`
}

// SubmitDailyQuiz scores the caller's answers against today's batch.
// The unique (userId, date) index rejects a second attempt even when
// two submissions race.
func SubmitDailyQuiz(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req submitQuizRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	now := time.Now()
	today := utils.ISTDateString(now)

	bank, err := loadQuestionBank(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch questions"})
		return
	}
	if len(bank) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Question bank is empty"})
		return
	}

	batch := DailyBatch(bank, utils.DaysSinceBase(QuizBaseDate, now))

	score := 0
	for i, q := range batch {
		if i < len(req.Answers) && req.Answers[i] == q.CorrectAnswer {
			score++
		}
	}
	pointsEarned := score * QuizPointsPerCorrect

	attempt := models.QuizAttempt{
		UserID:       userID,
		Date:         today,
		Score:        score,
		Total:        len(batch),
		PointsEarned: pointsEarned,
		CreatedAt:    now,
	}

	_, err = db.GetCollection("quiz_attempts").InsertOne(ctx, attempt)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Already attempted today"})
			return
		}
		log.Printf("Error recording quiz attempt: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record attempt"})
		return
	}

	// Credit points and recompute level from the new total
	users := db.GetCollection("users")
	var user models.User
	err = users.FindOneAndUpdate(ctx, bson.M{"_id": userID},
		bson.M{"$inc": bson.M{"totalPoints": pointsEarned}, "$set": bson.M{"updatedAt": now}},
		options.FindOneAndUpdate().SetReturnDocument(options.After)).Decode(&user)
	if err != nil {
		log.Printf("Error crediting quiz points: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update points"})
		return
	}

	newLevel := models.LevelForPoints(user.TotalPoints)
	if newLevel != user.Level {
		if _, err := users.UpdateOne(ctx, bson.M{"_id": userID}, bson.M{"$set": bson.M{"level": newLevel}}); err != nil {
			log.Printf("Error updating level: %v", err)
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"message":      fmt.Sprintf("You scored %d/%d and earned %d points!", score, len(batch), pointsEarned),
		"score":        score,
		"total":        len(batch),
		"pointsEarned": pointsEarned,
		"totalPoints":  user.TotalPoints,
	})
}
