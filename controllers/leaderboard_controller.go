package controllers

import (
	"context"
	"net/http"
	"time"

	"bingo/db"
	"bingo/models"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// LeaderboardEntry is one ranked row
type LeaderboardEntry struct {
	ID          string `json:"id"`
	Rank        int    `json:"rank"`
	Name        string `json:"name"`
	AvatarURL   string `json:"avatarUrl"`
	Level       int    `json:"level"`
	Points      int    `json:"points"`
	CurrentUser bool   `json:"currentUser"`
}

// GetLeaderboard returns users ranked by total points descending
func GetLeaderboard(c *gin.Context) {
	currentID := c.GetString("userId")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	findOptions := options.Find().
		SetSort(bson.D{{Key: "totalPoints", Value: -1}}).
		SetLimit(100)

	cursor, err := db.GetCollection("users").Find(ctx, bson.M{}, findOptions)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch leaderboard data"})
		return
	}
	defer cursor.Close(ctx)

	var users []models.User
	if err := cursor.All(ctx, &users); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to decode leaderboard data"})
		return
	}

	entries := make([]LeaderboardEntry, 0, len(users))
	for i, user := range users {
		avatarURL := user.ProfileImage
		if avatarURL == "" {
			avatarURL = "https://api.dicebear.com/9.x/adventurer/svg?seed=" + user.Name
		}

		entries = append(entries, LeaderboardEntry{
			ID:          user.ID.Hex(),
			Rank:        i + 1,
			Name:        user.Name,
			AvatarURL:   avatarURL,
			Level:       user.Level,
			Points:      user.TotalPoints,
			CurrentUser: user.ID.Hex() == currentID,
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"users": entries,
		"total": len(entries),
	})
}
