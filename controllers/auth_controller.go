package controllers

import (
	"context"
	"log"
	"net/http"
	"time"

	"bingo/db"
	"bingo/models"
	"bingo/utils"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type signUpRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Name     string `json:"name"`
	Password string `json:"password" binding:"required,min=8"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// SignUp registers a user and seeds a default (not completed)
// progress record for every active catalog mission
func SignUp(c *gin.Context) {
	var req signUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	users := db.GetCollection("users")
	count, err := users.CountDocuments(ctx, bson.M{"email": req.Email})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	if count > 0 {
		c.JSON(http.StatusConflict, gin.H{"error": "Email already registered"})
		return
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create account"})
		return
	}

	name := req.Name
	if name == "" {
		name = utils.ExtractNameFromEmail(req.Email)
	}

	now := time.Now()
	user := models.User{
		Email:        req.Email,
		Name:         name,
		PasswordHash: hash,
		TotalPoints:  0,
		Level:        1,
		Missions:     defaultMissionProgress(ctx),
		Achievements: []models.Achievement{},
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	result, err := users.InsertOne(ctx, user)
	if err != nil {
		// The unique email index catches signups that raced past the
		// count check
		if mongo.IsDuplicateKeyError(err) {
			c.JSON(http.StatusConflict, gin.H{"error": "Email already registered"})
			return
		}
		log.Printf("Error creating user: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create account"})
		return
	}

	userID := result.InsertedID.(primitive.ObjectID).Hex()
	token, err := utils.GenerateJWTToken(userID, req.Email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"token":  token,
		"userId": userID,
		"name":   name,
	})
}

// Login verifies credentials and issues a JWT
func Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var user models.User
	err := db.GetCollection("users").FindOne(ctx, bson.M{"email": req.Email}).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		}
		return
	}

	if !utils.CheckPasswordHash(req.Password, user.PasswordHash) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
		return
	}

	token, err := utils.GenerateJWTToken(user.ID.Hex(), user.Email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token":  token,
		"userId": user.ID.Hex(),
		"name":   user.Name,
	})
}

// defaultMissionProgress builds a fresh progress record per active
// mission. A missing catalog just yields an empty list; settlement
// also tolerates absent records.
func defaultMissionProgress(ctx context.Context) []models.MissionProgress {
	cursor, err := db.GetCollection("missions").Find(ctx, bson.M{"isActive": true})
	if err != nil {
		return []models.MissionProgress{}
	}
	defer cursor.Close(ctx)

	var missions []models.Mission
	if err := cursor.All(ctx, &missions); err != nil {
		return []models.MissionProgress{}
	}

	progress := make([]models.MissionProgress, 0, len(missions))
	for _, m := range missions {
		progress = append(progress, models.MissionProgress{MissionID: m.ID})
	}
	return progress
}
