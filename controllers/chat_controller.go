package controllers

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"

	"bingo/db"
	"bingo/models"
	"bingo/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func mongoUpsert() *options.UpdateOptions {
	return options.Update().SetUpsert(true)
}

type chatRequest struct {
	Message   string `json:"message" binding:"required"`
	SessionID string `json:"sessionId"`
}

// Chat answers a waste-management question, keeping per-session
// history in Mongo
func Chat(c *gin.Context) {
	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Message is required"})
		return
	}
	if req.SessionID == "" {
		req.SessionID = uuid.NewString()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	chats := db.GetCollection("chats")

	var chat models.Chat
	err := chats.FindOne(ctx, bson.M{"sessionId": req.SessionID}).Decode(&chat)
	if err != nil {
		if err != mongo.ErrNoDocuments {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
			return
		}
		chat = models.Chat{
			SessionID: req.SessionID,
			Messages:  []models.ChatMessage{{Role: "system", Content: services.AssistantSystemPrompt}},
			CreatedAt: time.Now(),
		}
	}

	chat.Messages = append(chat.Messages, models.ChatMessage{Role: "user", Content: req.Message})

	reply, err := services.GenerateChatReply(ctx, chat.Messages, req.Message)
	if err != nil {
		log.Printf("Chat error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Sorry, I encountered an error. Please try again."})
		return
	}

	chat.Messages = append(chat.Messages, models.ChatMessage{Role: "model", Content: reply})
	chat.UpdatedAt = time.Now()

	_, err = chats.UpdateOne(ctx,
		bson.M{"sessionId": req.SessionID},
		bson.M{"$set": chat},
		mongoUpsert())
	if err != nil {
		log.Printf("Error saving chat history: %v", err)
	}

	c.JSON(http.StatusOK, gin.H{"reply": reply, "sessionId": req.SessionID})
}

type analyzeImageRequest struct {
	ImageBase64 string `json:"imageBase64" binding:"required"`
	SessionID   string `json:"sessionId"`
}

// AnalyzeImage describes a waste item photo and logs the exchange
// into the session history
func AnalyzeImage(c *gin.Context) {
	var req analyzeImageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Image data is required"})
		return
	}
	if req.SessionID == "" {
		req.SessionID = uuid.NewString()
	}

	// Tolerate data URI prefixes from clients
	if idx := strings.Index(req.ImageBase64, ","); idx != -1 && strings.HasPrefix(req.ImageBase64, "data:") {
		req.ImageBase64 = req.ImageBase64[idx+1:]
	}

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	analysis, err := services.AnalyzeWasteImage(ctx, req.ImageBase64)
	if err != nil {
		log.Printf("Image analysis error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Sorry, I couldn't analyze the image. Please try again."})
		return
	}

	chats := db.GetCollection("chats")
	update := bson.M{
		"$push": bson.M{"messages": bson.M{"$each": []models.ChatMessage{
			{Role: "user", Content: "[Image uploaded for waste analysis]"},
			{Role: "model", Content: analysis},
		}}},
		"$set":         bson.M{"updatedAt": time.Now()},
		"$setOnInsert": bson.M{"createdAt": time.Now()},
	}
	if _, err := chats.UpdateOne(ctx, bson.M{"sessionId": req.SessionID}, update, mongoUpsert()); err != nil {
		log.Printf("Error saving analysis history: %v", err)
	}

	c.JSON(http.StatusOK, gin.H{"analysis": analysis, "sessionId": req.SessionID})
}

// GetChatHistory returns a session's messages, system prompt excluded
func GetChatHistory(c *gin.Context) {
	sessionID := c.Param("sessionId")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var chat models.Chat
	err := db.GetCollection("chats").FindOne(ctx, bson.M{"sessionId": sessionID}).Decode(&chat)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusOK, gin.H{"messages": []models.ChatMessage{}})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve chat history"})
		return
	}

	messages := make([]models.ChatMessage, 0, len(chat.Messages))
	for _, msg := range chat.Messages {
		if msg.Role != "system" {
			messages = append(messages, msg)
		}
	}
	c.JSON(http.StatusOK, gin.H{"messages": messages})
}

// ClearChatHistory deletes a session's conversation
func ClearChatHistory(c *gin.Context) {
	sessionID := c.Param("sessionId")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := db.GetCollection("chats").DeleteOne(ctx, bson.M{"sessionId": sessionID}); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to clear chat history"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Chat history cleared successfully"})
}
