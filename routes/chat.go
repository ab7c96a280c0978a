package routes

import (
	"bingo/controllers"

	"github.com/gin-gonic/gin"
)

// SetupChatRoutes registers the assistant endpoints
func SetupChatRoutes(group *gin.RouterGroup) {
	group.POST("/chat", controllers.Chat)
	group.GET("/chat/history/:sessionId", controllers.GetChatHistory)
	group.DELETE("/chat/history/:sessionId", controllers.ClearChatHistory)
	group.POST("/analyze-image", controllers.AnalyzeImage)
}
