package main

import (
	"log"
	"strconv"

	"bingo/config"
	"bingo/db"
	"bingo/middlewares"
	"bingo/routes"
	"bingo/services"
	"bingo/utils"
	"bingo/websocket"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	// Load the configuration from the specified YAML file
	cfg, err := config.LoadConfig("./config/config.yml")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	utils.SetJWTSecret(cfg.JWT.Secret)
	utils.SetJWTExpiry(cfg.JWT.Expiry)

	services.InitStorageService(cfg)
	services.InitVerifierService(cfg)
	if err := services.InitAssistantService(cfg.Gemini.ApiKey); err != nil {
		log.Fatalf("Failed to init Gemini: %v", err)
	}

	// Connect to MongoDB using the URI from the configuration
	if err := db.ConnectMongoDB(cfg.Database.URI); err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	log.Println("Connected to MongoDB")

	// Redis backs the mission catalog cache; the app degrades to
	// Mongo-only reads without it
	if err := services.InitRedis(cfg); err != nil {
		log.Printf("Redis unavailable, mission cache disabled: %v", err)
	}

	// Seed catalog data
	utils.SeedMissions()
	utils.SeedQuestionBank()

	router := setupRouter(cfg)
	port := strconv.Itoa(cfg.Server.Port)
	log.Printf("Server starting on port %s", port)

	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func setupRouter(cfg *config.Config) *gin.Engine {
	router := gin.Default()

	router.SetTrustedProxies([]string{"127.0.0.1", "localhost"})

	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:5173"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))
	router.OPTIONS("/*path", func(c *gin.Context) { c.Status(204) })

	// Public routes
	router.POST("/signup", routes.SignUpRouteHandler)
	router.POST("/login", routes.LoginRouteHandler)
	router.GET("/health", healthHandler)

	// Protected routes (JWT auth)
	auth := router.Group("/")
	auth.Use(middlewares.AuthMiddleware())
	{
		auth.GET("/user/fetchprofile", routes.GetProfileRouteHandler)
		auth.PUT("/user/updateprofile", routes.UpdateProfileRouteHandler)

		auth.GET("/missions", routes.ListMissionsRouteHandler)
		auth.GET("/missions/progress", routes.GetMissionProgressRouteHandler)
		auth.POST("/missions/:id/complete", routes.CompleteMissionRouteHandler)

		auth.GET("/quiz/daily", routes.GetDailyQuizRouteHandler)
		auth.POST("/quiz/daily", routes.SubmitDailyQuizRouteHandler)

		auth.GET("/leaderboard", routes.GetLeaderboardRouteHandler)

		auth.POST("/rewards/redeem", routes.RedeemRewardRouteHandler)
		auth.GET("/rewards/history", routes.GetRewardHistoryRouteHandler)

		routes.SetupDustbinRoutes(auth)
		routes.SetupChatRoutes(auth)
	}

	// WebSocket endpoint authenticates via query token
	router.GET("/ws/events", websocket.EventsHandler)

	return router
}

func healthHandler(c *gin.Context) {
	c.JSON(200, gin.H{
		"status":  "OK",
		"message": "BinGo API is running",
	})
}
