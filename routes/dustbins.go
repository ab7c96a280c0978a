package routes

import (
	"bingo/controllers"

	"github.com/gin-gonic/gin"
)

// SetupDustbinRoutes registers the dustbin map endpoints
func SetupDustbinRoutes(group *gin.RouterGroup) {
	group.GET("/dustbins", controllers.ListDustbins)
	group.GET("/dustbins/nearby", controllers.NearbyDustbins)
	group.POST("/dustbins", controllers.AddDustbin)
	group.DELETE("/dustbins/:id", controllers.DeleteDustbin)
	group.POST("/dustbins/:id/like", controllers.LikeDustbin)
	group.POST("/dustbins/:id/report", controllers.ReportDustbin)
}
