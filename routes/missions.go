package routes

import (
	"bingo/controllers"

	"github.com/gin-gonic/gin"
)

func ListMissionsRouteHandler(ctx *gin.Context) {
	controllers.ListMissions(ctx)
}

func GetMissionProgressRouteHandler(ctx *gin.Context) {
	controllers.GetMissionProgress(ctx)
}

func CompleteMissionRouteHandler(ctx *gin.Context) {
	controllers.CompleteMission(ctx)
}
