package routes

import (
	"bingo/controllers"

	"github.com/gin-gonic/gin"
)

func RedeemRewardRouteHandler(ctx *gin.Context) {
	controllers.RedeemReward(ctx)
}

func GetRewardHistoryRouteHandler(ctx *gin.Context) {
	controllers.GetRewardHistory(ctx)
}
