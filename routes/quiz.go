package routes

import (
	"bingo/controllers"

	"github.com/gin-gonic/gin"
)

func GetDailyQuizRouteHandler(ctx *gin.Context) {
	controllers.GetDailyQuiz(ctx)
}

func SubmitDailyQuizRouteHandler(ctx *gin.Context) {
	controllers.SubmitDailyQuiz(ctx)
}
