package router

import (
	"calorie-tracker/controllers/check"
	"calorie-tracker/controllers/readProbe"
	"calorie-tracker/structs"

	"github.com/gin-gonic/gin"
)

func Router(statistic func() structs.StatisticModel) *gin.Engine {
	route := gin.Default()

	route.GET("/read-probe", readProbe.Probe)
	route.GET("/check-live", check.CheckAlive(statistic))

	return route
}
