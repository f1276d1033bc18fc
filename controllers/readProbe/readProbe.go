package readProbe

import (
	"calorie-tracker/controllers/check"
	"net/http"

	"github.com/gin-gonic/gin"
)

func Probe(c *gin.Context) {
	c.JSON(http.StatusOK, check.AliveResponse{Success: true, Messsage: "probe success"})
}
