package health

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// returns the server health status along with the installed exception policy
func Handler(policy string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, Response{
			Status:          "healthy",
			Service:         "exceptionfilter",
			Version:         "1.0.0",
			ExceptionPolicy: policy,
		})
	}
}

// responds with pong for testing
func PingHandler(c *gin.Context) {
	c.JSON(http.StatusOK, PingResponse{Message: "pong"})
}
