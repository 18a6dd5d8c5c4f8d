package auth

import (
	"codeberg.org/algopatterns/exceptionfilter/internal/auth"
	"github.com/gin-gonic/gin"
)

// registers all authentication routes
func RegisterRoutes(router *gin.RouterGroup, finder UserFinder, jwtSecret string) {
	authGroup := router.Group("/auth")
	{
		authGroup.POST("/token", IssueTokenHandler(finder, jwtSecret))
		authGroup.GET("/me", auth.AuthMiddleware(jwtSecret), GetCurrentUserHandler(finder))
	}
}
