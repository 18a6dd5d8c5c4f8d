package users

import (
	"codeberg.org/algopatterns/exceptionfilter/internal/auth"
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(rg *gin.RouterGroup, store Store, jwtSecret string) {
	users := rg.Group("/users")

	users.POST("", CreateUserHandler(store))
	users.GET("/:id", auth.OptionalAuthMiddleware(jwtSecret), GetUserHandler(store))
	users.DELETE("/:id", auth.AuthMiddleware(jwtSecret), DeleteUserHandler(store))
}
