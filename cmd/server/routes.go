package main

import (
	"fmt"
	"time"

	"codeberg.org/algopatterns/exceptionfilter/api/rest/auth"
	"codeberg.org/algopatterns/exceptionfilter/api/rest/health"
	"codeberg.org/algopatterns/exceptionfilter/api/rest/users"
	"codeberg.org/algopatterns/exceptionfilter/internal/errors"
	"codeberg.org/algopatterns/exceptionfilter/internal/ratelimit"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// sets up all API routes and middleware
func RegisterRoutes(router *gin.Engine, server *Server) error {
	// the filter goes first so it sees errors and panics from everything after it
	router.Use(server.filter.Middleware())
	router.Use(CORSMiddleware(server.config.CORSOrigins))

	limit, err := ratelimit.Middleware(server.config.RateLimit)
	if err != nil {
		return err
	}

	router.NoRoute(notFoundHandler)
	router.GET("/health", health.Handler(server.filter.Policy().String()))

	v1 := router.Group("/api/v1")
	v1.Use(limit)

	{
		v1.GET("/ping", health.PingHandler)

		if server.userRepo != nil {
			auth.RegisterRoutes(v1, server.userRepo, server.config.JWTSecret)
			users.RegisterRoutes(v1, server.userRepo, server.config.JWTSecret)
		}
	}

	return nil
}

// configures cross-origin access for the API
func CORSMiddleware(origins []string) gin.HandlerFunc {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders: []string{"X-RateLimit-Limit", "X-RateLimit-Remaining", "X-RateLimit-Reset"},
		MaxAge:        12 * time.Hour,
	}

	if len(origins) == 1 && origins[0] == "*" {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
		cfg.AllowCredentials = true
	}

	return cors.New(cfg)
}

// unknown routes raise a not found exception, the same shape as any other
// HTTP exception
func notFoundHandler(c *gin.Context) {
	_ = c.Error(errors.NewNotFoundException(fmt.Sprintf("Cannot %s %s", c.Request.Method, c.Request.URL.Path)))
}
