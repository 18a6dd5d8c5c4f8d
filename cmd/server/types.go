package main

import (
	"codeberg.org/algopatterns/exceptionfilter/algopatterns/users"
	"codeberg.org/algopatterns/exceptionfilter/internal/config"
	"codeberg.org/algopatterns/exceptionfilter/internal/errors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
)

// holds all dependencies and state for the API server
type Server struct {
	db       *pgxpool.Pool
	config   *config.Config
	userRepo *users.Repository
	filter   *errors.Filter
	router   *gin.Engine
}
