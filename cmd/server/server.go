package main

import (
	"context"
	"fmt"
	"time"

	"codeberg.org/algopatterns/exceptionfilter/algopatterns/users"
	"codeberg.org/algopatterns/exceptionfilter/internal/config"
	"codeberg.org/algopatterns/exceptionfilter/internal/errors"
	"codeberg.org/algopatterns/exceptionfilter/internal/logger"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// creates and configures a new server instance with all dependencies
func NewServer(cfg *config.Config) (*Server, error) {
	ctx := context.Background()

	srv := &Server{
		config: cfg,
		filter: errors.NewFilter(cfg.ExceptionPolicy),
	}

	if cfg.DatabaseURL != "" {
		db, err := connectDatabase(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}

		srv.db = db
		srv.userRepo = users.NewRepository(db)

		if err := srv.userRepo.EnsureSchema(ctx); err != nil {
			db.Close()
			return nil, err
		}
	} else {
		logger.Warn("DATABASE_URL not set, users routes are disabled")
	}

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	if err := RegisterRoutes(router, srv); err != nil {
		srv.Close()
		return nil, fmt.Errorf("failed to register routes: %w", err)
	}

	srv.router = router

	logger.Info("exception filter installed", "policy", cfg.ExceptionPolicy.String())

	return srv, nil
}

func connectDatabase(ctx context.Context, connString string) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database config: %w", err)
	}

	poolConfig.MaxConns = 5
	poolConfig.MinConns = 1
	poolConfig.MaxConnLifetime = 30 * time.Minute
	poolConfig.MaxConnIdleTime = 5 * time.Minute
	poolConfig.HealthCheckPeriod = 1 * time.Minute

	// simple protocol keeps PgBouncer in transaction mode working and lets
	// the schema statement run without a prepared statement
	poolConfig.ConnConfig.DefaultQueryExecMode = pgx.QueryExecModeSimpleProtocol

	db, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create database pool: %w", err)
	}

	if err := db.Ping(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return db, nil
}

// releases the database pool if one was opened
func (s *Server) Close() {
	if s.db != nil {
		s.db.Close()
	}
}
