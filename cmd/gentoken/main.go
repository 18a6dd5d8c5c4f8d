package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"codeberg.org/algopatterns/exceptionfilter/algopatterns/users"
	"codeberg.org/algopatterns/exceptionfilter/internal/auth"
	"codeberg.org/algopatterns/exceptionfilter/internal/config"
	"codeberg.org/algopatterns/exceptionfilter/internal/errors"
	"codeberg.org/algopatterns/exceptionfilter/internal/logger"
	"github.com/jackc/pgx/v5/pgxpool"
)

// creates (or reuses) a test user and prints a JWT for it
func main() {
	email := flag.String("email", "test@example.com", "email of the test user")
	name := flag.String("name", "Test User", "name of the test user")
	flag.Parse()

	cfg, err := config.LoadEnvironmentVariables()
	if err != nil {
		logger.Fatal("failed to load configuration", "error", err)
	}

	logger.Init(cfg.Environment)

	if cfg.DatabaseURL == "" {
		logger.Fatal("DATABASE_URL not set")
	}

	ctx := context.Background()

	db, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Fatal("failed to connect to database", "error", err)
	}
	defer db.Close()

	repo := users.NewRepository(db)
	if err := repo.EnsureSchema(ctx); err != nil {
		logger.Fatal("failed to prepare schema", "error", err)
	}

	user, err := repo.Create(ctx, users.CreateUserRequest{Email: *email, Name: *name})
	if err != nil {
		// the filter would answer 409 here; for this tool it means the user exists
		if errors.NewClassifier().Classify(errors.Resolve(err)) != errors.OutcomeConflict {
			logger.Fatal("failed to create test user", "error", err)
		}

		var id string
		err = db.QueryRow(ctx, "SELECT id FROM users WHERE email = $1", *email).Scan(&id)
		if err != nil {
			logger.Fatal("failed to look up existing test user", "error", err)
		}

		user, err = repo.FindByID(ctx, id)
		if err != nil {
			logger.Fatal("failed to load test user", "error", err)
		}
	}

	token, err := auth.GenerateJWT(cfg.JWTSecret, user.ID, user.Email, user.IsAdmin)
	if err != nil {
		logger.Fatal("failed to generate token", "error", err)
	}

	fmt.Fprintf(os.Stdout, "user_id: %s\ntoken: %s\n", user.ID, token)
}
