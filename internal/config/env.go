package config

import (
	"fmt"
	"os"
	"strings"

	"codeberg.org/algopatterns/exceptionfilter/internal/errors"
	"github.com/joho/godotenv"
)

const (
	defaultPort      = "8080"
	defaultRateLimit = "100-M"
)

// loads configuration from environment variables
func LoadEnvironmentVariables() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		_ = err // not an error - production environments may not have .env file
	}

	return FromLookup(os.Getenv)
}

// builds a Config from any getenv-like lookup
func FromLookup(getenv func(string) string) (*Config, error) {
	environment := getenv("ENVIRONMENT")
	if environment == "" {
		environment = "development"
	}

	jwtSecret := getenv("JWT_SECRET")
	if jwtSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET environment variable is required")
	}

	policy := errors.DefaultPolicy(environment)
	if raw := getenv("EXCEPTION_POLICY"); raw != "" {
		p, err := errors.ParsePolicy(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid EXCEPTION_POLICY: %w", err)
		}

		policy = p
	}

	port := getenv("PORT")
	if port == "" {
		port = defaultPort
	}

	rateLimit := getenv("RATE_LIMIT")
	if rateLimit == "" {
		rateLimit = defaultRateLimit
	}

	origins := []string{"*"}
	if raw := getenv("CORS_ORIGINS"); raw != "" {
		origins = splitList(raw)
	}

	return &Config{
		Environment:     environment,
		Port:            port,
		DatabaseURL:     getenv("DATABASE_URL"),
		JWTSecret:       jwtSecret,
		ExceptionPolicy: policy,
		RateLimit:       rateLimit,
		CORSOrigins:     origins,
	}, nil
}

// applies command-line overrides on top of the environment
func (c *Config) Apply(flags Flags) error {
	if flags.Policy != "" {
		p, err := errors.ParsePolicy(flags.Policy)
		if err != nil {
			return fmt.Errorf("invalid -policy: %w", err)
		}

		c.ExceptionPolicy = p
	}

	if flags.Port != "" {
		c.Port = flags.Port
	}

	return nil
}

func splitList(raw string) []string {
	var out []string

	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}

	return out
}
