package config

import "codeberg.org/algopatterns/exceptionfilter/internal/errors"

type Config struct {
	Environment     string
	Port            string
	DatabaseURL     string
	JWTSecret       string
	ExceptionPolicy errors.Policy
	RateLimit       string
	CORSOrigins     []string
}

// command-line overrides for the server; empty values keep the environment's
type Flags struct {
	Policy string
	Port   string
}
