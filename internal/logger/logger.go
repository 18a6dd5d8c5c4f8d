package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
)

var (
	// default logger instance
	defaultLogger *slog.Logger
)

// initializes the logger from the environment the process starts with
func init() {
	Init(os.Getenv("ENVIRONMENT"))
}

// builds a logger for environment writing to w
func New(environment string, w io.Writer) *slog.Logger {
	var handler slog.Handler

	if environment == "production" {
		// production: JSON output for structured logging
		handler = slog.NewJSONHandler(w, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	} else {
		// development: human-readable text output
		handler = slog.NewTextHandler(w, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})
	}

	return slog.New(handler)
}

// reconfigures the default logger once configuration (and .env) is loaded
func Init(environment string) {
	defaultLogger = New(environment, output(environment))
	slog.SetDefault(defaultLogger)
}

// production logs go to stdout for the log collector, development logs to stderr
func output(environment string) io.Writer {
	if environment == "production" {
		return os.Stdout
	}

	return os.Stderr
}

// returns the default logger instance
func Default() *slog.Logger {
	return defaultLogger
}

// returns the logger stored in ctx, or the default one
func FromContext(ctx context.Context) *slog.Logger {
	if ctx == nil {
		return defaultLogger
	}

	if logger, ok := ctx.Value(loggerKey{}).(*slog.Logger); ok {
		return logger
	}

	return defaultLogger
}

// adds logger to context
func WithContext(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, logger)
}

type loggerKey struct{}

// logs an info message
func Info(msg string, args ...any) {
	defaultLogger.Info(msg, args...)
}

// logs a warning message
func Warn(msg string, args ...any) {
	defaultLogger.Warn(msg, args...)
}

// logs an error message
func Error(msg string, args ...any) {
	defaultLogger.Error(msg, args...)
}

// logs a fatal error and exits
func Fatal(msg string, args ...any) {
	defaultLogger.Error(msg, args...)
	os.Exit(1)
}
