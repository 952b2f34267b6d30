package logger

import (
	"log/slog"
	"os"
)

var defaultLogger *slog.Logger

// Init configures the process-wide logger. Production emits JSON at info
// level for log aggregation; everything else gets human-readable text with
// debug enabled.
func Init(env string) {
	defaultLogger = slog.New(handlerFor(env))
	slog.SetDefault(defaultLogger)
}

func handlerFor(env string) slog.Handler {
	if env == "production" {
		return slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})
	}
	return slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug})
}

// LoggerWrapper hands out the shared logger, bootstrapping a development one
// when Init has not run yet (tests, one-off commands).
func LoggerWrapper() *slog.Logger {
	if defaultLogger == nil {
		Init("development")
	}
	return defaultLogger
}
