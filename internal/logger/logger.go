// Package logger builds the structured JSON slog.Logger used throughout the
// service, the way common/logger does for the services of the teacher
// monorepo this service was adapted from.
package logger

import (
	"log/slog"
	"os"
)

// New creates a structured logger tagged with the given service name.
func New(serviceName string) *slog.Logger {
	level := parseLevel(os.Getenv("LOG_LEVEL"))

	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	})

	return slog.New(handler).With(slog.String("service", serviceName))
}

func parseLevel(levelStr string) slog.Level {
	switch levelStr {
	case "DEBUG":
		return slog.LevelDebug
	case "INFO":
		return slog.LevelInfo
	case "WARN":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
