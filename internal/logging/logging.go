package logging

import (
	"log/slog"
	"os"
	"strings"
)

// Init configures the global slog logger. JSON output when LOG_FORMAT=json,
// text otherwise; level from LOG_LEVEL.
func Init(service string) *slog.Logger {
	var handler slog.Handler
	opts := &slog.HandlerOptions{Level: levelFromEnv()}
	if strings.EqualFold(os.Getenv("LOG_FORMAT"), "json") {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}
	logger := slog.New(handler).With("service", service)
	slog.SetDefault(logger)
	return logger
}

func levelFromEnv() slog.Leveler {
	switch strings.ToLower(os.Getenv("LOG_LEVEL")) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
