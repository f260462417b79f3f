package logger

import (
	"log/slog"
	"os"
	"strings"
	"sync"
)

var (
	once   sync.Once
	logger *slog.Logger
)

// GetLogger returns the process-wide structured logger. The level is taken
// from LOG_LEVEL (debug, info, warn, error) and defaults to info.
func GetLogger() *slog.Logger {
	once.Do(func() {
		handler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
			Level: parseLevel(os.Getenv("LOG_LEVEL")),
		})

		logger = slog.New(handler)
	})

	return logger
}

func parseLevel(value string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
