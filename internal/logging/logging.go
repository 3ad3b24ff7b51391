// Package logging builds the diagnostic logger. Gateway failures are
// reported here and nowhere else.
package logging

import (
	"io"
	"log/slog"
	"strings"

	"taskboard/internal/config"
)

// ParseLevel maps a configured level name (case-insensitive) to a slog level.
// The second result is false for unknown names, which map to info.
func ParseLevel(name string) (slog.Level, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return slog.LevelDebug, true
	case "info", "":
		return slog.LevelInfo, true
	case "warn", "warning":
		return slog.LevelWarn, true
	case "error":
		return slog.LevelError, true
	default:
		return slog.LevelInfo, false
	}
}

// New creates a text logger writing to w.
// --debug forces debug level; --quiet raises the floor to error.
func New(w io.Writer, cfg *config.Config) *slog.Logger {
	level, ok := ParseLevel(cfg.LogLevel)
	switch {
	case cfg.Debug:
		level = slog.LevelDebug
	case cfg.Quiet:
		level = slog.LevelError
	}

	logger := slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
	if !ok {
		logger.Warn("invalid log level configured, using default level",
			"configured_level", cfg.LogLevel,
			"default_level", "info")
	}
	return logger
}

// Discard returns a logger that drops every record.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
