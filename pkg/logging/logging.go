// Package logging builds the process logger: JSON in production, colored tint
// output in development.
package logging

import (
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/lmittmann/tint"
)

// New returns a logger writing to w at the given level name.
func New(w io.Writer, level string, production bool) *slog.Logger {
	lvl := ParseLevel(level)
	if production {
		return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: lvl}))
	}
	return slog.New(tint.NewHandler(w, &tint.Options{
		Level:      lvl,
		TimeFormat: time.Kitchen,
		AddSource:  lvl == slog.LevelDebug,
	}))
}

// Setup builds the logger and installs it as the slog default.
func Setup(w io.Writer, level string, production bool) *slog.Logger {
	logger := New(w, level, production)
	slog.SetDefault(logger)
	return logger
}

// ParseLevel maps debug, warn and error onto slog levels; anything else is info.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
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
