// Package logger provides a centralized logging configuration for twitterbot.
// It wraps the standard slog package to provide consistent logging across all components.
package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// Config holds the configuration for the logger.
type Config struct {
	// Level determines the minimum severity level of messages to be logged
	Level slog.Level
	// Output specifies where the logs should be written, stderr when nil
	Output io.Writer
	// JSONFormat determines whether logs should be formatted as JSON (true) or text (false)
	JSONFormat bool
}

// NewLogger creates a new slog.Logger with the specified configuration.
func NewLogger(cfg Config) *slog.Logger {
	out := cfg.Output
	if out == nil {
		out = os.Stderr
	}

	opts := &slog.HandlerOptions{Level: cfg.Level}

	var handler slog.Handler
	if cfg.JSONFormat {
		handler = slog.NewJSONHandler(out, opts)
	} else {
		handler = slog.NewTextHandler(out, opts)
	}
	return slog.New(handler)
}

// SetDefault sets the default logger for the application.
// This affects all logging done through the slog package-level functions.
func SetDefault(cfg Config) {
	slog.SetDefault(NewLogger(cfg))
}

// ParseLevel maps a LOG_LEVEL style string to a slog level.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown log level %q", s)
	}
}
