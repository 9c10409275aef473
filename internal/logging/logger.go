// Package logging constructs the process-wide slog logger. One logger
// is built at startup and handed down; packages tag it with
// WithComponent instead of creating their own.
package logging

import (
	"log/slog"
	"os"
)

// NewLogger returns the logger for the given runtime environment.
// Production emits JSON at info level for log ingestion; anything else
// is treated as development and gets human-readable text at debug
// level. Output goes to stderr so the interactive prompt owns stdout.
func NewLogger(env string) *slog.Logger {
	if env == "production" {
		return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		}))
	}

	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
}

// WithComponent returns a child logger whose records carry a component
// attribute, keeping interleaved output from the API client, the
// identity cache, and the flows attributable to their source.
func WithComponent(logger *slog.Logger, component string) *slog.Logger {
	return logger.With(slog.String("component", component))
}
