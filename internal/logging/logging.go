// Package logging constructs slog loggers for the server's subsystems.
//
// The stdio MCP transport owns stdout for protocol traffic, so every logger
// built here writes to an explicit writer (stderr for the stdio server, a
// test buffer in tests) rather than defaulting to stdout.
package logging

import (
	"io"
	"log/slog"
	"strings"
)

// Format selects the log output format.
type Format string

const (
	// JSONFormat outputs one JSON object per line
	JSONFormat Format = "json"
	// TextFormat outputs human-readable key=value lines
	TextFormat Format = "text"
)

// Config holds logger configuration.
type Config struct {
	Level  string // debug, info, warn, error
	Format Format
	Output io.Writer
}

// New creates a logger from the given configuration.
func New(cfg Config) *slog.Logger {
	opts := &slog.HandlerOptions{Level: ParseLevel(cfg.Level)}

	var handler slog.Handler
	if cfg.Format == JSONFormat {
		handler = slog.NewJSONHandler(cfg.Output, opts)
	} else {
		handler = slog.NewTextHandler(cfg.Output, opts)
	}

	return slog.New(handler)
}

// NewDiscard returns a logger that drops everything. Used in tests and
// wherever a subsystem requires a logger but output is unwanted.
func NewDiscard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// ParseLevel maps a level name to a slog.Level, defaulting to info.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
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
