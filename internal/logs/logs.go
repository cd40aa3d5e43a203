// Package logs builds the process logger.
package logs

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// GetLoggerFromString returns a text logger on stderr at the named level.
// Unknown names fall back to info.
func GetLoggerFromString(level string) *slog.Logger {
	return newLogger(os.Stderr, ParseLevel(level))
}

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

func newLogger(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// Discard drops everything; used by tests and quiet commands.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
