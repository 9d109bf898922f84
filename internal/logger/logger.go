// Package logger builds the process logger from the environment.
package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// Setup returns a logger writing to stderr. LOG_LEVEL selects debug, info
// (default), warn or error; LOG_FORMAT=json switches to JSON output.
func Setup() *slog.Logger {
	return New(os.Stderr, os.Getenv("LOG_LEVEL"), os.Getenv("LOG_FORMAT"))
}

// New builds a logger on w from level and format names. Unknown names fall
// back to info and text.
func New(w io.Writer, level, format string) *slog.Logger {
	lvl := slog.LevelInfo
	switch strings.ToLower(level) {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	}
	opts := &slog.HandlerOptions{Level: lvl}
	var h slog.Handler
	if strings.ToLower(format) == "json" {
		h = slog.NewJSONHandler(w, opts)
	} else {
		h = slog.NewTextHandler(w, opts)
	}

	return slog.New(h)
}
