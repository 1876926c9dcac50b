// Package logging builds the process slog logger.
package logging

import (
	"io"
	"log"
	"log/slog"
	"strings"
)

// New returns a logger writing to w in the given format ("json" or text)
// at the given level. Unknown levels fall back to info. The stdlib log
// package is redirected to the same writer.
func New(w io.Writer, format, level string) *slog.Logger {
	opts := &slog.HandlerOptions{Level: ParseLevel(level)}
	var h slog.Handler
	if strings.EqualFold(format, "json") {
		h = slog.NewJSONHandler(w, opts)
	} else {
		h = slog.NewTextHandler(w, opts)
	}
	log.SetOutput(w)
	return slog.New(h)
}

func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
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
