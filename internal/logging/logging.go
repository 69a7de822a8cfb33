package logging

import (
	"log/slog"
	"os"
	"strings"
)

// Init creates and returns the process logger, also installing it as
// the slog default. Diagnostics always go to stderr: stdout carries
// report lines and --print output, and the two must not interleave.
// When machineReadable is true the handler emits JSON (for capture
// runs driven by cron or systemd timers); otherwise human-readable
// text.
func Init(machineReadable bool, level slog.Level) *slog.Logger {
	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if machineReadable {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}
	logger := slog.New(handler)
	slog.SetDefault(logger)
	return logger
}

// ParseLevel converts a string ("debug", "info", "warn", "error") to
// slog.Level. Unknown strings default to LevelInfo.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
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
