package app

import (
	"io"
	"log/slog"
)

// newLogger builds the application's logger. It does not touch the global
// logger, so each App keeps an isolated instance. An unrecognized level
// falls back to warn, matching the CLI's --log-level default, which keeps
// diagnostics out of task output unless asked for.
func newLogger(levelStr, formatStr string, outW io.Writer) *slog.Logger {
	level := slog.LevelWarn
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "error":
		level = slog.LevelError
	}

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if formatStr == "json" {
		handler = slog.NewJSONHandler(outW, opts)
	} else {
		handler = slog.NewTextHandler(outW, opts)
	}

	return slog.New(handler)
}
