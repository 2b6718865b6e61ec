package config

import (
	"context"
	"io"
	"log/slog"
)

// LevelTrace sits below Debug and carries step-by-step generator progress.
const LevelTrace slog.Level = slog.LevelDebug - 4

// Trace logs at LevelTrace on the default logger.
func Trace(msg string, args ...any) {
	slog.Log(context.Background(), LevelTrace, msg, args...)
}

// SetupLogger installs the default logger for a run. Verbose runs log
// everything down to LevelTrace.
func SetupLogger(w io.Writer, opts Options) *slog.Logger {
	level := slog.LevelInfo
	if opts.Verbose() {
		level = LevelTrace
	}

	handlerOpts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if opts.LogJSON() {
		handler = slog.NewJSONHandler(w, handlerOpts)
	} else {
		handler = slog.NewTextHandler(w, handlerOpts)
	}

	logger := slog.New(handler)
	slog.SetDefault(logger)

	return logger
}
