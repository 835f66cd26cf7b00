package main

import (
	"io"
	"log/slog"
	"strings"

	"github.com/hupe1980/enriched"
)

func setupLogger(level, format string, w io.Writer) *enriched.Logger {
	var handler slog.Handler

	// Parse level
	var logLevel slog.Level
	switch strings.ToLower(level) {
	case "debug":
		logLevel = slog.LevelDebug
	case "info":
		logLevel = slog.LevelInfo
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelWarn
	}

	opts := &slog.HandlerOptions{
		Level:     logLevel,
		AddSource: level == "debug",
	}

	// Reports go to stdout, so logs never do.
	switch strings.ToLower(format) {
	case "json":
		handler = slog.NewJSONHandler(w, opts)
	default:
		handler = slog.NewTextHandler(w, opts)
	}

	return enriched.NewLogger(slog.New(handler).With(
		"service", appName,
		"version", Version,
	).Handler())
}
