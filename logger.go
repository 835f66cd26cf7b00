package enriched

import (
	"context"
	"log/slog"
	"os"

	"github.com/hupe1980/enriched/dataset"
	"github.com/hupe1980/enriched/enrichment"
	"github.com/hupe1980/enriched/loader"
)

// Logger wraps slog.Logger with enriched-specific context.
// This provides structured logging with consistent field names.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a new Logger with the given handler.
// If handler is nil, uses default text handler to stderr.
func NewLogger(handler slog.Handler) *Logger {
	if handler == nil {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	}
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewJSONLogger creates a Logger that outputs JSON-formatted logs.
// level sets the minimum log level (e.g., slog.LevelDebug, slog.LevelInfo).
func NewJSONLogger(level slog.Level) *Logger {
	handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewTextLogger creates a Logger that outputs human-readable text logs.
func NewTextLogger(level slog.Level) *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NoopLogger creates a Logger that discards all log output.
func NoopLogger() *Logger {
	return &Logger{
		Logger: slog.New(slog.DiscardHandler),
	}
}

// WithTable adds a table field to the logger.
func (l *Logger) WithTable(name string) *Logger {
	return &Logger{
		Logger: l.Logger.With("table", name),
	}
}

// LogLoad logs a table load. Use WithTable to name the table.
func (l *Logger) LogLoad(ctx context.Context, s loader.Summary, err error) {
	if err != nil {
		l.ErrorContext(ctx, "load failed",
			"lines", s.Lines,
			"error", err,
		)
		return
	}
	if s.Unresolved > 0 {
		l.WarnContext(ctx, "load completed with unresolved names",
			"added", s.Added,
			"duplicates", s.Duplicates,
			"unresolved", s.Unresolved,
		)
		return
	}
	l.InfoContext(ctx, "load completed",
		"added", s.Added,
		"duplicates", s.Duplicates,
		"registered", s.Registered,
	)
}

// LogDerive logs the outcome of mapping derivation.
func (l *Logger) LogDerive(ctx context.Context, d dataset.Derivation, inconsistencies int) {
	if inconsistencies > 0 {
		l.WarnContext(ctx, "mappings disagree",
			"derived", d.String(),
			"inconsistencies", inconsistencies,
		)
		return
	}
	l.DebugContext(ctx, "mappings ready",
		"derived", d.String(),
	)
}

// LogTest logs an enrichment run.
func (l *Logger) LogTest(ctx context.Context, test string, testSize int, r enrichment.Report, err error) {
	if err != nil {
		l.ErrorContext(ctx, "test failed",
			"test", test,
			"error", err,
		)
		return
	}
	l.InfoContext(ctx, "test completed",
		"test", test,
		"test_size", testSize,
		"results", len(r.Results),
	)
}
