package hashtable

import (
	"context"
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with hashtable-specific helpers.
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
	return NewLogger(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
}

// NewTextLogger creates a Logger that outputs human-readable text logs.
func NewTextLogger(level slog.Level) *Logger {
	return NewLogger(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
}

// NoopLogger creates a Logger that discards all log output.
func NoopLogger() *Logger {
	return NewLogger(slog.DiscardHandler)
}

// WithScheme adds the hashing scheme name to the logger.
func (l *Logger) WithScheme(name string) *Logger {
	return &Logger{
		Logger: l.Logger.With("scheme", name),
	}
}

// WithSource adds a record source name to the logger.
func (l *Logger) WithSource(name string) *Logger {
	return &Logger{
		Logger: l.Logger.With("source", name),
	}
}

// LogResize logs a completed expand or shrink.
func (l *Logger) LogResize(ctx context.Context, from, to, entries int) {
	op := "expand"
	if to < from {
		op = "shrink"
	}
	l.DebugContext(ctx, "table resized",
		"op", op,
		"from", from,
		"to", to,
		"entries", entries,
	)
}

// LogLoad logs the outcome of loading one record source.
func (l *Logger) LogLoad(ctx context.Context, rows, inserted, duplicates int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "load failed",
			"rows", rows,
			"inserted", inserted,
			"error", err,
		)
		return
	}
	if duplicates > 0 {
		l.WarnContext(ctx, "load completed with duplicate keys",
			"rows", rows,
			"inserted", inserted,
			"duplicates", duplicates,
		)
		return
	}
	l.InfoContext(ctx, "load completed",
		"rows", rows,
		"inserted", inserted,
	)
}

// LogVerify logs the outcome of reading every record back.
func (l *Logger) LogVerify(ctx context.Context, rows, missing int) {
	if missing > 0 {
		l.WarnContext(ctx, "verify found missing records",
			"rows", rows,
			"missing", missing,
		)
		return
	}
	l.InfoContext(ctx, "verify completed",
		"rows", rows,
	)
}
