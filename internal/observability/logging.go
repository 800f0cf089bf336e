// Package observability provides structured logging for the state engine.
package observability

import (
	"io"
	"log/slog"
	"os"
)

// Logger wraps slog.Logger to provide specialized logging methods.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a JSON logger writing to w at the given level.
func NewLogger(w io.Writer, level slog.Level) *Logger {
	handler := slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{Logger: slog.New(handler)}
}

// NewDefaultLogger creates the standard stdout JSON logger at info level.
func NewDefaultLogger() *Logger {
	return NewLogger(os.Stdout, slog.LevelInfo)
}

// Nop returns a logger that discards everything. Used by tests and by
// components constructed without an explicit logger.
func Nop() *Logger {
	return NewLogger(io.Discard, slog.LevelError)
}

// StoreLogger provides structured logging for store collection operations.
type StoreLogger struct {
	collection string
	logger     *Logger
}

// NewStoreLogger creates a StoreLogger for the given collection.
func NewStoreLogger(collection string, logger *Logger) *StoreLogger {
	if logger == nil {
		logger = Nop()
	}
	return &StoreLogger{collection: collection, logger: logger}
}

// LogMutation logs a store mutation.
func (l *StoreLogger) LogMutation(operation string, fields map[string]interface{}) {
	attrs := []any{
		slog.String("collection", l.collection),
		slog.String("operation", operation),
	}
	for k, v := range fields {
		attrs = append(attrs, slog.Any(k, v))
	}
	l.logger.Info("store mutation", attrs...)
}

// LogSkip logs a mutation that was dropped as a no-op (duplicate insert,
// missing target).
func (l *StoreLogger) LogSkip(operation, reason string, fields map[string]interface{}) {
	attrs := []any{
		slog.String("collection", l.collection),
		slog.String("operation", operation),
		slog.String("reason", reason),
	}
	for k, v := range fields {
		attrs = append(attrs, slog.Any(k, v))
	}
	l.logger.Debug("store mutation skipped", attrs...)
}

// LogError logs a store operation error.
func (l *StoreLogger) LogError(operation string, err error) {
	l.logger.Error("store error",
		slog.String("collection", l.collection),
		slog.String("operation", operation),
		slog.String("error", err.Error()),
	)
}
