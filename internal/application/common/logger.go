package common

import "context"

// Log levels understood by CycleLogger implementations.
const (
	LevelDebug = "DEBUG"
	LevelInfo  = "INFO"
	LevelWarn  = "WARN"
	LevelError = "ERROR"
)

// CycleLogger receives structured log lines from the engine and commands.
type CycleLogger interface {
	Log(level, message string, metadata map[string]interface{})
}

type contextKey int

const (
	loggerKey contextKey = iota
)

// WithLogger adds a logger to the context
func WithLogger(ctx context.Context, logger CycleLogger) context.Context {
	return context.WithValue(ctx, loggerKey, logger)
}

// LoggerFromContext extracts the logger from context, or returns a no-op logger if not found
func LoggerFromContext(ctx context.Context) CycleLogger {
	if logger, ok := ctx.Value(loggerKey).(CycleLogger); ok {
		return logger
	}
	return noOpLogger{}
}

type noOpLogger struct{}

func (noOpLogger) Log(level, message string, metadata map[string]interface{}) {}
