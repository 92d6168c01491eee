package log

import (
	"context"
	"log/slog"
)

// ContextKey type for context keys
type ContextKey string

const (
	// LoggerContextKey is the context key for the logger
	LoggerContextKey ContextKey = "logger"
)

// NewContext returns ctx carrying logger.
func NewContext(ctx context.Context, logger *Logger) context.Context {
	return context.WithValue(ctx, LoggerContextKey, logger)
}

// FromContext returns the logger stored in ctx. Without one it returns
// fallback, or the process default logger when fallback is nil.
func FromContext(ctx context.Context, fallback *Logger) *Logger {
	if logger, ok := ctx.Value(LoggerContextKey).(*Logger); ok && logger != nil {
		return logger
	}
	if fallback != nil {
		return fallback
	}
	return &Logger{
		Logger:    slog.Default(),
		component: "unknown",
	}
}

// StructuredLogger provides domain-level structured logging methods
type StructuredLogger struct {
	logger *Logger
}

// NewStructuredLogger creates a new structured logger
func NewStructuredLogger(logger *Logger) *StructuredLogger {
	return &StructuredLogger{
		logger: logger,
	}
}

// LogValidationFailed logs a rejected save with the names of the failing fields.
func (sl *StructuredLogger) LogValidationFailed(ctx context.Context, fields []string) {
	sl.logger.WarnContext(ctx, "Life event validation failed",
		FieldInvalidFields, fields,
		FieldOperation, OpValidate,
		FieldErrorType, ErrorTypeValidation)
}

// LogExportCreated logs a successful export.
func (sl *StructuredLogger) LogExportCreated(ctx context.Context, employer, income, start, end, filename string, size int) {
	fields := NewFields().
		WithLifeEvent(employer, income, start, end).
		WithOperation(OpExport).
		ToSlice()

	fields = append(fields, FieldFilename, filename, FieldBytes, size)

	sl.logger.InfoContext(ctx, "Life event exported", fields...)
}

// LogError logs an error with structured context
func (sl *StructuredLogger) LogError(ctx context.Context, msg string, err error, operation string, fields LogFields) {
	if fields == nil {
		fields = NewFields()
	}
	allFields := fields.
		WithError(err).
		WithOperation(operation)

	sl.logger.ErrorContext(ctx, msg, allFields.ToSlice()...)
}
