// Package logger provides structured logging for ecresolve.
package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/cockroachdb/errors"
)

// Logger provides structured logging interface.
type Logger interface {
	// Debug logs debug-level messages with optional key-value pairs.
	Debug(msg string, keysAndValues ...any)

	// Info logs info-level messages with optional key-value pairs.
	Info(msg string, keysAndValues ...any)

	// Error logs error-level messages with optional key-value pairs.
	Error(msg string, keysAndValues ...any)

	// With returns a new logger with additional key-value pairs.
	With(keysAndValues ...any) Logger
}

const (
	// LogFilePermissions defines the file permissions for log files (owner read/write only).
	LogFilePermissions = 0o600

	// logDirPermissions is used when the log file's directory does not exist yet.
	logDirPermissions = 0o700
)

// SlogAdapter implements Logger on top of log/slog with a CustomHandler.
type SlogAdapter struct {
	logger  *slog.Logger
	handler *CustomHandler
}

// NewSlogAdapter wraps an existing CustomHandler.
func NewSlogAdapter(h *CustomHandler) *SlogAdapter {
	return &SlogAdapter{
		logger:  slog.New(h),
		handler: h,
	}
}

// NewFileLoggerAtLevel creates a logger appending to filePath. The parent
// directory is created when missing.
func NewFileLoggerAtLevel(filePath string, level Level) (*SlogAdapter, error) {
	if err := os.MkdirAll(filepath.Dir(filePath), logDirPermissions); err != nil {
		return nil, errors.Wrap(err, "failed to create log directory")
	}

	h, err := NewFileHandler(filePath, level)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open log file")
	}

	return NewSlogAdapter(h), nil
}

// NewLevelLogger creates a logger writing to w at an explicit level.
func NewLevelLogger(w io.Writer, level Level) *SlogAdapter {
	return NewSlogAdapter(NewWriterHandler(w, level))
}

// Debug logs debug-level messages.
func (l *SlogAdapter) Debug(msg string, keysAndValues ...any) {
	l.logger.Log(context.Background(), slog.LevelDebug, msg, keysAndValues...)
}

// Info logs info-level messages.
func (l *SlogAdapter) Info(msg string, keysAndValues ...any) {
	l.logger.Log(context.Background(), slog.LevelInfo, msg, keysAndValues...)
}

// Error logs error-level messages.
func (l *SlogAdapter) Error(msg string, keysAndValues ...any) {
	l.logger.Log(context.Background(), slog.LevelError, msg, keysAndValues...)
}

// With returns a new logger with additional base key-value pairs.
//
//nolint:ireturn // With is intended to return an interface for chaining
func (l *SlogAdapter) With(keysAndValues ...any) Logger {
	return &SlogAdapter{
		logger:  l.logger.With(keysAndValues...),
		handler: l.handler,
	}
}

// Close closes the underlying writer when it is a file.
func (l *SlogAdapter) Close() error {
	return l.handler.Close()
}

// NoOpLogger is a logger that does nothing.
type NoOpLogger struct{}

// NewNoOpLogger creates a new NoOpLogger.
func NewNoOpLogger() *NoOpLogger {
	return &NoOpLogger{}
}

// Debug does nothing.
func (*NoOpLogger) Debug(string, ...any) {}

// Info does nothing.
func (*NoOpLogger) Info(string, ...any) {}

// Error does nothing.
func (*NoOpLogger) Error(string, ...any) {}

// With returns the same NoOpLogger.
//
//nolint:ireturn // With is intended to return an interface for chaining
func (n *NoOpLogger) With(...any) Logger {
	return n
}
