package logging

import (
	"context"
	"strings"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type requestIDKey struct{}

var (
	mu   sync.RWMutex
	base = zap.NewNop()
)

// Init builds the process logger. Production uses JSON output, everything else the
// console encoder.
func Init(env, level string) (*zap.Logger, error) {
	var cfg zap.Config
	if env == "production" {
		cfg = zap.NewProductionConfig()
	} else {
		cfg = zap.NewDevelopmentConfig()
	}

	lvl, err := zapcore.ParseLevel(strings.ToLower(level))
	if err != nil {
		lvl = zapcore.InfoLevel
	}
	cfg.Level = zap.NewAtomicLevelAt(lvl)

	l, err := cfg.Build()
	if err != nil {
		return nil, err
	}
	SetBase(l)
	return l, nil
}

// SetBase replaces the process logger. Tests use it with zap.NewNop or an observer core.
func SetBase(l *zap.Logger) {
	mu.Lock()
	defer mu.Unlock()
	base = l
}

// Base returns the process logger.
func Base() *zap.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return base
}

// WithRequestID stores the request ID for loggers created from ctx.
func WithRequestID(ctx context.Context, rid string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, rid)
}

// RequestID extracts the request ID from a standard context
func RequestID(ctx context.Context) string {
	if rid, ok := ctx.Value(requestIDKey{}).(string); ok {
		return rid
	}
	return ""
}

// Logger provides structured logging for services
type Logger struct {
	s *zap.SugaredLogger
}

// NewLogger creates a logger with request context
func NewLogger(ctx context.Context) *Logger {
	requestID := RequestID(ctx)
	if requestID == "" {
		requestID = "unknown"
	}
	return &Logger{s: Base().Sugar().With("request_id", requestID)}
}

// LogError logs an error with context
func (l *Logger) LogError(operation string, err error) {
	l.s.Errorw("operation failed", "operation", operation, "error", err)
}

// LogErrorf logs a formatted error with context
func (l *Logger) LogErrorf(operation string, format string, args ...interface{}) {
	l.s.With("operation", operation).Errorf(format, args...)
}

// LogInfof logs a formatted info message with context
func (l *Logger) LogInfof(operation string, format string, args ...interface{}) {
	l.s.With("operation", operation).Infof(format, args...)
}

// LogWarnf logs a formatted warning with context
func (l *Logger) LogWarnf(operation string, format string, args ...interface{}) {
	l.s.With("operation", operation).Warnf(format, args...)
}

// LogDebugf logs a formatted debug message with context
func (l *Logger) LogDebugf(operation string, format string, args ...interface{}) {
	l.s.With("operation", operation).Debugf(format, args...)
}
