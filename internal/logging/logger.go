// Package logging wraps zap with request-scoped fields.
package logging

import (
	"context"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type requestIDKey struct{}

var (
	baseMu sync.RWMutex
	base   = zap.NewNop()
)

// Init builds the process logger. Development environments get the console encoder.
func Init(environment, level string) (*zap.Logger, error) {
	var cfg zap.Config
	if environment == "production" {
		cfg = zap.NewProductionConfig()
	} else {
		cfg = zap.NewDevelopmentConfig()
	}

	lvl, err := zapcore.ParseLevel(level)
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

// SetBase replaces the process logger.
func SetBase(l *zap.Logger) {
	baseMu.Lock()
	defer baseMu.Unlock()
	base = l
}

// L returns the process logger.
func L() *zap.Logger {
	baseMu.RLock()
	defer baseMu.RUnlock()
	return base
}

// WithRequestID stores a request id in ctx.
func WithRequestID(ctx context.Context, rid string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, rid)
}

// RequestID extracts the request id stored by WithRequestID.
func RequestID(ctx context.Context) string {
	if rid, ok := ctx.Value(requestIDKey{}).(string); ok {
		return rid
	}
	return ""
}

// Logger provides structured logging for services
type Logger struct {
	z *zap.Logger
}

// NewLogger creates a logger with request context
func NewLogger(ctx context.Context) *Logger {
	requestID := RequestID(ctx)
	if requestID == "" {
		requestID = "unknown"
	}
	return &Logger{z: L().With(zap.String("request_id", requestID))}
}

// With returns a logger carrying extra fields.
func (l *Logger) With(fields ...zap.Field) *Logger {
	return &Logger{z: l.z.With(fields...)}
}

func (l *Logger) LogError(operation string, err error) {
	l.z.Error("operation failed", zap.String("operation", operation), zap.Error(err))
}

func (l *Logger) LogErrorf(operation string, format string, args ...interface{}) {
	l.z.Sugar().With("operation", operation).Errorf(format, args...)
}

func (l *Logger) LogInfo(operation string, message string) {
	l.z.Info(message, zap.String("operation", operation))
}

func (l *Logger) LogInfof(operation string, format string, args ...interface{}) {
	l.z.Sugar().With("operation", operation).Infof(format, args...)
}

func (l *Logger) LogWarn(operation string, message string) {
	l.z.Warn(message, zap.String("operation", operation))
}

func (l *Logger) LogWarnf(operation string, format string, args ...interface{}) {
	l.z.Sugar().With("operation", operation).Warnf(format, args...)
}
