// Package logger provides a zap-based application logger.
package logger

import (
	"context"
	"io"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Level is the minimum severity a Logger writes.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

// ParseLevel maps a config string to a Level, defaulting to LevelInfo.
func ParseLevel(s string) Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return LevelDebug
	case "warn", "warning":
		return LevelWarn
	case "error":
		return LevelError
	default:
		return LevelInfo
	}
}

func (lv Level) zap() zapcore.Level {
	switch lv {
	case LevelDebug:
		return zapcore.DebugLevel
	case LevelWarn:
		return zapcore.WarnLevel
	case LevelError:
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

// TraceIDFunc extracts a trace id from a context, or returns "".
type TraceIDFunc func(ctx context.Context) string

// Logger writes JSON records tagged with the service name and, when
// available, the trace id of the request context.
type Logger struct {
	sugar   *zap.SugaredLogger
	traceID TraceIDFunc
}

// New builds a Logger writing to w.
func New(w io.Writer, level Level, service string, traceID TraceIDFunc) *Logger {
	enc := zap.NewProductionEncoderConfig()
	enc.EncodeTime = zapcore.ISO8601TimeEncoder
	core := zapcore.NewCore(zapcore.NewJSONEncoder(enc), zapcore.AddSync(w), level.zap())
	z := zap.New(core).With(zap.String("service", service))
	return &Logger{sugar: z.Sugar(), traceID: traceID}
}

func (l *Logger) Debug(ctx context.Context, msg string, kv ...any) {
	l.sugar.Debugw(msg, l.fields(ctx, kv)...)
}

func (l *Logger) Info(ctx context.Context, msg string, kv ...any) {
	l.sugar.Infow(msg, l.fields(ctx, kv)...)
}

func (l *Logger) Warn(ctx context.Context, msg string, kv ...any) {
	l.sugar.Warnw(msg, l.fields(ctx, kv)...)
}

func (l *Logger) Error(ctx context.Context, msg string, kv ...any) {
	l.sugar.Errorw(msg, l.fields(ctx, kv)...)
}

// Sync flushes buffered records.
func (l *Logger) Sync() error {
	return l.sugar.Sync()
}

func (l *Logger) fields(ctx context.Context, kv []any) []any {
	if l.traceID == nil || ctx == nil {
		return kv
	}
	id := l.traceID(ctx)
	if id == "" {
		return kv
	}
	return append([]any{"trace_id", id}, kv...)
}
