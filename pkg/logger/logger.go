// Package logger provides the application's structured logger built on
// log/slog.
//
// In production (APP_ENV=production) records are emitted as JSON; in any
// other environment a human-readable text handler is used. When a MongoDB
// URI is configured, audit-tagged records are additionally persisted through
// the asynchronous sink in audit_mongo.go.
package logger

import (
	"context"
	"log/slog"
	"os"

	"github.com/prasetyadi/gerai/config"
)

var L *slog.Logger

func init() {
	Setup()
}

// Setup builds the root logger from config. Called once from init; exposed
// so the server can rebuild the logger after attaching the Mongo audit sink.
func Setup(extra ...slog.Handler) {
	var handler slog.Handler

	switch config.AppEnv() {
	case "production", "prod":
		handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})
	default:
		handler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug})
	}

	if len(extra) > 0 {
		handler = NewTeeHandler(append([]slog.Handler{handler}, extra...)...)
	}

	L = slog.New(handler)
	slog.SetDefault(L)
}

type ctxKey struct{}

// WithCtx returns the request-scoped logger stored in ctx by the request
// logging middleware, or the root logger when none is present.
func WithCtx(ctx context.Context) *slog.Logger {
	if log, ok := ctx.Value(ctxKey{}).(*slog.Logger); ok && log != nil {
		return log
	}
	return L
}

// Inject stores a request-scoped *slog.Logger in ctx. Called by the request
// logging middleware.
func Inject(ctx context.Context, log *slog.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, log)
}

// Audit logs an account or order lifecycle event. Records carry the audit
// marker so the Mongo sink can select them for the persistent trail.
func Audit(ctx context.Context, event string, args ...any) {
	WithCtx(ctx).Info(event, append([]any{AuditKey, true}, args...)...)
}

// Debug logs at DEBUG level.
func Debug(msg string, args ...any) { L.Debug(msg, args...) }

// Info logs at INFO level.
func Info(msg string, args ...any) { L.Info(msg, args...) }

// Warn logs at WARN level.
func Warn(msg string, args ...any) { L.Warn(msg, args...) }

// Error logs at ERROR level.
func Error(msg string, args ...any) { L.Error(msg, args...) }
