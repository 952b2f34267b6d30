package logger

import (
	"context"
	"log/slog"
)

type ctxKey struct{}

// With attaches the given fields to the context's logger and returns the
// enriched context, so downstream calls inherit request-scoped attributes.
func With(ctx context.Context, fields ...any) context.Context {
	return context.WithValue(ctx, ctxKey{}, From(ctx).With(fields...))
}

// From extracts the logger carried by ctx, falling back to the shared logger
// when none was attached.
func From(ctx context.Context) *slog.Logger {
	if l, ok := ctx.Value(ctxKey{}).(*slog.Logger); ok {
		return l
	}
	return LoggerWrapper()
}
