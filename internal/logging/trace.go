package logging

import (
	"context"
	"crypto/rand"

	"github.com/oklog/ulid/v2"
)

// traceIDKey is the context key for the per-invocation trace ID.
type traceIDKey struct{}

// ContextWithTraceID returns a context carrying the given trace ID.
func ContextWithTraceID(ctx context.Context, traceID string) context.Context {
	return context.WithValue(ctx, traceIDKey{}, traceID)
}

// TraceIDFromContext returns the trace ID stored in ctx, or "" if none.
func TraceIDFromContext(ctx context.Context) string {
	if id, ok := ctx.Value(traceIDKey{}).(string); ok {
		return id
	}
	return ""
}

// GetOrGenerateTraceID returns the trace ID already attached to ctx, or
// generates a fresh ULID. One trace ID spans a full CLI invocation so server
// calls and log entries can be correlated.
func GetOrGenerateTraceID(ctx context.Context) string {
	if id := TraceIDFromContext(ctx); id != "" {
		return id
	}
	return ulid.MustNew(ulid.Now(), rand.Reader).String()
}
