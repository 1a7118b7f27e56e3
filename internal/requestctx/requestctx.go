// Package requestctx carries the request id through contexts shared by the
// HTTP, WebSocket and service layers.
package requestctx

import "context"

type contextKey struct{}

// WithID returns a copy of ctx carrying id.
func WithID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, contextKey{}, id)
}

// ID returns the request id stored in ctx, or "" when absent.
func ID(ctx context.Context) string {
	id, _ := ctx.Value(contextKey{}).(string)
	return id
}
