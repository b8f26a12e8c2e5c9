package shared

import "context"

type contextKey string

const actorContextKey contextKey = "actor"

// WithActor stores the acting user's name in the context. The HTTP layer
// sets it after authentication; repositories read it when writing the
// change log.
func WithActor(ctx context.Context, name string) context.Context {
	return context.WithValue(ctx, actorContextKey, name)
}

// ActorFromContext returns the acting user's name, or "system" when the
// operation runs outside a request.
func ActorFromContext(ctx context.Context) string {
	if name, ok := ctx.Value(actorContextKey).(string); ok && name != "" {
		return name
	}
	return "system"
}
