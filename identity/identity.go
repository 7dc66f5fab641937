package identity

import "context"

// Caller identifies whose cart a request acts on.
type Caller struct {
	CartID int
	UserID int
}

type callerCtxKey struct{}

// WithCaller returns a copy of ctx carrying c.
func WithCaller(ctx context.Context, c Caller) context.Context {
	return context.WithValue(ctx, callerCtxKey{}, c)
}

// FromContext returns the caller stored by WithCaller.
func FromContext(ctx context.Context) (Caller, bool) {
	if ctx == nil {
		return Caller{}, false
	}
	c, ok := ctx.Value(callerCtxKey{}).(Caller)
	return c, ok
}

// UserID returns the caller's user id, or fallback when none is set.
func UserID(ctx context.Context, fallback int) int {
	if c, ok := FromContext(ctx); ok && c.UserID > 0 {
		return c.UserID
	}
	return fallback
}

// CartID returns the caller's cart id, or fallback when none is set.
func CartID(ctx context.Context, fallback int) int {
	if c, ok := FromContext(ctx); ok && c.CartID > 0 {
		return c.CartID
	}
	return fallback
}
