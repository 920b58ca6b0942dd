package middleware

import "context"

type contextKey string

const ctxIdentity contextKey = "identity"

// Identity is the authenticated caller recovered from a verified token.
type Identity struct {
	Username string
	IsAdmin  bool
}

// IdentityFromContext returns the caller identity, or nil for anonymous
// requests.
func IdentityFromContext(ctx context.Context) *Identity {
	if ctx == nil {
		return nil
	}
	if v, ok := ctx.Value(ctxIdentity).(*Identity); ok {
		return v
	}
	return nil
}

// WithIdentity injects the caller identity into the context.
func WithIdentity(ctx context.Context, identity *Identity) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, ctxIdentity, identity)
}
