package middleware

import "context"

type identityKey struct{}

// WithIdentity returns a copy of ctx carrying the authenticated user id.
func WithIdentity(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, identityKey{}, userID)
}

// IdentityFrom returns the user id stored by JWTAuth.
func IdentityFrom(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(identityKey{}).(string)
	return id, ok && id != ""
}
