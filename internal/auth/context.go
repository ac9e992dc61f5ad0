package auth

import "context"

type identityKey struct{}

func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, id)
}

func IdentityFrom(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(identityKey{}).(Identity)
	return id, ok
}

// UserID returns the authenticated user's ID, or 0 outside Middleware.
func UserID(ctx context.Context) int64 {
	id, _ := IdentityFrom(ctx)
	return id.UserID
}
