package graph

import (
	"context"
	lb "library_backend"
)

type contextKey int

const currentUserKey contextKey = iota

// WithCurrentUser stores the identity resolved from the request's bearer
// token. The transport middleware calls this once per request.
func WithCurrentUser(ctx context.Context, user *lb.User) context.Context {
	return context.WithValue(ctx, currentUserKey, user)
}

// CurrentUser returns the request's resolved user, or nil for an anonymous
// request.
func CurrentUser(ctx context.Context) *lb.User {
	user, _ := ctx.Value(currentUserKey).(*lb.User)
	return user
}
