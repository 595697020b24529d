package request

import (
	"context"

	"liquidator/core"
)

type key int

const (
	userKey key = iota
)

// WithUser context with the authenticated user
func WithUser(ctx context.Context, user *core.User) context.Context {
	return context.WithValue(ctx, userKey, user)
}

// UserFrom authenticated user of the request context
func UserFrom(ctx context.Context) (*core.User, bool) {
	user, ok := ctx.Value(userKey).(*core.User)
	return user, ok
}
