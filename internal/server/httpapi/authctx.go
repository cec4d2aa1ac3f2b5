package httpapi

import (
	"context"

	"github.com/tasklyhq/taskly-server/internal/service"
)

type ctxKey string

const identityKey ctxKey = "taskly.identity"

// WithIdentity stores the authenticated claims in the request context.
func WithIdentity(ctx context.Context, c *service.Claims) context.Context {
	return context.WithValue(ctx, identityKey, c)
}

// IdentityFromCtx fetches the authenticated claims from the context.
func IdentityFromCtx(ctx context.Context) (*service.Claims, bool) {
	c, ok := ctx.Value(identityKey).(*service.Claims)
	return c, ok
}
