package internal

import (
	"context"
	"time"

	coreuser "github.com/frahmantamala/hr-management/internal/core/user"
)

type ctxKey string

const ContextUserKey ctxKey = "authUser"

// UserFromContext returns the authenticated principal placed there by the
// auth middleware, or (nil, false) for unauthenticated requests.
func UserFromContext(ctx context.Context) (*coreuser.User, bool) {
	if ctx == nil {
		return nil, false
	}
	if u, ok := ctx.Value(ContextUserKey).(*coreuser.User); ok && u != nil {
		return u, true
	}
	return nil, false
}

func ContextWithUser(ctx context.Context, u *coreuser.User) context.Context {
	return context.WithValue(ctx, ContextUserKey, u)
}

// WithTimeout returns a context with timeout, defaulting to 5 seconds if duration is zero or negative.
func WithTimeout(ctx context.Context, duration time.Duration) (context.Context, context.CancelFunc) {
	if duration <= 0 {
		duration = 5 * time.Second
	}
	return context.WithTimeout(ctx, duration)
}
