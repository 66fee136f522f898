// Package auth carries the authenticated caller through a request's
// context.Context. Nothing here is process-global: a Principal lives exactly
// as long as the request that verified it.
package auth

import (
	"context"
	"time"
)

// Principal is the verified identity behind a request.
type Principal struct {
	UserID    string
	Email     string
	Role      string
	TokenID   string
	Token     string
	ExpiresAt time.Time
}

type principalKey struct{}

func NewContext(ctx context.Context, p *Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, p)
}

func FromContext(ctx context.Context) (*Principal, bool) {
	p, ok := ctx.Value(principalKey{}).(*Principal)
	return p, ok && p != nil
}

// UserID returns the caller's user id, or "" for anonymous requests.
func UserID(ctx context.Context) string {
	if p, ok := FromContext(ctx); ok {
		return p.UserID
	}
	return ""
}
