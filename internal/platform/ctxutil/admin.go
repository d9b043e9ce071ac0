package ctxutil

import (
	"context"
	"time"
)

type adminSessionKey struct{}

// AdminSession is attached by the admin guard once the session cookie verifies.
type AdminSession struct {
	IssuedAt  time.Time
	ExpiresAt time.Time
}

func WithAdminSession(ctx context.Context, s *AdminSession) context.Context {
	return context.WithValue(ctx, adminSessionKey{}, s)
}

func GetAdminSession(ctx context.Context) *AdminSession {
	if s, ok := ctx.Value(adminSessionKey{}).(*AdminSession); ok {
		return s
	}
	return nil
}
