// Package auth verifies identity tokens and carries the caller's session through request contexts.
package auth

import (
	"context"

	"github.com/ndewijer/Investment-Club-Backend/internal/model"
)

// Session is the authenticated caller for the lifetime of one request.
// Role is the hint from the identity token; the member record is authoritative.
type Session struct {
	UserID string
	Email  string
	Role   model.Role
}

type sessionKey struct{}

// WithSession returns a copy of ctx carrying s.
func WithSession(ctx context.Context, s *Session) context.Context {
	return context.WithValue(ctx, sessionKey{}, s)
}

// FromContext returns the session stored in ctx, if any.
func FromContext(ctx context.Context) (*Session, bool) {
	s, ok := ctx.Value(sessionKey{}).(*Session)
	return s, ok && s != nil
}
