package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/ndewijer/Investment-Club-Backend/internal/api/response"
	"github.com/ndewijer/Investment-Club-Backend/internal/apperrors"
	"github.com/ndewijer/Investment-Club-Backend/internal/auth"
	"github.com/ndewijer/Investment-Club-Backend/internal/model"
)

// TokenVerifier turns a bearer token into a session.
type TokenVerifier interface {
	Verify(token string) (*auth.Session, error)
}

// MemberLookup resolves the stored member profile for a session.
type MemberLookup interface {
	GetMember(ctx context.Context, id string) (model.Member, error)
}

type memberKey struct{}

// MemberFromContext returns the member loaded by RequireApproved.
func MemberFromContext(ctx context.Context) (model.Member, bool) {
	m, ok := ctx.Value(memberKey{}).(model.Member)
	return m, ok
}

// WithMember stores m on ctx. Handler tests use it to skip the middleware chain.
func WithMember(ctx context.Context, m model.Member) context.Context {
	return context.WithValue(ctx, memberKey{}, m)
}

// RequireSession rejects requests without a valid "Authorization: Bearer <token>" header
// and stores the verified session on the request context.
func RequireSession(verifier TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || strings.TrimSpace(token) == "" {
				response.RespondError(w, http.StatusUnauthorized, apperrors.ErrUnauthenticated.Error(), "missing bearer token")
				return
			}

			session, err := verifier.Verify(strings.TrimSpace(token))
			if err != nil {
				response.RespondError(w, http.StatusUnauthorized, apperrors.ErrUnauthenticated.Error(), "invalid or expired token")
				return
			}

			next.ServeHTTP(w, r.WithContext(auth.WithSession(r.Context(), session)))
		})
	}
}

// RequireApproved loads the caller's member profile and rejects callers who are not
// registered or not yet approved. Must run after RequireSession.
// The stored role is authoritative; the role claimed in the token is ignored here.
func RequireApproved(members MemberLookup) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			session, ok := auth.FromContext(r.Context())
			if !ok {
				response.RespondError(w, http.StatusUnauthorized, apperrors.ErrUnauthenticated.Error(), "")
				return
			}

			member, err := members.GetMember(r.Context(), session.UserID)
			if err != nil {
				if errors.Is(err, apperrors.ErrMemberNotFound) {
					response.RespondError(w, http.StatusForbidden, apperrors.ErrNotApproved.Error(), "member profile not registered")
					return
				}
				response.RespondInternalError(w, apperrors.ErrFailedToRetrieveMembers.Error(), err)
				return
			}
			if !member.IsApproved {
				response.RespondError(w, http.StatusForbidden, apperrors.ErrNotApproved.Error(), "")
				return
			}

			next.ServeHTTP(w, r.WithContext(WithMember(r.Context(), member)))
		})
	}
}

// RequireAdmin rejects callers whose stored role is not admin. Must run after RequireApproved.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		member, ok := MemberFromContext(r.Context())
		if !ok || !member.IsAdmin() {
			response.RespondError(w, http.StatusForbidden, apperrors.ErrForbidden.Error(), "")
			return
		}
		next.ServeHTTP(w, r)
	})
}
