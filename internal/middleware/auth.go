package middleware

import (
	"net/http"
	"strings"

	"github.com/hongminglow/driveops-be/internal/auth"
	"github.com/hongminglow/driveops-be/internal/http/respond"
)

// Authenticate verifies the bearer token and attaches the caller's identity
// to the request context.
func Authenticate(tokens *auth.TokenManager) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			scheme, token, ok := strings.Cut(header, " ")
			if header == "" {
				respond.Error(w, http.StatusUnauthorized, "missing authorization header")
				return
			}
			if !ok || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
				respond.Error(w, http.StatusUnauthorized, "malformed authorization header")
				return
			}

			id, err := tokens.Verify(strings.TrimSpace(token))
			if err != nil {
				respond.Error(w, http.StatusUnauthorized, "invalid or expired token")
				return
			}
			next.ServeHTTP(w, r.WithContext(auth.WithIdentity(r.Context(), id)))
		})
	}
}

// Authorize rejects callers whose role is outside perm. It must run after Authenticate.
func Authorize(perm auth.Permission) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id, ok := auth.IdentityFrom(r.Context())
			if !ok {
				respond.Error(w, http.StatusUnauthorized, "authentication required")
				return
			}
			if !perm.Allows(id.Role) {
				respond.Error(w, http.StatusForbidden, "insufficient permissions")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// Require composes Authenticate and Authorize around next.
func Require(tokens *auth.TokenManager, perm auth.Permission, next http.Handler) http.Handler {
	return Chain(next, Authenticate(tokens), Authorize(perm))
}

// Guard protects a handler with a permission set.
type Guard func(perm auth.Permission, next http.HandlerFunc) http.Handler

// NewGuard binds Require to tokens.
func NewGuard(tokens *auth.TokenManager) Guard {
	return func(perm auth.Permission, next http.HandlerFunc) http.Handler {
		return Require(tokens, perm, next)
	}
}
