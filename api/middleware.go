package api

import (
	"context"
	"net/http"
	"strings"

	"github.com/magicyuan876/mineru-tianshu/auth"
)

type ctxKey int

const userCtxKey ctxKey = iota

func userFromContext(ctx context.Context) *auth.User {
	u, _ := ctx.Value(userCtxKey).(*auth.User)
	return u
}

// authenticate verifies the Authorization: Bearer header on every
// request it wraps (the router leaves /health and /engines unwrapped)
// and, on success, stores the resolved *auth.User in the request
// context for downstream handlers and permission checks.
func (s *Server) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			writeError(w, http.StatusUnauthorized, "missing bearer token")
			return
		}
		user, err := s.authn.Authenticate(r.Context(), token)
		if err != nil {
			writeError(w, http.StatusUnauthorized, "invalid bearer token")
			return
		}
		ctx := context.WithValue(r.Context(), userCtxKey, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// requirePermission rejects the request with 403 unless the authenticated
// user carries perm.
func requirePermission(perm auth.Permission) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !userFromContext(r.Context()).Has(perm) {
				writeError(w, http.StatusForbidden, "missing required permission")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
