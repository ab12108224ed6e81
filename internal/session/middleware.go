package session

import (
	"net/http"

	"github.com/and161185/medidesk/internal/model"
)

// DenyFunc writes the response for a request that failed authentication.
type DenyFunc func(w http.ResponseWriter, r *http.Request, err error)

// RequireSession resolves the Identity of every request, stores it in the
// request context and calls deny when the session is missing or invalid.
func RequireSession(m *Manager, deny DenyFunc) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id, err := m.Resolve(r)
			if err != nil {
				deny(w, r, err)
				return
			}
			next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), id)))
		})
	}
}

// RequireRole lets through only requests whose Identity carries role.
// It must run after RequireSession.
func RequireRole(role model.Role, deny DenyFunc) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id, ok := IdentityFromCtx(r.Context())
			if !ok || id.Role != role {
				deny(w, r, nil)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
