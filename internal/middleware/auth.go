package middleware

import (
	"net/http"

	handlers "pnsMembership/internal/handler"
	"pnsMembership/internal/session"
)

// RequireSession rejects requests without a valid cookie of the manager's
// family and puts the principal on the context. OPTIONS passes through.
func RequireSession(manager *session.Manager) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method == http.MethodOptions {
				next.ServeHTTP(w, r)
				return
			}

			principal, err := manager.FromRequest(r)
			if err != nil {
				handlers.WriteError(w, "Unauthorized", http.StatusUnauthorized)
				return
			}
			next.ServeHTTP(w, r.WithContext(session.NewContext(r.Context(), principal)))
		})
	}
}
