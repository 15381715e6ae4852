package middleware

import (
	"net/http"
)

type permissionEvaluator interface {
	HasPermission(roleName, permission string) bool
}

// RequirePermission rejects requests whose authenticated role lacks the
// permission. Must run after Auth.
func RequirePermission(eval permissionEvaluator, permission string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := ClaimsFromContext(r.Context())
			if !ok {
				writeJSONError(w, http.StatusUnauthorized, "unauthorized")
				return
			}
			if !eval.HasPermission(claims.Role, permission) {
				writeJSONError(w, http.StatusForbidden, "insufficient permissions")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
