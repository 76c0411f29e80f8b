package middleware

import (
	"net/http"

	"bantay-usok/lungsod/internal/auth"
	"bantay-usok/lungsod/internal/constants"
)

// RequireRole gates a route group to callers holding at least one of the
// given roles. Admins always pass.
func RequireRole(roles ...constants.UserRole) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {

			claims := auth.GetUserClaims(r.Context())
			if claims == nil {
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			if claims.HasRole(constants.RoleAdmin) {
				next.ServeHTTP(w, r)
				return
			}
			for _, role := range roles {
				if claims.HasRole(role) {
					next.ServeHTTP(w, r)
					return
				}
			}
			http.Error(w, "Forbidden. Insufficient role", http.StatusForbidden)
		})
	}
}
