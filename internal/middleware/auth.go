package middleware

import (
	"net/http"
	"strings"

	"bantay-usok/lungsod/internal/auth"
)

// AuthMiddleware validates the Bearer token on each request and stores the
// caller's claims in the request context.
func AuthMiddleware(jwtSecret []byte) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {

			authHeader := r.Header.Get("Authorization")
			if !strings.HasPrefix(authHeader, "Bearer ") {
				http.Error(w, "Unauthorized. Missing bearer token", http.StatusUnauthorized)
				return
			}

			tokenString := strings.TrimPrefix(authHeader, "Bearer ")
			claims, err := auth.ParseToken(jwtSecret, tokenString)
			if err != nil {
				http.Error(w, "Unauthorized. Invalid token", http.StatusUnauthorized)
				return
			}

			ctx := auth.SetUserClaims(r.Context(), &auth.JWTClaims{Token: claims})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
