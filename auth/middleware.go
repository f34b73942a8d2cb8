package auth

import (
	"net/http"
	"strings"

	"github.com/user/filmoteca-go/apperror"
)

// RequireAdmin returns middleware enforcing the single-admin-identity policy.
// A missing or malformed Authorization header is an authentication failure
// (401); a token that fails validation or decodes to any identity other than
// the configured admin is an authorization failure (403). On success the
// request proceeds unchanged: with one fixed identity there is nothing to
// thread through the context.
//
// Which routes the gate covers is decided at composition time, so protection
// stays per-route configuration rather than policy baked into the handlers.
func RequireAdmin(svc *AuthService) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				WriteError(w, r, apperror.NewAuthError("Authorization header is missing", nil))
				return
			}

			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
				WriteError(w, r, apperror.NewAuthError("Authorization header format must be Bearer {token}", nil))
				return
			}

			claims, err := svc.ValidateToken(parts[1])
			if err != nil {
				WriteError(w, r, err)
				return
			}

			if claims.Email != svc.AdminEmail() {
				WriteError(w, r, apperror.NewUnauthorizedError("insufficient permissions", nil))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
