package middlewares

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strings"

	"kindred_server/services"
)

type contextKey string

const claimsKey contextKey = "authClaims"

// AuthMiddleware guards protected routes. It verifies the bearer token
// before any application logic runs; every failure mode collapses to a bare
// 401 so callers learn nothing about why they were rejected.
type AuthMiddleware struct {
	Auth *services.AuthService
}

// NewAuthMiddleware creates the auth gate around an AuthService
func NewAuthMiddleware(auth *services.AuthService) *AuthMiddleware {
	return &AuthMiddleware{Auth: auth}
}

// RequireAuth wraps a handler so it only runs for requests carrying a valid
// "Authorization: Bearer <token>" header. The verified claims are placed in
// the request context; they are a snapshot taken at token-issue time.
func (m *AuthMiddleware) RequireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if header == "" {
			m.reject(w)
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			m.reject(w)
			return
		}

		claims, err := m.Auth.VerifyToken(parts[1])
		if err != nil {
			log.Printf("Token verification failed: %v", err)
			m.reject(w)
			return
		}

		ctx := context.WithValue(r.Context(), claimsKey, claims)
		next(w, r.WithContext(ctx))
	}
}

func (m *AuthMiddleware) reject(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(map[string]string{"message": "Unauthorized"})
}

// ClaimsFrom extracts the authenticated claims placed by RequireAuth
func ClaimsFrom(ctx context.Context) (*services.Claims, bool) {
	claims, ok := ctx.Value(claimsKey).(*services.Claims)
	return claims, ok
}
