package middlewares

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kindred_server/config"
	"kindred_server/models"
	"kindred_server/services"
)

func newTestGate() (*AuthMiddleware, *services.AuthService) {
	auth := services.NewAuthService(config.Config{JWTSecret: "test-secret", TokenExpiry: time.Hour})
	return NewAuthMiddleware(auth), auth
}

func protectedHandler(t *testing.T) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := ClaimsFrom(r.Context())
		require.True(t, ok)
		require.NotEmpty(t, claims.User.ID)
		w.WriteHeader(http.StatusOK)
	}
}

func TestRequireAuthMissingHeader(t *testing.T) {
	gate, _ := newTestGate()
	handler := gate.RequireAuth(protectedHandler(t))

	req := httptest.NewRequest("GET", "/users", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireAuthWrongScheme(t *testing.T) {
	gate, auth := newTestGate()
	handler := gate.RequireAuth(protectedHandler(t))

	token, err := auth.IssueToken(&models.User{UserID: "user-a", Username: "alice"})
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/users", nil)
	req.Header.Set("Authorization", "Basic "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireAuthInvalidToken(t *testing.T) {
	gate, _ := newTestGate()
	handler := gate.RequireAuth(protectedHandler(t))

	req := httptest.NewRequest("GET", "/users", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireAuthExpiredToken(t *testing.T) {
	gate, _ := newTestGate()
	expired := services.NewAuthService(config.Config{JWTSecret: "test-secret", TokenExpiry: -time.Minute})
	handler := gate.RequireAuth(protectedHandler(t))

	token, err := expired.IssueToken(&models.User{UserID: "user-a", Username: "alice"})
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/users", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireAuthValidToken(t *testing.T) {
	gate, auth := newTestGate()
	handler := gate.RequireAuth(protectedHandler(t))

	token, err := auth.IssueToken(&models.User{UserID: "user-a", Username: "alice"})
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/users", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}
