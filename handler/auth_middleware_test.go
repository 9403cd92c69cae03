// file: handler/auth_middleware_test.go

package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-auth-api/model"
	"go-auth-api/service"
)

func newTestTokenService(t *testing.T, ttl time.Duration) *service.TokenService {
	t.Helper()
	tokens, err := service.NewTokenService("test-secret", ttl)
	require.NoError(t, err)
	return tokens
}

func claimsEcho(t *testing.T, gotID *int, gotRole *string) http.Handler {
	t.Helper()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := r.Context().Value(UserIDKey).(int)
		require.True(t, ok)
		role, ok := r.Context().Value(UserRoleKey).(string)
		require.True(t, ok)
		*gotID = id
		*gotRole = role
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuthMiddleware(t *testing.T) {
	tokens := newTestTokenService(t, 15*time.Minute)

	t.Run("valid token passes claims through", func(t *testing.T) {
		accessToken, err := tokens.GenerateAccessToken(7, "bob@example.com", model.RoleAdmin)
		require.NoError(t, err)

		var gotID int
		var gotRole string
		mw := AuthMiddleware(tokens)(claimsEcho(t, &gotID, &gotRole))

		req := httptest.NewRequest("GET", "/auth/me", nil)
		req.Header.Set("Authorization", "Bearer "+accessToken)
		rr := httptest.NewRecorder()

		mw.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, 7, gotID)
		assert.Equal(t, "admin", gotRole)
	})

	t.Run("missing header", func(t *testing.T) {
		mw := AuthMiddleware(tokens)(http.NotFoundHandler())

		req := httptest.NewRequest("GET", "/auth/me", nil)
		rr := httptest.NewRecorder()

		mw.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("malformed header", func(t *testing.T) {
		mw := AuthMiddleware(tokens)(http.NotFoundHandler())

		req := httptest.NewRequest("GET", "/auth/me", nil)
		req.Header.Set("Authorization", "Token abc123")
		rr := httptest.NewRecorder()

		mw.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("expired token", func(t *testing.T) {
		expiredTokens := newTestTokenService(t, -time.Minute)
		accessToken, err := expiredTokens.GenerateAccessToken(7, "bob@example.com", model.RoleUser)
		require.NoError(t, err)

		mw := AuthMiddleware(tokens)(http.NotFoundHandler())

		req := httptest.NewRequest("GET", "/auth/me", nil)
		req.Header.Set("Authorization", "Bearer "+accessToken)
		rr := httptest.NewRecorder()

		mw.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})
}

func TestAdminMiddleware(t *testing.T) {
	tokens := newTestTokenService(t, 15*time.Minute)

	run := func(t *testing.T, role model.Role) *httptest.ResponseRecorder {
		t.Helper()
		accessToken, err := tokens.GenerateAccessToken(1, "someone@example.com", role)
		require.NoError(t, err)

		handler := AuthMiddleware(tokens)(AdminMiddleware(http.HandlerFunc(
			func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) })))

		req := httptest.NewRequest("GET", "/admin", nil)
		req.Header.Set("Authorization", "Bearer "+accessToken)
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)
		return rr
	}

	assert.Equal(t, http.StatusOK, run(t, model.RoleAdmin).Code)
	assert.Equal(t, http.StatusForbidden, run(t, model.RoleUser).Code)
}
