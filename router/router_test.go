// file: router/router_test.go

package router_test

import (
	"go-auth-api/handler"
	"go-auth-api/router"
	"go-auth-api/service"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	tokens, err := service.NewTokenService("test-secret", 15*time.Minute)
	require.NoError(t, err)
	// No limiter: throttling is off in tests.
	return router.NewRouter(handler.NewAuthHandler(nil), tokens, nil)
}

func TestRouter_HealthCheck(t *testing.T) {
	r := newTestRouter(t)

	req, _ := http.NewRequest("GET", "/health", nil)
	rr := httptest.NewRecorder()

	r.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	expectedBody := `{"status":"API is healthy and running"}`
	assert.JSONEq(t, expectedBody, rr.Body.String())
}

func TestRouter_ProtectedRoutesRequireToken(t *testing.T) {
	r := newTestRouter(t)

	for _, route := range []struct{ method, path string }{
		{"GET", "/auth/me"},
		{"POST", "/auth/logout-all"},
	} {
		req, _ := http.NewRequest(route.method, route.path, nil)
		rr := httptest.NewRecorder()

		r.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code, "%s %s", route.method, route.path)
	}
}

func TestRouter_MethodNotAllowed(t *testing.T) {
	r := newTestRouter(t)

	req, _ := http.NewRequest("GET", "/auth/login", nil)
	rr := httptest.NewRecorder()

	r.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)
}
