package router

import (
	"go-auth-api/handler"
	"go-auth-api/service"
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger/v2"

	_ "go-auth-api/docs"
)

// Per-route request limits per client per minute. The credential-issuing
// routes are throttled hardest because they do bcrypt work and are the
// natural target for guessing attacks.
const (
	registerLimit = 5
	loginLimit    = 10
	refreshLimit  = 20
)

// NewRouter wires up all routes. The limiter may be nil, which disables
// throttling (used in tests and when rate limiting is switched off).
func NewRouter(authHandler *handler.AuthHandler, tokens *service.TokenService, limiter *service.RateLimiter) http.Handler {
	mux := http.NewServeMux()

	authenticated := handler.AuthMiddleware(tokens)

	registerLimiter := handler.RateLimitMiddleware(limiter, "register", registerLimit)
	loginLimiter := handler.RateLimitMiddleware(limiter, "login", loginLimit)
	refreshLimiter := handler.RateLimitMiddleware(limiter, "refresh", refreshLimit)

	mux.Handle("POST /auth/register", registerLimiter(handler.ErrorHandlingMiddleware(authHandler.Register)))
	mux.Handle("POST /auth/login", loginLimiter(handler.ErrorHandlingMiddleware(authHandler.Login)))
	mux.Handle("POST /auth/refresh", refreshLimiter(handler.ErrorHandlingMiddleware(authHandler.Refresh)))
	mux.Handle("POST /auth/logout", handler.ErrorHandlingMiddleware(authHandler.Logout))

	mux.Handle("POST /auth/logout-all", authenticated(handler.ErrorHandlingMiddleware(authHandler.LogoutAll)))
	mux.Handle("GET /auth/me", authenticated(handler.ErrorHandlingMiddleware(authHandler.Me)))

	mux.HandleFunc("GET /health", handler.HealthCheck)
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return mux
}
