// file: handler/ratelimit_middleware.go

package handler

import (
	"go-auth-api/common"
	"go-auth-api/logger"
	"go-auth-api/service"
	"net"
	"net/http"
	"strings"
)

// clientIP extracts the caller's address, preferring X-Forwarded-For when
// the service sits behind a proxy.
func clientIP(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		return strings.TrimSpace(strings.Split(forwarded, ",")[0])
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// RateLimitMiddleware throttles a route to limit requests per client per
// window, keyed by route name and client IP. A nil limiter disables
// throttling.
func RateLimitMiddleware(limiter *service.RateLimiter, route string, limit int) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if limiter == nil {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := route + ":" + clientIP(r)

			allowed, err := limiter.Allow(r.Context(), key, limit)
			if err != nil {
				// Redis being down should not take auth down with it.
				logger.Log.WithError(err).Warn("Rate limiter unavailable, allowing request")
			}
			if !allowed {
				appErr := common.NewAppError(http.StatusTooManyRequests, "Too many requests, slow down", nil)
				appErr.Send(w)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
