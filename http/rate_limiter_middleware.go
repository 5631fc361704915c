package http

import (
	"net"
	"net/http"

	"go.uber.org/zap"

	"ltv-advisor/logger"
)

func RateLimitMiddleware(
	limiter Limiter,
	next http.Handler,
) http.Handler {

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {

		ip := clientIP(r)

		if !limiter.Allow(r.Context(), ip) {
			logger.Warn(r.Context(), "rate limit exceeded",
				zap.String("client", ip),
				zap.String("path", r.URL.Path),
			)
			writeJSON(w, r, http.StatusTooManyRequests, errorResponse{Error: "rate limit exceeded"})
			return
		}

		next.ServeHTTP(w, r)
	})
}

func clientIP(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}
