package middleware

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/MGreizis/banana-counter/internal/metrics"
	"github.com/MGreizis/banana-counter/internal/service"

	"github.com/rs/zerolog/log"
)

// RateLimit guards increments with the sliding-window limiter, keyed by
// client IP. Only POSTs count against the window; reads pass untouched.
// When the limiter backend fails the request proceeds: the limiter is
// abuse protection, not a correctness gate.
func RateLimit(l *service.Limiter, m *metrics.Registry) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if l == nil || r.Method != http.MethodPost {
				next.ServeHTTP(w, r)
				return
			}
			key := clientIP(r)

			ctx, cancel := context.WithTimeout(r.Context(), 50*time.Millisecond)
			defer cancel()
			allowed, remaining, err := l.Allow(ctx, key)
			if err != nil {
				log.Warn().Err(err).Str("client", key).Msg("rate limit evaluation failed, allowing")
				next.ServeHTTP(w, r)
				return
			}

			// attach rate-limit headers
			w.Header().Set("X-RateLimit-Limit", strconv.FormatInt(l.Limit(), 10))
			w.Header().Set("X-RateLimit-Remaining", strconv.FormatInt(remaining, 10))
			w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(time.Now().Add(l.Window()).Unix(), 10))

			if !allowed {
				m.RateLimited.Inc()
				w.Header().Set("Retry-After", strconv.FormatInt(int64(l.Window().Seconds()), 10))
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusTooManyRequests)
				_ = json.NewEncoder(w).Encode(map[string]string{"error": "rate limit exceeded"})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// clientIP attempts to extract the remote IP address.
func clientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		parts := strings.Split(xff, ",")
		return strings.TrimSpace(parts[0])
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
