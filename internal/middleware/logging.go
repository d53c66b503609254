package middleware

import (
	"net/http"
	"time"

	"github.com/rs/zerolog/log"
)

// Traffic from probes and scrapers, not people. Logged at debug.
var quietPaths = map[string]bool{
	"/health":  true,
	"/ready":   true,
	"/metrics": true,
}

// Logging logs completed requests as structured JSON including request id and latency.
func Logging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)

		evt := log.Info()
		if quietPaths[r.URL.Path] {
			evt = log.Debug()
		}
		evt.Str("method", r.Method).
			Str("path", r.URL.Path).
			Str("client", clientIP(r)).
			Str("request_id", r.Header.Get("X-Request-ID")).
			Dur("latency", time.Since(start)).
			Msg("request completed")
	})
}
