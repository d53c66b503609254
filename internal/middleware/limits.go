package middleware

import (
	"net/http"

	"github.com/rs/zerolog/log"
)

const (
	// MaxRequestSize limits request body size to 64KB. Increment payloads
	// are a single short JSON object; anything bigger is garbage or abuse.
	MaxRequestSize = 64 * 1024
)

// RequestSizeLimit enforces maximum request body size.
func RequestSizeLimit(maxBytes int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.ContentLength > maxBytes {
				log.Warn().
					Int64("content_length", r.ContentLength).
					Int64("max_size", maxBytes).
					Msg("request body too large")
				http.Error(w, "request body too large", http.StatusRequestEntityTooLarge)
				return
			}
			r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
			next.ServeHTTP(w, r)
		})
	}
}
