package middleware

import (
	"net/http"

	"github.com/google/uuid"
)

// RequestID tags each request and its response with an X-Request-ID
// header. Inbound ids survive only when they parse as UUIDs; anything
// else a client sends is replaced before it reaches the logs.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-ID")
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
			r.Header.Set("X-Request-ID", id)
		}
		w.Header().Set("X-Request-ID", id)
		next.ServeHTTP(w, r)
	})
}
