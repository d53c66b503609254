package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/MGreizis/banana-counter/internal/service"

	"github.com/rs/zerolog/log"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

// writeServiceError maps service errors onto the wire contract: missing
// user is a 400 with the exact contractual message, store failures are
// 503, anything else is a 500.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrUserRequired):
		writeError(w, http.StatusBadRequest, service.ErrUserRequired.Message)
	case errors.Is(err, service.ErrStoreUnavailable):
		log.Error().Err(err).Msg("score store failure")
		writeError(w, http.StatusServiceUnavailable, service.ErrStoreUnavailable.Message)
	default:
		log.Error().Err(err).Msg("unhandled service error")
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}
