package handler

import (
	"encoding/json"
	"net/http"

	"github.com/MGreizis/banana-counter/internal/service"
)

// ScoreHandler serves the per-user score endpoints.
type ScoreHandler struct {
	scores *service.Scores
}

func NewScoreHandler(scores *service.Scores) *ScoreHandler {
	return &ScoreHandler{scores: scores}
}

type scoreResponse struct {
	Score int64 `json:"score"`
}

type incrementRequest struct {
	UserID string `json:"userId"`
}

// ServeHTTP dispatches on method: GET reads a score, POST increments it.
func (h *ScoreHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.get(w, r)
	case http.MethodPost:
		h.increment(w, r)
	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (h *ScoreHandler) get(w http.ResponseWriter, r *http.Request) {
	score, err := h.scores.Score(r.Context(), r.URL.Query().Get("userId"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, scoreResponse{Score: score})
}

func (h *ScoreHandler) increment(w http.ResponseWriter, r *http.Request) {
	var req incrementRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	score, err := h.scores.Increment(r.Context(), req.UserID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, scoreResponse{Score: score})
}
