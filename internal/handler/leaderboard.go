package handler

import (
	"net/http"
	"strconv"

	"github.com/MGreizis/banana-counter/internal/service"
)

// LeaderboardHandler serves the public top-N board.
type LeaderboardHandler struct {
	scores   *service.Scores
	defaultN int
	maxN     int
}

func NewLeaderboardHandler(scores *service.Scores, defaultN, maxN int) *LeaderboardHandler {
	return &LeaderboardHandler{scores: scores, defaultN: defaultN, maxN: maxN}
}

type leaderboardResponse struct {
	Leaderboard []service.Entry `json:"leaderboard"`
}

func (h *LeaderboardHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	n := h.defaultN
	if raw := r.URL.Query().Get("limit"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 1 {
			writeError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		if v > h.maxN {
			writeError(w, http.StatusBadRequest, "limit exceeds maximum")
			return
		}
		n = v
	}
	entries, err := h.scores.TopN(r.Context(), int64(n))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, leaderboardResponse{Leaderboard: entries})
}
