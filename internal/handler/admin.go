package handler

import (
	"net/http"

	"github.com/MGreizis/banana-counter/internal/service"
)

// AdminHandler provides moderation endpoints over the score board.
type AdminHandler struct {
	scores    *service.Scores
	listLimit int
}

func NewAdminHandler(scores *service.Scores, listLimit int) *AdminHandler {
	return &AdminHandler{scores: scores, listLimit: listLimit}
}

// ServeHTTP dispatches on method: GET lists the board, DELETE removes one
// user's counter.
func (a *AdminHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		a.list(w, r)
	case http.MethodDelete:
		a.remove(w, r)
	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (a *AdminHandler) list(w http.ResponseWriter, r *http.Request) {
	entries, err := a.scores.TopN(r.Context(), int64(a.listLimit))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, leaderboardResponse{Leaderboard: entries})
}

func (a *AdminHandler) remove(w http.ResponseWriter, r *http.Request) {
	removed, err := a.scores.Remove(r.Context(), r.URL.Query().Get("userId"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if !removed {
		writeError(w, http.StatusNotFound, "user not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Reset clears the whole board and reports how many counters it removed.
func (a *AdminHandler) Reset(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	removed, err := a.scores.ResetBoard(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int64{"removed": removed})
}
