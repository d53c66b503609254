package handler

import (
	"net/http"
	"time"

	"github.com/MGreizis/banana-counter/internal/service"
)

// HealthHandler handles health check requests.
type HealthHandler struct {
	scores *service.Scores
}

func NewHealthHandler(scores *service.Scores) *HealthHandler {
	return &HealthHandler{scores: scores}
}

// LivenessResponse represents liveness probe response.
type LivenessResponse struct {
	Status string `json:"status"`
	Time   int64  `json:"timestamp"`
}

// ReadinessResponse represents readiness probe response.
type ReadinessResponse struct {
	Status string `json:"status"`
	Store  string `json:"store"`
}

// Liveness returns 200 if the service is running.
func (h *HealthHandler) Liveness(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, LivenessResponse{
		Status: "alive",
		Time:   time.Now().Unix(),
	})
}

// Readiness returns 200 only when the score store answers a ping.
func (h *HealthHandler) Readiness(w http.ResponseWriter, r *http.Request) {
	if err := h.scores.Ready(r.Context()); err != nil {
		writeJSON(w, http.StatusServiceUnavailable, ReadinessResponse{
			Status: "unavailable",
			Store:  "failed",
		})
		return
	}
	writeJSON(w, http.StatusOK, ReadinessResponse{
		Status: "ready",
		Store:  "ok",
	})
}

// Status returns detailed status information including board size.
func (h *HealthHandler) Status(w http.ResponseWriter, r *http.Request) {
	status := map[string]interface{}{
		"service":   "banana-counter",
		"version":   "1.0.0",
		"timestamp": time.Now().Unix(),
		"uptime":    time.Since(startTime).Seconds(),
	}
	if users, err := h.scores.Total(r.Context()); err == nil {
		status["users"] = users
	}
	writeJSON(w, http.StatusOK, status)
}

var startTime = time.Now()
