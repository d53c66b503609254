package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/MGreizis/banana-counter/internal/repository"
	"github.com/MGreizis/banana-counter/internal/service"
)

// unavailableStore fails every operation, standing in for a dead backend.
type unavailableStore struct{}

var errDown = errors.New("connection refused")

func (unavailableStore) Score(context.Context, string) (int64, error)     { return 0, errDown }
func (unavailableStore) IncrScore(context.Context, string) (int64, error) { return 0, errDown }
func (unavailableStore) TopScores(context.Context, int64) ([]repository.Entry, error) {
	return nil, errDown
}
func (unavailableStore) RemoveUser(context.Context, string) (bool, error) { return false, errDown }
func (unavailableStore) ResetScores(context.Context) (int64, error)       { return 0, errDown }
func (unavailableStore) CountUsers(context.Context) (int64, error)        { return 0, errDown }
func (unavailableStore) RateTick(context.Context, string, time.Duration) (int64, error) {
	return 0, errDown
}
func (unavailableStore) Ping(context.Context) error { return errDown }
func (unavailableStore) Close() error               { return nil }

func TestHealthLiveness(t *testing.T) {
	h := NewHealthHandler(newTestScores())

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rr := httptest.NewRecorder()
	h.Liveness(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rr.Code)
	}
	var resp LivenessResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Status != "alive" {
		t.Fatalf("expected alive got %q", resp.Status)
	}
}

func TestHealthReadiness(t *testing.T) {
	h := NewHealthHandler(newTestScores())

	req := httptest.NewRequest(http.MethodGet, "/ready", nil)
	rr := httptest.NewRecorder()
	h.Readiness(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rr.Code)
	}
	var resp ReadinessResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Status != "ready" || resp.Store != "ok" {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestHealthReadinessStoreDown(t *testing.T) {
	h := NewHealthHandler(service.NewScores(unavailableStore{}, nil, nil))

	req := httptest.NewRequest(http.MethodGet, "/ready", nil)
	rr := httptest.NewRecorder()
	h.Readiness(rr, req)

	if rr.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503 got %d", rr.Code)
	}
	var resp ReadinessResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Status != "unavailable" || resp.Store != "failed" {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestHealthStatus(t *testing.T) {
	scores := newTestScores()
	seedScores(t, scores, map[string]int{"alice": 1, "bob": 1})
	h := NewHealthHandler(scores)

	req := httptest.NewRequest(http.MethodGet, "/status", nil)
	rr := httptest.NewRecorder()
	h.Status(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rr.Code)
	}
	var status map[string]interface{}
	if err := json.Unmarshal(rr.Body.Bytes(), &status); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if status["service"] != "banana-counter" {
		t.Fatalf("unexpected service name: %v", status["service"])
	}
	if status["users"] != float64(2) {
		t.Fatalf("expected 2 users got %v", status["users"])
	}
}
