package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/MGreizis/banana-counter/internal/metrics"
	"github.com/MGreizis/banana-counter/internal/realtime"
	"github.com/MGreizis/banana-counter/internal/repository"
)

// Entry is one leaderboard row as served to clients.
type Entry = repository.Entry

// Scores validates and normalizes user identifiers, delegates to the
// store's atomic primitives, and maps store failures onto the service
// error taxonomy. It keeps no per-user state of its own; the store is
// the single source of truth.
type Scores struct {
	store repository.Store
	mtx   *metrics.Registry
	hub   *realtime.Hub
}

// NewScores constructs the score service. mtx and hub may be nil.
func NewScores(store repository.Store, mtx *metrics.Registry, hub *realtime.Hub) *Scores {
	return &Scores{store: store, mtx: mtx, hub: hub}
}

// NormalizeUser trims surrounding whitespace and lowercases a raw user
// identifier, so "  Alice " and "alice" address the same counter.
func NormalizeUser(raw string) (string, error) {
	user := strings.ToLower(strings.TrimSpace(raw))
	if user == "" {
		return "", ErrUserRequired
	}
	return user, nil
}

// Score returns user's current score, 0 if the user never incremented.
func (s *Scores) Score(ctx context.Context, rawUser string) (int64, error) {
	user, err := NormalizeUser(rawUser)
	if err != nil {
		return 0, err
	}
	defer s.observe("score", time.Now())
	score, err := s.store.Score(ctx, user)
	if err != nil {
		return 0, storeErr("score", err)
	}
	return score, nil
}

// Increment adds one to user's score through the store's atomic primitive
// and returns the new value. Concurrent increments are never lost.
func (s *Scores) Increment(ctx context.Context, rawUser string) (int64, error) {
	user, err := NormalizeUser(rawUser)
	if err != nil {
		return 0, err
	}
	defer s.observe("incr", time.Now())
	score, err := s.store.IncrScore(ctx, user)
	if err != nil {
		return 0, storeErr("incr", err)
	}
	if s.mtx != nil {
		s.mtx.Increments.Inc()
	}
	if s.hub != nil {
		s.hub.Broadcast(ctx, realtime.Update{User: user, Score: score})
	}
	return score, nil
}

// TopN returns up to n entries ordered by score descending, ties by user
// descending. The slice is never nil.
func (s *Scores) TopN(ctx context.Context, n int64) ([]Entry, error) {
	defer s.observe("top", time.Now())
	entries, err := s.store.TopScores(ctx, n)
	if err != nil {
		return nil, storeErr("top", err)
	}
	return entries, nil
}

// Remove deletes user's counter. Returns false if the user had none.
func (s *Scores) Remove(ctx context.Context, rawUser string) (bool, error) {
	user, err := NormalizeUser(rawUser)
	if err != nil {
		return false, err
	}
	defer s.observe("remove", time.Now())
	removed, err := s.store.RemoveUser(ctx, user)
	if err != nil {
		return false, storeErr("remove", err)
	}
	return removed, nil
}

// ResetBoard deletes every counter and returns how many were removed.
func (s *Scores) ResetBoard(ctx context.Context) (int64, error) {
	defer s.observe("reset", time.Now())
	removed, err := s.store.ResetScores(ctx)
	if err != nil {
		return 0, storeErr("reset", err)
	}
	return removed, nil
}

// Total returns the number of distinct users on the board.
func (s *Scores) Total(ctx context.Context) (int64, error) {
	count, err := s.store.CountUsers(ctx)
	if err != nil {
		return 0, storeErr("count", err)
	}
	return count, nil
}

// Ready reports whether the backing store is reachable.
func (s *Scores) Ready(ctx context.Context) error {
	if err := s.store.Ping(ctx); err != nil {
		return storeErr("ping", err)
	}
	return nil
}

func (s *Scores) observe(op string, start time.Time) {
	if s.mtx != nil {
		s.mtx.StoreLatency.WithLabelValues(op).Observe(time.Since(start).Seconds())
	}
}

func storeErr(op string, err error) error {
	return fmt.Errorf("%w: %s: %v", ErrStoreUnavailable, op, err)
}
