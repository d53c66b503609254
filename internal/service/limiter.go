package service

import (
	"context"
	"time"

	"github.com/MGreizis/banana-counter/internal/repository"
)

// Limiter evaluates a fixed sliding-window rate limit against the store.
type Limiter struct {
	store  repository.Store
	limit  int64
	window time.Duration
}

// NewLimiter constructs a Limiter allowing limit events per window.
func NewLimiter(s repository.Store, limit int64, window time.Duration) *Limiter {
	return &Limiter{store: s, limit: limit, window: window}
}

// Allow records an event for key and reports whether it stays within the
// window limit, plus the remaining quota.
func (l *Limiter) Allow(ctx context.Context, key string) (bool, int64, error) {
	count, err := l.store.RateTick(ctx, key, l.window)
	if err != nil {
		return false, 0, err
	}
	remaining := l.limit - count
	if remaining < 0 {
		remaining = 0
	}
	return count <= l.limit, remaining, nil
}

// Limit returns the configured events-per-window ceiling.
func (l *Limiter) Limit() int64 { return l.limit }

// Window returns the configured window length.
func (l *Limiter) Window() time.Duration { return l.window }
