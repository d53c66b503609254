package repository

import (
	"context"
	"time"
)

// Entry is one leaderboard row.
type Entry struct {
	User  string `json:"user"`
	Score int64  `json:"score"`
}

// Store defines the score-board backend. Implementations must be concurrency-safe
// and must increment through the backend's atomic primitive, never read-modify-write.
type Store interface {
	// Score returns the current score for user, 0 if the user has none.
	Score(ctx context.Context, user string) (int64, error)

	// IncrScore atomically adds one to user's score and returns the new value.
	IncrScore(ctx context.Context, user string) (int64, error)

	// TopScores returns up to n entries ordered by score descending.
	// Equal scores order by user descending, matching sorted-set reverse
	// lexicographic member order, so every implementation agrees.
	TopScores(ctx context.Context, n int64) ([]Entry, error)

	// RemoveUser deletes user's counter. Returns false if there was none.
	RemoveUser(ctx context.Context, user string) (bool, error)

	// ResetScores deletes every counter and returns how many were removed.
	ResetScores(ctx context.Context) (int64, error)

	// CountUsers returns the number of distinct users holding a counter.
	CountUsers(ctx context.Context) (int64, error)

	// RateTick records one event for key and returns the event count within
	// the trailing window.
	RateTick(ctx context.Context, key string, window time.Duration) (int64, error)

	// Ping reports whether the backend is reachable.
	Ping(ctx context.Context) error

	// Close releases backend connections.
	Close() error
}
