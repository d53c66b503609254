package repository

import (
	"context"
	"sort"
	"sync"
	"time"
)

type memoryStore struct {
	mu     sync.Mutex
	scores map[string]int64
	ticks  map[string][]int64
}

// NewMemoryStore returns an in-memory Store for local development/testing.
// Scores are lost on restart.
func NewMemoryStore() Store {
	return &memoryStore{
		scores: make(map[string]int64),
		ticks:  make(map[string][]int64),
	}
}

func (m *memoryStore) Score(ctx context.Context, user string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.scores[user], nil
}

func (m *memoryStore) IncrScore(ctx context.Context, user string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.scores[user]++
	return m.scores[user], nil
}

func (m *memoryStore) TopScores(ctx context.Context, n int64) ([]Entry, error) {
	if n <= 0 {
		return []Entry{}, nil
	}
	m.mu.Lock()
	entries := make([]Entry, 0, len(m.scores))
	for user, score := range m.scores {
		entries = append(entries, Entry{User: user, Score: score})
	}
	m.mu.Unlock()

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Score != entries[j].Score {
			return entries[i].Score > entries[j].Score
		}
		return entries[i].User > entries[j].User
	})
	if int64(len(entries)) > n {
		entries = entries[:n]
	}
	return entries, nil
}

func (m *memoryStore) RemoveUser(ctx context.Context, user string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.scores[user]
	delete(m.scores, user)
	return ok, nil
}

func (m *memoryStore) ResetScores(ctx context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	removed := int64(len(m.scores))
	m.scores = make(map[string]int64)
	return removed, nil
}

func (m *memoryStore) CountUsers(ctx context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return int64(len(m.scores)), nil
}

func (m *memoryStore) RateTick(ctx context.Context, key string, window time.Duration) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := time.Now().UnixMilli()
	cutoff := now - window.Milliseconds()
	arr := m.ticks[key]
	// drop expired ticks
	i := 0
	for ; i < len(arr); i++ {
		if arr[i] >= cutoff {
			break
		}
	}
	arr = arr[i:]
	arr = append(arr, now)
	m.ticks[key] = arr
	return int64(len(arr)), nil
}

func (m *memoryStore) Ping(ctx context.Context) error { return nil }

func (m *memoryStore) Close() error { return nil }
