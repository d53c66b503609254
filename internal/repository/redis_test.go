package repository

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
)

func newRedisTestStore(t *testing.T) (Store, *miniredis.Miniredis) {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis run failed: %v", err)
	}
	t.Cleanup(mr.Close)

	store, err := NewRedisStore(mr.Addr(), "test")
	if err != nil {
		t.Fatalf("failed to create redis store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store, mr
}

func TestRedisStoreScoreLifecycle(t *testing.T) {
	store, _ := newRedisTestStore(t)
	ctx := context.Background()

	// Unknown users read as zero
	score, err := store.Score(ctx, "alice")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if score != 0 {
		t.Fatalf("expected score 0 for unknown user, got %d", score)
	}

	// Each increment returns the running total
	for i := 1; i <= 3; i++ {
		total, err := store.IncrScore(ctx, "alice")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if total != int64(i) {
			t.Fatalf("expected total %d, got %d", i, total)
		}
	}

	score, err = store.Score(ctx, "alice")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if score != 3 {
		t.Fatalf("expected score 3, got %d", score)
	}
}

func TestRedisStoreTopScores(t *testing.T) {
	store, _ := newRedisTestStore(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if _, err := store.IncrScore(ctx, "alice"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if _, err := store.IncrScore(ctx, "bob"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	entries, err := store.TopScores(ctx, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []Entry{{User: "alice", Score: 3}, {User: "bob", Score: 1}}
	if len(entries) != len(want) {
		t.Fatalf("expected %d entries, got %d", len(want), len(entries))
	}
	for i := range want {
		if entries[i] != want[i] {
			t.Fatalf("entry %d: expected %+v, got %+v", i, want[i], entries[i])
		}
	}

	// n truncates the board
	entries, err = store.TopScores(ctx, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(entries) != 1 || entries[0].User != "alice" {
		t.Fatalf("expected only alice, got %+v", entries)
	}
}

func TestRedisStoreTopScoresTieOrder(t *testing.T) {
	store, _ := newRedisTestStore(t)
	ctx := context.Background()

	for _, user := range []string{"alice", "zed", "bob"} {
		if _, err := store.IncrScore(ctx, user); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	// Equal scores come back in reverse lexicographic user order
	entries, err := store.TopScores(ctx, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"zed", "bob", "alice"}
	for i, user := range want {
		if entries[i].User != user || entries[i].Score != 1 {
			t.Fatalf("position %d: expected %s/1, got %+v", i, user, entries[i])
		}
	}
}

func TestRedisStoreTopScoresEmpty(t *testing.T) {
	store, _ := newRedisTestStore(t)

	entries, err := store.TopScores(context.Background(), 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if entries == nil {
		t.Fatal("expected empty slice, got nil")
	}
	if len(entries) != 0 {
		t.Fatalf("expected empty board, got %+v", entries)
	}
}

func TestRedisStoreRemoveUser(t *testing.T) {
	store, _ := newRedisTestStore(t)
	ctx := context.Background()

	if _, err := store.IncrScore(ctx, "alice"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	removed, err := store.RemoveUser(ctx, "alice")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !removed {
		t.Fatal("expected removal of existing user")
	}

	// Second removal reports absence
	removed, err = store.RemoveUser(ctx, "alice")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if removed {
		t.Fatal("expected no removal for missing user")
	}

	score, err := store.Score(ctx, "alice")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if score != 0 {
		t.Fatalf("expected score 0 after removal, got %d", score)
	}
}

func TestRedisStoreResetScores(t *testing.T) {
	store, _ := newRedisTestStore(t)
	ctx := context.Background()

	for _, user := range []string{"alice", "bob"} {
		if _, err := store.IncrScore(ctx, user); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	removed, err := store.ResetScores(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if removed != 2 {
		t.Fatalf("expected 2 removed, got %d", removed)
	}

	count, err := store.CountUsers(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected empty board after reset, got %d users", count)
	}
}

func TestRedisStoreRateTick(t *testing.T) {
	store, _ := newRedisTestStore(t)
	ctx := context.Background()

	for i := 1; i <= 5; i++ {
		count, err := store.RateTick(ctx, "1.2.3.4", time.Minute)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if count != int64(i) {
			t.Fatalf("expected count %d, got %d", i, count)
		}
	}

	// Separate keys keep separate windows
	count, err := store.RateTick(ctx, "5.6.7.8", time.Minute)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected count 1 for fresh key, got %d", count)
	}
}

func TestRedisStoreRateTickWindowExpiry(t *testing.T) {
	store, _ := newRedisTestStore(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if _, err := store.RateTick(ctx, "1.2.3.4", 50*time.Millisecond); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	time.Sleep(60 * time.Millisecond)
	count, err := store.RateTick(ctx, "1.2.3.4", 50*time.Millisecond)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected count 1 after window expiry, got %d", count)
	}
}

func TestRedisStorePing(t *testing.T) {
	store, mr := newRedisTestStore(t)

	if err := store.Ping(context.Background()); err != nil {
		t.Fatalf("unexpected ping error: %v", err)
	}

	mr.Close()
	if err := store.Ping(context.Background()); err == nil {
		t.Fatal("expected ping error after backend shutdown")
	}
}

// BenchmarkRedisIncrScore benchmarks the atomic increment path.
func BenchmarkRedisIncrScore(b *testing.B) {
	mr, err := miniredis.Run()
	if err != nil {
		b.Fatalf("miniredis run failed: %v", err)
	}
	defer mr.Close()

	store, _ := NewRedisStore(mr.Addr(), "bench")
	ctx := context.Background()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		store.IncrScore(ctx, "bench-user")
	}
}

// BenchmarkRedisIncrScoreConcurrent benchmarks concurrent increments across users.
func BenchmarkRedisIncrScoreConcurrent(b *testing.B) {
	mr, err := miniredis.Run()
	if err != nil {
		b.Fatalf("miniredis run failed: %v", err)
	}
	defer mr.Close()

	store, _ := NewRedisStore(mr.Addr(), "bench")
	ctx := context.Background()

	b.RunParallel(func(pb *testing.PB) {
		i := 0
		for pb.Next() {
			store.IncrScore(ctx, "user:"+string(rune('a'+i%10)))
			i++
		}
	})
}
