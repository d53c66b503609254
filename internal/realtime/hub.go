package realtime

import (
	"context"
	"encoding/json"
	"sync"
)

// Update is a score change broadcast to live subscribers.
type Update struct {
	User  string `json:"user"`
	Score int64  `json:"score"`
}

// Hub is a simple pub/sub for fanning score updates out to subscribers.
// Sends never block: a subscriber with a full buffer misses the update
// rather than stalling the increment path.
type Hub struct {
	mu   sync.RWMutex
	subs map[int]chan Update
	next int
}

func NewHub() *Hub { return &Hub{subs: map[int]chan Update{}} }

func (h *Hub) Subscribe(buffer int) (int, <-chan Update) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.next++
	id := h.next
	ch := make(chan Update, buffer)
	h.subs[id] = ch
	return id, ch
}

// Unsubscribe is idempotent; a second call for the same id is a no-op.
func (h *Hub) Unsubscribe(id int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if ch, ok := h.subs[id]; ok {
		delete(h.subs, id)
		close(ch)
	}
}

// Subscribers reports how many live subscriptions the hub holds.
func (h *Hub) Subscribers() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs)
}

// Broadcast fans u out to every subscriber. Sends happen under the read
// lock and never block; channels are only closed under the write lock in
// Unsubscribe, so a send can never hit a closed channel.
func (h *Hub) Broadcast(_ context.Context, u Update) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, ch := range h.subs {
		select {
		case ch <- u:
		default: /* drop if full */
		}
	}
}

// MarshalJSON converts an update to JSON bytes for the WebSocket feed.
func MarshalJSON(u Update) []byte {
	b, _ := json.Marshal(u)
	return b
}
