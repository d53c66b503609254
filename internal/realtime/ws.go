package realtime

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"
)

// Handler returns an http.Handler that upgrades to WebSocket and streams
// score updates from the hub until the client goes away.
func Handler(hub *Hub) http.Handler {
	upgrader := websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()
		id, ch := hub.Subscribe(256)
		defer hub.Unsubscribe(id)

		// The feed is one-way, so the only thing the read side ever
		// delivers is the error when the client goes away. Unsubscribing
		// closes ch, which ends the write loop below even when no
		// broadcast is in flight.
		go func() {
			for {
				if _, _, err := conn.ReadMessage(); err != nil {
					hub.Unsubscribe(id)
					return
				}
			}
		}()

		for u := range ch {
			_ = conn.SetWriteDeadline(time.Now().Add(5 * time.Second))
			if err := conn.WriteMessage(websocket.TextMessage, MarshalJSON(u)); err != nil {
				return
			}
		}
	})
}
