package server

import (
	"log"
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/ayusman/deodar/internal/app"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow local connections
	},
}

// FramesHandler streams scene frame snapshots to renderers via WebSocket.
// Each client gets its own subscription; slow clients receive the newest
// frame instead of a growing backlog.
type FramesHandler struct {
	app *app.App
}

// NewFramesHandler creates a new FramesHandler for the given app.
func NewFramesHandler(a *app.App) *FramesHandler {
	return &FramesHandler{app: a}
}

// ServeHTTP handles WebSocket upgrade requests.
func (h *FramesHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("websocket upgrade error: %v", err)
		return
	}
	defer conn.Close()

	frames := h.app.Subscribe()
	defer h.app.Unsubscribe(frames)

	// Drain client messages so pings and close frames are processed.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case <-done:
			return
		case frame := <-frames:
			if err := conn.WriteJSON(frame); err != nil {
				return
			}
		}
	}
}
