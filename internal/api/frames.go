package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"

	"radarhud/pkg/model"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 4096,
	// The daemon binds to localhost; the UI may be served from anywhere.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// FrameHandler holds the latest frame and pushes new frames to WebSocket
// subscribers. It implements core.FrameSink.
type FrameHandler struct {
	mu       sync.RWMutex
	frame    model.Frame
	hasFrame bool
	clients  map[*websocket.Conn]chan model.Frame
}

func NewFrameHandler() *FrameHandler {
	return &FrameHandler{clients: make(map[*websocket.Conn]chan model.Frame)}
}

// Publish implements core.FrameSink. Slow subscribers drop frames rather
// than stalling the render loop.
func (h *FrameHandler) Publish(f model.Frame) {
	h.mu.Lock()
	h.frame = f
	h.hasFrame = true
	for _, ch := range h.clients {
		select {
		case ch <- f:
		default:
		}
	}
	h.mu.Unlock()
}

// HandleFrame serves the most recent frame.
func (h *FrameHandler) HandleFrame(w http.ResponseWriter, r *http.Request) {
	h.mu.RLock()
	frame, ok := h.frame, h.hasFrame
	h.mu.RUnlock()

	if !ok {
		http.Error(w, "no frame yet", http.StatusServiceUnavailable)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(frame); err != nil {
		slog.Error("Failed to encode frame response", "error", err)
	}
}

// HandleWS upgrades the connection and streams frames until the client
// disconnects.
func (h *FrameHandler) HandleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Warn("WebSocket upgrade failed", "error", err)
		return
	}

	ch := make(chan model.Frame, 4)
	h.mu.Lock()
	h.clients[conn] = ch
	h.mu.Unlock()
	slog.Debug("frame subscriber connected", "remote", conn.RemoteAddr())

	defer func() {
		h.mu.Lock()
		delete(h.clients, conn)
		h.mu.Unlock()
		conn.Close()
	}()

	// Reader goroutine: we ignore client messages but need to notice the
	// connection closing.
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
		case frame := <-ch:
			if err := conn.WriteJSON(frame); err != nil {
				slog.Debug("frame subscriber write failed", "error", err)
				return
			}
		}
	}
}
