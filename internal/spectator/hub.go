// Package spectator serves a loopback-only WebSocket feed of snapshot
// digests, for local debugging/visualization tools rather than game
// clients (those speak the UDP wire protocol in internal/protocol). It
// is bound to 127.0.0.1 only (see cmd/server/main.go), so it carries no
// per-IP connection limiting or origin allowlist (see DESIGN.md).
package spectator

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/rtype-server/rtype-server/internal/protocol"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// EntityDigest is one entity's JSON-friendly snapshot entry.
type EntityDigest struct {
	ID uint8   `json:"id"`
	X  float32 `json:"x"`
	Y  float32 `json:"y"`
}

// Hub fans out snapshot digests to any number of loopback WebSocket
// clients.
type Hub struct {
	clients    map[*websocket.Conn]struct{}
	broadcast  chan []byte
	register   chan *websocket.Conn
	unregister chan *websocket.Conn
	mu         sync.RWMutex
}

// NewHub builds an unstarted Hub; call Run in its own goroutine.
func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*websocket.Conn]struct{}),
		broadcast:  make(chan []byte, 64),
		register:   make(chan *websocket.Conn),
		unregister: make(chan *websocket.Conn),
	}
}

// Run drives the hub's register/unregister/broadcast loop until stop is
// closed.
func (h *Hub) Run(stop <-chan struct{}) {
	for {
		select {
		case <-stop:
			return
		case conn := <-h.register:
			h.mu.Lock()
			h.clients[conn] = struct{}{}
			h.mu.Unlock()
			log.Printf("[spectator] client connected (%d total)", h.ClientCount())
		case conn := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[conn]; ok {
				delete(h.clients, conn)
				conn.Close()
			}
			h.mu.Unlock()
			log.Printf("[spectator] client disconnected (%d remaining)", h.ClientCount())
		case msg := <-h.broadcast:
			h.mu.RLock()
			for conn := range h.clients {
				if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
					conn.Close()
					go func(c *websocket.Conn) { h.unregister <- c }(conn)
				}
			}
			h.mu.RUnlock()
		}
	}
}

// ClientCount returns the number of connected spectators.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// PublishSnapshot marshals entities as a JSON digest and enqueues it for
// broadcast. It never blocks: a full channel drops the digest (the next
// 20Hz tick supersedes it anyway).
func (h *Hub) PublishSnapshot(entities []protocol.SnapshotEntity) {
	if h.ClientCount() == 0 {
		return
	}
	digests := make([]EntityDigest, len(entities))
	for i, e := range entities {
		digests[i] = EntityDigest{ID: e.ID, X: e.X, Y: e.Y}
	}
	payload, err := json.Marshal(map[string]any{"event": "snapshot", "entities": digests})
	if err != nil {
		return
	}
	select {
	case h.broadcast <- payload:
	default:
	}
}

// ServeHTTP upgrades the request to a WebSocket and registers it with
// the hub. Intended to be mounted at a loopback-only route.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[spectator] upgrade failed: %v", err)
		return
	}
	h.register <- conn

	go func() {
		defer func() { h.unregister <- conn }()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}
