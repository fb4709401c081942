package ws

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/watchkeeper/history/internal/progress"
)

const (
	writeTimeout = 10 * time.Second
	pongWait     = 60 * time.Second
	pingPeriod   = pongWait * 9 / 10
	sendBufSize  = 16
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// Message is the JSON envelope sent to every connected client.
type Message struct {
	Event string            `json:"event"`
	Data  progress.Snapshot `json:"data"`
}

// Hub manages connected progress-stream clients and periodically
// broadcasts whichever replay's Tracker is currently active.
type Hub struct {
	mu      sync.RWMutex
	clients map[*client]struct{}
	tracker *progress.Tracker

	interval time.Duration
}

// New returns a Hub broadcasting at interval. No replay is active until
// SetTracker is called.
func New(interval time.Duration) *Hub {
	return &Hub{
		clients:  make(map[*client]struct{}),
		interval: interval,
	}
}

// SetTracker points the hub at the Tracker of the currently running
// replay. Pass nil once the replay completes so the hub stops
// broadcasting stale counters.
func (h *Hub) SetTracker(t *progress.Tracker) {
	h.mu.Lock()
	h.tracker = t
	h.mu.Unlock()
}

// Count reports the number of connected clients.
func (h *Hub) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Run broadcasts progress snapshots on a fixed tick until ctx is
// cancelled, then closes every connected client.
func (h *Hub) Run(ctx context.Context) {
	ticker := time.NewTicker(h.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			h.closeAll()
			return
		case <-ticker.C:
			h.broadcast()
		}
	}
}

func (h *Hub) broadcast() {
	h.mu.RLock()
	t := h.tracker
	h.mu.RUnlock()
	if t == nil {
		return
	}

	msg, err := h.buildMessage(t)
	if err != nil {
		slog.Warn("ws: failed to encode progress message", "err", err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for c := range h.clients {
		select {
		case c.send <- msg:
		default:
			slog.Warn("ws: client send buffer full, dropping frame")
		}
	}
}

func (h *Hub) buildMessage(t *progress.Tracker) ([]byte, error) {
	return json.Marshal(Message{Event: "progress", Data: t.Snapshot()})
}

// ServeHTTP upgrades the connection, sends one immediate snapshot if a
// replay is active, and spawns the client's read/write pumps.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Warn("ws: upgrade failed", "err", err)
		return
	}

	c := &client{conn: conn, send: make(chan []byte, sendBufSize)}
	h.register(c)

	h.mu.RLock()
	t := h.tracker
	h.mu.RUnlock()
	if t != nil {
		if msg, err := h.buildMessage(t); err == nil {
			select {
			case c.send <- msg:
			default:
			}
		}
	}

	go c.writePump()
	go c.readPump(func() { h.unregister(c) })
}

func (h *Hub) register(c *client) {
	h.mu.Lock()
	h.clients[c] = struct{}{}
	h.mu.Unlock()
}

func (h *Hub) unregister(c *client) {
	h.mu.Lock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.send)
	}
	h.mu.Unlock()
}

func (h *Hub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients {
		close(c.send)
		c.conn.Close()
		delete(h.clients, c)
	}
}
