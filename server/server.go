// Package server streams per-tick simulation state to browsers over
// websockets for a live view of a run.
package server

import (
	"log/slog"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }}

// client is one connected websocket viewer.
type client struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

// send serializes writes; gorilla connections allow one concurrent writer.
func (c *client) send(v interface{}) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn.WriteJSON(v)
}

// Hub fans simulation state out to all connected viewers.
type Hub struct {
	hello interface{} // sent to each client on connect

	mu      sync.Mutex
	clients map[*client]struct{}
}

// NewHub creates an empty hub. hello, if non-nil, is sent to every client on
// connect (grid dimensions and run parameters).
func NewHub(hello interface{}) *Hub {
	return &Hub{
		hello:   hello,
		clients: make(map[*client]struct{}),
	}
}

// ClientCount returns the number of connected viewers.
func (h *Hub) ClientCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// Broadcast sends v to every connected viewer, dropping clients whose
// connection fails.
func (h *Hub) Broadcast(v interface{}) {
	h.mu.Lock()
	list := make([]*client, 0, len(h.clients))
	for c := range h.clients {
		list = append(list, c)
	}
	h.mu.Unlock()

	for _, c := range list {
		if err := c.send(v); err != nil {
			slog.Warn("dropping live-view client", "error", err)
			h.mu.Lock()
			delete(h.clients, c)
			h.mu.Unlock()
			c.conn.Close()
		}
	}
}

// ServeHTTP upgrades the request and registers the viewer until it
// disconnects.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Warn("websocket upgrade failed", "error", err)
		return
	}

	c := &client{conn: conn}
	h.mu.Lock()
	h.clients[c] = struct{}{}
	h.mu.Unlock()

	if h.hello != nil {
		_ = c.send(h.hello)
	}

	// Drain the connection; viewers are read-only.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}

	h.mu.Lock()
	delete(h.clients, c)
	h.mu.Unlock()
	conn.Close()
}

// ListenAndServe mounts the hub at /ws and serves static/ at the root.
// Blocks until the listener fails.
func (h *Hub) ListenAndServe(addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/ws", h)
	mux.Handle("/", http.FileServer(http.Dir("static")))
	slog.Info("live view listening", "addr", addr)
	return http.ListenAndServe(addr, mux)
}
