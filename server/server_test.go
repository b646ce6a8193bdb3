package server

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
)

// dial connects a test client to the hub behind an httptest server.
func dial(t *testing.T, srv *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dialing websocket: %v", err)
	}
	return conn
}

// waitForClients polls until the hub sees the expected client count.
func waitForClients(t *testing.T, h *Hub, want int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if h.ClientCount() == want {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("expected %d clients, got %d", want, h.ClientCount())
}

func TestHelloOnConnect(t *testing.T) {
	h := NewHub(map[string]int{"w": 25, "h": 25})
	srv := httptest.NewServer(h)
	defer srv.Close()

	conn := dial(t, srv)
	defer conn.Close()

	var hello map[string]int
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	if err := conn.ReadJSON(&hello); err != nil {
		t.Fatalf("reading hello: %v", err)
	}
	if hello["w"] != 25 || hello["h"] != 25 {
		t.Errorf("unexpected hello payload: %v", hello)
	}
}

func TestBroadcastReachesClients(t *testing.T) {
	h := NewHub(nil)
	srv := httptest.NewServer(h)
	defer srv.Close()

	conn := dial(t, srv)
	defer conn.Close()
	waitForClients(t, h, 1)

	h.Broadcast(map[string]int{"tick": 3})

	var msg map[string]int
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	if err := conn.ReadJSON(&msg); err != nil {
		t.Fatalf("reading broadcast: %v", err)
	}
	if msg["tick"] != 3 {
		t.Errorf("expected tick 3, got %v", msg)
	}
}

func TestBroadcastDropsDeadClients(t *testing.T) {
	h := NewHub(nil)
	srv := httptest.NewServer(h)
	defer srv.Close()

	conn := dial(t, srv)
	waitForClients(t, h, 1)
	conn.Close()

	// Broadcasting to a closed connection eventually evicts the client.
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) && h.ClientCount() > 0 {
		h.Broadcast(map[string]int{"tick": 1})
		time.Sleep(5 * time.Millisecond)
	}
	if h.ClientCount() != 0 {
		t.Errorf("expected dead client to be dropped, got %d clients", h.ClientCount())
	}
}
