package websocket

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(h *Hub) *Client {
	return &Client{hub: h, send: make(chan []byte, 16)}
}

func waitForClients(t *testing.T, h *Hub, want int) {
	t.Helper()
	deadline := time.After(2 * time.Second)
	for {
		if h.ClientCount() == want {
			return
		}
		select {
		case <-deadline:
			t.Fatalf("expected %d clients, have %d", want, h.ClientCount())
		case <-time.After(5 * time.Millisecond):
		}
	}
}

func TestHubBroadcast(t *testing.T) {
	h := NewHub(nil)
	go h.Run()
	defer h.Stop()

	client := newTestClient(h)
	h.register <- client
	waitForClients(t, h, 1)

	h.Broadcast(TypeDatasetsRefreshed, map[string]int{"vehicles": 42})

	select {
	case msg := <-client.send:
		var event Event
		require.NoError(t, json.Unmarshal(msg, &event))
		assert.Equal(t, TypeDatasetsRefreshed, event.Type)
		assert.False(t, event.Timestamp.IsZero())
	case <-time.After(2 * time.Second):
		t.Fatal("no broadcast received")
	}
}

func TestHubUnregister(t *testing.T) {
	h := NewHub(nil)
	go h.Run()
	defer h.Stop()

	client := newTestClient(h)
	h.register <- client
	waitForClients(t, h, 1)

	h.unregister <- client
	waitForClients(t, h, 0)

	// The send channel is closed on unregister.
	_, open := <-client.send
	assert.False(t, open)
}

func TestHubDropsSlowConsumer(t *testing.T) {
	h := NewHub(nil)
	go h.Run()
	defer h.Stop()

	slow := &Client{hub: h, send: make(chan []byte)} // unbuffered, never read
	h.register <- slow
	waitForClients(t, h, 1)

	h.Broadcast(TypeDatasetsRefreshed, nil)
	waitForClients(t, h, 0)
}

func TestHubStopDisconnectsAll(t *testing.T) {
	h := NewHub(nil)
	go h.Run()

	client := newTestClient(h)
	h.register <- client
	waitForClients(t, h, 1)

	h.Stop()
	waitForClients(t, h, 0)
}

func waitForRunning(t *testing.T, h *Hub, want bool) {
	t.Helper()
	deadline := time.After(2 * time.Second)
	for {
		h.mu.RLock()
		running := h.running
		h.mu.RUnlock()
		if running == want {
			return
		}
		select {
		case <-deadline:
			t.Fatalf("hub running = %v, want %v", running, want)
		case <-time.After(5 * time.Millisecond):
		}
	}
}

func dialTestServer(t *testing.T, srv *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	return conn
}

func TestServeWSAfterStop(t *testing.T) {
	h := NewHub(nil)
	go h.Run()
	waitForRunning(t, h, true)
	h.Stop()
	waitForRunning(t, h, false)

	srv := httptest.NewServer(ServeWS(h, nil))
	defer srv.Close()

	// The stopped hub never registers late clients; the handler closes
	// the socket instead of blocking on the register channel.
	conn := dialTestServer(t, srv)
	defer conn.Close()

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, _, err := conn.ReadMessage()
	assert.Error(t, err)
	assert.Equal(t, 0, h.ClientCount())
}

func TestServeWSClientSurvivesStop(t *testing.T) {
	h := NewHub(nil)
	go h.Run()
	waitForRunning(t, h, true)

	srv := httptest.NewServer(ServeWS(h, nil))
	defer srv.Close()

	conn := dialTestServer(t, srv)
	defer conn.Close()
	waitForClients(t, h, 1)

	// Stopping the hub closes the connection; the client's read pump must
	// exit even though nothing drains unregister anymore.
	h.Stop()
	waitForClients(t, h, 0)

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, _, err := conn.ReadMessage()
	assert.Error(t, err)
}
