package events

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
)

// dialTestConn spins up a throwaway websocket server and returns the
// server side of one upgraded connection plus its client peer.
func dialTestConn(t *testing.T) (*websocket.Conn, *websocket.Conn, func()) {
	t.Helper()

	upgrader := websocket.Upgrader{}
	accepted := make(chan *websocket.Conn, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		accepted <- conn
	}))

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	client, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		srv.Close()
		t.Fatalf("failed to dial test server: %v", err)
	}

	server := <-accepted
	cleanup := func() {
		client.Close()
		server.Close()
		srv.Close()
	}
	return server, client, cleanup
}

func clientCount() int {
	hub.mutex.Lock()
	defer hub.mutex.Unlock()
	return len(hub.clients)
}

func TestBroadcastReachesRegisteredClient(t *testing.T) {
	server, client, cleanup := dialTestConn(t)
	defer cleanup()

	RegisterClient(server, "host")
	defer UnregisterClient(server)

	BroadcastMessage(Message{Event: EventDashboardUpdate, Data: "stats"})

	_, raw, err := client.ReadMessage()
	assert.NoError(t, err)

	var msg Message
	assert.NoError(t, json.Unmarshal(raw, &msg))
	assert.Equal(t, EventDashboardUpdate, msg.Event)
	assert.Equal(t, "stats", msg.Data)
}

func TestBroadcastDropsDeadClients(t *testing.T) {
	server, _, cleanup := dialTestConn(t)
	defer cleanup()

	RegisterClient(server, "host")
	assert.Equal(t, 1, clientCount())

	// Kill the connection out from under the hub; the next broadcast's
	// failed write must evict it rather than leave it registered.
	server.Close()
	BroadcastMessage(Message{Event: EventDashboardUpdate, Data: "stats"})

	assert.Equal(t, 0, clientCount())
}
