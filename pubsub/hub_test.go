package pubsub

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJoinLeaveRemove(t *testing.T) {
	hub := NewHub()
	a := &websocket.Conn{}
	b := &websocket.Conn{}

	hub.Join("user-1", a)
	hub.Join("user-1", b)
	hub.Join("restaurant-1", a)

	assert.Len(t, hub.channels["user-1"], 2)
	assert.Len(t, hub.channels["restaurant-1"], 1)
	assert.Len(t, hub.clients[a], 2)

	hub.Leave("user-1", a)
	assert.Len(t, hub.channels["user-1"], 1)
	assert.Len(t, hub.clients[a], 1)

	hub.Remove(a)
	assert.NotContains(t, hub.channels, "restaurant-1")
	// assert.NotContains compares map keys with reflect.DeepEqual, which
	// conflates distinct pointers to zero-valued Conns; check key identity.
	_, stillTracked := hub.clients[a]
	assert.False(t, stillTracked)

	hub.Remove(b)
	assert.Empty(t, hub.channels)
	assert.Empty(t, hub.clients)
}

func TestPublishToEmptyChannel(t *testing.T) {
	hub := NewHub()
	assert.NoError(t, hub.Publish("nobody-home", "orderUpdated", "payload"))
}

func TestPublishUnmarshalablePayload(t *testing.T) {
	hub := NewHub()
	assert.Error(t, hub.Publish("user-1", "orderUpdated", func() {}))
}

func TestPublishDeliversToJoinedClient(t *testing.T) {
	hub := NewHub()
	upgrader := websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool { return true },
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		hub.Join("user-1", conn)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				hub.Remove(conn)
				return
			}
		}
	}))
	defer server.Close()

	url := "ws" + strings.TrimPrefix(server.URL, "http")
	client, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer client.Close()

	require.Eventually(t, func() bool {
		hub.mu.Lock()
		defer hub.mu.Unlock()
		return len(hub.channels["user-1"]) == 1
	}, time.Second, 10*time.Millisecond)

	require.NoError(t, hub.Publish("user-1", "orderUpdated", map[string]string{"order_id": "o1"}))

	client.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, raw, err := client.ReadMessage()
	require.NoError(t, err)

	var message Message
	require.NoError(t, json.Unmarshal(raw, &message))
	assert.Equal(t, "orderUpdated", message.Event)
	assert.NotEmpty(t, message.Event_id)
	assert.Equal(t, map[string]interface{}{"order_id": "o1"}, message.Payload)

	// events for other channels must not reach this client
	require.NoError(t, hub.Publish("user-2", "orderUpdated", map[string]string{"order_id": "o2"}))
	require.NoError(t, hub.Publish("user-1", "orderUpdated", map[string]string{"order_id": "o3"}))

	_, raw, err = client.ReadMessage()
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(raw, &message))
	assert.Equal(t, map[string]interface{}{"order_id": "o3"}, message.Payload)
}
