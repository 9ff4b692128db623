package pubsub

import (
	"encoding/json"
	"log"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// Message is the envelope sent to connected clients. Event_id lets a client
// that is joined to several channels drop duplicate deliveries of the same
// event.
type Message struct {
	Event_id string      `json:"event_id"`
	Event    string      `json:"event"`
	Payload  interface{} `json:"payload"`
}

// Hub tracks websocket connections and the channels they joined. Channels are
// plain string identifiers (user id, restaurant id, partner id); a client
// joins its own channel right after connecting, before any event can reach it.
type Hub struct {
	mu       sync.Mutex
	channels map[string]map[*websocket.Conn]bool
	clients  map[*websocket.Conn]map[string]bool
}

func NewHub() *Hub {
	return &Hub{
		channels: make(map[string]map[*websocket.Conn]bool),
		clients:  make(map[*websocket.Conn]map[string]bool),
	}
}

func (h *Hub) Join(channel string, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.channels[channel] == nil {
		h.channels[channel] = make(map[*websocket.Conn]bool)
	}
	h.channels[channel][conn] = true

	if h.clients[conn] == nil {
		h.clients[conn] = make(map[string]bool)
	}
	h.clients[conn][channel] = true
}

func (h *Hub) Leave(channel string, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	delete(h.channels[channel], conn)
	if len(h.channels[channel]) == 0 {
		delete(h.channels, channel)
	}
	delete(h.clients[conn], channel)
}

// Remove drops a disconnected client from every channel it joined.
func (h *Hub) Remove(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for channel := range h.clients[conn] {
		delete(h.channels[channel], conn)
		if len(h.channels[channel]) == 0 {
			delete(h.channels, channel)
		}
	}
	delete(h.clients, conn)
}

// Publish sends event to every client joined to channel. Delivery is
// best-effort: a client whose write fails is closed and dropped, and no
// error is returned for it.
func (h *Hub) Publish(channel string, event string, payload interface{}) error {
	message, err := json.Marshal(Message{
		Event_id: uuid.NewString(),
		Event:    event,
		Payload:  payload,
	})
	if err != nil {
		return err
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	for conn := range h.channels[channel] {
		h.write(conn, message)
	}
	return nil
}

// Broadcast sends event to every connected client regardless of channel.
func (h *Hub) Broadcast(event string, payload interface{}) error {
	message, err := json.Marshal(Message{
		Event_id: uuid.NewString(),
		Event:    event,
		Payload:  payload,
	})
	if err != nil {
		return err
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	for conn := range h.clients {
		h.write(conn, message)
	}
	return nil
}

// write must be called with h.mu held.
func (h *Hub) write(conn *websocket.Conn, message []byte) {
	if err := conn.WriteMessage(websocket.TextMessage, message); err != nil {
		log.Println("Error writing message:", err)
		conn.Close()
		for channel := range h.clients[conn] {
			delete(h.channels[channel], conn)
			if len(h.channels[channel]) == 0 {
				delete(h.channels, channel)
			}
		}
		delete(h.clients, conn)
	}
}
