package websocket

import (
	"encoding/json"
	"log"
	"sync"
	"time"
)

// Event is one catalog change notification pushed to connected admin UIs
type Event struct {
	Type      string      `json:"type"` // vehicle_created, vehicle_updated, vehicle_deleted, import_completed
	Scope     string      `json:"scope,omitempty"`
	Payload   interface{} `json:"payload,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
}

// Hub maintains the set of connected admin clients and fans catalog events
// out to all of them.
type Hub struct {
	clients    map[*Client]bool
	register   chan *Client
	unregister chan *Client
	broadcast  chan []byte

	mu sync.RWMutex
}

// NewHub creates a new Hub instance
func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan []byte, 64),
	}
}

// Run starts the hub's main loop
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			h.mu.Unlock()
			log.Printf("🔌 Admin client connected: %s", client.ID)

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
				log.Printf("🔌 Admin client disconnected: %s", client.ID)
			}
			h.mu.Unlock()

		case message := <-h.broadcast:
			h.mu.RLock()
			for client := range h.clients {
				select {
				case client.send <- message:
				default:
					// Slow consumer; drop the event rather than block the hub
				}
			}
			h.mu.RUnlock()
		}
	}
}

// BroadcastEvent serializes a catalog event and queues it for all clients
func (h *Hub) BroadcastEvent(eventType, scope string, payload interface{}) {
	msg, err := json.Marshal(Event{
		Type:      eventType,
		Scope:     scope,
		Payload:   payload,
		Timestamp: time.Now().UTC(),
	})
	if err != nil {
		log.Printf("Error marshaling event: %v", err)
		return
	}

	select {
	case h.broadcast <- msg:
	default:
		log.Printf("⚠️  Event queue full, dropping %s event", eventType)
	}
}
