// Package services provides business logic services
package services

import (
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/nats-io/nats.go"
)

// CatalogEvent is the envelope published on every catalog mutation, e.g.
// {"type":"courses.created","at":...,"data":{...}}.
type CatalogEvent struct {
	Type string          `json:"type"`
	At   time.Time       `json:"at"`
	Data json.RawMessage `json:"data,omitempty"`
}

// EventHub relays catalog events from NATS to connected WebSocket clients.
type EventHub struct {
	natsConn *nats.Conn

	clients   map[*EventClient]bool
	clientsMu sync.RWMutex

	register   chan *EventClient
	unregister chan *EventClient

	sub       *nats.Subscription
	published uint64
	publishMu sync.Mutex
}

// NewEventHub creates a new event hub
func NewEventHub(natsConn *nats.Conn) *EventHub {
	return &EventHub{
		natsConn:   natsConn,
		clients:    make(map[*EventClient]bool),
		register:   make(chan *EventClient),
		unregister: make(chan *EventClient),
	}
}

// Run starts the hub's main loop. It subscribes once to the whole catalog
// subject space and fans incoming events out to every connected client.
func (h *EventHub) Run() {
	sub, err := h.natsConn.Subscribe("catalog.>", func(msg *nats.Msg) {
		h.broadcast(msg.Data)
	})
	if err != nil {
		log.Printf("⚠️ Failed to subscribe to catalog events: %v", err)
		return
	}
	h.sub = sub
	log.Println("📺 Catalog event hub started")

	for {
		select {
		case client := <-h.register:
			h.clientsMu.Lock()
			h.clients[client] = true
			h.clientsMu.Unlock()
			log.Printf("📺 Event client connected: %s", client.remoteAddr)

		case client := <-h.unregister:
			h.clientsMu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
			}
			h.clientsMu.Unlock()
			log.Printf("📺 Event client disconnected: %s", client.remoteAddr)
		}
	}
}

// Register adds a client to the hub
func (h *EventHub) Register(client *EventClient) {
	h.register <- client
}

// Publish emits a catalog event, e.g. Publish("courses", "created", item).
// Failures are logged, never propagated: the mutation already committed and
// the event stream is best-effort.
func (h *EventHub) Publish(resource, action string, data any) {
	payload, err := json.Marshal(data)
	if err != nil {
		log.Printf("⚠️ Failed to encode %s.%s event: %v", resource, action, err)
		return
	}

	event := CatalogEvent{
		Type: fmt.Sprintf("%s.%s", resource, action),
		At:   time.Now().UTC(),
		Data: payload,
	}
	body, _ := json.Marshal(event)

	subject := fmt.Sprintf("catalog.%s.%s", resource, action)
	if err := h.natsConn.Publish(subject, body); err != nil {
		log.Printf("⚠️ Failed to publish %s: %v", subject, err)
		return
	}

	h.publishMu.Lock()
	h.published++
	h.publishMu.Unlock()
}

// broadcast sends an event to all connected clients, skipping slow ones.
func (h *EventHub) broadcast(data []byte) {
	h.clientsMu.RLock()
	defer h.clientsMu.RUnlock()

	for client := range h.clients {
		select {
		case client.send <- data:
		default:
			// Client buffer full, skip event
		}
	}
}

// HubStats holds hub statistics
type HubStats struct {
	Clients   int    `json:"clients"`
	Published uint64 `json:"published"`
}

func (h *EventHub) Stats() HubStats {
	h.clientsMu.RLock()
	clientCount := len(h.clients)
	h.clientsMu.RUnlock()

	h.publishMu.Lock()
	published := h.published
	h.publishMu.Unlock()

	return HubStats{
		Clients:   clientCount,
		Published: published,
	}
}
