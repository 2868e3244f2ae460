package realtime

import (
	"context"
	"encoding/json"
	"time"
)

// EventOrdersChanged is the only event type the storefront pushes:
// clients re-fetch the order list when they receive it.
const EventOrdersChanged = "orders.changed"

// Event is a message broadcast to connected operator consoles.
type Event struct {
	Type string    `json:"type"`
	At   time.Time `json:"at"`
}

// Hub maintains the set of connected websocket clients and fans
// events out to them.
type Hub struct {
	clients    map[*Client]bool
	register   chan *Client
	unregister chan *Client
	broadcast  chan Event
}

// NewHub creates an empty hub. Run must be started before clients
// connect.
func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan Event, 64),
	}
}

// Run owns the client set. It returns when the context is cancelled.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			for client := range h.clients {
				close(client.send)
				delete(h.clients, client)
			}
			return

		case client := <-h.register:
			h.clients[client] = true

		case client := <-h.unregister:
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
			}

		case event := <-h.broadcast:
			message, err := json.Marshal(event)
			if err != nil {
				continue
			}
			for client := range h.clients {
				select {
				case client.send <- message:
				default:
					// Slow client: drop it rather than stalling
					// everyone else.
					delete(h.clients, client)
					close(client.send)
				}
			}
		}
	}
}

// Broadcast queues an event for every connected client.
func (h *Hub) Broadcast(event Event) {
	select {
	case h.broadcast <- event:
	default:
	}
}

// Relay forwards feed signals into the hub as orders.changed events
// until the context is cancelled.
func Relay(ctx context.Context, feed *Feed, hub *Hub) {
	changes, cancel := feed.Subscribe()
	defer cancel()
	for {
		select {
		case <-ctx.Done():
			return
		case _, ok := <-changes:
			if !ok {
				return
			}
			hub.Broadcast(Event{Type: EventOrdersChanged, At: time.Now().UTC()})
		}
	}
}
