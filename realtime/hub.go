// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package realtime

import (
	"sync"

	"github.com/google/uuid"

	"github.com/danielhkuo/classpulse/models"
)

// eventBuffer is the per-connection outbound queue depth. A subscriber
// that falls this far behind starts losing events; the next broadcast
// carries a full snapshot, so it catches up.
const eventBuffer = 32

// Hub fans coordinator events out to connected clients. It implements
// session.Gateway. Sends never block: events to a lagging subscriber
// are dropped rather than stalling the coordinator.
type Hub struct {
	mu   sync.Mutex
	subs map[string]chan models.Event
}

func NewHub() *Hub {
	return &Hub{subs: make(map[string]chan models.Event)}
}

// Register allocates a connection ID and its event channel.
func (h *Hub) Register() (string, <-chan models.Event) {
	connectionID := uuid.NewString()
	ch := make(chan models.Event, eventBuffer)

	h.mu.Lock()
	h.subs[connectionID] = ch
	h.mu.Unlock()

	return connectionID, ch
}

// Unregister removes a connection and closes its event channel.
// Idempotent.
func (h *Hub) Unregister(connectionID string) {
	h.mu.Lock()
	if ch, ok := h.subs[connectionID]; ok {
		delete(h.subs, connectionID)
		close(ch)
	}
	h.mu.Unlock()
}

// Broadcast delivers an event to every connected client.
func (h *Hub) Broadcast(ev models.Event) {
	h.mu.Lock()
	for _, ch := range h.subs {
		select {
		case ch <- ev:
		default:
		}
	}
	h.mu.Unlock()
}

// SendTo delivers an event to a single connection. Unknown connection
// IDs are ignored.
func (h *Hub) SendTo(connectionID string, ev models.Event) {
	h.mu.Lock()
	if ch, ok := h.subs[connectionID]; ok {
		select {
		case ch <- ev:
		default:
		}
	}
	h.mu.Unlock()
}

// Len reports the number of registered connections.
func (h *Hub) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs)
}
