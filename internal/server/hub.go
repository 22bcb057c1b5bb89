package server

import "sync"

// Hub fans server messages out to connected clients.
type Hub struct {
	mu          sync.RWMutex
	subscribers map[string]chan ServerMessage
}

// NewHub creates an empty hub.
func NewHub() *Hub {
	return &Hub{subscribers: make(map[string]chan ServerMessage)}
}

// Register creates the outbound channel for client id, replacing any
// previous one.
func (h *Hub) Register(id string) chan ServerMessage {
	h.mu.Lock()
	defer h.mu.Unlock()

	if old, ok := h.subscribers[id]; ok {
		close(old)
	}
	ch := make(chan ServerMessage, 64)
	h.subscribers[id] = ch
	return ch
}

// Unregister closes and forgets client id.
func (h *Hub) Unregister(id string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if ch, ok := h.subscribers[id]; ok {
		close(ch)
		delete(h.subscribers, id)
	}
}

// SendTo queues msg for one client. Full queues drop the message.
func (h *Hub) SendTo(id string, msg ServerMessage) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if ch, ok := h.subscribers[id]; ok {
		select {
		case ch <- msg:
		default:
		}
	}
}

// Broadcast queues msg for every client. Slow clients miss frames.
func (h *Hub) Broadcast(msg ServerMessage) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, ch := range h.subscribers {
		select {
		case ch <- msg:
		default:
		}
	}
}

// Count returns the number of connected clients.
func (h *Hub) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subscribers)
}
