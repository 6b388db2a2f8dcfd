// Package hub fans overlay state out to remote mirror clients over
// WebSocket.
package hub

import (
	"context"
	"log/slog"
	"sync"
)

// Hub manages WebSocket clients and broadcasts messages.
type Hub struct {
	clients map[*Client]bool
	mu      sync.RWMutex
	done    chan struct{}
	closed  bool
	logger  *slog.Logger
}

func NewHub(logger *slog.Logger) *Hub {
	if logger == nil {
		logger = slog.Default()
	}
	return &Hub{
		clients: make(map[*Client]bool),
		done:    make(chan struct{}),
		logger:  logger,
	}
}

// Register adds a new client to the hub. It returns false once the hub
// has stopped.
func (h *Hub) Register(c *Client) bool {
	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		return false
	}
	h.clients[c] = true
	n := len(h.clients)
	h.mu.Unlock()

	h.logger.Info("Mirror client connected", "total", n)
	return true
}

// Unregister removes a client from the hub and closes its send queue.
// Unknown clients are ignored.
func (h *Hub) Unregister(c *Client) {
	h.mu.Lock()
	if _, ok := h.clients[c]; !ok {
		h.mu.Unlock()
		return
	}
	delete(h.clients, c)
	close(c.send)
	n := len(h.clients)
	h.mu.Unlock()

	h.logger.Info("Mirror client disconnected", "total", n)
}

// Count returns the number of connected clients.
func (h *Hub) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Done is closed once Run has returned.
func (h *Hub) Done() <-chan struct{} {
	return h.done
}

// Broadcast sends msg to every client. Clients whose send buffer is full
// are dropped.
func (h *Hub) Broadcast(msg []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for client := range h.clients {
		if !client.trySend(msg) {
			go h.Unregister(client)
		}
	}
}

// SendTo queues msg for a single registered client and reports whether it
// was queued.
func (h *Hub) SendTo(c *Client, msg []byte) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if !h.clients[c] {
		return false
	}
	return c.trySend(msg)
}

// Run waits until ctx is done, then closes every remaining client and
// refuses new ones.
func (h *Hub) Run(ctx context.Context) {
	<-ctx.Done()

	h.mu.Lock()
	h.closed = true
	for client := range h.clients {
		delete(h.clients, client)
		close(client.send)
	}
	h.mu.Unlock()
	close(h.done)
}
