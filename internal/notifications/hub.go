package notifications

import (
	"context"
	"errors"
	"sync"

	"foms/internal/observability"

	"github.com/gofiber/websocket/v2"
)

// maxConns bounds the total number of concurrent event-stream connections.
const maxConns = 4096

// Hub fans request events out to every connected websocket client.
type Hub struct {
	mu    sync.RWMutex
	conns map[*Client]struct{}
}

// NewHub creates a new Hub instance.
func NewHub() *Hub {
	return &Hub{conns: make(map[*Client]struct{})}
}

// Register attaches a new connection and returns its Client.
func (h *Hub) Register(identity string, conn *websocket.Conn) (*Client, error) {
	client := NewClient(h, conn, identity)
	if err := h.registerClient(client); err != nil {
		return nil, err
	}
	return client, nil
}

func (h *Hub) registerClient(client *Client) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if len(h.conns) >= maxConns {
		return errors.New("server connection limit reached")
	}
	h.conns[client] = struct{}{}
	observability.WebSocketConnectionsTotal.Inc()
	return nil
}

// Unregister detaches a connection.
func (h *Hub) Unregister(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.conns[client]; ok {
		delete(h.conns, client)
		close(client.Send)
		observability.WebSocketConnectionsTotal.Dec()
	}
}

// Broadcast sends a payload to every connected client without blocking.
func (h *Hub) Broadcast(message []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for client := range h.conns {
		client.trySend(message)
	}
}

// ConnectionCount returns the number of attached clients.
func (h *Hub) ConnectionCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.conns)
}

// StartWiring subscribes the hub to the notifier's event channel so events
// published by any instance reach clients connected to this one.
func (h *Hub) StartWiring(ctx context.Context, n *Notifier) error {
	return n.StartSubscriber(ctx, func(payload string) {
		h.Broadcast([]byte(payload))
	})
}

// Shutdown closes every client connection.
func (h *Hub) Shutdown(ctx context.Context) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	for client := range h.conns {
		close(client.Send)
		delete(h.conns, client)
		observability.WebSocketConnectionsTotal.Dec()
	}
	return nil
}
