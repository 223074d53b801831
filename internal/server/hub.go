package server

import (
	"context"

	"github.com/bytedance/sonic"

	"github.com/ai-stock-trading/dashboard/internal/dashboard"
	"github.com/ai-stock-trading/dashboard/internal/logger"
)

// Hub fans each dashboard snapshot out to every connected websocket
// viewer. A client that can't keep up is pruned rather than allowed to
// block the loop.
type Hub struct {
	logger logger.Logger

	clients    map[*wsClient]struct{}
	broadcast  chan []byte
	register   chan *wsClient
	unregister chan *wsClient

	// closed when Run returns; register/unregister select on it so no
	// handler can block once the loop is gone
	done chan struct{}

	latest []byte
}

func NewHub(logger logger.Logger) *Hub {
	return &Hub{
		logger:     logger,
		clients:    make(map[*wsClient]struct{}),
		broadcast:  make(chan []byte, 256),
		register:   make(chan *wsClient),
		unregister: make(chan *wsClient),
		done:       make(chan struct{}),
	}
}

// Broadcast queues a snapshot for delivery. Called from the poller's
// update hook; when the queue is full the snapshot is dropped, a newer
// one is always on the way.
func (h *Hub) Broadcast(snap dashboard.Snapshot) {
	payload, err := sonic.Marshal(snap)
	if err != nil {
		h.logger.Errorf("%s: can't marshal snapshot", err)
		return
	}
	select {
	case h.broadcast <- payload:
	default:
	}
}

func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	for {
		select {
		case <-ctx.Done():
			for client := range h.clients {
				delete(h.clients, client)
				close(client.send)
			}
			return

		case client := <-h.register:
			h.clients[client] = struct{}{}
			if h.latest != nil {
				client.send <- h.latest
			}

		case client := <-h.unregister:
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
			}

		case payload := <-h.broadcast:
			h.latest = payload
			for client := range h.clients {
				select {
				case client.send <- payload:
				default:
					// Slow consumer, drop it so the hub never blocks.
					delete(h.clients, client)
					close(client.send)
				}
			}
		}
	}
}
