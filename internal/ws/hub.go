// Package ws pushes screening lifecycle events to connected dashboards.
// The hub is write-only from the server's point of view; clients never send
// anything meaningful upstream.
package ws

import (
	"sync/atomic"

	"go.uber.org/zap"
)

// Hub fans broadcast messages out to every connected client. The client set
// lives inside Run's goroutine, so membership changes never need a lock;
// only the connection count is shared, through an atomic.
type Hub struct {
	register   chan *Client
	unregister chan *Client
	broadcast  chan []byte
	count      atomic.Int64
	logger     *zap.Logger
}

func NewHub(logger *zap.Logger) *Hub {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Hub{
		register:   make(chan *Client, 128),
		unregister: make(chan *Client, 128),
		broadcast:  make(chan []byte, 1024),
		logger:     logger,
	}
}

// Run owns the client set. It must be started exactly once, before the
// first Register.
func (h *Hub) Run() {
	clients := make(map[*Client]struct{})
	for {
		select {
		case c := <-h.register:
			if c == nil {
				continue
			}
			clients[c] = struct{}{}
			h.count.Store(int64(len(clients)))
			h.logger.Debug("ws client connected", zap.Int("total_clients", len(clients)))

		case c := <-h.unregister:
			if c != nil {
				h.drop(clients, c)
			}

		case msg := <-h.broadcast:
			for c := range clients {
				select {
				case c.send <- msg:
				default:
					// A client that cannot keep up is evicted rather than
					// letting its backlog stall the loop.
					h.drop(clients, c)
				}
			}
		}
	}
}

// drop removes a client and closes its send channel, which shuts down its
// WritePump. Safe to call for a client that was already dropped.
func (h *Hub) drop(clients map[*Client]struct{}, c *Client) {
	if _, ok := clients[c]; !ok {
		return
	}
	delete(clients, c)
	close(c.send)
	h.count.Store(int64(len(clients)))
	h.logger.Debug("ws client disconnected", zap.Int("total_clients", len(clients)))
}

func (h *Hub) Register(c *Client) {
	if h == nil {
		return
	}
	h.register <- c
}

func (h *Hub) Unregister(c *Client) {
	if h == nil {
		return
	}
	h.unregister <- c
}

// Broadcast never blocks; if the hub's buffer is full the message is lost.
// Dashboards resync on the next event, so losing one under pressure is fine.
func (h *Hub) Broadcast(message []byte) {
	if h == nil {
		return
	}
	select {
	case h.broadcast <- message:
	default:
		h.logger.Warn("ws broadcast dropped", zap.String("reason", "buffer_full"))
	}
}

func (h *Hub) ClientCount() int {
	if h == nil {
		return 0
	}
	return int(h.count.Load())
}
