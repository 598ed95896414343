// Package monitor forwards engine events to live observers:
// a WebSocket hub for dashboards and a JSON snapshot of the
// whole training run.
package monitor

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"digital.vasic.trainer/pkg/broadcast"
	"digital.vasic.trainer/pkg/logging"
)

const (
	clientSendBuffer = 32
	writeWait        = 10 * time.Second
)

// client is one connected WebSocket observer.
type client struct {
	conn *websocket.Conn
	send chan []byte
}

// Hub fans engine events out to connected WebSocket clients.
// A client that cannot keep up is disconnected rather than
// allowed to stall the others.
type Hub struct {
	upgrader websocket.Upgrader
	logger   logging.Logger

	mu      sync.Mutex
	clients map[*client]struct{}
}

// NewHub creates a hub. The upgrader accepts any origin; the
// admin surface carrying the /ws endpoint is expected to sit
// behind the deployment's own access controls.
func NewHub(logger logging.Logger) *Hub {
	if logger == nil {
		logger = logging.NewNullLogger()
	}
	return &Hub{
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(*http.Request) bool {
				return true
			},
		},
		logger:  logger,
		clients: make(map[*client]struct{}),
	}
}

// Run consumes the subscription and broadcasts each event to
// all connected clients until the context is cancelled or the
// subscription closes. All clients are disconnected on return.
func (h *Hub) Run(
	ctx context.Context, sub *broadcast.Subscription,
) {
	defer h.closeAll()
	defer sub.Close()

	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-sub.Events():
			if !ok {
				return
			}
			data, err := json.Marshal(ev)
			if err != nil {
				h.logger.Warn("failed to marshal event",
					logging.ErrorField(err),
				)
				continue
			}
			h.broadcast(data)
		}
	}
}

// HandleWS upgrades the request and registers the connection
// as an observer.
func (h *Hub) HandleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed",
			logging.ErrorField(err),
		)
		return
	}

	c := &client{
		conn: conn,
		send: make(chan []byte, clientSendBuffer),
	}

	h.mu.Lock()
	h.clients[c] = struct{}{}
	h.mu.Unlock()

	go h.writePump(c)
	go h.readPump(c)
}

// ClientCount returns the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// broadcast queues data for every client, dropping clients
// whose send buffers are full. Sends happen under the hub
// lock, so a dropped client's channel is never written after
// it closes.
func (h *Hub) broadcast(data []byte) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for c := range h.clients {
		select {
		case c.send <- data:
		default:
			delete(h.clients, c)
			close(c.send)
		}
	}
}

// drop unregisters a client and closes its send channel once.
func (h *Hub) drop(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, exists := h.clients[c]; exists {
		delete(h.clients, c)
		close(c.send)
	}
}

// closeAll disconnects every client.
func (h *Hub) closeAll() {
	h.mu.Lock()
	clients := make([]*client, 0, len(h.clients))
	for c := range h.clients {
		clients = append(clients, c)
		delete(h.clients, c)
	}
	h.mu.Unlock()

	for _, c := range clients {
		close(c.send)
	}
}

// writePump writes queued events to the connection until the
// send channel closes, then sends a close frame.
func (h *Hub) writePump(c *client) {
	defer c.conn.Close()

	for data := range c.send {
		c.conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := c.conn.WriteMessage(
			websocket.TextMessage, data,
		); err != nil {
			h.drop(c)
			// Drain remaining sends so broadcast never
			// observes a closed channel it still holds.
			for range c.send {
			}
			return
		}
	}

	c.conn.SetWriteDeadline(time.Now().Add(writeWait))
	c.conn.WriteMessage(
		websocket.CloseMessage,
		websocket.FormatCloseMessage(
			websocket.CloseNormalClosure, "",
		),
	)
}

// readPump discards inbound messages; its job is to process
// control frames and detect disconnects.
func (h *Hub) readPump(c *client) {
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			h.drop(c)
			return
		}
	}
}
