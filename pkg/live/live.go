// Package live pushes storefront state to connected browsers over WebSocket.
package live

import (
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"
)

const writeWait = 5 * time.Second

type client struct {
	mu   sync.Mutex
	conn *websocket.Conn
}

func (c *client) send(v any) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return c.conn.WriteJSON(v)
}

// Hub tracks live connections per visitor.
type Hub struct {
	mu       sync.RWMutex
	clients  map[string]map[*client]struct{}
	upgrader websocket.Upgrader
	gauge    prometheus.Gauge
}

// NewHub creates a hub. gauge may be nil.
func NewHub(gauge prometheus.Gauge) *Hub {
	return &Hub{
		clients: make(map[string]map[*client]struct{}),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		gauge: gauge,
	}
}

// Serve upgrades the request, sends initial and then relays every Publish
// for visitorID until the browser disconnects.
func (h *Hub) Serve(w http.ResponseWriter, r *http.Request, visitorID string, initial any) error {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return err
	}
	c := &client{conn: conn}
	defer conn.Close()

	if err := c.send(initial); err != nil {
		return err
	}
	h.add(visitorID, c)
	defer h.remove(visitorID, c)

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				return err
			}
			return nil
		}
	}
}

// Publish sends v to every connection of visitorID.
func (h *Hub) Publish(visitorID string, v any) {
	h.mu.RLock()
	targets := make([]*client, 0, len(h.clients[visitorID]))
	for c := range h.clients[visitorID] {
		targets = append(targets, c)
	}
	h.mu.RUnlock()

	for _, c := range targets {
		if err := c.send(v); err != nil {
			c.conn.Close()
		}
	}
}

// Connections returns the number of open connections for visitorID.
func (h *Hub) Connections(visitorID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[visitorID])
}

func (h *Hub) add(id string, c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.clients[id] == nil {
		h.clients[id] = make(map[*client]struct{})
	}
	h.clients[id][c] = struct{}{}
	if h.gauge != nil {
		h.gauge.Inc()
	}
}

func (h *Hub) remove(id string, c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[id][c]; !ok {
		return
	}
	delete(h.clients[id], c)
	if len(h.clients[id]) == 0 {
		delete(h.clients, id)
	}
	if h.gauge != nil {
		h.gauge.Dec()
	}
}
