package wshub

import (
	"context"
	"errors"
	"sync"

	"github.com/roamhub/booking-ref-system/pkg/logger"
	wrap "github.com/roamhub/booking-ref-system/pkg/logger/wrapper"
	"github.com/roamhub/booking-ref-system/pkg/uuid"
)

var (
	ErrEmptyConn      = errors.New("connection is empty")
	ErrConnIsNotFound = errors.New("connection not found")
)

// Hub keeps the set of active feed connections and fans messages out to all
// of them. Slow or broken clients are dropped, never waited on.
type Hub struct {
	clients map[uuid.UUID]*Conn
	l       logger.Logger
	mu      sync.Mutex
}

func NewHub(l logger.Logger) *Hub {
	return &Hub{
		clients: make(map[uuid.UUID]*Conn),
		l:       l,
	}
}

// Add registers a new connection. An existing connection with the same ID is
// closed and replaced.
func (h *Hub) Add(newConn *Conn) error {
	if newConn == nil {
		return ErrEmptyConn
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	ctx := wrap.WithAction(context.Background(), "add_ws_connection")

	if existing, ok := h.clients[newConn.ID()]; ok {
		h.l.Warn(ctx, "replacing existing connection", "conn_id", existing.ID())
		if err := existing.Close(); err != nil {
			h.l.Warn(ctx, "failed to close existing conn", "conn_id", existing.ID(), "err", err.Error())
		}
	}

	h.clients[newConn.ID()] = newConn

	return nil
}

// Delete removes and closes the connection with the given ID.
func (h *Hub) Delete(id uuid.UUID) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	conn, ok := h.clients[id]
	if !ok {
		return ErrConnIsNotFound
	}

	delete(h.clients, id)
	return conn.Close()
}

// Len returns the number of active connections.
func (h *Hub) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// Broadcast sends v to every connection. Connections that fail to accept the
// write are removed from the hub.
func (h *Hub) Broadcast(v any) {
	h.mu.Lock()
	conns := make([]*Conn, 0, len(h.clients))
	for _, c := range h.clients {
		conns = append(conns, c)
	}
	h.mu.Unlock()

	ctx := wrap.WithAction(context.Background(), "ws_broadcast")

	for _, c := range conns {
		if err := c.WriteJSON(v); err != nil {
			h.l.Debug(ctx, "dropping feed connection", "conn_id", c.ID(), "err", err.Error())
			_ = h.Delete(c.ID())
		}
	}
}

// CloseAll closes every connection, used on shutdown.
func (h *Hub) CloseAll() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for id, c := range h.clients {
		_ = c.Close()
		delete(h.clients, id)
	}
}
