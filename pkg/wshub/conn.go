package wshub

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/roamhub/booking-ref-system/pkg/uuid"
)

const writeWait = 5 * time.Second

// Conn wraps a websocket connection with an identity and a write lock.
// gorilla/websocket allows at most one concurrent writer per connection.
type Conn struct {
	id uuid.UUID
	ws *websocket.Conn

	mu     sync.Mutex
	closed bool
}

func NewConn(id uuid.UUID, ws *websocket.Conn) *Conn {
	return &Conn{id: id, ws: ws}
}

func (c *Conn) ID() uuid.UUID {
	return c.id
}

// WriteJSON sends v as a JSON text message with a write deadline.
func (c *Conn) WriteJSON(v any) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return websocket.ErrCloseSent
	}

	c.ws.SetWriteDeadline(time.Now().Add(writeWait))
	return c.ws.WriteJSON(v)
}

// Close closes the underlying connection once; repeated calls are no-ops.
func (c *Conn) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil
	}
	c.closed = true
	return c.ws.Close()
}
