package ws

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// conn wraps a websocket connection behind the lobby Channel interface.
// Writes are serialized through a mutex; gorilla permits only one
// concurrent writer.
type conn struct {
	id           string
	sock         *websocket.Conn
	writeTimeout time.Duration

	mu        sync.Mutex
	closed    chan struct{}
	closeOnce sync.Once
}

func newConn(id string, sock *websocket.Conn, writeTimeout time.Duration) *conn {
	return &conn{
		id:           id,
		sock:         sock,
		writeTimeout: writeTimeout,
		closed:       make(chan struct{}),
	}
}

func (c *conn) ID() string { return c.id }

// Send writes a named event frame. Failures are returned to the caller,
// which tolerates them; a dead peer is detected by the read loop.
func (c *conn) Send(event string, payload any) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	_ = c.sock.SetWriteDeadline(time.Now().Add(c.writeTimeout))
	return c.sock.WriteJSON(envelope{Type: event, Payload: payload})
}

// Close shuts the socket down. Safe to call multiple times.
func (c *conn) Close() error {
	c.closeOnce.Do(func() { close(c.closed) })
	return c.sock.Close()
}

// Done is closed once the connection is shut down.
func (c *conn) Done() <-chan struct{} { return c.closed }
