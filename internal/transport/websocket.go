package transport

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"

	"github.com/junsooki/posecam/internal/log"
)

// Handler callbacks for connection events. All are optional.
type Handler struct {
	OnOpen    func()
	OnMessage func(data []byte) // text messages only
	OnError   func(err error)
	OnClose   func()
}

// Conn is a single long-lived WebSocket connection. It is dialed once and
// never reconnected.
type Conn struct {
	url     string
	handler Handler
	dialer  *websocket.Dialer

	mu      sync.Mutex
	conn    *websocket.Conn
	state   atomic.Int32
	closing atomic.Bool
	once    sync.Once

	sent     atomic.Uint64
	dropped  atomic.Uint64
	rejected atomic.Uint64
}

// NewConn creates a connection to url. Nothing is dialed until Run.
func NewConn(url string, handler Handler) *Conn {
	return &Conn{
		url:     url,
		handler: handler,
		dialer:  websocket.DefaultDialer,
	}
}

// State returns the current connection state.
func (c *Conn) State() State {
	return State(c.state.Load())
}

// Sent returns the number of frames written to the socket.
func (c *Conn) Sent() uint64 {
	return c.sent.Load()
}

// Dropped returns the number of frames discarded because the connection
// was not open.
func (c *Conn) Dropped() uint64 {
	return c.dropped.Load()
}

// Rejected returns the number of inbound binary messages discarded.
func (c *Conn) Rejected() uint64 {
	return c.rejected.Load()
}

// Run dials the server and reads messages until the connection closes or
// ctx is cancelled. Connection failures are logged and reported to the
// handler; Run never retries.
func (c *Conn) Run(ctx context.Context) {
	conn, _, err := c.dialer.DialContext(ctx, c.url, nil)
	if err != nil {
		if ctx.Err() == nil {
			c.fail(fmt.Errorf("dial %s: %w", c.url, err))
		}
		c.finish()
		return
	}

	c.mu.Lock()
	if c.closing.Load() {
		c.mu.Unlock()
		conn.Close()
		c.finish()
		return
	}
	c.conn = conn
	c.state.Store(int32(StateOpen))
	c.mu.Unlock()

	log.Info("websocket connection established", "url", c.url)
	if c.handler.OnOpen != nil {
		c.handler.OnOpen()
	}

	stop := context.AfterFunc(ctx, c.Close)
	defer stop()

	c.readLoop()
}

// SendFrame writes data as one binary message. It returns ErrNotOpen
// without writing when the connection is not open.
func (c *Conn) SendFrame(data []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.State() != StateOpen {
		c.dropped.Add(1)
		return ErrNotOpen
	}
	if err := c.conn.WriteMessage(websocket.BinaryMessage, data); err != nil {
		return fmt.Errorf("send frame: %w", err)
	}
	c.sent.Add(1)
	return nil
}

// Close sends a close frame and shuts the connection down.
func (c *Conn) Close() {
	c.closing.Store(true)

	c.mu.Lock()
	conn := c.conn
	if conn != nil && c.State() == StateOpen {
		msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
		_ = conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(time.Second))
	}
	c.state.Store(int32(StateClosed))
	c.mu.Unlock()

	if conn != nil {
		conn.Close()
	}
}

func (c *Conn) readLoop() {
	defer c.finish()
	for {
		mt, data, err := c.conn.ReadMessage()
		if err != nil {
			c.mu.Lock()
			c.state.Store(int32(StateClosed))
			c.mu.Unlock()

			if !c.closing.Load() && !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				c.fail(fmt.Errorf("read: %w", err))
			}
			c.conn.Close()
			return
		}
		if mt == websocket.BinaryMessage {
			c.rejected.Add(1)
			log.Error("malformed inbound message", "url", c.url, "bytes", len(data), "error", ErrBinaryMessage)
			continue
		}
		if c.handler.OnMessage != nil {
			c.handler.OnMessage(data)
		}
	}
}

func (c *Conn) fail(err error) {
	log.Error("websocket error", "url", c.url, "error", err)
	if c.handler.OnError != nil {
		c.handler.OnError(err)
	}
}

func (c *Conn) finish() {
	c.state.Store(int32(StateClosed))
	c.once.Do(func() {
		log.Info("websocket connection closed", "url", c.url, "sent", c.Sent(), "dropped", c.Dropped(), "rejected", c.Rejected())
		if c.handler.OnClose != nil {
			c.handler.OnClose()
		}
	})
}

// IsNotOpen reports whether err is a drop caused by a connection that is
// not open.
func IsNotOpen(err error) bool {
	return errors.Is(err, ErrNotOpen)
}
