package ws

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"groupchat/domain"
	"groupchat/errors"
	"groupchat/runtime"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4096
)

// Client owns one websocket connection: a read pump feeding inbound
// frames to the session, and a write pump draining the outbound
// buffer. It is the transport-side implementation of the send
// capability the session holds.
type Client struct {
	conn    *websocket.Conn
	session *runtime.Session
	log     *slog.Logger

	mu     sync.Mutex
	send   chan domain.Message
	closed bool
}

func NewClient(log *slog.Logger, conn *websocket.Conn, sendBufferSize int) *Client {
	return &Client{
		conn: conn,
		send: make(chan domain.Message, sendBufferSize),
		log:  log,
	}
}

// Send queues msg for the write pump without blocking. A full buffer
// means this client is not keeping up; the frame is dropped and the
// error reported to the caller, which swallows it.
//
// A room broadcast delivers to a membership snapshot outside the room
// lock, so Send can race the connection shutting down. The mutex keeps
// the closed check and the channel send atomic against close: a late
// delivery gets an error back, never a send on a closed channel.
func (c *Client) Send(msg domain.Message) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return fmt.Errorf("%w: connection closed", errors.ErrDeliveryFailed)
	}
	select {
	case c.send <- msg:
		return nil
	default:
		return fmt.Errorf("%w: send buffer full", errors.ErrDeliveryFailed)
	}
}

// Serve runs both pumps for session and blocks until the connection
// ends. The session's close handler runs exactly once, whatever killed
// the connection.
func (c *Client) Serve(ctx context.Context, session *runtime.Session) {
	c.session = session
	go c.writePump()
	c.readPump(ctx)
}

func (c *Client) readPump(ctx context.Context) {
	defer func() {
		c.session.HandleClose()
		c.close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.log.Debug("read failed", "error", err)
			}
			return
		}
		if err := c.session.HandleMessage(ctx, raw); err != nil {
			// The frame was bad or out of order; tell the client and
			// keep the connection alive.
			c.log.Warn("rejected inbound frame", "error", err)
			_ = c.Send(domain.Note(err.Error()))
		}
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteJSON(msg); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (c *Client) close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	close(c.send)
}
