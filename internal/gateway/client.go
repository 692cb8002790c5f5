package gateway

import (
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	sendBufferSize = 32
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// The HTTP layer handles cross-origin policy; the gateway only
	// streams public battle state.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Client is one websocket subscriber pinned to a single channel.
type Client struct {
	hub     *Hub
	conn    *websocket.Conn
	channel string

	// mu serializes every send on and the close of the send channel;
	// closed marks the channel unusable before it is closed.
	mu     sync.Mutex
	closed bool
	send   chan []byte
}

// Serve upgrades the HTTP request and pumps events for the channel until
// the peer disconnects.
func (h *Hub) Serve(w http.ResponseWriter, r *http.Request, channel string) error {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return err
	}
	c := &Client{
		hub:     h,
		conn:    conn,
		channel: channel,
		send:    make(chan []byte, sendBufferSize),
	}
	h.subscribe(c)
	go c.writePump()
	go c.readPump()
	return nil
}

// trySend queues one message without blocking. It reports false when the
// client is closed or its buffer is full, in which case the caller drops
// the client.
func (c *Client) trySend(msg []byte) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return false
	}
	select {
	case c.send <- msg:
		return true
	default:
		return false
	}
}

func (c *Client) close() {
	c.mu.Lock()
	if !c.closed {
		c.closed = true
		close(c.send)
	}
	c.mu.Unlock()
}

// readPump discards inbound frames; its job is detecting disconnects and
// answering pings.
func (c *Client) readPump() {
	defer func() {
		c.hub.unsubscribe(c)
		c.close()
		c.conn.Close()
	}()
	c.conn.SetReadLimit(512)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()
	for {
		select {
		case msg, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
