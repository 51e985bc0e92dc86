package network

import (
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	// Time allowed to complete a write to the console.
	writeWait = 10 * time.Second

	// Time allowed between pongs before the connection counts as dead.
	pongWait = 60 * time.Second

	// Ping frequency. Must be below pongWait.
	pingPeriod = (pongWait * 9) / 10
)

// Client is one connected operator console from the server's point of
// view: the websocket connection plus its outbound queue.
type Client struct {
	conn *websocket.Conn
	hub  *Hub

	// Buffered so the hub never blocks on a slow console.
	send chan Message

	logger *zap.Logger
}

// Send returns the client's outbound queue.
func (c *Client) Send() chan<- Message {
	return c.send
}

// RemoteAddr returns the console's remote address for logging.
func (c *Client) RemoteAddr() string {
	return c.conn.RemoteAddr().String()
}

func (c *Client) readLoop() {
	defer func() {
		c.hub.unregister <- c
		c.conn.Close()
	}()

	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		var msg Message
		if err := c.conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.logger.Warn("console read failed", zap.String("remote", c.RemoteAddr()), zap.Error(err))
			}
			break
		}
		c.hub.incoming <- clientMessage{client: c, msg: msg}
	}
}

// writeLoop pumps the send queue onto the connection and keeps the
// console alive with periodic pings.
func (c *Client) writeLoop() {
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
				// The hub unregistered us.
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteJSON(msg); err != nil {
				c.logger.Warn("console write failed", zap.String("remote", c.RemoteAddr()), zap.Error(err))
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
