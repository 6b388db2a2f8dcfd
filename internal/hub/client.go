package hub

import (
	"encoding/json"
	"time"

	"github.com/gorilla/websocket"
)

const (
	sendBuffer = 256
	writeWait  = 5 * time.Second
)

// Client represents a connected WebSocket client.
type Client struct {
	hub  *Hub
	conn *websocket.Conn
	send chan []byte
}

// NewClient creates a new Client attached to the hub.
func NewClient(hub *Hub, conn *websocket.Conn) *Client {
	return &Client{
		hub:  hub,
		conn: conn,
		send: make(chan []byte, sendBuffer),
	}
}

// trySend queues msg without blocking and reports whether it fit. The
// hub's lock must be held so send cannot be closed underneath it.
func (c *Client) trySend(msg []byte) bool {
	select {
	case c.send <- msg:
		return true
	default:
		return false
	}
}

// WritePump sends messages from the send channel to the WebSocket connection.
func (c *Client) WritePump() {
	defer c.conn.Close()

	for msg := range c.send {
		c.conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			break
		}
	}
	c.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
}

// ReadPump reads client commands until the connection closes. A sync
// request is answered through onSync.
func (c *Client) ReadPump(onSync func(*Client)) {
	defer func() {
		c.hub.Unregister(c)
		c.conn.Close()
	}()

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.hub.logger.Debug("Mirror client read failed", "error", err)
			}
			return
		}

		var clientMsg ClientMessage
		if err := json.Unmarshal(message, &clientMsg); err != nil {
			c.hub.logger.Debug("Bad client message", "error", err)
			continue
		}

		switch clientMsg.Type {
		case TypeSync:
			if onSync != nil {
				onSync(c)
			}
		default:
			c.hub.logger.Debug("Unknown client message", "type", clientMsg.Type)
		}
	}
}
