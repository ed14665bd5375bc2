// Package socket binds the game service to websocket transport: it tracks
// connected clients by socket ID, dispatches their requests to the lifecycle
// coordinator, and delivers outbound envelopes.
package socket

import (
	"sync"

	"github.com/gorilla/websocket"
)

// wsConn is the slice of *websocket.Conn the hub needs. Kept small so tests
// can stand in for a live connection.
type wsConn interface {
	WriteMessage(messageType int, data []byte) error
	ReadMessage() (messageType int, p []byte, err error)
	Close() error
}

// Client is one connected participant.
type Client struct {
	id   string
	conn wsConn
	mu   sync.Mutex // serializes concurrent writers on the connection
}

// ID returns the server-assigned socket ID.
func (c *Client) ID() string {
	return c.id
}

func (c *Client) send(payload []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn.WriteMessage(websocket.TextMessage, payload)
}
