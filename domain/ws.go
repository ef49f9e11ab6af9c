package domain

import (
	"encoding/json"
	"sync"

	"github.com/gofiber/contrib/websocket"
	"golang.org/x/time/rate"
)

// Message is an outbound frame.
type Message struct {
	Type    string      `json:"type"`
	Content interface{} `json:"content"`
}

// Envelope is an inbound frame; Content is decoded by the event handler.
type Envelope struct {
	Type    string          `json:"type"`
	Content json.RawMessage `json:"content"`
}

type Client struct {
	ID        string
	Send      chan []byte
	Conn      *websocket.Conn
	WriteLock sync.Mutex
	Done      chan struct{}
	Limiter   *rate.Limiter

	closeOnce sync.Once
}

func NewClient(id string, conn *websocket.Conn, sendBuffer int, limiter *rate.Limiter) *Client {
	return &Client{
		ID:      id,
		Conn:    conn,
		Send:    make(chan []byte, sendBuffer),
		Done:    make(chan struct{}),
		Limiter: limiter,
	}
}

// Close closes Send and Done exactly once.
func (c *Client) Close() {
	c.closeOnce.Do(func() {
		close(c.Send)
		close(c.Done)
	})
}
