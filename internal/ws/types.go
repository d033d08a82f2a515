package ws

import (
	"encoding/json"
	"sync"

	"github.com/benbeisheim/chess-backend/internal/model"
	"github.com/gofiber/websocket/v2"
)

// MessageType represents the different kinds of messages our system can handle
type MessageType string

const (
	MessageTypeMove      MessageType = "move"
	MessageTypeGameState MessageType = "gameState"
	MessageTypeResign    MessageType = "resign"
	MessageTypeError     MessageType = "error"
)

// Message represents a WebSocket message in our system
type Message struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// MovePayload is the body of an inbound move message.
type MovePayload struct {
	Move model.Move `json:"move"`
}

type ErrorPayload struct {
	Error string `json:"error"`
}

// NewMessage encodes payload into a message of the given type.
func NewMessage(t MessageType, payload interface{}) (Message, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return Message{}, err
	}
	return Message{Type: t, Payload: data}, nil
}

// Conn wraps a websocket connection so broadcasts and direct replies from the
// read loop never write concurrently.
type Conn struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

func NewConn(c *websocket.Conn) *Conn {
	return &Conn{conn: c}
}

func (c *Conn) WriteJSON(v interface{}) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn.WriteJSON(v)
}

func (c *Conn) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn.Close()
}
