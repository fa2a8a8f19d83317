package game

import (
	"log"
	"sync"

	"github.com/velotype/go-socket-typerace/internal/models"
)

// Conn is the slice of a websocket connection the game layer writes to.
// *websocket.Conn satisfies it; tests substitute a recorder.
type Conn interface {
	WriteJSON(v interface{}) error
	Close() error
}

// Client binds one connection to its participant record within a room.
// The session layer owns the room binding.
type Client struct {
	ID       string
	Username string
	Conn     Conn
	Stats    *models.Participant
	Mu       sync.RWMutex
	WriteMu  sync.Mutex

	seq int // join order within the room
}

// NewClient creates a new client instance with zeroed stats
func NewClient(conn Conn, id, username string) *Client {
	log.Printf("New client connected: %s (%s)", username, id)
	return &Client{
		ID:       id,
		Username: username,
		Conn:     conn,
		Stats: &models.Participant{
			ID:       id,
			Username: username,
		},
	}
}

// Send writes a message to this client only.
func (c *Client) Send(msg models.Message) error {
	c.WriteMu.Lock()
	defer c.WriteMu.Unlock()
	return c.Conn.WriteJSON(msg)
}
