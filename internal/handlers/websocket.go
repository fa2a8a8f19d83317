package handlers

import (
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/velotype/go-socket-typerace/internal/common/clock"
	"github.com/velotype/go-socket-typerace/internal/constants"
	"github.com/velotype/go-socket-typerace/internal/game"
	"github.com/velotype/go-socket-typerace/internal/manager"
	"github.com/velotype/go-socket-typerace/internal/models"
	"github.com/velotype/go-socket-typerace/internal/texts"
)

// VARIABLES =>

// Configure WebSocket upgrader
var Upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// TODO: In production, implement proper origin checking
		return true
	},
}

// Global room manager instance
var RoomManager *manager.RoomManager

func Init(supplier texts.Supplier) {
	RoomManager = manager.NewRoomManager(constants.DefaultMaxRooms, supplier, &clock.DefaultClock{})
}

// session binds one websocket connection to at most one (room, client)
// pair for its lifetime. Events arriving before a successful join-room, or
// after the room is gone, are silently dropped.
type session struct {
	id     string
	conn   *websocket.Conn
	room   *game.Room
	client *game.Client
}

// METHODS =>

// HandleWebSocket upgrades the connection and runs its read loop. The
// room/participant binding happens later, on the join-room event.
func HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := Upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("WebSocket upgrade error: %v", err)
		return
	}

	sess := &session{
		id:   uuid.New().String(),
		conn: conn,
	}
	sess.readLoop()
}

// readLoop processes inbound events in arrival order. On any read error
// the deferred leave runs exactly once.
func (s *session) readLoop() {
	defer s.leave()

	for {
		var msg models.Message
		if err := s.conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("WebSocket error for session %s: %v", s.id, err)
			}
			return
		}

		switch msg.Type {
		case models.EventJoinRoom:
			s.handleJoin(msg)
		case models.EventStartGame:
			s.handleStart()
		case models.EventTypingProgress:
			s.handleProgress(msg)
		case models.EventResetGame:
			s.handleReset()
		}
	}
}

// handleJoin binds the session to a room, creating it on first join.
func (s *session) handleJoin(msg models.Message) {
	if s.room != nil {
		// Already bound; moving rooms mid-connection is unsupported.
		return
	}

	data, ok := msg.Data.(map[string]interface{})
	if !ok {
		return
	}
	roomID, _ := data["roomId"].(string)
	username, _ := data["username"].(string)
	if roomID == "" || username == "" {
		return
	}

	client := game.NewClient(s.conn, s.id, username)
	room := RoomManager.Join(roomID, client)
	s.room = room
	s.client = client

	room.Mutex.RLock()
	joined := models.RoomJoinedData{
		RoomID:    room.ID,
		Text:      room.Text,
		GameState: room.Status,
		Duration:  room.Duration,
	}
	room.Mutex.RUnlock()
	joined.Users = room.Snapshot()

	if err := client.Send(models.Message{
		Type:   models.EventRoomJoined,
		RoomID: room.ID,
		Data:   joined,
		Time:   time.Now(),
	}); err != nil {
		log.Printf("Error sending room-joined to %s: %v", username, err)
	}

	room.Broadcast(models.Message{
		Type: models.EventUsersUpdated,
		Data: room.Snapshot(),
	})

	log.Printf("%s joined room %s", username, roomID)
}

// handleStart begins the round; a no-op unless the room is waiting.
func (s *session) handleStart() {
	if s.room == nil {
		return
	}

	startedAt, ok := s.room.Start()
	if !ok {
		return
	}

	s.room.Mutex.RLock()
	text := s.room.Text
	s.room.Mutex.RUnlock()

	s.room.Broadcast(models.Message{
		Type: models.EventGameStarted,
		Data: models.GameStartedData{
			Text:      text,
			StartTime: startedAt,
		},
	})
}

// handleProgress applies a counter report and fans the refreshed standings
// out to the room. The finishing connection alone gets typing-finished,
// and only on its first crossing.
func (s *session) handleProgress(msg models.Message) {
	if s.room == nil {
		return
	}

	data, ok := msg.Data.(map[string]interface{})
	if !ok {
		return
	}

	result, updated := s.room.Progress(
		s.client.ID,
		intField(data, "currentPosition"),
		intField(data, "correctChars"),
		intField(data, "totalChars"),
	)
	if !updated {
		return
	}

	if result != nil {
		if err := s.client.Send(models.Message{
			Type:   models.EventTypingFinished,
			RoomID: s.room.ID,
			Data: models.TypingFinishedData{
				WPM:         result.WPM,
				Accuracy:    result.Accuracy,
				TimeElapsed: result.TimeElapsed,
			},
			Time: time.Now(),
		}); err != nil {
			log.Printf("Error sending typing-finished to %s: %v", s.client.Username, err)
		}
	}

	s.room.Broadcast(models.Message{
		Type: models.EventUsersUpdated,
		Data: s.room.Snapshot(),
	})
}

// handleReset returns the room to waiting with a fresh passage.
func (s *session) handleReset() {
	if s.room == nil {
		return
	}

	text := s.room.Reset()

	s.room.Broadcast(models.Message{
		Type: models.EventGameReset,
		Data: models.GameResetData{
			Text:  text,
			Users: s.room.Snapshot(),
		},
	})
}

// leave detaches the session from its room. The last participant out
// takes the room with it.
func (s *session) leave() {
	if s.room == nil {
		s.conn.Close()
		return
	}

	log.Printf("User disconnected: %s (%s)", s.client.Username, s.id)

	if s.room.RemoveClient(s.client.ID) {
		RoomManager.RemoveRoomIfEmpty(s.room.ID)
		return
	}

	s.room.Broadcast(models.Message{
		Type: models.EventUsersUpdated,
		Data: s.room.Snapshot(),
	})
}

// intField reads a numeric JSON field that arrives as float64.
func intField(data map[string]interface{}, key string) int {
	if v, ok := data[key].(float64); ok {
		return int(v)
	}
	return 0
}
