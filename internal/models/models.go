package models

import (
	"time"
)

// Inbound event types (client -> server)
const (
	EventJoinRoom       = "join-room"
	EventStartGame      = "start-game"
	EventTypingProgress = "typing-progress"
	EventResetGame      = "reset-game"
)

// Outbound event types (server -> client)
const (
	EventRoomJoined     = "room-joined"
	EventUsersUpdated   = "users-updated"
	EventGameStarted    = "game-started"
	EventTypingFinished = "typing-finished"
	EventGameReset      = "game-reset"
)

// Message defines the structure for WebSocket communication
type Message struct {
	Type   string      `json:"type"`
	RoomID string      `json:"room_id,omitempty"`
	Data   interface{} `json:"data,omitempty"`
	Time   time.Time   `json:"timestamp,omitempty"`
}

// Participant is one connection's entry within a room: raw counters as
// reported by the client plus the metrics derived from them. This is the
// exact shape broadcast in users-updated.
type Participant struct {
	ID              string     `json:"id"`
	Username        string     `json:"username"`
	Progress        int        `json:"progress"`
	WPM             int        `json:"wpm"`
	Accuracy        int        `json:"accuracy"`
	CurrentPosition int        `json:"currentPosition"`
	CorrectChars    int        `json:"correctChars"`
	TotalChars      int        `json:"totalChars"`
	Finished        bool       `json:"finished"`
	StartTime       *time.Time `json:"startTime"`
	FinalWPM        int        `json:"finalWPM,omitempty"`
	FinalAccuracy   int        `json:"finalAccuracy,omitempty"`
}

// RoomJoinedData is unicast to a connection after a successful join.
type RoomJoinedData struct {
	RoomID    string        `json:"roomId"`
	Text      string        `json:"text"`
	GameState string        `json:"gameState"`
	Duration  int           `json:"duration"`
	Users     []Participant `json:"users"`
}

// GameStartedData is broadcast when a round begins.
type GameStartedData struct {
	Text      string    `json:"text"`
	StartTime time.Time `json:"startTime"`
}

// TypingFinishedData is unicast once to a participant on completing the
// passage.
type TypingFinishedData struct {
	WPM         int `json:"wpm"`
	Accuracy    int `json:"accuracy"`
	TimeElapsed int `json:"timeElapsed"`
}

// GameResetData is broadcast when a room returns to waiting with a fresh
// passage.
type GameResetData struct {
	Text  string        `json:"text"`
	Users []Participant `json:"users"`
}
