package manager

import (
	"fmt"
	"log"
	"sync"

	"github.com/velotype/go-socket-typerace/internal/common/clock"
	"github.com/velotype/go-socket-typerace/internal/constants"
	"github.com/velotype/go-socket-typerace/internal/game"
	"github.com/velotype/go-socket-typerace/internal/texts"

	"github.com/google/uuid"
)

// RoomManager is the process-wide registry of live rooms, keyed by
// caller-chosen id. A room is present exactly while it has participants:
// it is created on first join and removed when the last one leaves.
// Membership changes that affect registration (Join, RemoveRoomIfEmpty)
// run under the registry lock so a join racing a last-participant leave
// can never strand a joiner in an unregistered room.
type RoomManager struct {
	Rooms map[string]*game.Room
	Mutex sync.RWMutex
	// MaxRooms is advisory: get-or-create of a caller-named room never
	// fails, so the value is reported in logs but not enforced.
	MaxRooms    int
	ActiveRooms int

	supplier texts.Supplier
	clk      clock.Clock
}

// GenerateRoomID mints an id for the create-room API. No room is
// registered until the first join-room arrives for it.
func GenerateRoomID() string {
	return "room_0x" + uuid.New().String()[:8]
}

// NewRoomManager creates a new room manager instance
func NewRoomManager(maxRooms int, supplier texts.Supplier, clk clock.Clock) *RoomManager {
	log.Printf("Creating new room manager with max rooms: %d", maxRooms)
	if maxRooms <= 0 {
		maxRooms = constants.DefaultMaxRooms
	}
	return &RoomManager{
		Rooms:    make(map[string]*game.Room),
		MaxRooms: maxRooms,
		supplier: supplier,
		clk:      clk,
	}
}

// GetOrCreateRoom returns the room registered under roomID, creating it in
// the waiting state with a fresh passage if absent. Idempotent per id.
func (rm *RoomManager) GetOrCreateRoom(roomID string) *game.Room {
	rm.Mutex.Lock()
	defer rm.Mutex.Unlock()

	return rm.getOrCreate(roomID)
}

// Join registers the client in the room under roomID, creating the room if
// absent. Get-or-create and AddClient happen under the registry lock, so
// the room cannot be deleted between resolving it and joining it.
func (rm *RoomManager) Join(roomID string, client *game.Client) *game.Room {
	rm.Mutex.Lock()
	defer rm.Mutex.Unlock()

	room := rm.getOrCreate(roomID)
	room.AddClient(client)
	return room
}

// GetRoom returns the room registered under roomID, if any.
func (rm *RoomManager) GetRoom(roomID string) (*game.Room, error) {
	rm.Mutex.RLock()
	defer rm.Mutex.RUnlock()

	room, ok := rm.Rooms[roomID]
	if !ok {
		return nil, fmt.Errorf("room %s does not exist", roomID)
	}
	return room, nil
}

// RemoveRoomIfEmpty deletes the room unless a participant has joined since
// the caller observed it empty. Re-checking under the registry lock keeps
// the registry and the room's membership in step.
func (rm *RoomManager) RemoveRoomIfEmpty(roomID string) {
	rm.Mutex.Lock()
	defer rm.Mutex.Unlock()

	room, ok := rm.Rooms[roomID]
	if !ok {
		return
	}

	room.Mutex.RLock()
	empty := len(room.Clients) == 0
	room.Mutex.RUnlock()
	if !empty {
		return
	}

	delete(rm.Rooms, roomID)
	rm.ActiveRooms--
	log.Printf("Room removed: %s, Active rooms: %d", roomID, rm.ActiveRooms)
}

// getOrCreate resolves or registers a room. Callers hold rm.Mutex.
func (rm *RoomManager) getOrCreate(roomID string) *game.Room {
	if room, ok := rm.Rooms[roomID]; ok {
		return room
	}

	room := game.NewRoom(roomID, rm.supplier, rm.clk)
	rm.Rooms[roomID] = room
	rm.ActiveRooms++
	log.Printf("Created new room: %s, Active rooms: %d", roomID, rm.ActiveRooms)
	return room
}
