package game

import (
	"log"
	"math"
	"sort"
	"sync"
	"time"

	"github.com/velotype/go-socket-typerace/internal/common/clock"
	"github.com/velotype/go-socket-typerace/internal/constants"
	"github.com/velotype/go-socket-typerace/internal/metrics"
	"github.com/velotype/go-socket-typerace/internal/models"
	"github.com/velotype/go-socket-typerace/internal/texts"
)

// Room is one isolated race: a passage, a waiting/playing state machine,
// and the set of clients competing on it.
type Room struct {
	ID        string
	Text      string
	Status    string
	StartTime *time.Time
	Duration  int // seconds, stored but not enforced
	Clients   map[string]*Client
	Mutex     sync.RWMutex

	clk      clock.Clock
	supplier texts.Supplier
	nextSeq  int
}

// FinishResult carries the one-time completion notice for a participant
// that just crossed the end of the passage.
type FinishResult struct {
	WPM         int
	Accuracy    int
	TimeElapsed int
}

func NewRoom(id string, supplier texts.Supplier, clk clock.Clock) *Room {
	log.Printf("Creating new room: %s", id)
	return &Room{
		ID:       id,
		Text:     supplier.Random(),
		Status:   constants.StatusWaiting,
		Duration: constants.DefaultRaceDuration,
		Clients:  make(map[string]*Client),
		clk:      clk,
		supplier: supplier,
	}
}

// CLIENT MANAGEMENT =>

// AddClient adds a client to the room. Joining is allowed in any state;
// usernames are not validated or deduplicated.
func (room *Room) AddClient(client *Client) {
	room.Mutex.Lock()
	defer room.Mutex.Unlock()

	client.seq = room.nextSeq
	room.nextSeq++
	room.Clients[client.ID] = client

	log.Printf("Added %s to room: %s. Total players: %d",
		client.Username, room.ID, len(room.Clients))
}

// RemoveClient removes a client and reports whether the room is now empty.
// The registry owns deletion of emptied rooms.
func (room *Room) RemoveClient(clientID string) bool {
	room.Mutex.Lock()
	defer room.Mutex.Unlock()

	client, ok := room.Clients[clientID]
	if !ok {
		return len(room.Clients) == 0
	}

	client.Mu.Lock()
	if client.Conn != nil {
		client.Conn.Close()
	}
	client.Mu.Unlock()

	delete(room.Clients, clientID)
	log.Printf("Removed %s from room: %s. Total players: %d",
		client.Username, room.ID, len(room.Clients))

	return len(room.Clients) == 0
}

// GAME STATE MANAGEMENT =>

// Start begins a round. Only legal from waiting; anything else is a
// silent no-op. Every participant's counters reset and their start time is
// stamped alongside the room's.
func (room *Room) Start() (time.Time, bool) {
	room.Mutex.Lock()
	defer room.Mutex.Unlock()

	if room.Status != constants.StatusWaiting {
		return time.Time{}, false
	}

	now := room.clk.Now()
	room.Status = constants.StatusPlaying
	room.StartTime = &now

	for _, client := range room.Clients {
		client.Mu.Lock()
		resetStats(client.Stats)
		start := now
		client.Stats.StartTime = &start
		client.Mu.Unlock()
	}

	log.Printf("Game started in room %s", room.ID)
	return now, true
}

// Reset returns the room to waiting with a freshly sampled passage. Legal
// from any state. Participant start times are cleared: a new round has not
// begun yet.
func (room *Room) Reset() string {
	room.Mutex.Lock()
	defer room.Mutex.Unlock()

	room.Status = constants.StatusWaiting
	room.StartTime = nil
	room.Text = room.supplier.Random()

	for _, client := range room.Clients {
		client.Mu.Lock()
		resetStats(client.Stats)
		client.Mu.Unlock()
	}

	log.Printf("Game reset in room %s", room.ID)
	return room.Text
}

// Progress applies a client-reported counter update. Ignored unless the
// room is playing and the participant is present; the second return value
// reports whether the update was applied. Counters are trusted as-is;
// derived metrics are recomputed every update. The first update that
// reaches the end of the passage flips the participant to finished,
// captures the final metrics, and returns the one-time finish notice.
func (room *Room) Progress(clientID string, currentPosition, correctChars, totalChars int) (*FinishResult, bool) {
	room.Mutex.Lock()
	defer room.Mutex.Unlock()

	if room.Status != constants.StatusPlaying {
		return nil, false
	}
	client, ok := room.Clients[clientID]
	if !ok {
		return nil, false
	}

	client.Mu.Lock()
	defer client.Mu.Unlock()

	stats := client.Stats
	stats.CurrentPosition = currentPosition
	stats.CorrectChars = correctChars
	stats.TotalChars = totalChars

	var elapsed float64
	if stats.StartTime != nil {
		elapsed = room.clk.Now().Sub(*stats.StartTime).Seconds()
	}

	stats.Progress = metrics.Progress(currentPosition, len(room.Text))
	stats.WPM = metrics.WPM(correctChars, elapsed)
	stats.Accuracy = metrics.Accuracy(correctChars, totalChars)

	if currentPosition >= len(room.Text) && !stats.Finished {
		stats.Finished = true
		stats.FinalWPM = stats.WPM
		stats.FinalAccuracy = stats.Accuracy
		log.Printf("%s finished in room %s (wpm=%d acc=%d)",
			client.Username, room.ID, stats.WPM, stats.Accuracy)
		return &FinishResult{
			WPM:         stats.WPM,
			Accuracy:    stats.Accuracy,
			TimeElapsed: int(math.Round(elapsed)),
		}, true
	}
	return nil, true
}

func resetStats(p *models.Participant) {
	p.Progress = 0
	p.WPM = 0
	p.Accuracy = 0
	p.CurrentPosition = 0
	p.CorrectChars = 0
	p.TotalChars = 0
	p.Finished = false
	p.FinalWPM = 0
	p.FinalAccuracy = 0
	p.StartTime = nil
}

// COMMUNICATION =>

// Broadcast sends a message to every client in the room, in join order, so
// each connection observes the same sequence of views.
func (room *Room) Broadcast(msg models.Message) {
	room.Mutex.RLock()
	clients := room.ordered()
	room.Mutex.RUnlock()

	msg.RoomID = room.ID
	msg.Time = room.clk.Now()

	for _, client := range clients {
		if err := client.Send(msg); err != nil {
			log.Printf("Error sending %s to %s: %v", msg.Type, client.Username, err)
		}
	}
}

// Snapshot returns a copy of every participant's current state, in join
// order.
func (room *Room) Snapshot() []models.Participant {
	room.Mutex.RLock()
	defer room.Mutex.RUnlock()

	users := make([]models.Participant, 0, len(room.Clients))
	for _, client := range room.ordered() {
		client.Mu.RLock()
		users = append(users, *client.Stats)
		client.Mu.RUnlock()
	}
	return users
}

// ordered returns clients sorted by join order. Callers hold room.Mutex.
func (room *Room) ordered() []*Client {
	clients := make([]*Client, 0, len(room.Clients))
	for _, client := range room.Clients {
		clients = append(clients, client)
	}
	sort.Slice(clients, func(i, j int) bool {
		return clients[i].seq < clients[j].seq
	})
	return clients
}
