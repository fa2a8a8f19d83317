package constants

// Game state and configuration constants
const (
	StatusWaiting = "waiting"
	StatusPlaying = "playing"

	// Standard typing-test convention: one "word" is five characters.
	CharsPerWord = 5

	// Time budget stored on every room, in seconds. Reported to clients
	// but not enforced server-side.
	DefaultRaceDuration = 60

	DefaultMaxRooms = 100
)
