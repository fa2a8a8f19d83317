package metrics

import (
	"math"

	"github.com/velotype/go-socket-typerace/internal/constants"
)

// WPM converts a correct-character count into words per minute, using the
// five-characters-per-word convention. Zero elapsed time yields zero rather
// than a division fault.
func WPM(correctChars int, elapsedSeconds float64) int {
	if elapsedSeconds == 0 {
		return 0
	}
	words := float64(correctChars) / constants.CharsPerWord
	return int(math.Round(words / (elapsedSeconds / 60)))
}

// Accuracy returns the percentage of reported characters that were correct.
// Callers are trusted not to report correctChars > totalChars.
func Accuracy(correctChars, totalChars int) int {
	if totalChars == 0 {
		return 0
	}
	return int(math.Round(float64(correctChars) / float64(totalChars) * 100))
}

// Progress returns the cursor position as a percentage of the passage
// length. Unclamped: a position past the end yields more than 100.
func Progress(position, textLength int) int {
	if textLength == 0 {
		return 0
	}
	return int(math.Round(float64(position) / float64(textLength) * 100))
}
