package metrics_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/velotype/go-socket-typerace/internal/metrics"
)

func TestWPM(t *testing.T) {
	tests := []struct {
		name         string
		correctChars int
		elapsed      float64
		expected     int
	}{
		{"zero elapsed returns zero", 250, 0, 0},
		{"zero chars returns zero", 0, 30, 0},
		{"one word per second", 300, 60, 60},
		{"half a minute", 150, 30, 60},
		{"rounds to nearest", 52, 60, 10},
		{"rounds up", 53, 60, 11},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, metrics.WPM(tt.correctChars, tt.elapsed))
		})
	}
}

func TestAccuracy(t *testing.T) {
	tests := []struct {
		name         string
		correctChars int
		totalChars   int
		expected     int
	}{
		{"zero total returns zero", 10, 0, 0},
		{"perfect", 111, 111, 100},
		{"half", 50, 100, 50},
		{"rounds to nearest", 2, 3, 67},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, metrics.Accuracy(tt.correctChars, tt.totalChars))
		})
	}
}

func TestProgress(t *testing.T) {
	tests := []struct {
		name     string
		position int
		length   int
		expected int
	}{
		{"zero length returns zero", 5, 0, 0},
		{"start", 0, 111, 0},
		{"complete", 111, 111, 100},
		{"midway rounds", 56, 111, 50},
		{"past the end is unclamped", 120, 100, 120},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, metrics.Progress(tt.position, tt.length))
		})
	}
}

func TestProgressMonotonic(t *testing.T) {
	prev := 0
	for pos := 0; pos <= 111; pos++ {
		p := metrics.Progress(pos, 111)
		assert.GreaterOrEqual(t, p, prev, "progress must not decrease as position grows")
		prev = p
	}
}
