package texts

import (
	"math/rand"
	"time"
)

// Supplier hands out one passage for a round of the race.
type Supplier interface {
	Random() string
}

var defaultPassages = []string{
	"The quick brown fox jumps over the lazy dog. This sentence contains every letter of the alphabet at least once.",
	"Programming is not about what you know; it's about what you can figure out. The best way to learn is by doing.",
	"In the world of technology, change is the only constant. Adaptation and continuous learning are key to success.",
	"TypeScript is a programming language developed and maintained by Microsoft. It is a strict syntactical superset of JavaScript.",
	"React is a free and open-source front-end JavaScript library for building user interfaces based on UI components.",
}

// Static supplies passages from a fixed in-memory corpus, picked uniformly
// at random.
type Static struct {
	passages []string
	rng      *rand.Rand
}

func NewStatic(passages ...string) *Static {
	if len(passages) == 0 {
		passages = defaultPassages
	}
	return &Static{
		passages: passages,
		rng:      rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (s *Static) Random() string {
	return s.passages[s.rng.Intn(len(s.passages))]
}
