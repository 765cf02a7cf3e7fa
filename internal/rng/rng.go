package rng

import (
	"math/rand"
	"sync"
)

// Generator picks the random numbers used to shuffle a deck
type Generator interface {
	// Intn will return a random number up to but not including n
	Intn(n int) int
}

// Seeded is a deterministic Generator that can be shared between goroutines
// Decks shuffled by two Seeded generators with the same seed are identical
type Seeded struct {
	mu     sync.Mutex
	random *rand.Rand
}

// NewSeeded returns a Seeded generator
func NewSeeded(seed int64) *Seeded {
	return &Seeded{
		random: rand.New(rand.NewSource(seed)), // nolint:gosec
	}
}

// Intn returns a number in [0, n)
func (s *Seeded) Intn(n int) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.random.Intn(n)
}
