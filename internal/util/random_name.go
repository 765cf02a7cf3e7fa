package util

import (
	"fmt"
	"math/rand"
	"sync"
	"time"
)

var adjectives = []string{
	"Lucky", "Smoky", "Quiet", "Golden", "Rowdy", "Velvet", "Midnight", "Crooked", "Silver", "Lonely", "Dusty",
	"Red", "Blue", "Green", "Emerald", "Copper", "Neon", "Rusty", "Grand", "High", "Low", "Royal",
	"Wild", "Loose", "Tight", "Sleepy", "Busy",
}

var nouns = []string{
	"Ace", "King", "Queen", "Jack", "River", "Flop", "Turn", "Bluff", "Chip", "Dealer", "Felt",
	"Saloon", "Riverboat", "Parlor", "Den", "Lounge", "Cellar", "Bar", "Club", "Shark", "Fish",
}

var (
	randomMu sync.Mutex
	random   = rand.New(rand.NewSource(time.Now().UnixNano())) // nolint:gosec
)

// GetRandomName returns a random room name by combining an adjective with a noun
func GetRandomName() string {
	randomMu.Lock()
	defer randomMu.Unlock()

	adjectivesIndex := random.Intn(len(adjectives))
	nounsIndex := random.Intn(len(nouns))

	return fmt.Sprintf("%s %s", adjectives[adjectivesIndex], nouns[nounsIndex])
}
