package rng

import (
	"crypto/rand"
	"math/big"
)

// Crypto is the Generator used for real games
type Crypto struct{}

// Intn returns a number in [0, n) read from crypto/rand
// It panics if n <= 0 or the system source fails
func (Crypto) Intn(n int) int {
	i, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		panic(err)
	}

	return int(i.Int64())
}
