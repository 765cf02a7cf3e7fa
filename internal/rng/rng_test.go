package rng

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func assertCovers(t *testing.T, gen Generator, n int) {
	t.Helper()

	found := make(map[int]bool)
	for i := 0; i < 1000; i++ {
		v := gen.Intn(n)
		if v < 0 || v >= n {
			t.Fatalf("%d is out of range [0, %d)", v, n)
		}

		found[v] = true
	}

	assert.Len(t, found, n)
}

func TestCrypto_Intn(t *testing.T) {
	assertCovers(t, Crypto{}, 5)
	assert.Equal(t, 0, Crypto{}.Intn(1))
}

func TestSeeded_Intn(t *testing.T) {
	a := assert.New(t)
	assertCovers(t, NewSeeded(1), 5)

	first, second := NewSeeded(42), NewSeeded(42)
	for i := 0; i < 20; i++ {
		a.Equal(first.Intn(52), second.Intn(52))
	}
}

func TestSeeded_concurrent(t *testing.T) {
	gen := NewSeeded(1)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				_ = gen.Intn(10)
			}
		}()
	}

	wg.Wait()
}
