package random

import (
	"math/rand"
	"time"
)

// New returns a generator seeded with seed, or with the current time when
// seed is zero.
func New(seed int64) *rand.Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

// String picks length symbols from charset, with repetition.
func String(rng *rand.Rand, charset string, length int) string {
	symbols := []rune(charset)
	if length <= 0 || len(symbols) == 0 {
		return ""
	}

	result := make([]rune, length)
	for i := range result {
		result[i] = symbols[rng.Intn(len(symbols))]
	}
	return string(result)
}

// Sample picks k distinct elements of pool in random order. It returns nil
// when k is out of range.
func Sample(rng *rand.Rand, pool []int, k int) []int {
	if k < 0 || k > len(pool) {
		return nil
	}
	shuffled := append([]int(nil), pool...)
	rng.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})
	return shuffled[:k]
}

// Pick returns one element of pool.
func Pick(rng *rand.Rand, pool []int) int {
	return pool[rng.Intn(len(pool))]
}
