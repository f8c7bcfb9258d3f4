package filters

import (
	"math"
	"math/rand"
	"sync"
	"time"
)

// CalculateFilterSize returns the number of bits a Bloom filter needs to hold
// _length_ elements at the false positive rate _errorRate_.
func CalculateFilterSize(length uint, errorRate float64) uint {
	return uint(math.Ceil(-((float64(length) * math.Log(errorRate)) / math.Pow(math.Log(2), 2))))
}

// CalculateNumHashes returns the optimal number of hash mappers for a Bloom
// filter of _size_ bits holding _length_ elements.
func CalculateNumHashes(size, length uint) uint {
	return uint(math.Ceil(float64(size) / float64(length) * math.Log(2)))
}

var (
	src     = rand.NewSource(time.Now().UnixNano())
	srcLock sync.Mutex
)

const letterBytes = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"

// generateRandomString returns _n_ random letters, used for the redis keys
// of bit and bucket stores
func generateRandomString(n int) string {
	srcLock.Lock()
	defer srcLock.Unlock()

	b := make([]byte, n)
	for i := range b {
		b[i] = letterBytes[src.Int63()%int64(len(letterBytes))]
	}
	return string(b)
}

func newTimeSeededRandom() *rand.Rand {
	return rand.New(rand.NewSource(time.Now().UnixNano()))
}
