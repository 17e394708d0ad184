package dice

import (
	"crypto/rand"
	"encoding/binary"
	"math/big"
)

// Cosmetic is the process-wide source for randomness that never affects a
// battle outcome, such as choosing a seed when none is configured.
var Cosmetic Source = cryptoSource{}

// cryptoSource draws from crypto/rand and is safe for concurrent use.
type cryptoSource struct{}

// Intn returns a uniform int in [0, n).
//
// Precondition: n > 0.
func (cryptoSource) Intn(n int) int {
	if n <= 0 {
		panic("dice.cryptoSource.Intn: n must be > 0")
	}
	v, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		panic("dice.cryptoSource.Intn: " + err.Error())
	}
	return int(v.Int64())
}

// NewSeed draws a non-zero seed for a Stream. Zero is reserved to mean
// "no seed configured".
func NewSeed() uint64 {
	var buf [8]byte
	for {
		if _, err := rand.Read(buf[:]); err != nil {
			panic("dice.NewSeed: " + err.Error())
		}
		if s := binary.LittleEndian.Uint64(buf[:]); s != 0 {
			return s
		}
	}
}
