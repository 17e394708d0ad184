package dice

import (
	"math/rand/v2"
)

// streamIncrement is the fixed PCG stream selector; only the seed varies per battle.
const streamIncrement = 0x9e3779b97f4a7c15

// Stream is the seeded per-battle random source. Replaying a battle with the
// same seed and the same sequence of choices reproduces every draw.
//
// Stream is not safe for concurrent use; a battle is single-threaded.
type Stream struct {
	seed   uint64
	cursor uint64
	pcg    *rand.PCG
	rng    *rand.Rand
}

// NewStream returns a Stream positioned at the start of seed's sequence.
//
// Postcondition: Cursor() == 0 and Seed() == seed.
func NewStream(seed uint64) *Stream {
	pcg := rand.NewPCG(seed, streamIncrement)
	return &Stream{seed: seed, pcg: pcg, rng: rand.New(pcg)}
}

// Intn returns a value in [0, n) and advances the cursor by one.
//
// Precondition: n > 0.
// Postcondition: Cursor() is incremented by exactly 1.
func (s *Stream) Intn(n int) int {
	if n <= 0 {
		panic("dice: Stream.Intn called with n <= 0")
	}
	s.cursor++
	return s.rng.IntN(n)
}

// IntRange returns a value in [lo, hi] inclusive.
//
// Precondition: lo <= hi.
// Postcondition: Cursor() is incremented by exactly 1.
func (s *Stream) IntRange(lo, hi int) int {
	if lo > hi {
		panic("dice: Stream.IntRange called with lo > hi")
	}
	return lo + s.Intn(hi-lo+1)
}

// Seed returns the seed the stream was created with.
func (s *Stream) Seed() uint64 { return s.seed }

// Cursor returns the number of draws taken so far.
func (s *Stream) Cursor() uint64 { return s.cursor }

// Snapshot returns the generator state encoded as bytes. Two snapshots are
// equal iff the next draws from both streams are identical.
func (s *Stream) Snapshot() []byte {
	b, err := s.pcg.MarshalBinary()
	if err != nil {
		panic("dice: Stream.Snapshot: " + err.Error())
	}
	return b
}
