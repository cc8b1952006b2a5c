// Package dice holds the random source shared by the simulation packages.
//
// Every roll in the game goes through a Roller so that a fixed seed yields a
// fixed battle. *rand.Rand from math/rand/v2 satisfies Roller.
package dice

import (
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
	"math/rand/v2"
	"sync"
)

// Roller is the minimal random source used by the rules.
type Roller interface {
	// IntN returns a uniform integer in [0, n). It panics if n <= 0.
	IntN(n int) int
}

// New returns a deterministic Roller for the given seed.
func New(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// NewSeed generates a seed using crypto/rand.
func NewSeed() (uint64, error) {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return 0, fmt.Errorf("read random seed: %w", err)
	}
	return binary.LittleEndian.Uint64(b[:]), nil
}

// Seeder hands out independently seeded Rollers from one master seed, so a
// server with a fixed seed replays the same games in the same order.
// It is safe for concurrent use; the Rollers it returns are not.
type Seeder struct {
	mu     sync.Mutex
	master *rand.Rand
}

func NewSeeder(seed uint64) *Seeder {
	return &Seeder{master: New(seed)}
}

// Roller returns a fresh Roller seeded from the master sequence.
func (s *Seeder) Roller() Roller {
	s.mu.Lock()
	seed := s.master.Uint64()
	s.mu.Unlock()
	return New(seed)
}

// Between returns a uniform integer in [lo, hi]. If hi < lo, lo is returned.
func Between(r Roller, lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + r.IntN(hi-lo+1)
}

// Coin returns true half of the time.
func Coin(r Roller) bool {
	return r.IntN(2) == 0
}

// Pick returns a uniformly chosen element of xs and its index.
// It panics on an empty slice; callers check for emptiness first.
func Pick[T any](r Roller, xs []T) (T, int) {
	i := r.IntN(len(xs))
	return xs[i], i
}
