// Package random provides the injectable random source used by the typing models.
package random

import (
	"math/rand/v2"
	"sync"
	"time"
)

// Source is the subset of *rand.Rand the simulation draws from.
type Source interface {
	Float64() float64
	IntN(n int) int
}

// New returns a deterministic source for the given seed.
func New(seed uint64) Source {
	return &lockedSource{rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

// NewFromTime returns a source seeded from the wall clock.
func NewFromTime() Source {
	return New(uint64(time.Now().UnixNano()))
}

// lockedSource serializes access so one source can be shared by the
// controller and the run goroutine.
type lockedSource struct {
	mu  sync.Mutex
	rng *rand.Rand
}

func (s *lockedSource) Float64() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rng.Float64()
}

func (s *lockedSource) IntN(n int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rng.IntN(n)
}

// Chance reports whether a percentage draw succeeds. A percent of 0 never
// succeeds and 100 always does.
func Chance(src Source, percent float64) bool {
	if percent <= 0 {
		return false
	}
	return src.Float64()*100 < percent
}

// Between returns a uniform value in [lo, hi]. Swapped bounds are tolerated.
func Between(src Source, lo, hi float64) float64 {
	if hi < lo {
		lo, hi = hi, lo
	}
	if hi == lo {
		return lo
	}
	return lo + src.Float64()*(hi-lo)
}

// IntBetween returns a uniform integer in [lo, hi] inclusive.
func IntBetween(src Source, lo, hi int) int {
	if hi < lo {
		lo, hi = hi, lo
	}
	return lo + src.IntN(hi-lo+1)
}

// Jitter applies a symmetric variation of ±(value × percent/100).
func Jitter(src Source, value, percent float64) float64 {
	spread := value * (percent / 100.0)
	if spread == 0 {
		return value
	}
	return value + Between(src, -spread, spread)
}
