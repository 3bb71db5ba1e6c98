/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: sampler.go
Description: Random source used for reservoir sampling decisions. Injected into the
aggregator so runs can be made deterministic with a fixed seed.
*/

package aggregate

import (
	"math/rand"
	"sync"
	"time"
)

// Sampler yields independent uniform draws in [0, 1)
type Sampler interface {
	Float64() float64
}

// lockedSampler makes a *rand.Rand safe for concurrent columns
type lockedSampler struct {
	mu  sync.Mutex
	rng *rand.Rand
}

func (s *lockedSampler) Float64() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rng.Float64()
}

// NewSampler returns a sampler seeded with seed, or with the current time when seed is 0
func NewSampler(seed int64) Sampler {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &lockedSampler{rng: rand.New(rand.NewSource(seed))}
}
