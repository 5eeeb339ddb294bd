package transport

import (
	"math/rand"
	"sync"
)

// FaultInjector simulates the occasional backend failure on mutating
// endpoints so clients can exercise their rollback path. Rate 0 disables it.
type FaultInjector struct {
	mu   sync.Mutex
	rate float64
	rng  *rand.Rand
}

func NewFaultInjector(rate float64, seed int64) *FaultInjector {
	return &FaultInjector{rate: rate, rng: rand.New(rand.NewSource(seed))}
}

// Trip reports whether this request should fail with a simulated error.
func (f *FaultInjector) Trip() bool {
	if f == nil {
		return false
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.rate <= 0 {
		return false
	}
	return f.rng.Float64() < f.rate
}
