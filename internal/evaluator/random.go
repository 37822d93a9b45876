package evaluator

import (
	"math/rand/v2"
	"sync"
	"time"
)

// Random is the shared randomInt source.
type Random struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewRandom seeds from seed when given, otherwise from the clock.
func NewRandom(seed *int64) *Random {
	s := uint64(time.Now().UnixNano())
	if seed != nil {
		s = uint64(*seed)
	}
	return &Random{rng: rand.New(rand.NewPCG(s, s^0x9e3779b97f4a7c15))}
}

// Int64N returns a uniform integer in [0, n). n must be positive.
func (r *Random) Int64N(n int64) int64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rng.Int64N(n)
}
