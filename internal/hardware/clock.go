package hardware

import (
	"math/rand/v2"
	"sync"
	"time"
)

// SystemClock is the wall clock used outside tests.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

func (SystemClock) Sleep(d time.Duration) { time.Sleep(d) }

// Random is a PCG generator behind a mutex.
type Random struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewRandom seeds the generator with seed, or from the runtime entropy source when seed is 0.
func NewRandom(seed uint64) *Random {
	if seed == 0 {
		seed = rand.Uint64()
	}
	return &Random{rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

func (r *Random) Uint32() uint32 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rng.Uint32()
}
