package beat

import (
	"sync"
	"time"
)

// Clock is the time source capability.
//
// Provides two implementations:
// 1. SystemClock - Production clock backed by the runtime monotonic clock
// 2. ManualClock - Controllable clock for tests and simulations
//
// Implementations must be monotonic (Now never decreases) and cheap to
// read. The zero point is arbitrary; only differences between readings
// carry meaning, so no Clock answers calendar questions.
type Clock interface {
	// Now returns the current reading. Successive calls never go
	// backwards.
	Now() Sec
}

// SystemClock implements Clock using the runtime monotonic clock.
// Safe for concurrent use.
//
// The origin is captured at construction and every reading is the
// distance from it. Keeping the origin close to the readings preserves
// float64 precision over long runs.
type SystemClock struct {
	origin time.Time
}

// NewSystemClock creates a SystemClock with its origin at the moment of
// the call.
func NewSystemClock() *SystemClock {
	return &SystemClock{origin: time.Now()}
}

// Now returns the seconds elapsed since construction.
func (c *SystemClock) Now() Sec {
	return Sec(time.Since(c.origin).Seconds())
}

// ManualClock implements Clock for testing with manual control.
// Safe for concurrent use.
//
// Time stands still until Advance or Set moves it, which makes loop
// behavior exactly reproducible.
type ManualClock struct {
	mu  sync.Mutex
	now Sec
}

// NewManualClock creates a ManualClock reading zero.
func NewManualClock() *ManualClock {
	return &ManualClock{}
}

// Now returns the current manual reading.
func (c *ManualClock) Now() Sec {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Advance moves the clock forward by d. Negative d would break the
// monotonic contract; it panics.
func (c *ManualClock) Advance(d Sec) {
	if d < 0 {
		panic("beat: manual clock moved backwards")
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now += d
}

// Set moves the clock to the absolute reading t. Going backwards
// panics, same as Advance.
func (c *ManualClock) Set(t Sec) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if t < c.now {
		panic("beat: manual clock moved backwards")
	}
	c.now = t
}
