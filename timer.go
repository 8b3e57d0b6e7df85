package beat

// Timer is a stopwatch over a Clock.
//
// It remembers the clock reading it was started at and reports elapsed
// time as the distance from that mark. The mark can be pushed forward
// with Advance, which consumes elapsed time without ever touching the
// clock; fractional progress beyond the consumed amount is preserved
// exactly. That subtraction, as opposed to restarting the stopwatch, is
// what keeps periodic work drift-free.
//
// A Timer holds whatever Clock it was built with, so many timers can
// share one clock. Not safe for concurrent use.
type Timer struct {
	start Sec
	clock Clock
}

// NewTimer creates a Timer started at the clock's current reading.
// The clock must be non-nil.
func NewTimer(c Clock) *Timer {
	return &Timer{start: c.Now(), clock: c}
}

// Elapsed returns the time passed since the start mark. Every call
// reads the clock fresh. The result is negative when Advance has pushed
// the mark past the clock's present.
func (t *Timer) Elapsed() Sec {
	return t.clock.Now() - t.start
}

// Advance pushes the start mark forward by d, consuming exactly that
// much elapsed time. It reads nothing and runs in constant time.
func (t *Timer) Advance(d Sec) {
	t.start += d
}

// Passed reports whether at least d has elapsed.
func (t *Timer) Passed(d Sec) bool {
	return t.Elapsed() >= d
}
