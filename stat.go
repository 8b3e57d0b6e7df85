package beat

import "math"

// Stat accumulates timed events and tracks them per cycle.
//
// Two views of the same stream coexist: lifetime totals (Total, Count,
// Avg) and the cycle in progress (Rate). Refresh closes the current
// cycle, which zeroes the rate and moves the cycle index forward while
// leaving the lifetime numbers alone. Feeding one event per tick and
// refreshing once per second turns Rate into "ticks this second" and
// AvgRate into the long-run ticks-per-second.
//
// The zero value is ready to use. Averages over nothing are NaN, never
// a panic. Not safe for concurrent use; a Stat belongs to the goroutine
// driving it, and holders hand out value copies.
type Stat struct {
	total  Sec
	count  uint64
	rate   uint64
	cycles uint64 // completed cycles; the one in progress is not counted
}

// NewStat creates an empty Stat. Identical to the zero value.
func NewStat() Stat {
	return Stat{}
}

// Add accumulates one event that took d.
func (s *Stat) Add(d Sec) {
	s.total += d
	s.count++
	s.rate++
}

// Refresh closes the current cycle: the rate drops to zero and the
// cycle index moves forward. Lifetime totals are untouched.
func (s *Stat) Refresh() {
	s.rate = 0
	s.cycles++
}

// Total returns the accumulated duration of all events.
func (s Stat) Total() Sec {
	return s.total
}

// Count returns the lifetime event count.
func (s Stat) Count() uint64 {
	return s.count
}

// Rate returns the event count of the cycle in progress.
func (s Stat) Rate() uint64 {
	return s.rate
}

// Cycle returns the 1-based index of the cycle in progress. A fresh
// Stat is in cycle one.
func (s Stat) Cycle() uint64 {
	return s.cycles + 1
}

// Avg returns the mean duration per event, NaN before the first event.
func (s Stat) Avg() Sec {
	if s.count == 0 {
		return Sec(math.NaN())
	}
	return s.total.Div(float64(s.count))
}

// AvgRate returns the mean events per completed cycle, NaN before the
// first Refresh.
func (s Stat) AvgRate() float64 {
	if s.cycles == 0 {
		return math.NaN()
	}
	return float64(s.count) / float64(s.cycles)
}
