package beat

import (
	"fmt"
	"math"

	"go.uber.org/zap"
)

// Heart drives a fixed-timestep real-time loop.
//
// One pass of the loop performs three actions:
//   - Tick drain: run the simulation update once per full target tick
//     elapsed, consuming exactly one tick from the iteration stopwatch
//     each time
//   - Render: if the limit policy allows, draw a blend of the two most
//     recent states, weighted by the fraction of the next tick already
//     elapsed
//   - Second: once per wall second, run the per-second hook, then
//     refresh the tick and frame statistics; the second stopwatch is
//     rebased by subtraction, so the one-second schedule never drifts
//
// The fixed tick quantum makes simulated time a pure function of the
// tick count: render pacing and host speed cannot change what the
// simulation computes, only how smoothly it is shown.
//
// A Heart belongs to the goroutine that calls Start. Hooks run on that
// goroutine and the loop spins without sleeping between passes. Not
// safe for concurrent use.
type Heart struct {
	beating bool
	spent   bool
	limit   Limit
	target  Sec
	clock   Clock

	// Profiling sinks, owned exclusively. Accessors return copies.
	ticks  Stat
	frames Stat

	logger *zap.Logger
}

// NewHeart creates a Heart ticking rate times per second on the given
// clock. A non-positive or non-finite rate and a nil clock are
// programming errors, not runtime conditions: both panic.
func NewHeart(rate float64, c Clock, opts ...Option) *Heart {
	if c == nil {
		panic("beat: nil clock")
	}
	if rate <= 0 || math.IsNaN(rate) || math.IsInf(rate, 0) {
		panic(fmt.Sprintf("beat: invalid tick rate %v", rate))
	}
	h := &Heart{
		target: Second.Div(rate),
		clock:  c,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Start runs the heart's loop until a hook calls Stop.
//
// S is the simulation state and R the renderer. Both are created as
// zero values, so a type's zero value must be its ready state; per-run
// configuration belongs in Init. The pointer parameters are inferred,
// callers name only the value types:
//
//	beat.Start[sim.Wave, sim.Console](heart)
//
// Start panics when the heart is already beating or has already run
// once. A Heart beats at most once; build a new one to run again.
func Start[S, R any, PS State[S], PR Renderer[S, R]](h *Heart) {
	if h.beating {
		panic("beat: heart is already beating")
	}
	if h.spent {
		panic("beat: heart is spent")
	}
	h.beating = true
	defer func() {
		h.beating = false
		h.spent = true
	}()

	h.logger.Debug("heart starting",
		zap.Float64("rate", 1/h.target.Seconds()),
		zap.Stringer("limit", h.limit))

	init := NewTimer(h.clock)
	var cur, pre S
	var ren R
	PS(&cur).Init(h, init)

	// Fresh stopwatches so Init work is not billed to the first ticks.
	iter := NewTimer(h.clock)
	sec := NewTimer(h.clock)

	for h.beating {
		for iter.Passed(h.target) {
			sp := NewSpan(h.clock, &h.ticks)
			pre = cur
			PS(&cur).Update(h)
			sp.End()
			iter.Advance(h.target)
		}

		if h.limit.allows(h.frames.Rate()) {
			sp := NewSpan(h.clock, &h.frames)
			rem := iter.Elapsed().Seconds() / h.target.Seconds()
			blended := PS(&pre).Scale(1 - rem)
			drawn := PS(&blended).Add(PS(&cur).Scale(rem))
			PR(&ren).Render(h, drawn)
			sp.End()
		}

		if sec.Passed(Second) {
			sec.Advance(Second)
			PS(&cur).Sec(h)
			h.logger.Debug("cycle closed",
				zap.Uint64("cycle", h.ticks.Cycle()),
				zap.Uint64("ticks", h.ticks.Rate()),
				zap.Uint64("frames", h.frames.Rate()))
			h.ticks.Refresh()
			h.frames.Refresh()
		}
	}

	h.logger.Debug("heart stopped",
		zap.Uint64("ticks", h.ticks.Count()),
		zap.Uint64("frames", h.frames.Count()))
}

// Stop makes the loop exit at the top of the next pass. The pass in
// flight still finishes, render and second steps included. Meant to be
// called from the hooks; a stopped heart cannot be restarted.
func (h *Heart) Stop() {
	h.beating = false
}

// SetLimit changes the render limit policy, effective from the next
// pass.
func (h *Heart) SetLimit(l Limit) {
	h.limit = l
}

// Limit returns the current render limit policy.
func (h *Heart) Limit() Limit {
	return h.limit
}

// Target returns the duration of one tick.
func (h *Heart) Target() Sec {
	return h.target
}

// Beating reports whether the loop is running.
func (h *Heart) Beating() bool {
	return h.beating
}

// Ticks returns a copy of the simulation update statistics.
func (h *Heart) Ticks() Stat {
	return h.ticks
}

// Frames returns a copy of the render statistics.
func (h *Heart) Frames() Stat {
	return h.frames
}
