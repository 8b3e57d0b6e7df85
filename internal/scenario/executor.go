package scenario

import (
	"fmt"

	"github.com/edgedlt/beat"
)

// scriptClock advances a fixed step on every reading, plus whatever
// the hooks inject on top.
type scriptClock struct {
	now  beat.Sec
	step beat.Sec
}

func (c *scriptClock) Now() beat.Sec {
	n := c.now
	c.now += c.step
	return n
}

// inject adds elapsed time without counting as a reading.
func (c *scriptClock) inject(d beat.Sec) {
	c.now += d
}

// peek reports the clock position without advancing it.
func (c *scriptClock) peek() beat.Sec {
	return c.now
}

// Executor replays one schedule against a heart.
type Executor struct {
	schedule Schedule
	clock    *scriptClock
	trace    []Observation
}

// NewExecutor creates an executor for the given schedule.
func NewExecutor(s Schedule) (*Executor, error) {
	if err := ValidateSchedule(s); err != nil {
		return nil, fmt.Errorf("invalid schedule: %w", err)
	}

	return &Executor{
		schedule: s,
		clock:    &scriptClock{step: s.ReadStep},
	}, nil
}

// active carries the running executor into the zero-constructed loop
// types. One schedule runs at a time.
var active *Executor

// probe simulates update work and records the per-second trace.
type probe struct {
	secs int
}

func (p probe) Add(probe) probe                { return p }
func (p probe) Scale(float64) probe            { return p }
func (p *probe) Init(*beat.Heart, *beat.Timer) {}

func (p *probe) Update(*beat.Heart) {
	active.clock.inject(active.schedule.UpdateCost)
}

func (p *probe) Sec(h *beat.Heart) {
	p.secs++
	active.observe(h)
	if stall, ok := active.schedule.Stalls[p.secs]; ok {
		active.clock.inject(stall)
	}
	if p.secs >= active.schedule.Seconds {
		h.Stop()
	}
}

// probeRenderer simulates frame work.
type probeRenderer struct{}

func (r *probeRenderer) Render(*beat.Heart, probe) {
	active.clock.inject(active.schedule.RenderCost)
}

func (e *Executor) observe(h *beat.Heart) {
	e.trace = append(e.trace, Observation{
		Cycle:   h.Ticks().Cycle(),
		Elapsed: e.clock.peek(),
		Ticks:   h.Ticks(),
		Frames:  h.Frames(),
	})
}

// Run executes the schedule and reports any detected violations.
func (e *Executor) Run() Report {
	active = e
	defer func() { active = nil }()

	h := beat.NewHeart(e.schedule.Rate, e.clock, beat.WithLimit(e.schedule.Limit))
	beat.Start[probe, probeRenderer](h)

	violations := checkTrace(e.schedule, h.Target(), e.trace)
	return Report{
		Schedule:   e.schedule,
		Success:    len(violations) == 0,
		Violations: violations,
		Trace:      e.trace,
	}
}
