package beat

// Compile-time interface verification.
// These ensure the test types correctly implement production contracts.
var (
	_ Clock = (*SystemClock)(nil)
	_ Clock = (*ManualClock)(nil)
	_ Clock = (*countingClock)(nil)
	_ Clock = (*stepClock)(nil)

	_ = Start[hookState, hookRenderer]
)

// countingClock wraps a ManualClock and counts readings, so tests can
// prove an operation never touched the clock.
type countingClock struct {
	ManualClock
	reads int
}

func (c *countingClock) Now() Sec {
	c.reads++
	return c.ManualClock.Now()
}

// stepClock advances by a fixed step on every reading, like a host
// whose every clock read costs the same amount of time. It keeps a
// spinning loop progressing without any hook touching the clock.
type stepClock struct {
	now  Sec
	step Sec
}

func (c *stepClock) Now() Sec {
	c.now += c.step
	return c.now
}

// harness carries per-test wiring into the loop hooks. Start builds its
// state and renderer as zero values, so scripted tests hand them their
// script through this package variable; each test assigns it before
// calling Start.
var harness *loopHarness

type loopHarness struct {
	onInit   func(h *Heart, init *Timer)
	onUpdate func(h *Heart, tick int)
	onSec    func(h *Heart, sec int)
	onRender func(h *Heart, frame int, drawn float64)

	ticks  int
	secs   int
	frames int
	drawn  []float64
}

// hookState drives a Heart under test: a counter advanced by one per
// tick, so every interpolated frame exposes its blend weights through
// the drawn value.
type hookState struct {
	v float64
}

func (s hookState) Add(other hookState) hookState {
	return hookState{v: s.v + other.v}
}

func (s hookState) Scale(k float64) hookState {
	return hookState{v: s.v * k}
}

func (s *hookState) Init(h *Heart, init *Timer) {
	if harness.onInit != nil {
		harness.onInit(h, init)
	}
}

func (s *hookState) Update(h *Heart) {
	s.v++
	harness.ticks++
	if harness.onUpdate != nil {
		harness.onUpdate(h, harness.ticks)
	}
}

func (s *hookState) Sec(h *Heart) {
	harness.secs++
	if harness.onSec != nil {
		harness.onSec(h, harness.secs)
	}
}

// hookRenderer records every drawn state in the harness.
type hookRenderer struct{}

func (r *hookRenderer) Render(h *Heart, s hookState) {
	harness.frames++
	harness.drawn = append(harness.drawn, s.v)
	if harness.onRender != nil {
		harness.onRender(h, harness.frames, s.v)
	}
}
