package scenario

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edgedlt/beat"
)

// TestValidateSchedule tests the operating envelope.
func TestValidateSchedule(t *testing.T) {
	valid := Schedule{
		Rate:       4,
		Limit:      beat.Always,
		UpdateCost: 0.03125,
		RenderCost: 0.0625,
		ReadStep:   1.0 / 1024,
		Seconds:    2,
	}
	require.NoError(t, ValidateSchedule(valid))

	tests := []struct {
		name   string
		mutate func(*Schedule)
	}{
		{"zero rate", func(s *Schedule) { s.Rate = 0 }},
		{"negative rate", func(s *Schedule) { s.Rate = -60 }},
		{"zero seconds", func(s *Schedule) { s.Seconds = 0 }},
		{"zero read step", func(s *Schedule) { s.ReadStep = 0 }},
		{"coarse read step", func(s *Schedule) { s.ReadStep = 0.25 }},
		{"negative update cost", func(s *Schedule) { s.UpdateCost = -1 }},
		{"update cost at target", func(s *Schedule) { s.UpdateCost = 0.25 }},
		{"negative render cost", func(s *Schedule) { s.RenderCost = -1 }},
		{"stall before run", func(s *Schedule) { s.Stalls = map[int]beat.Sec{0: 1} }},
		{"stall after run", func(s *Schedule) { s.Stalls = map[int]beat.Sec{3: 1} }},
		{"negative stall", func(s *Schedule) { s.Stalls = map[int]beat.Sec{1: -1} }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := valid
			tt.mutate(&s)
			assert.Error(t, ValidateSchedule(s))
		})
	}
}

// TestNewExecutor_Invalid tests that bad schedules are rejected up
// front.
func TestNewExecutor_Invalid(t *testing.T) {
	_, err := NewExecutor(Schedule{Rate: 0, Seconds: 1})
	assert.Error(t, err)
}

// TestGenerator_Deterministic tests that a seed reproduces the suite.
func TestGenerator_Deterministic(t *testing.T) {
	config := DefaultGeneratorConfig()
	config.Seed = 42

	first := NewGenerator(config).GenerateN(5)
	second := NewGenerator(config).GenerateN(5)
	assert.Equal(t, first, second)
}

// TestGenerator_Valid tests that every generated schedule is runnable.
func TestGenerator_Valid(t *testing.T) {
	config := DefaultGeneratorConfig()
	config.Seed = 7

	for i, s := range NewGenerator(config).GenerateN(50) {
		assert.NoError(t, ValidateSchedule(s), "schedule %d: %+v", i, s)
	}
}

// TestExecutor_Run tests one hand-picked schedule end to end.
func TestExecutor_Run(t *testing.T) {
	ex, err := NewExecutor(Schedule{
		Rate:       4,
		Limit:      beat.Always,
		UpdateCost: 0.03125,
		RenderCost: 0.0625,
		ReadStep:   1.0 / 1024,
		Seconds:    2,
	})
	require.NoError(t, err)

	report := ex.Run()
	assert.True(t, report.Success, "violations: %+v", report.Violations)
	require.Len(t, report.Trace, 2)
	assert.Equal(t, uint64(1), report.Trace[0].Cycle)
	assert.Equal(t, uint64(2), report.Trace[1].Cycle)
	assert.Greater(t, report.Trace[1].Ticks.Count(), report.Trace[0].Ticks.Count())
	assert.NotZero(t, report.Trace[0].Frames.Count())
}

// TestExecutor_StallCatchUp tests that an injected stall is drained.
func TestExecutor_StallCatchUp(t *testing.T) {
	ex, err := NewExecutor(Schedule{
		Rate:     30,
		Limit:    beat.Always,
		ReadStep: 1.0 / 30 / 256,
		Seconds:  3,
		Stalls:   map[int]beat.Sec{1: 2},
	})
	require.NoError(t, err)

	report := ex.Run()
	assert.True(t, report.Success, "violations: %+v", report.Violations)

	// The stall lands after cycle 1, so cycle 2 drains two extra
	// seconds worth of ticks in a burst.
	require.Len(t, report.Trace, 3)
	burst := report.Trace[1].Ticks.Rate()
	assert.GreaterOrEqual(t, burst, uint64(60))
}

// TestComprehensive tests the full suite of edge cases and random
// schedules against the detector.
func TestComprehensive(t *testing.T) {
	for i, s := range GenerateComprehensive(10) {
		ex, err := NewExecutor(s)
		require.NoError(t, err, "schedule %d: %+v", i, s)

		report := ex.Run()
		assert.True(t, report.Success, "schedule %d: %+v", i, report.Violations)
	}
}

// TestCheckTrace_Violations tests that the detector catches fabricated
// bad traces.
func TestCheckTrace_Violations(t *testing.T) {
	sched := Schedule{
		Rate:     2,
		Limit:    beat.Always,
		ReadStep: 0.001,
		Seconds:  1,
	}
	target := beat.Sec(0.5)

	// stat builds a Stat by replaying adds.
	stat := func(adds ...beat.Sec) beat.Stat {
		var st beat.Stat
		for _, d := range adds {
			st.Add(d)
		}
		return st
	}

	t.Run("short trace", func(t *testing.T) {
		vs := checkTrace(sched, target, nil)
		require.Len(t, vs, 1)
		assert.Equal(t, ViolationBookkeeping, vs[0].Type)
	})

	t.Run("wrong cycle", func(t *testing.T) {
		vs := checkTrace(sched, target, []Observation{{
			Cycle:   7,
			Elapsed: 1,
			Ticks:   stat(0.01, 0.01),
			Frames:  stat(0.01),
		}})
		require.NotEmpty(t, vs)
		assert.Equal(t, ViolationBookkeeping, vs[0].Type)
	})

	t.Run("rate mismatch", func(t *testing.T) {
		var ticks beat.Stat
		ticks.Add(0.01)
		ticks.Add(0.01)
		ticks.Refresh()
		ticks.Add(0.01) // count 3, rate 1

		vs := checkTrace(sched, target, []Observation{{
			Cycle:   1,
			Elapsed: 2,
			Ticks:   ticks,
			Frames:  stat(0.01),
		}})
		require.NotEmpty(t, vs)
		assert.Equal(t, ViolationBookkeeping, vs[0].Type)
	})

	t.Run("ticks outrun the clock", func(t *testing.T) {
		vs := checkTrace(sched, target, []Observation{{
			Cycle:   1,
			Elapsed: 0.5,
			Ticks:   stat(0.01, 0.01, 0.01, 0.01, 0.01, 0.01, 0.01, 0.01, 0.01, 0.01),
			Frames:  stat(0.01),
		}})
		require.NotEmpty(t, vs)
		assert.Equal(t, ViolationPacing, vs[0].Type)
	})

	t.Run("ticks fall behind the clock", func(t *testing.T) {
		vs := checkTrace(sched, target, []Observation{{
			Cycle:   1,
			Elapsed: 5,
			Ticks:   stat(0.01),
			Frames:  stat(0.01),
		}})
		require.NotEmpty(t, vs)
		assert.Equal(t, ViolationPacing, vs[0].Type)
	})

	t.Run("render under never", func(t *testing.T) {
		never := sched
		never.Limit = beat.Never

		vs := checkTrace(never, target, []Observation{{
			Cycle:   1,
			Elapsed: 1,
			Ticks:   stat(0.01, 0.01),
			Frames:  stat(0.01),
		}})
		require.NotEmpty(t, vs)
		assert.Equal(t, ViolationLimit, vs[0].Type)
	})

	t.Run("underbilled update", func(t *testing.T) {
		costly := sched
		costly.UpdateCost = 0.2

		vs := checkTrace(costly, target, []Observation{{
			Cycle:   1,
			Elapsed: 1,
			Ticks:   stat(0.05),
			Frames:  stat(0.01),
		}})
		require.NotEmpty(t, vs)
		assert.Equal(t, ViolationBilling, vs[0].Type)
	})
}

// TestViolationType_String tests the violation labels.
func TestViolationType_String(t *testing.T) {
	tests := []struct {
		vt   ViolationType
		want string
	}{
		{ViolationNone, "None"},
		{ViolationPacing, "Pacing"},
		{ViolationBookkeeping, "Bookkeeping"},
		{ViolationLimit, "Limit"},
		{ViolationBilling, "Billing"},
		{ViolationType(99), "Unknown"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.vt.String())
	}
}
