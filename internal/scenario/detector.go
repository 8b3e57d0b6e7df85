package scenario

import (
	"fmt"

	"github.com/edgedlt/beat"
)

// roundoff absorbs the difference between multiplying a count by the
// target and the loop's own repeated additions.
const roundoff = 1e-9

// checkTrace inspects a per-second trace for invariant violations.
func checkTrace(s Schedule, target beat.Sec, trace []Observation) []Violation {
	var violations []Violation
	add := func(t ViolationType, cycle uint64, format string, args ...interface{}) {
		violations = append(violations, Violation{
			Type:        t,
			Cycle:       cycle,
			Description: fmt.Sprintf(format, args...),
		})
	}

	if len(trace) != s.Seconds {
		add(ViolationBookkeeping, 0, "ran %d cycles, scheduled %d", len(trace), s.Seconds)
	}

	// Elapsed time between the last drain and the observation is
	// bounded by one target plus the cost of finishing the pass.
	slack := target.Seconds() + s.UpdateCost.Seconds() + s.RenderCost.Seconds() + 16*s.ReadStep.Seconds()

	var prevTicks, prevFrames uint64
	for i, obs := range trace {
		cycle := uint64(i + 1)

		if obs.Cycle != cycle {
			add(ViolationBookkeeping, cycle, "heart reports cycle %d", obs.Cycle)
		}

		ticks, frames := obs.Ticks, obs.Frames
		if ticks.Count() < prevTicks {
			add(ViolationBookkeeping, cycle, "tick count fell from %d to %d", prevTicks, ticks.Count())
		} else if ticks.Rate() != ticks.Count()-prevTicks {
			add(ViolationBookkeeping, cycle, "tick rate %d, count grew by %d", ticks.Rate(), ticks.Count()-prevTicks)
		}
		if frames.Count() < prevFrames {
			add(ViolationBookkeeping, cycle, "frame count fell from %d to %d", prevFrames, frames.Count())
		} else if frames.Rate() != frames.Count()-prevFrames {
			add(ViolationBookkeeping, cycle, "frame rate %d, count grew by %d", frames.Rate(), frames.Count()-prevFrames)
		}
		prevTicks, prevFrames = ticks.Count(), frames.Count()

		// Ticks never outrun the clock, and never fall more than one
		// pass behind it.
		consumed := float64(ticks.Count()) * target.Seconds()
		elapsed := obs.Elapsed.Seconds()
		if consumed > elapsed*(1+roundoff)+roundoff {
			add(ViolationPacing, cycle, "%d ticks consumed %v, clock at %v", ticks.Count(), consumed, obs.Elapsed)
		}
		if elapsed > consumed+slack+roundoff {
			add(ViolationPacing, cycle, "clock at %v, %d ticks consumed only %v", obs.Elapsed, ticks.Count(), consumed)
		}

		switch s.Limit {
		case beat.Never:
			if frames.Count() != 0 {
				add(ViolationLimit, cycle, "%d frames rendered under never", frames.Count())
			}
		case beat.Once:
			if frames.Rate() > 1 {
				add(ViolationLimit, cycle, "%d frames in one cycle under once", frames.Rate())
			}
		case beat.Always:
			if frames.Rate() < 1 {
				add(ViolationLimit, cycle, "no frame in a cycle under always")
			}
		}

		if ticks.Count() > 0 && ticks.Avg().Seconds() < s.UpdateCost.Seconds()*(1-roundoff) {
			add(ViolationBilling, cycle, "tick average %v below update cost %v", ticks.Avg(), s.UpdateCost)
		}
		if frames.Count() > 0 && frames.Avg().Seconds() < s.RenderCost.Seconds()*(1-roundoff) {
			add(ViolationBilling, cycle, "frame average %v below render cost %v", frames.Avg(), s.RenderCost)
		}
	}

	return violations
}
