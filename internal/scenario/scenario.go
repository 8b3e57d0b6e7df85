// Package scenario drives hearts through scripted clock schedules and
// checks the loop's bookkeeping along the way.
//
// A Schedule describes how time behaves during a run: how fast the
// clock creeps on every reading, how much simulated work each hook
// costs, and where stalls strike. The Executor replays the schedule
// against a real heart and the detector inspects the per-second trace
// for violations of the loop's invariants.
package scenario

import (
	"fmt"

	"github.com/edgedlt/beat"
)

// Schedule defines one scripted run.
type Schedule struct {
	// Rate is the tick rate in hertz.
	Rate float64

	// Limit is the render policy during the run.
	Limit beat.Limit

	// UpdateCost is the simulated time each update takes.
	UpdateCost beat.Sec

	// RenderCost is the simulated time each frame takes.
	RenderCost beat.Sec

	// ReadStep advances the clock on every reading, standing in for
	// the cost of the loop machinery itself. It must be positive, or
	// an idle pass would never move time forward.
	ReadStep beat.Sec

	// Seconds is the number of one-second cycles to run.
	Seconds int

	// Stalls injects extra elapsed time at the end of the given
	// cycles, keyed by 1-based cycle index.
	Stalls map[int]beat.Sec
}

// ValidateSchedule checks that a schedule terminates and stays inside
// the loop's operating envelope.
func ValidateSchedule(s Schedule) error {
	if !(s.Rate > 0) {
		return fmt.Errorf("rate must be positive, got %v", s.Rate)
	}
	if s.Seconds < 1 {
		return fmt.Errorf("seconds must be >= 1, got %d", s.Seconds)
	}

	target := beat.Sec(1 / s.Rate)
	if s.ReadStep <= 0 {
		return fmt.Errorf("read step must be positive, got %v", s.ReadStep)
	}
	if s.ReadStep > target.Div(64) {
		return fmt.Errorf("read step %v too coarse for target %v", s.ReadStep, target)
	}
	if s.UpdateCost < 0 {
		return fmt.Errorf("update cost must not be negative, got %v", s.UpdateCost)
	}
	// Updates that outlast the step would never drain.
	if s.UpdateCost > target.Mul(0.8) {
		return fmt.Errorf("update cost %v too close to target %v", s.UpdateCost, target)
	}
	if s.RenderCost < 0 {
		return fmt.Errorf("render cost must not be negative, got %v", s.RenderCost)
	}

	for cycle, stall := range s.Stalls {
		if cycle < 1 || cycle > s.Seconds {
			return fmt.Errorf("stall cycle %d outside run of %d seconds", cycle, s.Seconds)
		}
		if stall < 0 {
			return fmt.Errorf("stall must not be negative, got %v", stall)
		}
	}

	return nil
}

// Observation records the statistics visible at one per-second hook.
type Observation struct {
	// Cycle is the 1-based cycle index reported by the heart.
	Cycle uint64

	// Elapsed is the clock position, peeked without a reading.
	Elapsed beat.Sec

	// Ticks and Frames are value copies of the heart's statistics,
	// taken before the cycle is closed.
	Ticks  beat.Stat
	Frames beat.Stat
}

// Report is the outcome of executing one schedule.
type Report struct {
	// Schedule is the schedule that was executed.
	Schedule Schedule

	// Success indicates that no violations were detected.
	Success bool

	// Violations contains any detected invariant violations.
	Violations []Violation

	// Trace holds one observation per completed cycle.
	Trace []Observation
}

// Violation is one detected break of a loop invariant.
type Violation struct {
	// Type of violation.
	Type ViolationType

	// Description of what went wrong.
	Description string

	// Cycle where the violation was observed.
	Cycle uint64
}

// ViolationType categorizes invariant violations.
type ViolationType int

const (
	// ViolationNone - no violation.
	ViolationNone ViolationType = iota

	// ViolationPacing - tick count drifted from the clock.
	ViolationPacing

	// ViolationBookkeeping - statistics inconsistent across cycles.
	ViolationBookkeeping

	// ViolationLimit - renders defied the limit policy.
	ViolationLimit

	// ViolationBilling - span totals below the injected costs.
	ViolationBilling
)

func (v ViolationType) String() string {
	switch v {
	case ViolationNone:
		return "None"
	case ViolationPacing:
		return "Pacing"
	case ViolationBookkeeping:
		return "Bookkeeping"
	case ViolationLimit:
		return "Limit"
	case ViolationBilling:
		return "Billing"
	default:
		return "Unknown"
	}
}
