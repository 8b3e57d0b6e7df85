package beat

import (
	"fmt"
	"strconv"
	"time"
)

// Sec is a span of time measured in seconds.
//
// It is a plain float64 underneath, so the native +, -, unary minus and
// comparison operators are the intended arithmetic. Negative values are
// legal and meaningful: a rebased stopwatch can sit ahead of its clock.
//
// There is no Sec*Sec product and no Sec/Sec quotient; ratios between
// durations go through Seconds().
type Sec float64

// SI multiples and common calendar units, all expressed in seconds.
const (
	// Nano is one nanosecond.
	Nano Sec = 1e-9

	// Micro is one microsecond.
	Micro Sec = 1e-6

	// Milli is one millisecond.
	Milli Sec = 1e-3

	// Second is the unit itself.
	Second Sec = 1

	// Kilo is one thousand seconds.
	Kilo Sec = 1e3

	// Mega is one million seconds.
	Mega Sec = 1e6

	// Giga is one billion seconds.
	Giga Sec = 1e9

	// Minute is sixty seconds.
	Minute Sec = 60

	// Hour is sixty minutes.
	Hour Sec = 60 * 60

	// Day is twenty-four hours.
	Day Sec = 24 * 60 * 60
)

// FromDuration converts a time.Duration to Sec.
func FromDuration(d time.Duration) Sec {
	return Sec(d.Seconds())
}

// Mul returns the duration scaled by k.
func (s Sec) Mul(k float64) Sec {
	return Sec(float64(s) * k)
}

// Div returns the duration divided by k.
func (s Sec) Div(k float64) Sec {
	return Sec(float64(s) / k)
}

// Seconds returns the raw second count.
func (s Sec) Seconds() float64 {
	return float64(s)
}

// Duration converts to time.Duration, truncating below nanosecond
// granularity. Values outside the time.Duration range overflow the same
// way a float64 to int64 conversion does.
func (s Sec) Duration() time.Duration {
	return time.Duration(float64(s) * float64(time.Second))
}

// String formats the duration as "<value> s".
func (s Sec) String() string {
	return fmt.Sprintf("%g s", float64(s))
}

// ParseSec parses a plain second count, such as "0.25" or "-3". No unit
// suffix is accepted. The returned error wraps ErrParse.
func ParseSec(text string) (Sec, error) {
	v, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return 0, wrapParsef("second count %q", text)
	}
	return Sec(v), nil
}
