package beat

import (
	"errors"
	"fmt"
)

// Error classes for the beat package.
// Use errors.Is() to check the class, then inspect the message for details.
//
// Error Classification:
//   - ErrParse: Malformed textual input - reject the input and carry on
//   - Contract violations (nil clock, non-positive rate, double start) are
//     not errors at all: they panic, because they can only be written into
//     a program, never produced by runtime conditions.
//   - Undefined statistics (average of zero events) are not errors either:
//     the accessors return NaN.
var (
	// ErrParse indicates text that does not encode a value of the
	// requested type. Examples: a second count that is not a float,
	// an unknown render limit name.
	ErrParse = errors.New("parse error")
)

// Unexported helpers to wrap errors with the appropriate class.

func wrapParsef(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrParse, fmt.Sprintf(format, args...))
}
