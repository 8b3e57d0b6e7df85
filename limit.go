package beat

import "strings"

// Limit is the render limit policy of a Heart: how often the renderer
// runs relative to the loop.
type Limit uint8

const (
	// Always renders on every loop pass. This is the default; frames
	// are produced as fast as the host allows.
	Always Limit = iota

	// Once renders only when the current statistics cycle has no frame
	// yet, giving roughly one frame per second.
	Once

	// Never skips rendering entirely.
	Never
)

// allows decides whether to render given the frame count of the cycle
// in progress.
func (l Limit) allows(rate uint64) bool {
	switch l {
	case Once:
		return rate == 0
	case Never:
		return false
	default:
		return true
	}
}

// String returns the lowercase policy name.
func (l Limit) String() string {
	switch l {
	case Once:
		return "once"
	case Never:
		return "never"
	default:
		return "always"
	}
}

// ParseLimit parses a policy name as printed by String, ignoring case.
// The returned error wraps ErrParse.
func ParseLimit(text string) (Limit, error) {
	switch strings.ToLower(text) {
	case "always":
		return Always, nil
	case "once":
		return Once, nil
	case "never":
		return Never, nil
	default:
		return Always, wrapParsef("render limit %q", text)
	}
}
