package beat

import "go.uber.org/zap"

// Option is a functional option for configuring a Heart.
//
// Unlike runtime input, an impossible option value is a bug in the
// calling program, so options panic instead of returning errors.
type Option func(*Heart)

// WithLogger sets the structured logger. The default is zap.NewNop();
// passing nil keeps it.
func WithLogger(logger *zap.Logger) Option {
	return func(h *Heart) {
		if logger != nil {
			h.logger = logger
		}
	}
}

// WithLimit sets the initial render limit policy. The default is
// Always.
func WithLimit(l Limit) Option {
	return func(h *Heart) {
		h.limit = l
	}
}
