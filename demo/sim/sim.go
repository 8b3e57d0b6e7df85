// Package sim is the example domain driven by the demo binary.
package sim

import (
	"fmt"
	"io"
	"math"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/edgedlt/beat"
	"github.com/edgedlt/beat/prom"
	"github.com/edgedlt/beat/telemetry"
)

// Wave frequency and the console bar width.
const (
	waveHz   = 0.25
	barWidth = 40
)

// Options wires the support services into the loop types, which are
// zero-constructed by beat.Start.
type Options struct {
	// Logger for lifecycle and per-cycle events. Nil keeps a no-op.
	Logger *zap.Logger
	// Exporter is observed every second when set.
	Exporter *prom.Exporter
	// Publisher receives a snapshot every second when set.
	Publisher telemetry.Publisher
	// OnSecond receives the same snapshot, for extra consumers such as
	// the status server.
	OnSecond func(telemetry.Snapshot)
	// Seconds stops the run after this many cycles. Zero runs until
	// stopped from outside.
	Seconds int
	// Out is the render target. Nil draws to stdout.
	Out io.Writer
}

var cfg Options

// Configure sets the wiring used by the next run. Call it before
// beat.Start.
func Configure(o Options) {
	if o.Logger == nil {
		o.Logger = zap.NewNop()
	}
	if o.Out == nil {
		o.Out = os.Stdout
	}
	cfg = o
}

// Wave is a phase accumulator advanced a fixed step per tick. Rendering
// blends the phase between the last two ticks, so the drawn level moves
// smoothly even when frames outpace updates.
type Wave struct {
	Phase float64
	Secs  int
}

// Add implements linear blending on the phase. Bookkeeping fields ride
// along from the receiver.
func (w Wave) Add(o Wave) Wave {
	return Wave{Phase: w.Phase + o.Phase, Secs: w.Secs}
}

// Scale implements linear blending on the phase.
func (w Wave) Scale(f float64) Wave {
	return Wave{Phase: w.Phase * f, Secs: w.Secs}
}

// Init logs the run parameters and the setup cost.
func (w *Wave) Init(h *beat.Heart, init *beat.Timer) {
	cfg.Logger.Info("wave starting",
		zap.Float64("target_seconds", h.Target().Seconds()),
		zap.Stringer("limit", h.Limit()),
		zap.Duration("setup", init.Elapsed().Duration()),
	)
}

// Update advances the phase one fixed step.
func (w *Wave) Update(h *beat.Heart) {
	w.Phase += 2 * math.Pi * waveHz * h.Target().Seconds()
}

// Sec publishes statistics and stops the run once enough cycles passed.
func (w *Wave) Sec(h *beat.Heart) {
	w.Secs++
	snap := telemetry.Capture(h)
	if cfg.Exporter != nil {
		cfg.Exporter.Observe(h)
	}
	if cfg.Publisher != nil {
		if err := cfg.Publisher.Publish(snap); err != nil {
			cfg.Logger.Warn("publish failed", zap.Error(err))
		}
	}
	if cfg.OnSecond != nil {
		cfg.OnSecond(snap)
	}
	cfg.Logger.Debug("cycle complete",
		zap.Uint64("cycle", snap.Cycle),
		zap.Uint64("ticks", snap.Ticks.Rate),
		zap.Uint64("frames", snap.Frames.Rate),
	)
	if cfg.Seconds > 0 && w.Secs >= cfg.Seconds {
		h.Stop()
	}
}

// Console draws the wave level as a bar, redrawn in place.
type Console struct{}

// Render draws the interpolated level.
func (c *Console) Render(h *beat.Heart, w Wave) {
	level := (math.Sin(w.Phase) + 1) / 2
	filled := int(level*barWidth + 0.5)
	bar := strings.Repeat("=", filled) + strings.Repeat(" ", barWidth-filled)
	fmt.Fprintf(cfg.Out, "\r[%s] %5.1f%%", bar, level*100)
}
