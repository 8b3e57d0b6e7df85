// Package telemetry publishes heart statistics with abstraction for
// testing.
package telemetry

import (
	"encoding/json"
	"math"
	"time"

	"github.com/edgedlt/beat"
)

// Topic is the default MQTT topic for heart statistics.
const Topic = "beat/heart/stats"

// Publisher publishes snapshots of a running heart.
type Publisher interface {
	// Publish sends one snapshot to the sink.
	// Returns error if publishing fails (should not crash the loop).
	Publish(s Snapshot) error

	// Close disconnects from the sink.
	Close() error
}

// Snapshot is a point-in-time summary of a heart, shaped for the wire.
type Snapshot struct {
	Timestamp string      `json:"timestamp"`
	Beating   bool        `json:"beating"`
	Limit     string      `json:"limit"`
	Target    float64     `json:"target_seconds"`
	Cycle     uint64      `json:"cycle"`
	Ticks     StatSummary `json:"ticks"`
	Frames    StatSummary `json:"frames"`
}

// StatSummary carries one statistic's numbers. Averages that are still
// undefined (NaN in the library) are reported as zero, because JSON has
// no NaN.
type StatSummary struct {
	Count        uint64  `json:"count"`
	Rate         uint64  `json:"rate"`
	TotalSeconds float64 `json:"total_seconds"`
	AvgSeconds   float64 `json:"avg_seconds"`
	AvgRate      float64 `json:"avg_rate"`
}

// Capture summarizes the heart right now. The heart is not safe for
// concurrent use, so call this from the loop's own hooks, typically the
// per-second one.
func Capture(h *beat.Heart) Snapshot {
	return Snapshot{
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Beating:   h.Beating(),
		Limit:     h.Limit().String(),
		Target:    h.Target().Seconds(),
		Cycle:     h.Ticks().Cycle(),
		Ticks:     summarize(h.Ticks()),
		Frames:    summarize(h.Frames()),
	}
}

func summarize(s beat.Stat) StatSummary {
	return StatSummary{
		Count:        s.Count(),
		Rate:         s.Rate(),
		TotalSeconds: s.Total().Seconds(),
		AvgSeconds:   finite(s.Avg().Seconds()),
		AvgRate:      finite(s.AvgRate()),
	}
}

func finite(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// FormatPayload creates the JSON payload for a snapshot.
func FormatPayload(s Snapshot) ([]byte, error) {
	return json.Marshal(s)
}
