package telemetry

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edgedlt/beat"
)

// Compile-time interface verification.
var (
	_ Publisher = (*MQTTPublisher)(nil)
	_ Publisher = (*FakePublisher)(nil)
)

// TestCapture_FreshHeart tests summarizing a heart that never ran.
func TestCapture_FreshHeart(t *testing.T) {
	h := beat.NewHeart(20, beat.NewManualClock(), beat.WithLimit(beat.Once))

	s := Capture(h)

	assert.False(t, s.Beating)
	assert.Equal(t, "once", s.Limit)
	assert.InDelta(t, 0.05, s.Target, 1e-12)
	assert.Equal(t, uint64(1), s.Cycle)
	assert.Equal(t, uint64(0), s.Ticks.Count)
	assert.Zero(t, s.Ticks.AvgSeconds, "undefined averages are zero on the wire")
	assert.Zero(t, s.Frames.AvgRate)

	_, err := time.Parse(time.RFC3339, s.Timestamp)
	assert.NoError(t, err, "timestamp should be RFC3339")
}

// TestFormatPayload_RoundTrip tests the JSON wire shape.
func TestFormatPayload_RoundTrip(t *testing.T) {
	s := Snapshot{
		Timestamp: "2026-01-02T03:04:05Z",
		Beating:   true,
		Limit:     "always",
		Target:    0.02,
		Cycle:     7,
		Ticks:     StatSummary{Count: 350, Rate: 50, TotalSeconds: 1.75, AvgSeconds: 0.005, AvgRate: 50},
		Frames:    StatSummary{Count: 6, Rate: 1, TotalSeconds: 0.3, AvgSeconds: 0.05, AvgRate: 1},
	}

	payload, err := FormatPayload(s)
	require.NoError(t, err)

	var back Snapshot
	require.NoError(t, json.Unmarshal(payload, &back))
	assert.Equal(t, s, back)

	var keys map[string]any
	require.NoError(t, json.Unmarshal(payload, &keys))
	for _, k := range []string{"timestamp", "beating", "limit", "target_seconds", "cycle", "ticks", "frames"} {
		assert.Contains(t, keys, k)
	}
}

// TestFakePublisher_Records tests the in-memory publisher.
func TestFakePublisher_Records(t *testing.T) {
	f := NewFakePublisher()
	h := beat.NewHeart(1, beat.NewManualClock())

	require.NoError(t, f.Publish(Capture(h)))
	require.NoError(t, f.Publish(Capture(h)))
	assert.Len(t, f.Snapshots, 2)
	assert.Len(t, f.Payloads, 2)

	f.PublishError = errors.New("broker gone")
	assert.Error(t, f.Publish(Capture(h)))
	assert.Len(t, f.Snapshots, 2, "failed publishes record nothing")

	require.NoError(t, f.Close())
	assert.True(t, f.Closed)

	f.Reset()
	assert.Empty(t, f.Snapshots)
	assert.False(t, f.Closed)
}

// drive carries per-test wiring into the zero-constructed loop types.
var drive struct {
	clock *beat.ManualClock
	pub   Publisher
	secs  int
}

type relayState struct{}

func (s relayState) Add(relayState) relayState      { return relayState{} }
func (s relayState) Scale(float64) relayState       { return relayState{} }
func (s *relayState) Init(*beat.Heart, *beat.Timer) {}
func (s *relayState) Update(*beat.Heart)            {}

func (s *relayState) Sec(h *beat.Heart) {
	drive.secs++
	_ = drive.pub.Publish(Capture(h))
	if drive.secs == 3 {
		h.Stop()
	}
}

type nullRenderer struct{}

func (r *nullRenderer) Render(h *beat.Heart, s relayState) {
	drive.clock.Advance(0.5)
}

// TestPublisher_PerSecond tests capturing from the per-second hook of a
// running heart, the intended integration point.
func TestPublisher_PerSecond(t *testing.T) {
	fake := NewFakePublisher()
	drive.clock = beat.NewManualClock()
	drive.pub = fake
	drive.secs = 0

	h := beat.NewHeart(2, drive.clock)
	beat.Start[relayState, nullRenderer](h)

	require.Len(t, fake.Snapshots, 3)
	for i, s := range fake.Snapshots {
		assert.Equal(t, uint64(i+1), s.Cycle, "snapshot %d", i)
		assert.True(t, s.Beating, "captured mid-run")
	}
	assert.Equal(t, uint64(1), fake.Snapshots[0].Ticks.Rate)
	assert.Equal(t, uint64(2), fake.Snapshots[1].Ticks.Rate)
	assert.Equal(t, []uint64{1, 3, 5}, []uint64{
		fake.Snapshots[0].Ticks.Count,
		fake.Snapshots[1].Ticks.Count,
		fake.Snapshots[2].Ticks.Count,
	})
}
