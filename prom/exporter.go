// Package prom exposes heart statistics as Prometheus metrics.
package prom

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/edgedlt/beat"
)

// Exporter is a prometheus.Collector over the statistics of a single
// heart. Register it once, then call Observe from the state's
// per-second hook so every completed cycle gets captured. Until the
// first Observe the collector emits no series, which scrapers read as
// "no data yet".
type Exporter struct {
	mu     sync.RWMutex
	ticks  beat.Stat
	frames beat.Stat
	seen   bool

	tickRate    *prometheus.Desc
	frameRate   *prometheus.Desc
	ticksTotal  *prometheus.Desc
	framesTotal *prometheus.Desc
	tickAvg     *prometheus.Desc
	frameAvg    *prometheus.Desc
	cycles      *prometheus.Desc
}

// NewExporter creates an exporter whose metrics live under the given
// namespace. An empty namespace defaults to "beat".
func NewExporter(namespace string) *Exporter {
	if namespace == "" {
		namespace = "beat"
	}
	desc := func(name, help string) *prometheus.Desc {
		return prometheus.NewDesc(prometheus.BuildFQName(namespace, "", name), help, nil, nil)
	}
	return &Exporter{
		tickRate:    desc("tick_rate", "Updates run during the cycle observed last."),
		frameRate:   desc("frame_rate", "Frames rendered during the cycle observed last."),
		ticksTotal:  desc("ticks_total", "Updates run since the heart started."),
		framesTotal: desc("frames_total", "Frames rendered since the heart started."),
		tickAvg:     desc("tick_seconds_avg", "Average update duration in seconds. NaN until the first update."),
		frameAvg:    desc("frame_seconds_avg", "Average frame duration in seconds. NaN until the first frame."),
		cycles:      desc("uptime_cycles", "One-based index of the cycle in progress."),
	}
}

// Observe snapshots the heart's statistics. Safe to call from the loop
// thread while a scrape reads the previous snapshot.
func (e *Exporter) Observe(h *beat.Heart) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.ticks = h.Ticks()
	e.frames = h.Frames()
	e.seen = true
}

// Describe implements prometheus.Collector.
func (e *Exporter) Describe(ch chan<- *prometheus.Desc) {
	ch <- e.tickRate
	ch <- e.frameRate
	ch <- e.ticksTotal
	ch <- e.framesTotal
	ch <- e.tickAvg
	ch <- e.frameAvg
	ch <- e.cycles
}

// Collect implements prometheus.Collector.
func (e *Exporter) Collect(ch chan<- prometheus.Metric) {
	e.mu.RLock()
	ticks, frames, seen := e.ticks, e.frames, e.seen
	e.mu.RUnlock()
	if !seen {
		return
	}
	ch <- prometheus.MustNewConstMetric(e.tickRate, prometheus.GaugeValue, float64(ticks.Rate()))
	ch <- prometheus.MustNewConstMetric(e.frameRate, prometheus.GaugeValue, float64(frames.Rate()))
	ch <- prometheus.MustNewConstMetric(e.ticksTotal, prometheus.CounterValue, float64(ticks.Count()))
	ch <- prometheus.MustNewConstMetric(e.framesTotal, prometheus.CounterValue, float64(frames.Count()))
	ch <- prometheus.MustNewConstMetric(e.tickAvg, prometheus.GaugeValue, ticks.Avg().Seconds())
	ch <- prometheus.MustNewConstMetric(e.frameAvg, prometheus.GaugeValue, frames.Avg().Seconds())
	ch <- prometheus.MustNewConstMetric(e.cycles, prometheus.GaugeValue, float64(ticks.Cycle()))
}
