// Package bench measures how faithfully a host sustains a tick rate.
package bench

import (
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"strings"
	"time"

	"github.com/edgedlt/beat"
)

// SystemInfo contains host information for the calibration report.
type SystemInfo struct {
	Timestamp    string
	OS           string
	Architecture string
	GoVersion    string
	CPU          string
	NumCPU       int
}

// GetSystemInfo retrieves current host information.
func GetSystemInfo() *SystemInfo {
	info := &SystemInfo{
		Timestamp:    time.Now().Format("2006-01-02 15:04:05 MST"),
		OS:           runtime.GOOS,
		Architecture: runtime.GOARCH,
		GoVersion:    runtime.Version(),
		NumCPU:       runtime.NumCPU(),
	}

	// Get CPU info (Linux)
	if runtime.GOOS == "linux" {
		if data, err := os.ReadFile("/proc/cpuinfo"); err == nil {
			lines := strings.Split(string(data), "\n")
			for _, line := range lines {
				if strings.HasPrefix(line, "model name") {
					parts := strings.Split(line, ":")
					if len(parts) > 1 {
						info.CPU = strings.TrimSpace(parts[1])
						break
					}
				}
			}
		}
	}

	// macOS CPU info
	if runtime.GOOS == "darwin" {
		if output, err := exec.Command("sysctl", "-n", "machdep.cpu.brand_string").Output(); err == nil {
			info.CPU = strings.TrimSpace(string(output))
		}
	}

	// Windows CPU info
	if runtime.GOOS == "windows" {
		if output, err := exec.Command("wmic", "cpu", "get", "name").Output(); err == nil {
			lines := strings.Split(string(output), "\n")
			for _, line := range lines {
				line = strings.TrimSpace(line)
				if line != "" && line != "Name" {
					info.CPU = line
					break
				}
			}
		}
	}

	// Fallback for unknown OS
	if info.CPU == "" {
		info.CPU = fmt.Sprintf("%s/%s (%d cores)", runtime.GOOS, runtime.GOARCH, info.NumCPU)
	}

	return info
}

// Result is the outcome of one calibration run.
type Result struct {
	Rate      float64       // configured tick rate
	Seconds   int           // cycles driven
	Limit     string        // render limit during the run
	Ticks     uint64        // updates run
	Frames    uint64        // frames rendered
	TickRate  float64       // achieved updates per second
	FrameRate float64       // achieved frames per second
	TickAvg   beat.Sec      // cost of one update
	FrameAvg  beat.Sec      // cost of one frame
	Wall      time.Duration // real time spent
}

// calib carries the run length into the zero-constructed loop types.
var calib struct {
	seconds int
}

// load counts ticks and stops the heart after the configured cycles.
type load struct {
	ticks uint64
	secs  int
}

func (s load) Add(load) load                  { return s }
func (s load) Scale(float64) load             { return s }
func (s *load) Init(*beat.Heart, *beat.Timer) {}

func (s *load) Update(*beat.Heart) {
	s.ticks++
}

func (s *load) Sec(h *beat.Heart) {
	s.secs++
	if s.secs >= calib.seconds {
		h.Stop()
	}
}

// blank renders nothing, so frame statistics measure loop overhead
// alone.
type blank struct{}

func (r *blank) Render(*beat.Heart, load) {}

// Run drives a heart against the real clock for the given number of
// one-second cycles and reports what the host sustained.
func Run(rate float64, seconds int, limit beat.Limit) Result {
	if seconds <= 0 {
		seconds = 1
	}
	calib.seconds = seconds

	h := beat.NewHeart(rate, beat.NewSystemClock(), beat.WithLimit(limit))

	start := time.Now()
	beat.Start[load, blank](h)
	wall := time.Since(start)

	ticks, frames := h.Ticks(), h.Frames()
	return Result{
		Rate:      rate,
		Seconds:   seconds,
		Limit:     limit.String(),
		Ticks:     ticks.Count(),
		Frames:    frames.Count(),
		TickRate:  ticks.AvgRate(),
		FrameRate: frames.AvgRate(),
		TickAvg:   ticks.Avg(),
		FrameAvg:  frames.Avg(),
		Wall:      wall,
	}
}
