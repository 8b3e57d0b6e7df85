// Command beatbench reports how faithfully this host sustains a set of
// tick rates.
//
// Usage:
//
//	beatbench [-rates 30,60,120,240] [-seconds 3] [-limit never]
package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"

	"github.com/edgedlt/beat"
	"github.com/edgedlt/beat/bench"
)

func main() {
	rates := flag.String("rates", "30,60,120,240", "comma-separated tick rates to calibrate")
	seconds := flag.Int("seconds", 3, "cycles to run per rate")
	limitName := flag.String("limit", "never", "render limit during the runs: always, once or never")
	flag.Parse()

	limit, err := beat.ParseLimit(*limitName)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	info := bench.GetSystemInfo()
	fmt.Printf("%s/%s, %d CPUs, %s, %s\n", info.OS, info.Architecture, info.NumCPU, info.CPU, info.GoVersion)
	fmt.Printf("%d cycles per rate, limit %s\n\n", *seconds, limit)

	table := tablewriter.NewWriter(os.Stdout)
	table.Header("Rate", "Ticks", "Tick rate", "Tick avg", "Frames", "Frame rate", "Wall")

	for _, field := range strings.Split(*rates, ",") {
		rate, err := strconv.ParseFloat(strings.TrimSpace(field), 64)
		if err != nil {
			fmt.Fprintf(os.Stderr, "bad rate %q: %v\n", field, err)
			os.Exit(2)
		}

		r := bench.Run(rate, *seconds, limit)
		table.Append(
			fmt.Sprintf("%g Hz", r.Rate),
			fmt.Sprintf("%d", r.Ticks),
			fmt.Sprintf("%.2f/s", r.TickRate),
			r.TickAvg.String(),
			fmt.Sprintf("%d", r.Frames),
			fmt.Sprintf("%.2f/s", r.FrameRate),
			r.Wall.String(),
		)
	}

	table.Render()
}
