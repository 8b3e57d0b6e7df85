// Demo drives a wave simulation on a beating heart, with live
// statistics over HTTP, Prometheus, and optionally MQTT.
//
// Run with:
//
//	go run ./demo --rate 60 --duration 10
//
// Then curl http://localhost:8080/stats while it beats.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/olekukonko/tablewriter"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/edgedlt/beat"
	"github.com/edgedlt/beat/demo/server"
	"github.com/edgedlt/beat/demo/sim"
	"github.com/edgedlt/beat/prom"
	"github.com/edgedlt/beat/telemetry"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "beatdemo",
	Short: "Fixed-timestep wave demo on a beating heart",
	Long: `beatdemo runs a wave simulation at a fixed tick rate and renders it
to the console, interpolated between ticks. Statistics are served over
HTTP, exported for Prometheus, and optionally published to MQTT.`,
	RunE: runDemo,
}

func init() {
	cobra.OnInitialize(initConfig)

	flags := rootCmd.Flags()
	flags.Float64("rate", 60, "tick rate in hertz")
	flags.Int("duration", 10, "seconds to run, 0 for unlimited")
	flags.String("limit", "always", "render limit: always, once or never")
	flags.String("listen", ":8080", "status server address, empty to disable")
	flags.String("broker", "", "MQTT broker URL, empty to disable")
	flags.String("topic", telemetry.Topic, "MQTT topic for snapshots")
	flags.Bool("dev", false, "development logging")
	flags.StringVar(&cfgFile, "config", "", "config file (default beatdemo.yaml in the working directory)")
	viper.BindPFlags(flags)
}

// initConfig layers flags over BEAT_* environment variables over an
// optional config file.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName("beatdemo")
		viper.SetConfigType("yaml")
	}

	viper.SetEnvPrefix("BEAT")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runDemo(cmd *cobra.Command, args []string) error {
	logger := buildLogger(viper.GetBool("dev"))
	defer logger.Sync()

	limit, err := beat.ParseLimit(viper.GetString("limit"))
	if err != nil {
		return err
	}

	h := beat.NewHeart(viper.GetFloat64("rate"), beat.NewSystemClock(),
		beat.WithLogger(logger), beat.WithLimit(limit))

	exp := prom.NewExporter("")
	reg := prometheus.NewRegistry()
	reg.MustRegister(exp)

	opts := sim.Options{
		Logger:   logger,
		Exporter: exp,
		Seconds:  viper.GetInt("duration"),
	}

	if broker := viper.GetString("broker"); broker != "" {
		pub, err := telemetry.NewMQTTPublisher(broker, "beatdemo", viper.GetString("topic"), logger)
		if err != nil {
			return fmt.Errorf("connect broker: %w", err)
		}
		defer pub.Close()
		opts.Publisher = pub
	}

	var update func(telemetry.Snapshot)
	if addr := viper.GetString("listen"); addr != "" {
		srv := server.New(addr, reg, logger)
		go func() {
			if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				logger.Error("status server", zap.Error(err))
			}
		}()
		defer srv.Shutdown(context.Background())
		update = srv.Update
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	// Signals are checked once a second, from the loop's own goroutine.
	opts.OnSecond = func(s telemetry.Snapshot) {
		if update != nil {
			update(s)
		}
		select {
		case sig := <-sigCh:
			logger.Info("stopping", zap.String("signal", sig.String()))
			h.Stop()
		default:
		}
	}

	sim.Configure(opts)
	beat.Start[sim.Wave, sim.Console](h)
	fmt.Println()

	printSummary(h)
	return nil
}

// buildLogger selects development or production logging.
func buildLogger(dev bool) *zap.Logger {
	if dev {
		logger, _ := zap.NewDevelopment()
		return logger
	}
	logger, _ := zap.NewProduction()
	return logger
}

// printSummary renders the final statistics as a table.
func printSummary(h *beat.Heart) {
	ticks, frames := h.Ticks(), h.Frames()

	table := tablewriter.NewWriter(os.Stdout)
	table.Header("", "Ticks", "Frames")
	table.Append("Count", fmt.Sprintf("%d", ticks.Count()), fmt.Sprintf("%d", frames.Count()))
	table.Append("Average", ticks.Avg().String(), frames.Avg().String())
	table.Append("Average rate", fmt.Sprintf("%.2f/s", ticks.AvgRate()), fmt.Sprintf("%.2f/s", frames.AvgRate()))
	table.Append("Busy", ticks.Total().String(), frames.Total().String())
	table.Render()
}
