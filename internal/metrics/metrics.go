package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Recorder exposes Prometheus metrics for timed runs. Each Recorder has its
// own registry; nothing is registered globally.
type Recorder struct {
	registry *prometheus.Registry

	// Counters
	runsTotal *prometheus.CounterVec

	// Gauges
	lastRunSeconds *prometheus.GaugeVec
	lastExitCode   *prometheus.GaugeVec

	// Histograms
	runDuration *prometheus.HistogramVec
}

// NewRecorder creates and registers the run metrics.
func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),

		runsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "swatch_runs_total",
				Help: "Total number of timed runs by outcome",
			},
			[]string{"command", "outcome"}, // success, failure
		),

		lastRunSeconds: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "swatch_last_run_seconds",
				Help: "Elapsed time of the most recent run in seconds",
			},
			[]string{"command"},
		),

		lastExitCode: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "swatch_last_exit_code",
				Help: "Exit code of the most recent run",
			},
			[]string{"command"},
		),

		runDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "swatch_run_duration_seconds",
				Help:    "Duration of timed runs in seconds",
				Buckets: prometheus.ExponentialBuckets(0.001, 4, 12), // 1ms to ~70min
			},
			[]string{"command"},
		),
	}

	r.registry.MustRegister(
		r.runsTotal,
		r.lastRunSeconds,
		r.lastExitCode,
		r.runDuration,
	)

	return r
}

// Registry returns the registry holding the recorder's metrics.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// ObserveRun records one finished run.
func (r *Recorder) ObserveRun(command string, exitCode int, elapsed time.Duration) {
	outcome := "success"
	if exitCode != 0 {
		outcome = "failure"
	}
	seconds := elapsed.Seconds()

	r.runsTotal.WithLabelValues(command, outcome).Inc()
	r.lastRunSeconds.WithLabelValues(command).Set(seconds)
	r.lastExitCode.WithLabelValues(command).Set(float64(exitCode))
	r.runDuration.WithLabelValues(command).Observe(seconds)
}

// WriteTextfile writes all metrics to path in the Prometheus text format,
// suitable for the node exporter's textfile collector.
func (r *Recorder) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, r.registry); err != nil {
		return fmt.Errorf("write metrics to %s: %w", path, err)
	}
	return nil
}
