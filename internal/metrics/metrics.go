// Package metrics counts reported failures, singleton parameter drift and
// bridge runs in a Prometheus registry, and exports them in the node
// exporter textfile format.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"oarc-decorators/pkg/singleton"
)

const namespace = "oarc"

// DurationBuckets covers bridge runs from 10ms to 1min.
var DurationBuckets = []float64{0.01, 0.05, 0.1, 0.5, 1, 5, 10, 30, 60}

// Recorder holds the metrics of one process. It implements handle.Observer
// and runsync.Observer.
type Recorder struct {
	registry *prometheus.Registry

	ErrorReports   *prometheus.CounterVec
	SingletonDrift *prometheus.CounterVec
	BridgeRuns     *prometheus.CounterVec
	BridgeDuration prometheus.Histogram
}

// New returns a Recorder with its own registry.
func New() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		ErrorReports: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "error_reports_total",
			Help:      "Failures reported by the error reporter, by kind and exit code.",
		}, []string{"kind", "exit_code"}),
		SingletonDrift: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "singleton_drift_total",
			Help:      "Construction requests whose parameters differed from the cached instance.",
		}, []string{"type"}),
		BridgeRuns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "bridge_runs_total",
			Help:      "Computations driven to completion by the synchronous bridge, by outcome.",
		}, []string{"outcome"}),
		BridgeDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "bridge_run_duration_seconds",
			Help:      "Duration of synchronous bridge runs.",
			Buckets:   DurationBuckets,
		}),
	}
	r.registry.MustRegister(r.ErrorReports, r.SingletonDrift, r.BridgeRuns, r.BridgeDuration)
	return r
}

// Registry returns the registry holding the recorder's metrics.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// ObserveReport counts a reported failure.
func (r *Recorder) ObserveReport(kind string, exitCode int) {
	r.ErrorReports.WithLabelValues(kind, strconv.Itoa(exitCode)).Inc()
}

// ObserveRun records one bridge run.
func (r *Recorder) ObserveRun(d time.Duration, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	r.BridgeRuns.WithLabelValues(outcome).Inc()
	r.BridgeDuration.Observe(d.Seconds())
}

// DriftHook returns a singleton drift hook that counts drift per type.
func (r *Recorder) DriftHook() singleton.DriftHook {
	return func(name string, _ []singleton.Difference) {
		r.SingletonDrift.WithLabelValues(name).Inc()
	}
}

// WriteToTextfile writes all metrics to path in the textfile collector format.
// An empty path is a no-op.
func (r *Recorder) WriteToTextfile(path string) error {
	if path == "" {
		return nil
	}
	return prometheus.WriteToTextfile(path, r.registry)
}
