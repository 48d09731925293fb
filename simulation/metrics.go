// SPDX-License-Identifier: MIT
// Package: gridflow/simulation
//
// metrics.go - Prometheus instruments for runs and steps.

package simulation

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Step status label values.
const (
	statusOK     = "ok"
	statusFailed = "failed"
)

// Metrics groups the run instruments. Register it on a dedicated registry
// or on prometheus.DefaultRegisterer.
type Metrics struct {
	runs     prometheus.Counter
	steps    *prometheus.CounterVec
	duration prometheus.Histogram
	inflight prometheus.Gauge
}

// NewMetrics creates the instruments under namespace and registers them.
func NewMetrics(namespace string, reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		runs: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "simulation",
			Name:      "runs_total",
			Help:      "Simulation runs started.",
		}),
		steps: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "simulation",
			Name:      "steps_total",
			Help:      "Time steps processed, by status.",
		}, []string{"status"}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "simulation",
			Name:      "step_duration_seconds",
			Help:      "Wall time of one step: copy, load, map and solve.",
			Buckets:   prometheus.ExponentialBuckets(0.0005, 4, 10),
		}),
		inflight: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "simulation",
			Name:      "steps_in_flight",
			Help:      "Steps currently being solved.",
		}),
	}
	for _, c := range []prometheus.Collector{m.runs, m.steps, m.duration, m.inflight} {
		if err := reg.Register(c); err != nil {
			return nil, fmt.Errorf("simulation: register metrics: %w", err)
		}
	}

	return m, nil
}

func (m *Metrics) runStarted() {
	if m != nil {
		m.runs.Inc()
	}
}

func (m *Metrics) stepStarted() {
	if m != nil {
		m.inflight.Inc()
	}
}

func (m *Metrics) stepDone(failed bool, d time.Duration) {
	if m == nil {
		return
	}
	m.inflight.Dec()
	status := statusOK
	if failed {
		status = statusFailed
	}
	m.steps.WithLabelValues(status).Inc()
	m.duration.Observe(d.Seconds())
}
