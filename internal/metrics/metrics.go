// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package metrics exposes Prometheus counters and histograms for condition
// overview runs.
package metrics

import (
	"net/http"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/pdiddy/sympatico/internal/overview"
	"github.com/pdiddy/sympatico/pkg/types"
)

// Lookup outcomes recorded in the outcome label.
const (
	OutcomeFound       = "found"
	OutcomeEmpty       = "empty"
	OutcomeUnavailable = "unavailable"
	OutcomeOK          = "ok"
	OutcomeError       = "error"
)

// Metrics holds the collectors for one process. Each Metrics has its own
// registry so tests do not collide on the global one.
type Metrics struct {
	registry *prometheus.Registry

	Runs     *prometheus.CounterVec
	Lookups  *prometheus.CounterVec
	Duration *prometheus.HistogramVec
}

// New registers the overview collectors, plus the Go runtime and process
// collectors, on a fresh registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		registry: reg,
		Runs: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "sympatico_overview_runs_total",
				Help: "Total number of condition overview runs by model and overview outcome",
			},
			[]string{"model", "outcome"},
		),
		Lookups: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "sympatico_reference_lookups_total",
				Help: "Total number of reference lookups by source and outcome",
			},
			[]string{"source", "outcome"},
		),
		Duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "sympatico_overview_duration_seconds",
				Help:    "Duration of condition overview runs in seconds",
				Buckets: []float64{0.5, 1, 2.5, 5, 10, 20, 30, 60, 120},
			},
			[]string{"model"},
		),
	}
	reg.MustRegister(
		m.Runs,
		m.Lookups,
		m.Duration,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// ObserveRun records one finished run.
func (m *Metrics) ObserveRun(r types.OverviewResult, elapsed time.Duration) {
	model := string(r.Model)

	outcome := OutcomeOK
	if strings.HasPrefix(r.Overview, overview.ErrorPrefix) {
		outcome = OutcomeError
	}
	m.Runs.WithLabelValues(model, outcome).Inc()
	m.Lookups.WithLabelValues("guideline", lookupOutcome(r.Guidelines)).Inc()
	m.Lookups.WithLabelValues("pubmed", lookupOutcome(r.Citations)).Inc()
	m.Duration.WithLabelValues(model).Observe(elapsed.Seconds())
}

func lookupOutcome[T any](l types.Lookup[T]) string {
	switch {
	case l.Unavailable:
		return OutcomeUnavailable
	case l.IsEmpty():
		return OutcomeEmpty
	default:
		return OutcomeFound
	}
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Registry returns the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}
