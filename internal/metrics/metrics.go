// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package metrics exposes Prometheus instrumentation for sync cycles and the
// control API.
//
// Collectors live in a dedicated [prometheus.Registry] owned by [Metrics] so
// that several instances (tests, embedded runtimes) never collide on the
// process-wide default registry.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/MKhiriev/wear-health-sync/models"
)

const (
	namespace     = "healthsync"
	subsystemSync = "sync"
	subsystemAPI  = "api"
)

// Metrics holds the sync and API collectors and the registry they are
// registered in.
type Metrics struct {
	registry *prometheus.Registry

	cyclesTotal     *prometheus.CounterVec
	cycleDuration   *prometheus.HistogramVec
	droppedTotal    *prometheus.CounterVec
	lastSuccessUnix prometheus.Gauge

	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
}

// New creates a Metrics with a fresh registry. Go runtime and process
// collectors are registered alongside the application collectors.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		cyclesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystemSync,
				Name:      "cycles_total",
				Help:      "Completed sync cycles by trigger source and outcome.",
			},
			[]string{"trigger", "outcome"},
		),
		cycleDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystemSync,
				Name:      "cycle_duration_seconds",
				Help:      "Wall time of a sync cycle from guard acquisition to release.",
				Buckets:   []float64{0.01, 0.1, 0.5, 1, 2, 3, 5, 10, 30},
			},
			[]string{"outcome"},
		),
		droppedTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystemSync,
				Name:      "triggers_dropped_total",
				Help:      "Triggers discarded because a cycle was already in flight.",
			},
			[]string{"trigger"},
		),
		lastSuccessUnix: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: subsystemSync,
			Name:      "last_success_unix",
			Help:      "Unix timestamp of the last successful sync cycle.",
		}),
		requestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystemAPI,
				Name:      "requests_total",
				Help:      "Control API requests by method, route and status code.",
			},
			[]string{"method", "route", "status"},
		),
		requestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystemAPI,
				Name:      "request_duration_seconds",
				Help:      "Control API request duration in seconds.",
				Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 2, 5, 10},
			},
			[]string{"method", "route"},
		),
	}
}

// ObserveCycle records a finished cycle.
func (m *Metrics) ObserveCycle(trigger models.TriggerSource, outcome models.SyncOutcome, took time.Duration) {
	m.cyclesTotal.WithLabelValues(string(trigger), string(outcome)).Inc()
	m.cycleDuration.WithLabelValues(string(outcome)).Observe(took.Seconds())
	if outcome == models.OutcomeSuccess {
		m.lastSuccessUnix.SetToCurrentTime()
	}
}

// TriggerDropped records a trigger that lost the in-flight guard.
func (m *Metrics) TriggerDropped(trigger models.TriggerSource) {
	m.droppedTotal.WithLabelValues(string(trigger)).Inc()
}

// ObserveRequest records a served control API request.
func (m *Metrics) ObserveRequest(method, route string, status int, took time.Duration) {
	m.requestsTotal.WithLabelValues(method, route, http.StatusText(status)).Inc()
	m.requestDuration.WithLabelValues(method, route).Observe(took.Seconds())
}

// Registry returns the registry the collectors are registered in.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
