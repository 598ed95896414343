package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// PrometheusMetrics implements EngineMetrics on a dedicated
// Prometheus registry so the host application can expose it
// without colliding with other collectors.
type PrometheusMetrics struct {
	registry *prometheus.Registry

	attempts      *prometheus.CounterVec
	solves        *prometheus.CounterVec
	hintUnlocks   *prometheus.CounterVec
	activeGauge   prometheus.Gauge
	attemptTiming *prometheus.HistogramVec
}

// NewPrometheusMetrics creates and registers the engine's
// collectors.
func NewPrometheusMetrics() *PrometheusMetrics {
	reg := prometheus.NewRegistry()

	m := &PrometheusMetrics{
		registry: reg,
		attempts: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "trainer",
				Name:      "attempts_total",
				Help:      "Verification attempts by scenario and outcome.",
			},
			[]string{"scenario", "outcome"},
		),
		solves: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "trainer",
				Name:      "solves_total",
				Help:      "First solves by scenario and classification.",
			},
			[]string{"scenario", "classification"},
		),
		hintUnlocks: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "trainer",
				Name:      "hints_unlocked_total",
				Help:      "Hints unlocked by scenario.",
			},
			[]string{"scenario"},
		),
		activeGauge: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: "trainer",
				Name:      "active_scenarios",
				Help:      "Scenarios active under the current profile.",
			},
		),
		attemptTiming: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "trainer",
				Name:      "attempt_duration_seconds",
				Help:      "Verification attempt latency.",
				Buckets:   prometheus.ExponentialBuckets(1e-6, 10, 8),
			},
			[]string{"scenario"},
		),
	}

	reg.MustRegister(
		m.attempts,
		m.solves,
		m.hintUnlocks,
		m.activeGauge,
		m.attemptTiming,
	)
	return m
}

// RecordAttempt records one verification attempt.
func (m *PrometheusMetrics) RecordAttempt(
	scenarioKey, outcome string, duration time.Duration,
) {
	m.attempts.WithLabelValues(scenarioKey, outcome).Inc()
	m.attemptTiming.WithLabelValues(scenarioKey).
		Observe(duration.Seconds())
}

// RecordSolve records a completed first solve.
func (m *PrometheusMetrics) RecordSolve(
	scenarioKey, classification string,
) {
	m.solves.WithLabelValues(scenarioKey, classification).Inc()
}

// RecordHintUnlock records one unlocked hint.
func (m *PrometheusMetrics) RecordHintUnlock(
	scenarioKey string,
) {
	m.hintUnlocks.WithLabelValues(scenarioKey).Inc()
}

// SetActiveScenarios sets the active-scenarios gauge.
func (m *PrometheusMetrics) SetActiveScenarios(count int) {
	m.activeGauge.Set(float64(count))
}

// Handler returns an HTTP handler exposing the registry in
// Prometheus text format.
func (m *PrometheusMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(
		m.registry, promhttp.HandlerOpts{},
	)
}

// Registry exposes the underlying registry for tests and for
// embedding into a host application's own metrics endpoint.
func (m *PrometheusMetrics) Registry() *prometheus.Registry {
	return m.registry
}
