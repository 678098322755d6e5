// Package metrics exposes Prometheus instruments for the playground.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "dpplayground"

// Outcome labels for calculations_total.
const (
	OutcomeSuccess  = "success"
	OutcomeFailure  = "failure"
	OutcomeRejected = "rejected"
)

// PlaygroundMetrics groups the counters and histograms recorded per submit.
type PlaygroundMetrics struct {
	CalculationsTotal   *prometheus.CounterVec
	CalculationDuration prometheus.Histogram
	TokensDropped       prometheus.Counter
	ImportsTotal        *prometheus.CounterVec
}

// New registers all instruments on reg. Passing prometheus.DefaultRegisterer
// twice panics on duplicate registration; tests use a fresh registry.
func New(reg prometheus.Registerer) *PlaygroundMetrics {
	factory := promauto.With(reg)
	return &PlaygroundMetrics{
		CalculationsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "calculations_total",
				Help:      "Calculation submits by outcome and error code",
			},
			[]string{"outcome", "code"},
		),
		CalculationDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "calculation_duration_seconds",
				Help:      "Round trip time to the calculation service",
				Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
			},
		),
		TokensDropped: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "dataset_tokens_dropped_total",
				Help:      "Dataset tokens discarded because they did not parse to a finite number",
			},
		),
		ImportsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "imports_total",
				Help:      "Dataset file imports by format and outcome",
			},
			[]string{"format", "outcome"},
		),
	}
}

// Noop returns instruments bound to a private registry, for callers that do not export metrics.
func Noop() *PlaygroundMetrics {
	return New(prometheus.NewRegistry())
}

// ObserveCalculation records one finished calculation.
func (m *PlaygroundMetrics) ObserveCalculation(outcome, code string, elapsed time.Duration) {
	m.CalculationsTotal.WithLabelValues(outcome, code).Inc()
	if outcome != OutcomeRejected {
		m.CalculationDuration.Observe(elapsed.Seconds())
	}
}

// ObserveDropped adds n discarded dataset tokens.
func (m *PlaygroundMetrics) ObserveDropped(n int) {
	if n > 0 {
		m.TokensDropped.Add(float64(n))
	}
}

// ObserveImport records one dataset import attempt. An empty format is recorded as "unknown".
func (m *PlaygroundMetrics) ObserveImport(format string, ok bool) {
	if format == "" {
		format = "unknown"
	}
	outcome := OutcomeSuccess
	if !ok {
		outcome = OutcomeFailure
	}
	m.ImportsTotal.WithLabelValues(format, outcome).Inc()
}
