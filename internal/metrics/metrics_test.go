package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
)

func TestObserveCalculation(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.ObserveCalculation(OutcomeSuccess, "", 120*time.Millisecond)
	m.ObserveCalculation(OutcomeFailure, "FETCH_FAILED", 40*time.Millisecond)
	m.ObserveCalculation(OutcomeRejected, "SUBMIT_IN_FLIGHT", 0)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.CalculationsTotal.WithLabelValues(OutcomeSuccess, "")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CalculationsTotal.WithLabelValues(OutcomeFailure, "FETCH_FAILED")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CalculationsTotal.WithLabelValues(OutcomeRejected, "SUBMIT_IN_FLIGHT")))

	var sample dto.Metric
	assert.NoError(t, m.CalculationDuration.(prometheus.Metric).Write(&sample))
	assert.Equal(t, uint64(2), sample.GetHistogram().GetSampleCount())
}

func TestObserveDroppedAndImport(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.ObserveDropped(0)
	m.ObserveDropped(3)
	m.ObserveImport("csv", true)
	m.ObserveImport("xlsx", false)
	m.ObserveImport("", false)

	assert.Equal(t, 3.0, testutil.ToFloat64(m.TokensDropped))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ImportsTotal.WithLabelValues("csv", OutcomeSuccess)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ImportsTotal.WithLabelValues("xlsx", OutcomeFailure)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ImportsTotal.WithLabelValues("unknown", OutcomeFailure)))
}
