package playground

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeriveMetric(t *testing.T) {
	m := DeriveMetric(TitleSum, 10, 12)
	assert.InDelta(t, 2.0, m.Noise, 1e-12)
	assert.InDelta(t, 20.0, m.PercentError, 1e-12)
	assert.Equal(t, "10.00", m.ActualText())
	assert.Equal(t, "12.00", m.DPText())
	assert.Equal(t, "2.0000", m.NoiseText())
	assert.Equal(t, "20.00%", m.PercentErrorText())
}

func TestDeriveMetric_ZeroActual(t *testing.T) {
	m := DeriveMetric(TitleMean, 0, 5)
	assert.Equal(t, 5.0, m.Noise)
	assert.Equal(t, 0.0, m.PercentError)
	assert.Equal(t, "0.00%", m.PercentErrorText())
}

func TestDeriveMetric_NegativeActual(t *testing.T) {
	m := DeriveMetric(TitleSum, -10, -7)
	assert.Equal(t, 3.0, m.Noise)
	assert.InDelta(t, 30.0, m.PercentError, 1e-12)
}

func TestDeriveMetric_NoiseNeverNegative(t *testing.T) {
	for _, pair := range [][2]float64{{1, 2}, {2, 1}, {-5, 5}, {0, 0}} {
		assert.GreaterOrEqual(t, DeriveMetric("x", pair[0], pair[1]).Noise, 0.0)
	}
}

func TestDeriveMetrics_OrderAndIdempotence(t *testing.T) {
	result := CalculationResult{
		ActualCount: 6, Count: 6.3,
		ActualSum: 45, Sum: 46.1,
		ActualMean: 7.5, Mean: 7.8,
	}

	first := DeriveMetrics(result)
	second := DeriveMetrics(result)
	require.Len(t, first, 3)
	assert.Equal(t, first, second)

	assert.Equal(t, TitleCount, first[0].Title)
	assert.Equal(t, TitleSum, first[1].Title)
	assert.Equal(t, TitleMean, first[2].Title)

	assert.Equal(t, "0.3000", first[0].NoiseText())
	assert.Equal(t, "5.00%", first[0].PercentErrorText())
	assert.Equal(t, "1.1000", first[1].NoiseText())
	assert.Equal(t, "2.44%", first[1].PercentErrorText())
	assert.Equal(t, "0.3000", first[2].NoiseText())
	assert.Equal(t, "4.00%", first[2].PercentErrorText())
}

func TestDisplayText_DoesNotRoundStoredValues(t *testing.T) {
	m := DeriveMetric(TitleMean, 3.14159, 3.14159+0.000049)
	assert.Equal(t, "3.14", m.ActualText())
	assert.Equal(t, 3.14159, m.Actual)
	assert.InDelta(t, 0.000049, m.Noise, 1e-12)
}

func TestDisplayText_TiesRoundAwayFromZero(t *testing.T) {
	m := DeriveMetric(TitleMean, 0.125, 1.375)
	assert.Equal(t, "0.13", m.ActualText())
	assert.Equal(t, "1.38", m.DPText())
	assert.Equal(t, "1.2500", m.NoiseText())

	assert.Equal(t, "0.38", fixed(0.375, 2))
	assert.Equal(t, "-0.13", fixed(-0.125, 2))
	assert.Equal(t, "3", fixed(2.5, 0))
	// 1.005 is just below the tie in binary
	assert.Equal(t, "1.00", fixed(1.005, 2))
	assert.Equal(t, "0.13", fixed(0.13, 2))
}

func TestDeriveMetric_MissingFieldShowsNaN(t *testing.T) {
	m := DeriveMetric(TitleCount, math.NaN(), 4)
	assert.Equal(t, "NaN", m.ActualText())
	assert.Equal(t, "NaN", m.NoiseText())
}

func TestDisplayMetric_Text(t *testing.T) {
	text := DeriveMetric(TitleSum, 45, 46.1).Text()
	assert.Equal(t, MetricText{
		Title:        "Sum",
		Actual:       "45.00",
		DP:           "46.10",
		Noise:        "1.1000",
		PercentError: "2.44%",
	}, text)
}
