package playground

import (
	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/floats"
)

// DatasetSummary is the plain, locally computed view of the parsed dataset.
// It is display-only and never sent to the calculation service.
type DatasetSummary struct {
	Count      int     `json:"count"`
	Sum        float64 `json:"sum"`
	Mean       float64 `json:"mean"`
	Median     float64 `json:"median"`
	Min        float64 `json:"min"`
	Max        float64 `json:"max"`
	BelowLower int     `json:"below_lower"` // values the service will clamp up to the lower bound
	AboveUpper int     `json:"above_upper"` // values the service will clamp down to the upper bound
	Dropped    int     `json:"dropped"`     // tokens that did not parse
}

// Summarize parses the form's dataset and describes it against the form bounds.
func Summarize(form FormState) DatasetSummary {
	data, dropped := ParseDatasetCounting(form.DatasetText)
	summary := DatasetSummary{Count: len(data), Dropped: dropped}
	if len(data) == 0 {
		return summary
	}

	summary.Sum = floats.Sum(data)
	summary.Mean, _ = stats.Mean(data)
	summary.Median, _ = stats.Median(data)
	summary.Min = floats.Min(data)
	summary.Max = floats.Max(data)

	for _, v := range data {
		switch {
		case v < form.LowerBound:
			summary.BelowLower++
		case v > form.UpperBound:
			summary.AboveUpper++
		}
	}
	return summary
}

// OutOfBounds is the number of values the bounds will clamp.
func (s DatasetSummary) OutOfBounds() int {
	return s.BelowLower + s.AboveUpper
}
