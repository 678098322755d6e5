// Package playground holds the form state, wire payloads and display derivation
// of the differential privacy playground.
package playground

import (
	"encoding/json"
	"math"
)

// Defaults shown when the playground is first opened.
const (
	DefaultDatasetText = "1, 2, 3, 4, 5, 10, 20"
	DefaultEpsilon     = 1.0
	DefaultLowerBound  = 0.0
	DefaultUpperBound  = 20.0
)

// FormState is the user-edited input. Numeric fields may hold NaN when the
// user typed something that is not a number; the value is sent as-is.
// LowerBound <= UpperBound is expected but left to the calculation service.
type FormState struct {
	DatasetText string  `json:"dataset"`
	Epsilon     float64 `json:"epsilon"`
	LowerBound  float64 `json:"lower_bound"`
	UpperBound  float64 `json:"upper_bound"`
}

// DefaultForm returns the form as it looks on first load.
func DefaultForm() FormState {
	return FormState{
		DatasetText: DefaultDatasetText,
		Epsilon:     DefaultEpsilon,
		LowerBound:  DefaultLowerBound,
		UpperBound:  DefaultUpperBound,
	}
}

// CalculationRequest is the exact body POSTed to the calculation service.
type CalculationRequest struct {
	Data       []float64 `json:"data"`
	Epsilon    float64   `json:"epsilon"`
	LowerBound float64   `json:"lower_bound"`
	UpperBound float64   `json:"upper_bound"`
}

// NewRequest parses the dataset text and pairs it with the form parameters.
func NewRequest(form FormState) CalculationRequest {
	return CalculationRequest{
		Data:       ParseDataset(form.DatasetText),
		Epsilon:    form.Epsilon,
		LowerBound: form.LowerBound,
		UpperBound: form.UpperBound,
	}
}

// MarshalJSON writes non-finite parameters as null, the same payload a browser
// produces for NaN, instead of failing the encode.
func (r CalculationRequest) MarshalJSON() ([]byte, error) {
	data := r.Data
	if data == nil {
		data = []float64{}
	}
	return json.Marshal(struct {
		Data       []float64 `json:"data"`
		Epsilon    *float64  `json:"epsilon"`
		LowerBound *float64  `json:"lower_bound"`
		UpperBound *float64  `json:"upper_bound"`
	}{
		Data:       data,
		Epsilon:    finiteOrNil(r.Epsilon),
		LowerBound: finiteOrNil(r.LowerBound),
		UpperBound: finiteOrNil(r.UpperBound),
	})
}

// UnmarshalJSON accepts null parameters and maps them back to NaN.
func (r *CalculationRequest) UnmarshalJSON(b []byte) error {
	var wire struct {
		Data       []float64 `json:"data"`
		Epsilon    *float64  `json:"epsilon"`
		LowerBound *float64  `json:"lower_bound"`
		UpperBound *float64  `json:"upper_bound"`
	}
	if err := json.Unmarshal(b, &wire); err != nil {
		return err
	}
	r.Data = wire.Data
	r.Epsilon = valueOrNaN(wire.Epsilon)
	r.LowerBound = valueOrNaN(wire.LowerBound)
	r.UpperBound = valueOrNaN(wire.UpperBound)
	return nil
}

// CalculationResult is the body the calculation service answers with. Fields
// absent from the response decode to NaN; nothing else validates the shape.
type CalculationResult struct {
	ActualCount float64 `json:"actual_count"`
	Count       float64 `json:"count"`
	ActualSum   float64 `json:"actual_sum"`
	Sum         float64 `json:"sum"`
	ActualMean  float64 `json:"actual_mean"`
	Mean        float64 `json:"mean"`
}

// UnmarshalJSON decodes the six consumed fields and ignores the rest.
func (r *CalculationResult) UnmarshalJSON(b []byte) error {
	var wire struct {
		ActualCount *float64 `json:"actual_count"`
		Count       *float64 `json:"count"`
		ActualSum   *float64 `json:"actual_sum"`
		Sum         *float64 `json:"sum"`
		ActualMean  *float64 `json:"actual_mean"`
		Mean        *float64 `json:"mean"`
	}
	if err := json.Unmarshal(b, &wire); err != nil {
		return err
	}
	*r = CalculationResult{
		ActualCount: valueOrNaN(wire.ActualCount),
		Count:       valueOrNaN(wire.Count),
		ActualSum:   valueOrNaN(wire.ActualSum),
		Sum:         valueOrNaN(wire.Sum),
		ActualMean:  valueOrNaN(wire.ActualMean),
		Mean:        valueOrNaN(wire.Mean),
	}
	return nil
}

// MarshalJSON mirrors UnmarshalJSON so NaN fields round-trip as null.
func (r CalculationResult) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		ActualCount *float64 `json:"actual_count"`
		Count       *float64 `json:"count"`
		ActualSum   *float64 `json:"actual_sum"`
		Sum         *float64 `json:"sum"`
		ActualMean  *float64 `json:"actual_mean"`
		Mean        *float64 `json:"mean"`
	}{
		ActualCount: finiteOrNil(r.ActualCount),
		Count:       finiteOrNil(r.Count),
		ActualSum:   finiteOrNil(r.ActualSum),
		Sum:         finiteOrNil(r.Sum),
		ActualMean:  finiteOrNil(r.ActualMean),
		Mean:        finiteOrNil(r.Mean),
	})
}

func finiteOrNil(v float64) *float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}

func valueOrNaN(v *float64) float64 {
	if v == nil {
		return math.NaN()
	}
	return *v
}
