package playground

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculationRequest_WireFormat(t *testing.T) {
	req := NewRequest(DefaultForm())

	body, err := json.Marshal(req)
	require.NoError(t, err)
	assert.JSONEq(t, `{"data":[1,2,3,4,5,10,20],"epsilon":1,"lower_bound":0,"upper_bound":20}`, string(body))
}

func TestCalculationRequest_NaNParamsEncodeAsNull(t *testing.T) {
	req := NewRequest(FormState{DatasetText: "abc", Epsilon: math.NaN(), LowerBound: 0, UpperBound: math.NaN()})

	body, err := json.Marshal(req)
	require.NoError(t, err)
	assert.JSONEq(t, `{"data":[],"epsilon":null,"lower_bound":0,"upper_bound":null}`, string(body))

	var decoded CalculationRequest
	require.NoError(t, json.Unmarshal(body, &decoded))
	assert.True(t, math.IsNaN(decoded.Epsilon))
	assert.Equal(t, 0.0, decoded.LowerBound)
	assert.Empty(t, decoded.Data)
}

func TestCalculationResult_Decode(t *testing.T) {
	var result CalculationResult
	err := json.Unmarshal([]byte(`{"actual_count":6,"count":6.3,"actual_sum":45,"sum":46.1,"actual_mean":7.5,"mean":7.8,"extra":"ignored"}`), &result)
	require.NoError(t, err)

	assert.Equal(t, CalculationResult{ActualCount: 6, Count: 6.3, ActualSum: 45, Sum: 46.1, ActualMean: 7.5, Mean: 7.8}, result)
}

func TestCalculationResult_MissingFieldDecodesToNaN(t *testing.T) {
	var result CalculationResult
	require.NoError(t, json.Unmarshal([]byte(`{"actual_count":6,"count":6.3}`), &result))

	assert.Equal(t, 6.0, result.ActualCount)
	assert.True(t, math.IsNaN(result.Sum))
	assert.True(t, math.IsNaN(result.Mean))
}

func TestCalculationResult_RejectsWrongType(t *testing.T) {
	var result CalculationResult
	assert.Error(t, json.Unmarshal([]byte(`{"count":"six"}`), &result))
}
