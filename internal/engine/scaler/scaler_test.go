package scaler

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mindkey/fraud/internal/model"
)

var columns = []string{"a", "b", "c"}

func fitted(t *testing.T) *Parameters {
	t.Helper()
	params, err := Fit(columns, [][]float64{
		{1, 10, 5},
		{2, 20, 5},
		{3, 30, 5},
		{4, 40, 5},
	})
	assert.NoError(t, err)
	return params
}

func TestFit(t *testing.T) {

	params := fitted(t)

	assert.Equal(t, columns, params.Columns)
	assert.InDelta(t, 2.5, params.Mean[0], 1e-9)
	assert.InDelta(t, 25.0, params.Mean[1], 1e-9)
	// constant column keeps a unit deviation
	assert.Equal(t, 1.0, params.Std[2])
}

func TestParameters_Transform(t *testing.T) {

	params := fitted(t)

	out, err := params.Transform([]float64{2.5, 25, 5})
	assert.NoError(t, err)
	for _, f := range out {
		assert.InDelta(t, 0.0, f, 1e-9)
	}
}

func TestParameters_Roundtrip(t *testing.T) {

	params := fitted(t)

	in := []float64{1.5, 42, 5}
	scaled, err := params.Transform(in)
	assert.NoError(t, err)
	out, err := params.Inverse(scaled)
	assert.NoError(t, err)

	for i := range in {
		assert.InDelta(t, in[i], out[i], 1e-9)
	}
}

func TestParameters_Contract(t *testing.T) {

	params := fitted(t)

	_, err := params.Transform([]float64{1, 2})
	assert.Error(t, err)
	assert.True(t, errors.Is(err, model.ContractErr))

	_, err = params.Inverse([]float64{1, 2, 3, 4})
	assert.Error(t, err)
	assert.True(t, errors.Is(err, model.ContractErr))

	assert.NoError(t, params.Check(columns))

	err = params.Check([]string{"a", "x", "c"})
	assert.Error(t, err)
	assert.True(t, errors.Is(err, model.ContractErr))

	err = params.Check([]string{"a", "b"})
	assert.Error(t, err)
	assert.True(t, errors.Is(err, model.ContractErr))
}

func TestFit_Mismatch(t *testing.T) {

	_, err := Fit(columns, [][]float64{{1, 2}})
	assert.Error(t, err)
	assert.True(t, errors.Is(err, model.ContractErr))
}
