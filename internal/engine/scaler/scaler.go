package scaler

import (
	"fmt"

	"gonum.org/v1/gonum/stat"

	"github.com/mindkey/fraud/internal/model"
)

// Parameters hold the fitted per-column standardisation of the feature space.
// They are fitted once at training time and immutable afterwards,
// shared read-only across concurrent scoring calls.
type Parameters struct {
	Columns []string  `json:"columns"`
	Mean    []float64 `json:"mean"`
	Std     []float64 `json:"std"`
}

// Fit computes the per-column mean and population standard deviation
// of the given samples. Constant columns get a unit deviation so that
// transformation stays defined.
func Fit(columns []string, x [][]float64) (*Parameters, error) {
	if len(x) == 0 {
		return nil, fmt.Errorf("no samples to fit on")
	}
	for i, row := range x {
		if len(row) != len(columns) {
			return nil, fmt.Errorf("sample %d has %d values for %d columns: %w",
				i, len(row), len(columns), model.ContractErr)
		}
	}

	params := &Parameters{
		Columns: append([]string{}, columns...),
		Mean:    make([]float64, len(columns)),
		Std:     make([]float64, len(columns)),
	}

	column := make([]float64, len(x))
	for j := range columns {
		for i, row := range x {
			column[i] = row[j]
		}
		params.Mean[j] = stat.Mean(column, nil)
		std := stat.PopStdDev(column, nil)
		if std == 0 {
			std = 1
		}
		params.Std[j] = std
	}
	return params, nil
}

// Check verifies the parameters were fitted on the given column contract.
func (p *Parameters) Check(columns []string) error {
	if len(columns) != len(p.Columns) {
		return fmt.Errorf("fitted on %d columns, got %d: %w", len(p.Columns), len(columns), model.ContractErr)
	}
	for i, c := range columns {
		if p.Columns[i] != c {
			return fmt.Errorf("column %d is '%s', fitted on '%s': %w", i, c, p.Columns[i], model.ContractErr)
		}
	}
	return nil
}

// Transform standardises the vector with the fitted parameters.
func (p *Parameters) Transform(v []float64) ([]float64, error) {
	if len(v) != len(p.Columns) {
		return nil, fmt.Errorf("vector has %d values, fitted on %d columns: %w",
			len(v), len(p.Columns), model.ContractErr)
	}
	out := make([]float64, len(v))
	for i, f := range v {
		out[i] = (f - p.Mean[i]) / p.Std[i]
	}
	return out, nil
}

// TransformAll standardises a whole sample matrix.
func (p *Parameters) TransformAll(x [][]float64) ([][]float64, error) {
	out := make([][]float64, len(x))
	for i, v := range x {
		t, err := p.Transform(v)
		if err != nil {
			return nil, err
		}
		out[i] = t
	}
	return out, nil
}

// Inverse maps a standardised vector back to feature space.
func (p *Parameters) Inverse(v []float64) ([]float64, error) {
	if len(v) != len(p.Columns) {
		return nil, fmt.Errorf("vector has %d values, fitted on %d columns: %w",
			len(v), len(p.Columns), model.ContractErr)
	}
	out := make([]float64, len(v))
	for i, f := range v {
		out[i] = f*p.Std[i] + p.Mean[i]
	}
	return out, nil
}
