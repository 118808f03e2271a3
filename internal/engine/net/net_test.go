package net

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mindkey/fraud/internal/model"
)

// fixed is a member stub with a constant output.
type fixed struct {
	features int
	p        float64
}

func (f fixed) Fit(x [][]float64, y []int) error {
	return nil
}

func (f fixed) Prob(x []float64) (float64, error) {
	return f.p, nil
}

func (f fixed) Features() int {
	return f.features
}

func TestEnsemble_Predict(t *testing.T) {

	type test struct {
		p1, p2     float64
		p          float64
		confidence float64
	}

	tests := map[string]test{
		"mid": {
			p1:         0.8,
			p2:         0.4,
			p:          0.6,
			confidence: 0.6,
		},
		"low": {
			p1:         0.1,
			p2:         0.1,
			p:          0.1,
			confidence: 0.9,
		},
		"split": {
			p1:         0.0,
			p2:         1.0,
			p:          0.5,
			confidence: 0.5,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			ensemble, err := NewEnsemble(3,
				fixed{features: 3, p: tt.p1},
				fixed{features: 3, p: tt.p2},
			)
			assert.NoError(t, err)

			p, err := ensemble.Predict([]float64{1, 2, 3})
			assert.NoError(t, err)
			assert.InDelta(t, tt.p, p, 1e-9)
			assert.InDelta(t, tt.confidence, Confidence(p), 1e-9)
		})
	}
}

func TestEnsemble_Contract(t *testing.T) {

	ensemble, err := NewEnsemble(3, fixed{features: 3, p: 0.5})
	assert.NoError(t, err)

	_, err = ensemble.Predict([]float64{1, 2})
	assert.Error(t, err)
	assert.True(t, errors.Is(err, model.ContractErr))

	_, err = NewEnsemble(3, fixed{features: 4, p: 0.5})
	assert.Error(t, err)
	assert.True(t, errors.Is(err, model.ContractErr))

	_, err = NewEnsemble(3)
	assert.Error(t, err)
}

func TestConfidence(t *testing.T) {

	assert.Equal(t, 0.5, Confidence(0.5))
	assert.Equal(t, 1.0, Confidence(0))
	assert.Equal(t, 1.0, Confidence(1))
	assert.InDelta(t, 0.7, Confidence(0.3), 1e-9)
}

func TestForest_Untrained(t *testing.T) {

	forest := NewForest(3, 10)
	_, err := forest.Prob([]float64{1, 2, 3})
	assert.Error(t, err)

	_, err = forest.Model()
	assert.Error(t, err)
}

// members returns a small training set separating the two classes.
func members() ([][]float64, []int) {
	x := make([][]float64, 0, 40)
	y := make([]int, 0, 40)
	for i := 0; i < 20; i++ {
		f := float64(i) / 20
		x = append(x, []float64{f, -f, 0.1 * f})
		y = append(y, 0)
		x = append(x, []float64{1 + f, f, 0.9 - 0.1*f})
		y = append(y, 1)
	}
	return x, y
}

func TestNeural_ConcurrentProb(t *testing.T) {

	x, y := members()
	neural := NewNeural(3, 2)
	assert.NoError(t, neural.Fit(x, y))

	vector := []float64{0.5, 0.1, 0.4}
	want, err := neural.Prob(vector)
	assert.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 200; j++ {
				p, err := neural.Prob(vector)
				assert.NoError(t, err)
				assert.Equal(t, want, p)
			}
		}()
	}
	wg.Wait()
}

func TestNeural_RestoreState(t *testing.T) {

	x, y := members()
	neural := NewNeural(3, 2)
	assert.NoError(t, neural.Fit(x, y))

	restored, err := RestoreNeural(3, neural.Weights())
	assert.NoError(t, err)

	for _, v := range x {
		want, err := neural.Prob(v)
		assert.NoError(t, err)
		got, err := restored.Prob(v)
		assert.NoError(t, err)
		assert.Equal(t, want, got)
	}

	_, err = RestoreNeural(4, neural.Weights())
	assert.Error(t, err)
	assert.True(t, errors.Is(err, model.ContractErr))

	_, err = RestoreNeural(3, neural.Weights()[:1])
	assert.Error(t, err)
	assert.True(t, errors.Is(err, model.ContractErr))
}

func TestForest_RestoreState(t *testing.T) {

	x, y := members()
	forest := NewForest(3, 5)
	assert.NoError(t, forest.Fit(x, y))

	state, err := forest.Model()
	assert.NoError(t, err)

	restored, err := RestoreForest(3, state)
	assert.NoError(t, err)

	for _, v := range x {
		want, err := forest.Prob(v)
		assert.NoError(t, err)
		got, err := restored.Prob(v)
		assert.NoError(t, err)
		assert.Equal(t, want, got)
	}

	_, err = RestoreForest(4, state)
	assert.Error(t, err)
	assert.True(t, errors.Is(err, model.ContractErr))
}
