package net

import (
	"fmt"

	randomforest "github.com/malaschitz/randomForest"

	"github.com/mindkey/fraud/internal/model"
)

// Forest is a random forest member classifier.
type Forest struct {
	features int
	trees    int
	forest   *randomforest.Forest
}

// NewForest creates an untrained forest with the given number of trees.
func NewForest(features, trees int) *Forest {
	return &Forest{
		features: features,
		trees:    trees,
	}
}

// RestoreForest rebuilds a fitted forest from its persisted state.
func RestoreForest(features int, state randomforest.Forest) (*Forest, error) {
	if state.Features != features {
		return nil, fmt.Errorf("state has %d features, forest expects %d: %w",
			state.Features, features, model.ContractErr)
	}
	if state.NTrees == 0 || len(state.Trees) != state.NTrees {
		return nil, fmt.Errorf("state has %d of %d trees: %w",
			len(state.Trees), state.NTrees, model.ContractErr)
	}
	return &Forest{
		features: features,
		trees:    state.NTrees,
		forest:   &state,
	}, nil
}

func (f *Forest) Features() int {
	return f.features
}

// Model exports the fitted forest for persistence.
func (f *Forest) Model() (randomforest.Forest, error) {
	if f.forest == nil {
		return randomforest.Forest{}, fmt.Errorf("forest is not trained")
	}
	return *f.forest, nil
}

func (f *Forest) Fit(x [][]float64, y []int) error {
	if len(x) == 0 || len(x) != len(y) {
		return fmt.Errorf("invalid training set: %d samples for %d labels", len(x), len(y))
	}
	if len(x[0]) != f.features {
		return fmt.Errorf("samples have %d features, forest expects %d: %w",
			len(x[0]), f.features, model.ContractErr)
	}
	forest := &randomforest.Forest{}
	forest.Data = randomforest.ForestData{X: x, Class: y}
	forest.Train(f.trees)
	f.forest = forest
	return nil
}

// Prob returns the fraction of trees voting for the fraud class.
func (f *Forest) Prob(x []float64) (float64, error) {
	if f.forest == nil {
		return 0, fmt.Errorf("forest is not trained")
	}
	if len(x) != f.features {
		return 0, fmt.Errorf("vector has %d values, forest expects %d: %w",
			len(x), f.features, model.ContractErr)
	}
	votes := f.forest.Vote(x)
	if len(votes) < 2 {
		// training data carried a single class
		return 0, nil
	}
	return votes[1], nil
}
