package net

import (
	"fmt"
	"math"

	"github.com/mindkey/fraud/internal/model"
)

// Network is a probabilistic binary classifier over a fixed feature contract.
// Implementations are immutable after Fit and safe for concurrent Prob calls.
type Network interface {
	// Fit trains the classifier on standardised samples with binary labels.
	Fit(x [][]float64, y []int) error
	// Prob returns the fraud probability for a standardised vector.
	Prob(x []float64) (float64, error)
	// Features returns the width of the feature contract.
	Features() int
}

// Ensemble combines independently trained member classifiers by
// averaging their fraud probabilities. The plain arithmetic mean is
// part of the scoring contract.
type Ensemble struct {
	features int
	members  []Network
}

// NewEnsemble creates an ensemble over the given members.
func NewEnsemble(features int, members ...Network) (*Ensemble, error) {
	if len(members) == 0 {
		return nil, fmt.Errorf("ensemble needs at least one member")
	}
	for i, member := range members {
		if member.Features() != features {
			return nil, fmt.Errorf("member %d expects %d features, ensemble has %d: %w",
				i, member.Features(), features, model.ContractErr)
		}
	}
	return &Ensemble{
		features: features,
		members:  members,
	}, nil
}

// Features returns the width of the feature contract.
func (e *Ensemble) Features() int {
	return e.features
}

// Predict returns the averaged fraud probability for a standardised vector.
func (e *Ensemble) Predict(x []float64) (float64, error) {
	if len(x) != e.features {
		return 0, fmt.Errorf("vector has %d values, ensemble expects %d: %w",
			len(x), e.features, model.ContractErr)
	}
	sum := 0.0
	for i, member := range e.members {
		p, err := member.Prob(x)
		if err != nil {
			return 0, fmt.Errorf("member %d could not predict: %w", i, err)
		}
		sum += p
	}
	return clamp(sum / float64(len(e.members))), nil
}

// Confidence is the distance of the probability from the decision
// boundary of 0.5, always within [0.5, 1].
func Confidence(p float64) float64 {
	return math.Max(p, 1-p)
}

func clamp(p float64) float64 {
	return math.Max(0, math.Min(1, p))
}
