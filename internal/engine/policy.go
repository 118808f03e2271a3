package engine

import "github.com/mindkey/fraud/internal/model"

const (
	// reviewThreshold is the lowest probability routed to manual review.
	reviewThreshold = 0.3
	// blockThreshold is the lowest probability blocked outright.
	blockThreshold = 0.7
)

// Decide maps a fraud probability to a risk level and decision.
// Boundaries are left-closed, right-open. There is no hysteresis and
// no per-user override, the decision is a pure function of the probability.
func Decide(probability float64) (model.RiskLevel, model.Decision) {
	switch {
	case probability < reviewThreshold:
		return model.Low, model.Approve
	case probability < blockThreshold:
		return model.Medium, model.Review
	default:
		return model.High, model.Block
	}
}
