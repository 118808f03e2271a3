package user

import (
	"fmt"

	"github.com/mindkey/fraud/internal/model"
)

// Interface is a one-way channel for pushing alerts to operators.
type Interface interface {
	// Send pushes a message and returns an error if the channel is unavailable.
	Send(message string) error
}

// BlockAlert formats the alert pushed for a blocked transaction.
func BlockAlert(result model.ScoreResult, tx model.Transaction) string {
	return fmt.Sprintf("blocked transaction %s\namount: %.2f %s\nrisk: %.3f (%s)\nconfidence: %.3f",
		result.ID,
		tx.Amount, tx.Type,
		result.RiskScore, result.RiskLevel,
		result.Confidence)
}

// Void ignores all alerts.
type Void struct {
}

func NewVoid() *Void {
	return &Void{}
}

func (v Void) Send(message string) error {
	return nil
}
