// Package history assembles the optional per-account history the scoring
// core consumes. Retrieval is calling-layer I/O, the core never reaches
// into a source itself.
package history

import (
	"context"

	"github.com/mindkey/fraud/internal/model"
)

// Source provides the transaction history of an account.
type Source interface {
	// Get returns the history for the given account,
	// or nil when the account is unknown.
	Get(ctx context.Context, account string) (*model.UserHistory, error)
}

// Static is an in-memory source for tests and local runs.
type Static struct {
	accounts map[string]model.UserHistory
}

// NewStatic creates a static source over the given accounts.
func NewStatic(accounts map[string]model.UserHistory) *Static {
	return &Static{accounts: accounts}
}

func (s *Static) Get(_ context.Context, account string) (*model.UserHistory, error) {
	if h, ok := s.accounts[account]; ok {
		return &h, nil
	}
	return nil, nil
}
