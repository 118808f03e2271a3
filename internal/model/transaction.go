package model

import (
	"fmt"
	"math"
	"time"
)

// Location carries the coarse geo information attached to a transaction.
type Location struct {
	Country string `json:"country,omitempty"`
}

// DeviceInfo carries the client device fingerprint of a transaction.
type DeviceInfo struct {
	UserAgent string `json:"user_agent,omitempty"`
}

// Transaction is a single incoming payment event.
// It is created per event and never persisted by the scoring core.
type Transaction struct {
	Amount     float64    `json:"amount"`
	Type       string     `json:"type,omitempty"`
	Timestamp  time.Time  `json:"timestamp,omitempty"`
	Location   Location   `json:"location,omitempty"`
	DeviceInfo DeviceInfo `json:"device_info,omitempty"`
}

// Validate checks the transaction carries a well-formed amount.
// A negative or non-finite amount is a data quality fault and is never clamped.
func (t Transaction) Validate() error {
	if math.IsNaN(t.Amount) || math.IsInf(t.Amount, 0) {
		return fmt.Errorf("amount is not a finite number: %w", ValidationErr)
	}
	if t.Amount < 0 {
		return fmt.Errorf("amount is negative: %f: %w", t.Amount, ValidationErr)
	}
	return nil
}

// UserHistory is the optional per-account aggregate supplied by the calling layer.
// It is read-only to the scoring core.
type UserHistory struct {
	AccountAgeDays   int     `json:"account_age_days"`
	TransactionCount int     `json:"transaction_count"`
	AvgAmount        float64 `json:"avg_amount"`
	RecentTxCount    int     `json:"recent_tx_count"`
	HoursSinceLastTx float64 `json:"hours_since_last_tx"`
}
