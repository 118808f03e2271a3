package model

import (
	"errors"
	"math"
	"time"
)

var (
	// ValidationErr marks a malformed transaction that cannot be scored.
	ValidationErr = errors.New("invalid transaction")
	// ContractErr marks a feature/model contract mismatch.
	// It is a deployment integrity fault, not a per-request error.
	ContractErr = errors.New("model contract mismatch")
)

// RiskLevel is the discrete risk bucket for a scored transaction.
type RiskLevel string

const (
	Low    RiskLevel = "LOW"
	Medium RiskLevel = "MEDIUM"
	High   RiskLevel = "HIGH"
)

// Decision is the action the calling layer should take for a transaction.
type Decision string

const (
	Approve Decision = "APPROVE"
	Review  Decision = "REVIEW"
	Block   Decision = "BLOCK"
)

// SubScores groups the per-dimension scores exposed to consumers.
// All four are presented with goodness polarity, higher meaning safer.
type SubScores struct {
	Behavioral float64 `json:"behavioral"`
	Location   float64 `json:"location"`
	Device     float64 `json:"device"`
	Velocity   float64 `json:"velocity"`
}

// ScoreResult is the structured outcome of a single scoring call.
type ScoreResult struct {
	ID               string    `json:"id"`
	RiskScore        float64   `json:"risk_score"`
	RiskLevel        RiskLevel `json:"risk_level"`
	Decision         Decision  `json:"decision"`
	Confidence       float64   `json:"confidence"`
	ProcessingTimeMs float64   `json:"processing_time_ms"`
	SubScores        SubScores `json:"sub_scores"`
	Timestamp        time.Time `json:"timestamp"`
}

// Round3 formats scores to the 3-decimal precision of the output contract.
func Round3(f float64) float64 {
	return math.Round(f*1000) / 1000
}
