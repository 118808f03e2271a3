package feature

import (
	"math"
	"time"

	"github.com/mindkey/fraud/internal/model"
	cointime "github.com/mindkey/fraud/internal/time"
)

// Columns is the fixed feature contract shared by training and inference.
// Order and count must match the fitted scaler and classifiers exactly.
var Columns = []string{
	"transaction_amount",
	"hour_of_day",
	"day_of_week",
	"user_age_days",
	"previous_transactions",
	"avg_transaction_amount",
	"location_risk_score",
	"device_risk_score",
	"velocity_score",
	"behavioral_score",
	"time_since_last_tx",
	"amount_deviation",
}

// cold start defaults for accounts without history
const (
	defaultUserAgeDays     = 1
	defaultTimeSinceLastTx = 24
	defaultPreviousTx      = 0
)

// Vector is an ordered feature vector following Columns.
type Vector []float64

// SubScores keeps the raw sub-scores with their native polarity.
// Location, Device and Velocity are risk scores, Behavioral is trust.
type SubScores struct {
	Location   float64
	Device     float64
	Velocity   float64
	Behavioral float64
}

// Extractor derives the feature vector for a transaction.
type Extractor struct {
	clock cointime.Clock
	rnd   Rnd
}

// Option customises the extractor.
type Option func(*Extractor)

// WithClock fixes the processing instant source.
func WithClock(clock cointime.Clock) Option {
	return func(e *Extractor) {
		e.clock = clock
	}
}

// WithRand fixes the random source factory for the sub-scorers.
func WithRand(rnd Rnd) Option {
	return func(e *Extractor) {
		e.rnd = rnd
	}
}

// NewExtractor creates a new extractor with wall clock and fresh random sources.
func NewExtractor(options ...Option) *Extractor {
	extractor := &Extractor{
		clock: cointime.Wall,
		rnd:   NewSource,
	}
	for _, option := range options {
		option(extractor)
	}
	return extractor
}

// Extract derives the fixed-order feature vector and the raw sub-scores
// for the given transaction and optional history.
// Hour and day are taken from the processing instant, not the transaction
// timestamp, keeping parity with the distributions the models trained on.
func (e *Extractor) Extract(tx model.Transaction, history *model.UserHistory) (Vector, SubScores, error) {
	if err := tx.Validate(); err != nil {
		return nil, SubScores{}, err
	}

	now := e.clock()
	src := e.rnd()

	userAgeDays := float64(defaultUserAgeDays)
	previousTx := float64(defaultPreviousTx)
	avgAmount := tx.Amount
	timeSinceLastTx := float64(defaultTimeSinceLastTx)
	if history != nil {
		userAgeDays = float64(history.AccountAgeDays)
		previousTx = float64(history.TransactionCount)
		avgAmount = history.AvgAmount
		timeSinceLastTx = history.HoursSinceLastTx
	}

	scores := SubScores{
		Location:   LocationRisk(tx, src),
		Device:     DeviceRisk(tx, src),
		Velocity:   VelocityRisk(history, src),
		Behavioral: BehaviouralTrust(history, src),
	}

	vector := Vector{
		tx.Amount,
		float64(now.Hour()),
		float64(Weekday(now)),
		userAgeDays,
		previousTx,
		avgAmount,
		scores.Location,
		scores.Device,
		scores.Velocity,
		scores.Behavioral,
		timeSinceLastTx,
		math.Abs(tx.Amount - avgAmount),
	}

	return vector, scores, nil
}

// Weekday indexes Monday as 0, matching the training distribution.
func Weekday(t time.Time) int {
	return (int(t.Weekday()) + 6) % 7
}
