package engine

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/mindkey/fraud/internal/engine/feature"
	"github.com/mindkey/fraud/internal/engine/net"
	"github.com/mindkey/fraud/internal/engine/scaler"
	"github.com/mindkey/fraud/internal/metrics"
	"github.com/mindkey/fraud/internal/model"
	cointime "github.com/mindkey/fraud/internal/time"
)

// Detector scores transactions against the fitted model artifacts.
// It is constructed once at startup, holds only immutable state and
// is safe for unsynchronised concurrent Predict calls.
type Detector struct {
	extractor *feature.Extractor
	params    *scaler.Parameters
	ensemble  *net.Ensemble
	clock     cointime.Clock
	rnd       feature.Rnd
}

// Option customises the detector.
type Option func(*Detector)

// WithClock fixes the processing instant source.
func WithClock(clock cointime.Clock) Option {
	return func(d *Detector) {
		d.clock = clock
	}
}

// WithRand fixes the random source factory of the sub-scorers.
func WithRand(rnd feature.Rnd) Option {
	return func(d *Detector) {
		d.rnd = rnd
	}
}

// NewDetector creates a detector over the fitted artifacts.
// The artifacts are checked against the feature contract up front,
// a mismatch is a deployment fault and fails construction.
func NewDetector(params *scaler.Parameters, ensemble *net.Ensemble, options ...Option) (*Detector, error) {
	if params == nil || ensemble == nil {
		return nil, fmt.Errorf("no fitted model artifacts provided")
	}
	if err := params.Check(feature.Columns); err != nil {
		return nil, fmt.Errorf("scaler does not match the feature contract: %w", err)
	}
	if ensemble.Features() != len(feature.Columns) {
		return nil, fmt.Errorf("ensemble expects %d features, contract has %d: %w",
			ensemble.Features(), len(feature.Columns), model.ContractErr)
	}

	detector := &Detector{
		params:   params,
		ensemble: ensemble,
		clock:    cointime.Wall,
		rnd:      feature.NewSource,
	}
	for _, option := range options {
		option(detector)
	}
	detector.extractor = feature.NewExtractor(
		feature.WithClock(detector.clock),
		feature.WithRand(detector.rnd),
	)
	return detector, nil
}

// Predict scores a single transaction with its optional history.
// A malformed transaction returns model.ValidationErr and no result,
// a contract mismatch returns model.ContractErr.
func (d *Detector) Predict(tx model.Transaction, history *model.UserHistory) (model.ScoreResult, error) {
	start := time.Now()

	vector, scores, err := d.extractor.Extract(tx, history)
	if err != nil {
		metrics.Observer.Reject()
		return model.ScoreResult{}, fmt.Errorf("could not extract features: %w", err)
	}

	scaled, err := d.params.Transform(vector)
	if err != nil {
		return model.ScoreResult{}, fmt.Errorf("could not scale features: %w", err)
	}

	probability, err := d.ensemble.Predict(scaled)
	if err != nil {
		return model.ScoreResult{}, fmt.Errorf("could not predict: %w", err)
	}

	level, decision := Decide(probability)
	elapsed := float64(time.Since(start).Microseconds()) / 1000.0

	result := model.ScoreResult{
		ID:               uuid.New().String(),
		RiskScore:        model.Round3(probability),
		RiskLevel:        level,
		Decision:         decision,
		Confidence:       model.Round3(net.Confidence(probability)),
		ProcessingTimeMs: elapsed,
		SubScores:        Goodness(scores),
		Timestamp:        d.clock(),
	}

	metrics.Observer.Decision(string(decision), string(level))
	metrics.Observer.Observe(elapsed)
	log.Debug().
		Str("id", result.ID).
		Float64("risk_score", result.RiskScore).
		Str("decision", string(decision)).
		Float64("ms", elapsed).
		Msg("scored transaction")

	return result, nil
}

// Goodness converts the raw sub-scores into the display scores of the
// output contract: the three risk polarity scores are inverted, the
// behavioural trust score passes through unchanged. This is presentation
// only and never feeds back into the feature vector.
func Goodness(s feature.SubScores) model.SubScores {
	return model.SubScores{
		Behavioral: model.Round3(s.Behavioral),
		Location:   model.Round3(1 - s.Location),
		Device:     model.Round3(1 - s.Device),
		Velocity:   model.Round3(1 - s.Velocity),
	}
}
