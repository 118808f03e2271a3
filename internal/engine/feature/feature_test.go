package feature

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/mindkey/fraud/internal/model"
	cointime "github.com/mindkey/fraud/internal/time"
)

// wednesday afternoon
var instant = time.Date(2021, 11, 3, 14, 30, 0, 0, time.UTC)

func newTestExtractor() *Extractor {
	return NewExtractor(
		WithClock(cointime.Fixed(instant)),
		WithRand(Seeded(42)),
	)
}

func TestExtractor_Extract_ColdStart(t *testing.T) {

	extractor := newTestExtractor()

	vector, scores, err := extractor.Extract(model.Transaction{Amount: 250}, nil)
	assert.NoError(t, err)
	assert.Equal(t, len(Columns), len(vector))

	assert.Equal(t, 250.0, vector[0])
	assert.Equal(t, 14.0, vector[1])
	// wednesday with monday indexed 0
	assert.Equal(t, 2.0, vector[2])
	assert.Equal(t, 1.0, vector[3])
	assert.Equal(t, 0.0, vector[4])
	assert.Equal(t, 250.0, vector[5])
	assert.Equal(t, 24.0, vector[10])
	assert.Equal(t, 0.0, vector[11])

	// the sub-scores are inserted verbatim into the vector
	assert.Equal(t, scores.Location, vector[6])
	assert.Equal(t, scores.Device, vector[7])
	assert.Equal(t, scores.Velocity, vector[8])
	assert.Equal(t, scores.Behavioral, vector[9])

	// cold start fixed sub-scores
	assert.Equal(t, 0.1, scores.Velocity)
	assert.Equal(t, 0.5, scores.Behavioral)
}

func TestExtractor_Extract_WithHistory(t *testing.T) {

	extractor := newTestExtractor()

	history := &model.UserHistory{
		AccountAgeDays:   30,
		TransactionCount: 15,
		AvgAmount:        500,
		RecentTxCount:    2,
		HoursSinceLastTx: 6,
	}

	vector, _, err := extractor.Extract(model.Transaction{
		Amount:     1000,
		Location:   model.Location{Country: "NG"},
		DeviceInfo: model.DeviceInfo{UserAgent: "Mozilla/5.0 (Mobile; Android)"},
	}, history)
	assert.NoError(t, err)

	assert.Equal(t, 1000.0, vector[0])
	assert.Equal(t, 30.0, vector[3])
	assert.Equal(t, 15.0, vector[4])
	assert.Equal(t, 500.0, vector[5])
	assert.Equal(t, 6.0, vector[10])
	// amount deviation against the historical average
	assert.Equal(t, 500.0, vector[11])
}

func TestExtractor_Extract_Invalid(t *testing.T) {

	extractor := newTestExtractor()

	_, _, err := extractor.Extract(model.Transaction{Amount: -50}, nil)
	assert.Error(t, err)
	assert.True(t, errors.Is(err, model.ValidationErr))
}

func TestWeekday(t *testing.T) {

	type test struct {
		day   time.Time
		index int
	}

	tests := map[string]test{
		"monday": {
			day:   time.Date(2021, 11, 1, 0, 0, 0, 0, time.UTC),
			index: 0,
		},
		"wednesday": {
			day:   time.Date(2021, 11, 3, 0, 0, 0, 0, time.UTC),
			index: 2,
		},
		"sunday": {
			day:   time.Date(2021, 11, 7, 0, 0, 0, 0, time.UTC),
			index: 6,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tt.index, Weekday(tt.day))
		})
	}
}
