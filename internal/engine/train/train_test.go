package train

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mindkey/fraud/internal/engine/feature"
	"github.com/mindkey/fraud/internal/model"
	"github.com/mindkey/fraud/internal/storage"
)

func testConfig() Config {
	return Config{
		Samples:    400,
		FraudShare: 0.2,
		TestShare:  0.2,
		Trees:      10,
		Epochs:     1,
		Seed:       42,
	}
}

func TestSynthetic(t *testing.T) {

	cfg := testConfig()
	x, y := Synthetic(cfg)

	assert.Equal(t, cfg.Samples, len(x))
	assert.Equal(t, cfg.Samples, len(y))

	fraud := 0
	for i, row := range x {
		assert.Equal(t, len(feature.Columns), len(row))
		fraud += y[i]
	}
	assert.Equal(t, int(float64(cfg.Samples)*cfg.FraudShare), fraud)

	// deterministic for a fixed seed
	x2, _ := Synthetic(cfg)
	assert.Equal(t, x[0], x2[0])
}

func TestSplit(t *testing.T) {

	cfg := testConfig()
	x, y := Synthetic(cfg)

	trainX, trainY, testX, testY := split(x, y, cfg.TestShare, cfg.Seed)

	assert.Equal(t, 320, len(trainX))
	assert.Equal(t, 320, len(trainY))
	assert.Equal(t, 80, len(testX))
	assert.Equal(t, 80, len(testY))
}

func TestTrain(t *testing.T) {

	snapshot, err := Train(testConfig())
	assert.NoError(t, err)

	assert.Equal(t, feature.Columns, snapshot.Columns)
	assert.NotNil(t, snapshot.Params)
	assert.Equal(t, len(feature.Columns), len(snapshot.Params.Mean))

	assert.GreaterOrEqual(t, snapshot.Report.Accuracy, 0.0)
	assert.LessOrEqual(t, snapshot.Report.Accuracy, 1.0)
	assert.GreaterOrEqual(t, snapshot.Report.Precision, 0.0)
	assert.LessOrEqual(t, snapshot.Report.Precision, 1.0)
	assert.GreaterOrEqual(t, snapshot.Report.Recall, 0.0)
	assert.LessOrEqual(t, snapshot.Report.Recall, 1.0)
}

func TestSnapshot_SaveLoad(t *testing.T) {

	store := storage.NewMockStorage()

	snapshot, err := Train(testConfig())
	assert.NoError(t, err)

	assert.NoError(t, Save(store, 1, snapshot))

	loaded, err := Load(store, 1)
	assert.NoError(t, err)
	assert.Equal(t, snapshot.Columns, loaded.Columns)
	assert.Equal(t, snapshot.Params.Mean, loaded.Params.Mean)
	assert.Equal(t, snapshot.Config, loaded.Config)

	_, err = Load(store, 2)
	assert.Error(t, err)
	assert.True(t, errors.Is(err, storage.NotFoundErr))
}

func TestSnapshot_RebuildSameModel(t *testing.T) {

	store := storage.NewMockStorage()

	snapshot, err := Train(testConfig())
	assert.NoError(t, err)
	assert.NotNil(t, snapshot.Members)

	assert.NoError(t, Save(store, 1, snapshot))

	first, err := Load(store, 1)
	assert.NoError(t, err)
	second, err := Load(store, 1)
	assert.NoError(t, err)

	params1, ensemble1, err := first.Build()
	assert.NoError(t, err)
	params2, ensemble2, err := second.Build()
	assert.NoError(t, err)

	assert.Equal(t, params1, params2)

	for _, v := range snapshot.X[:20] {
		scaled, err := params1.Transform(v)
		assert.NoError(t, err)

		p1, err := ensemble1.Predict(scaled)
		assert.NoError(t, err)
		p2, err := ensemble2.Predict(scaled)
		assert.NoError(t, err)
		assert.Equal(t, p1, p2)
	}
}

func TestSnapshot_Contract(t *testing.T) {

	store := storage.NewMockStorage()

	snapshot, err := Train(testConfig())
	assert.NoError(t, err)

	snapshot.Columns[0] = "unknown"
	assert.NoError(t, Save(store, 1, snapshot))

	_, err = Load(store, 1)
	assert.Error(t, err)
	assert.True(t, errors.Is(err, model.ContractErr))

	_, _, err = snapshot.Build()
	assert.Error(t, err)
	assert.True(t, errors.Is(err, model.ContractErr))
}
