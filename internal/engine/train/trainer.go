package train

import (
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"

	"github.com/mindkey/fraud/internal/engine/feature"
	"github.com/mindkey/fraud/internal/engine/net"
)

// Report summarises ensemble performance on the held-out split.
type Report struct {
	Accuracy  float64 `json:"accuracy"`
	Precision float64 `json:"precision"`
	Recall    float64 `json:"recall"`
}

// Train generates the synthetic set, fits the scaler and both ensemble
// members on the training split and evaluates the ensemble on the
// held-out split.
func Train(cfg Config) (*Snapshot, error) {
	x, y := Synthetic(cfg)

	snapshot := &Snapshot{
		Columns: append([]string{}, feature.Columns...),
		X:       x,
		Y:       y,
		Config:  cfg,
		Created: time.Now(),
	}

	params, ensemble, err := snapshot.Build()
	if err != nil {
		return nil, err
	}

	_, _, testX, testY := split(x, y, cfg.TestShare, cfg.Seed)
	scaledTest, err := params.TransformAll(testX)
	if err != nil {
		return nil, fmt.Errorf("could not scale test split: %w", err)
	}
	report, err := evaluate(ensemble, scaledTest, testY)
	if err != nil {
		return nil, fmt.Errorf("could not evaluate ensemble: %w", err)
	}
	snapshot.Report = report

	log.Info().
		Int("samples", cfg.Samples).
		Float64("accuracy", report.Accuracy).
		Float64("precision", report.Precision).
		Float64("recall", report.Recall).
		Msg("trained fraud detection ensemble")

	return snapshot, nil
}

// fit trains the two members independently on the same scaled split.
func fit(cfg Config, x [][]float64, y []int) (*net.Forest, *net.Neural, error) {
	forest := net.NewForest(len(feature.Columns), cfg.Trees)
	neural := net.NewNeural(len(feature.Columns), cfg.Epochs)

	var wg sync.WaitGroup
	errs := make([]error, 2)
	wg.Add(2)
	go func() {
		defer wg.Done()
		errs[0] = forest.Fit(x, y)
	}()
	go func() {
		defer wg.Done()
		errs[1] = neural.Fit(x, y)
	}()
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			return nil, nil, fmt.Errorf("could not fit member %d: %w", i, err)
		}
	}
	return forest, neural, nil
}

// split shuffles deterministically and carves out the test share.
func split(x [][]float64, y []int, testShare float64, seed uint64) ([][]float64, []int, [][]float64, []int) {
	rng := rand.New(rand.NewSource(seed + 1))
	perm := rng.Perm(len(x))

	testSize := int(float64(len(x)) * testShare)
	trainX := make([][]float64, 0, len(x)-testSize)
	trainY := make([]int, 0, len(x)-testSize)
	testX := make([][]float64, 0, testSize)
	testY := make([]int, 0, testSize)

	for i, p := range perm {
		if i < testSize {
			testX = append(testX, x[p])
			testY = append(testY, y[p])
		} else {
			trainX = append(trainX, x[p])
			trainY = append(trainY, y[p])
		}
	}
	return trainX, trainY, testX, testY
}

// evaluate scores the ensemble at the 0.5 boundary.
func evaluate(ensemble *net.Ensemble, x [][]float64, y []int) (Report, error) {
	var tp, fp, fn, correct float64
	for i, v := range x {
		p, err := ensemble.Predict(v)
		if err != nil {
			return Report{}, err
		}
		predicted := 0
		if p > 0.5 {
			predicted = 1
		}
		if predicted == y[i] {
			correct++
		}
		switch {
		case predicted == 1 && y[i] == 1:
			tp++
		case predicted == 1 && y[i] == 0:
			fp++
		case predicted == 0 && y[i] == 1:
			fn++
		}
	}

	report := Report{}
	if len(x) > 0 {
		report.Accuracy = correct / float64(len(x))
	}
	if tp+fp > 0 {
		report.Precision = tp / (tp + fp)
	}
	if tp+fn > 0 {
		report.Recall = tp / (tp + fn)
	}
	return report, nil
}
