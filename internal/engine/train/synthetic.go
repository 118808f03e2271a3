package train

import (
	"math"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"
)

// Config parameterises a training run.
type Config struct {
	Samples    int     `json:"samples"`
	FraudShare float64 `json:"fraud_share"`
	TestShare  float64 `json:"test_share"`
	Trees      int     `json:"trees"`
	Epochs     int     `json:"epochs"`
	Seed       uint64  `json:"seed"`
}

// DefaultConfig mirrors the parameters the production snapshot was trained with.
func DefaultConfig() Config {
	return Config{
		Samples:    10000,
		FraudShare: 0.2,
		TestShare:  0.2,
		Trees:      100,
		Epochs:     10,
		Seed:       42,
	}
}

// Synthetic generates a labelled training set following feature.Columns.
// Normal traffic concentrates on business hours, weekdays, aged accounts
// and low risk sub-scores; fraud on high amounts, new accounts and high
// risk sub-scores. The behavioural column keeps its trust polarity.
func Synthetic(cfg Config) ([][]float64, []int) {
	src := rand.NewSource(cfg.Seed)
	rng := rand.New(src)

	normalAmount := distuv.LogNormal{Mu: 3, Sigma: 1, Src: src}
	fraudAmount := distuv.LogNormal{Mu: 5, Sigma: 2, Src: src}
	normalAge := distuv.Normal{Mu: 365, Sigma: 200, Src: src}
	fraudAge := distuv.Normal{Mu: 30, Sigma: 50, Src: src}
	normalPrev := distuv.Poisson{Lambda: 50, Src: src}
	fraudPrev := distuv.Poisson{Lambda: 5, Src: src}
	lowRisk := distuv.Beta{Alpha: 2, Beta: 8, Src: src}
	highRisk := distuv.Beta{Alpha: 8, Beta: 2, Src: src}
	avgNoise := distuv.Normal{Mu: 1, Sigma: 0.3, Src: src}
	sinceLast := distuv.Exponential{Rate: 1.0 / 24, Src: src}

	fraudSamples := int(float64(cfg.Samples) * cfg.FraudShare)
	normalSamples := cfg.Samples - fraudSamples

	x := make([][]float64, 0, cfg.Samples)
	y := make([]int, 0, cfg.Samples)

	for i := 0; i < cfg.Samples; i++ {
		isFraud := i >= normalSamples

		var amount, hour, day, age, prev, location, device, velocity, behaviour float64
		if isFraud {
			amount = fraudAmount.Rand()
			hour = float64(rng.Intn(24))
			day = float64(rng.Intn(7))
			age = fraudAge.Rand()
			prev = fraudPrev.Rand()
			location = highRisk.Rand()
			device = highRisk.Rand()
			velocity = highRisk.Rand()
			behaviour = lowRisk.Rand()
		} else {
			amount = normalAmount.Rand()
			hour = float64(6 + rng.Intn(17))
			day = float64(1 + rng.Intn(5))
			age = normalAge.Rand()
			prev = normalPrev.Rand()
			location = lowRisk.Rand()
			device = lowRisk.Rand()
			velocity = lowRisk.Rand()
			behaviour = highRisk.Rand()
		}

		avg := amount * avgNoise.Rand()
		last := sinceLast.Rand()

		x = append(x, []float64{
			amount,
			hour,
			day,
			age,
			prev,
			avg,
			location,
			device,
			velocity,
			behaviour,
			last,
			math.Abs(amount - avg),
		})
		label := 0
		if isFraud {
			label = 1
		}
		y = append(y, label)
	}

	return x, y
}
