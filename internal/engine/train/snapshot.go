package train

import (
	"fmt"
	"time"

	randomforest "github.com/malaschitz/randomForest"

	"github.com/mindkey/fraud/internal/engine/feature"
	"github.com/mindkey/fraud/internal/engine/net"
	"github.com/mindkey/fraud/internal/engine/scaler"
	"github.com/mindkey/fraud/internal/model"
	"github.com/mindkey/fraud/internal/storage"
)

// Members is the fitted state of both ensemble members, captured at
// training time so a loaded snapshot serves exactly the model its
// report was evaluated on.
type Members struct {
	Forest randomforest.Forest `json:"forest"`
	Neural []net.LayerWeights  `json:"neural"`
}

// Snapshot is the versioned model artifact the serving process loads
// at startup. It carries the fitted scaler and members next to the
// training set that produced them.
type Snapshot struct {
	Columns []string           `json:"columns"`
	Params  *scaler.Parameters `json:"params"`
	Members *Members           `json:"members,omitempty"`
	X       [][]float64        `json:"x"`
	Y       []int              `json:"y"`
	Config  Config             `json:"config"`
	Report  Report             `json:"report"`
	Created time.Time          `json:"created"`
}

// Key addresses a snapshot version in storage.
func Key(version int64) storage.Key {
	return storage.Key{
		Hash:  version,
		Name:  "fraud-detection",
		Label: "snapshot",
	}
}

// Save persists the snapshot under the given version.
func Save(store storage.Persistence, version int64, s *Snapshot) error {
	if err := store.Store(Key(version), s); err != nil {
		return fmt.Errorf("could not store snapshot: %w", err)
	}
	return nil
}

// Load retrieves the snapshot for the given version and verifies it
// against the feature contract.
func Load(store storage.Persistence, version int64) (*Snapshot, error) {
	snapshot := &Snapshot{}
	if err := store.Load(Key(version), snapshot); err != nil {
		return nil, fmt.Errorf("could not load snapshot %d: %w", version, err)
	}
	if err := checkColumns(snapshot.Columns); err != nil {
		return nil, err
	}
	return snapshot, nil
}

// Build returns the fitted artifacts. A snapshot that already carries
// the member state restores it as-is, so every load of the same version
// yields the same model. A fresh snapshot fits the scaler and both
// members on its training split and captures their state.
func (s *Snapshot) Build() (*scaler.Parameters, *net.Ensemble, error) {
	if err := checkColumns(s.Columns); err != nil {
		return nil, nil, err
	}
	if s.Members != nil {
		return s.restore()
	}

	trainX, trainY, _, _ := split(s.X, s.Y, s.Config.TestShare, s.Config.Seed)

	if s.Params == nil {
		params, err := scaler.Fit(s.Columns, trainX)
		if err != nil {
			return nil, nil, fmt.Errorf("could not fit scaler: %w", err)
		}
		s.Params = params
	}

	scaled, err := s.Params.TransformAll(trainX)
	if err != nil {
		return nil, nil, fmt.Errorf("could not scale training split: %w", err)
	}

	forest, neural, err := fit(s.Config, scaled, trainY)
	if err != nil {
		return nil, nil, err
	}
	ensemble, err := net.NewEnsemble(len(s.Columns), forest, neural)
	if err != nil {
		return nil, nil, err
	}

	state, err := forest.Model()
	if err != nil {
		return nil, nil, fmt.Errorf("could not export forest state: %w", err)
	}
	s.Members = &Members{
		Forest: state,
		Neural: neural.Weights(),
	}
	return s.Params, ensemble, nil
}

// restore rebuilds the fitted artifacts from the persisted member state.
func (s *Snapshot) restore() (*scaler.Parameters, *net.Ensemble, error) {
	if s.Params == nil {
		return nil, nil, fmt.Errorf("snapshot has no scaler parameters: %w", model.ContractErr)
	}
	if err := s.Params.Check(s.Columns); err != nil {
		return nil, nil, err
	}
	forest, err := net.RestoreForest(len(s.Columns), s.Members.Forest)
	if err != nil {
		return nil, nil, fmt.Errorf("could not restore forest: %w", err)
	}
	neural, err := net.RestoreNeural(len(s.Columns), s.Members.Neural)
	if err != nil {
		return nil, nil, fmt.Errorf("could not restore network: %w", err)
	}
	ensemble, err := net.NewEnsemble(len(s.Columns), forest, neural)
	if err != nil {
		return nil, nil, err
	}
	return s.Params, ensemble, nil
}

func checkColumns(columns []string) error {
	if len(columns) != len(feature.Columns) {
		return fmt.Errorf("snapshot has %d columns, contract has %d: %w",
			len(columns), len(feature.Columns), model.ContractErr)
	}
	for i, c := range columns {
		if c != feature.Columns[i] {
			return fmt.Errorf("snapshot column %d is '%s', contract has '%s': %w",
				i, c, feature.Columns[i], model.ContractErr)
		}
	}
	return nil
}
