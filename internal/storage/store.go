package storage

import (
	"errors"
	"fmt"
)

const (
	// SnapshotDir is the sub-directory for fitted model snapshots.
	SnapshotDir = "snapshots"
	// ScoresDir is the sub-directory for the score result registry.
	ScoresDir = "scores"
)

var (
	// DefaultDir is the root directory of the file backed storage.
	DefaultDir = "file-storage"
)

var (
	NotFoundErr      = errors.New("not found")
	CouldNotLoadErr  = errors.New("could not load")
	UnrecoverableErr = errors.New("unrecoverable error")
)

// Key is the storage key for a general implementation.
type Key struct {
	Hash  int64  `json:"hash"`
	Name  string `json:"name"`
	Label string `json:"label"`
}

func (k Key) Path() string {
	return fmt.Sprintf("%s_%v_%s", k.Name, k.Hash, k.Label)
}

// Persistence stores and loads single values by key.
type Persistence interface {
	Store(k Key, value interface{}) error
	Load(k Key, value interface{}) error
}

// Registry is an append-only store for scoring events.
type Registry interface {
	Put(k Key, value interface{}) error
}

// VoidStorage ignores all writes and never finds anything.
type VoidStorage struct {
}

func NewVoidStorage() *VoidStorage {
	return &VoidStorage{}
}

func (d VoidStorage) Store(k Key, value interface{}) error {
	return nil
}

func (d VoidStorage) Load(k Key, value interface{}) error {
	return fmt.Errorf("not found '%v': %w", k, NotFoundErr)
}

// VoidRegistry is a registry which ignores all calls.
type VoidRegistry struct {
}

func NewVoidRegistry() *VoidRegistry {
	return &VoidRegistry{}
}

func (v VoidRegistry) Put(k Key, value interface{}) error {
	return nil
}
