package storage

import (
	"encoding/json"
	"fmt"
	"sync"
)

// MockStorage is an in-memory Persistence for tests.
type MockStorage struct {
	files map[Key]string
	mutex *sync.RWMutex
}

func NewMockStorage() *MockStorage {
	return &MockStorage{
		files: make(map[Key]string),
		mutex: new(sync.RWMutex),
	}
}

func (m *MockStorage) Store(k Key, value interface{}) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	bb, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("could not marshal value: %w", err)
	}
	m.files[k] = string(bb)
	return nil
}

func (m *MockStorage) Load(k Key, value interface{}) error {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	if v, ok := m.files[k]; ok {
		err := json.Unmarshal([]byte(v), value)
		if err != nil {
			return fmt.Errorf("could not unmarshal value: %w", err)
		}
		return nil
	}
	return fmt.Errorf("file not found '%+v': %w", k, NotFoundErr)
}

// MockRegistry is an in-memory Registry for tests.
type MockRegistry struct {
	events map[Key][]interface{}
	mutex  *sync.Mutex
}

func NewMockRegistry() *MockRegistry {
	return &MockRegistry{
		events: make(map[Key][]interface{}),
		mutex:  new(sync.Mutex),
	}
}

func (m *MockRegistry) Put(k Key, value interface{}) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.events[k] = append(m.events[k], value)
	return nil
}

// Events returns the recorded events for the given key.
func (m *MockRegistry) Events(k Key) []interface{} {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	return m.events[k]
}
