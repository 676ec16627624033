package memory

import (
	"context"
	"sync"

	"mboard/internal/domain/repository"
)

// StateStorageImpl keeps values in a map; nothing survives the process
type StateStorageImpl struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewStateStorage creates an empty in-memory state storage
func NewStateStorage() *StateStorageImpl {
	return &StateStorageImpl{values: make(map[string]string)}
}

var _ repository.StateStorage = (*StateStorageImpl)(nil)

// Get returns the value stored under key
func (s *StateStorageImpl) Get(_ context.Context, key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	value, ok := s.values[key]
	return value, ok, nil
}

// Set stores value under key
func (s *StateStorageImpl) Set(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.values[key] = value
	return nil
}
