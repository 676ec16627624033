package repository

import "context"

// StateStorage is a flat key/value store holding serialized board state
type StateStorage interface {
	// Get returns the value stored under key; found is false when absent
	Get(ctx context.Context, key string) (value string, found bool, err error)

	// Set stores value under key, replacing any previous value
	Set(ctx context.Context, key string, value string) error
}
