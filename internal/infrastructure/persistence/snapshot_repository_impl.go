package persistence

import (
	"context"
	"fmt"

	"mboard/internal/domain/entity"
	"mboard/internal/domain/repository"
	"mboard/internal/infrastructure/persistence/mapper"
)

// SnapshotRepositoryImpl implements SnapshotRepository on top of any
// key/value StateStorage, keeping the whole board under one key
type SnapshotRepositoryImpl struct {
	storage repository.StateStorage
	key     string
}

// NewSnapshotRepository creates a new key/value backed snapshot repository
func NewSnapshotRepository(storage repository.StateStorage, key string) (repository.SnapshotRepository, error) {
	if key == "" {
		return nil, entity.ErrEmptyStateKey
	}
	return &SnapshotRepositoryImpl{
		storage: storage,
		key:     key,
	}, nil
}

// Load reads and decodes the board blob
func (r *SnapshotRepositoryImpl) Load(ctx context.Context) (entity.Snapshot, error) {
	data, found, err := r.storage.Get(ctx, r.key)
	if err != nil {
		return entity.Snapshot{}, fmt.Errorf("failed to read %q: %w", r.key, err)
	}
	if !found {
		return entity.Snapshot{}, entity.ErrStateNotFound
	}

	return mapper.SnapshotFromStorage(data)
}

// Save encodes and writes the board blob
func (r *SnapshotRepositoryImpl) Save(ctx context.Context, snapshot entity.Snapshot) error {
	data, err := mapper.SnapshotToStorage(snapshot)
	if err != nil {
		return err
	}

	if err := r.storage.Set(ctx, r.key, data); err != nil {
		return fmt.Errorf("failed to write %q: %w", r.key, err)
	}
	return nil
}
