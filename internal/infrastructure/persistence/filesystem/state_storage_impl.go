package filesystem

import (
	"context"
	"fmt"
	"os"

	"mboard/internal/domain/repository"
	"mboard/pkg/filesystem"
)

const stateFilePerm = 0644

// StateStorageImpl stores each key as one file under the data root
type StateStorageImpl struct {
	pathBuilder *PathBuilder
}

var _ repository.StateStorage = (*StateStorageImpl)(nil)

// NewStateStorage creates a filesystem-backed state storage rooted at dataPath
func NewStateStorage(dataPath string) (*StateStorageImpl, error) {
	if err := filesystem.EnsureDir(dataPath, 0755); err != nil {
		return nil, fmt.Errorf("failed to prepare data directory: %w", err)
	}
	return &StateStorageImpl{pathBuilder: NewPathBuilder(dataPath)}, nil
}

// PathBuilder exposes the path layout used by this storage
func (s *StateStorageImpl) PathBuilder() *PathBuilder {
	return s.pathBuilder
}

// Get reads the file backing key
func (s *StateStorageImpl) Get(ctx context.Context, key string) (string, bool, error) {
	path := s.pathBuilder.StateFile(key)

	exists, err := filesystem.Exists(path)
	if err != nil {
		return "", false, fmt.Errorf("failed to stat state file: %w", err)
	}
	if !exists {
		return "", false, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", false, fmt.Errorf("failed to read state file: %w", err)
	}

	return string(data), true, nil
}

// Set atomically replaces the file backing key
func (s *StateStorageImpl) Set(ctx context.Context, key, value string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := filesystem.SafeWrite(s.pathBuilder.StateFile(key), []byte(value), stateFilePerm); err != nil {
		return fmt.Errorf("failed to write state file: %w", err)
	}
	return nil
}
