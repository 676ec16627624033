package repository

import (
	"context"

	"mboard/internal/domain/entity"
)

// SnapshotRepository defines the interface for board state persistence
type SnapshotRepository interface {
	// Load reads the current board snapshot.
	// It returns entity.ErrStateNotFound when nothing was saved yet and
	// entity.ErrStateMalformed when the stored blob cannot be decoded.
	Load(ctx context.Context) (entity.Snapshot, error)

	// Save replaces the current board snapshot
	Save(ctx context.Context, snapshot entity.Snapshot) error
}
