package persistence

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mboard/internal/domain/entity"
	"mboard/internal/infrastructure/persistence/memory"
)

type failingStorage struct{ err error }

func (s failingStorage) Get(context.Context, string) (string, bool, error) { return "", false, s.err }
func (s failingStorage) Set(context.Context, string, string) error         { return s.err }

func TestSnapshotRepositoryRoundTrip(t *testing.T) {
	ctx := context.Background()
	storage := memory.NewStateStorage()
	repo, err := NewSnapshotRepository(storage, "kanbanState")
	require.NoError(t, err)

	_, err = repo.Load(ctx)
	require.ErrorIs(t, err, entity.ErrStateNotFound)

	snapshot := entity.NewSnapshot(
		[]entity.Column{{ID: "c1", Title: "Todo"}},
		[]entity.Task{{ID: "t1", ColumnID: "c1", Content: "Task 1"}},
	)
	require.NoError(t, repo.Save(ctx, snapshot))

	raw, found, err := storage.Get(ctx, "kanbanState")
	require.NoError(t, err)
	require.True(t, found)
	assert.Contains(t, raw, `"columnId":"c1"`)

	got, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, snapshot, got)
}

func TestSnapshotRepositoryMalformed(t *testing.T) {
	ctx := context.Background()
	storage := memory.NewStateStorage()
	require.NoError(t, storage.Set(ctx, "kanbanState", "not json"))

	repo, err := NewSnapshotRepository(storage, "kanbanState")
	require.NoError(t, err)

	_, err = repo.Load(ctx)
	require.ErrorIs(t, err, entity.ErrStateMalformed)
}

func TestSnapshotRepositoryPropagatesStorageErrors(t *testing.T) {
	ctx := context.Background()
	boom := errors.New("disk on fire")
	repo, err := NewSnapshotRepository(failingStorage{err: boom}, "kanbanState")
	require.NoError(t, err)

	_, err = repo.Load(ctx)
	require.ErrorIs(t, err, boom)
	require.ErrorIs(t, repo.Save(ctx, entity.Snapshot{}), boom)
}

func TestSnapshotRepositoryRequiresKey(t *testing.T) {
	_, err := NewSnapshotRepository(memory.NewStateStorage(), "")
	require.ErrorIs(t, err, entity.ErrEmptyStateKey)
}
