package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"mboard/internal/domain/entity"
	"mboard/internal/domain/valueobject"
)

// fakeRepo keeps the last saved snapshot in memory and counts saves
type fakeRepo struct {
	saved   *entity.Snapshot
	saves   int
	loadErr error
	saveErr error
}

func (r *fakeRepo) Load(context.Context) (entity.Snapshot, error) {
	if r.loadErr != nil {
		return entity.Snapshot{}, r.loadErr
	}
	if r.saved == nil {
		return entity.Snapshot{}, entity.ErrStateNotFound
	}
	return r.saved.Clone(), nil
}

func (r *fakeRepo) Save(_ context.Context, snapshot entity.Snapshot) error {
	if r.saveErr != nil {
		return r.saveErr
	}
	s := snapshot.Clone()
	r.saved = &s
	r.saves++
	return nil
}

var errBoom = errors.New("boom")

func newTestStore(t *testing.T, repo *fakeRepo) *BoardStore {
	t.Helper()
	store := NewBoardStore(NewHistory(repo, 0), valueobject.NewSequenceGenerator())
	require.NoError(t, store.Load(context.Background()))
	return store
}

func ids[T interface{ entity.Task | entity.Column }](items []T) []valueobject.ID {
	out := make([]valueobject.ID, 0, len(items))
	for _, item := range items {
		switch v := any(item).(type) {
		case entity.Task:
			out = append(out, v.ID)
		case entity.Column:
			out = append(out, v.ID)
		}
	}
	return out
}

func tasksFixture() []entity.Task {
	return []entity.Task{
		{ID: "T1", ColumnID: "C1", Content: "one"},
		{ID: "T2", ColumnID: "C1", Content: "two"},
		{ID: "T3", ColumnID: "C2", Content: "three"},
		{ID: "T4", ColumnID: "C2", Content: "four"},
	}
}

func columnsFixture() []entity.Column {
	return []entity.Column{
		{ID: "C1", Title: "Todo"},
		{ID: "C2", Title: "Doing"},
		{ID: "C3", Title: "Done"},
	}
}
