package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mboard/internal/domain/entity"
	"mboard/internal/domain/valueobject"
)

func TestBoardStoreAddColumn(t *testing.T) {
	ctx := context.Background()
	repo := &fakeRepo{}
	store := newTestStore(t, repo)

	first, err := store.AddColumn(ctx)
	require.NoError(t, err)
	second, err := store.AddColumn(ctx)
	require.NoError(t, err)

	assert.Equal(t, "Column no. 0", first.Title)
	assert.Equal(t, "Column no. 1", second.Title)
	assert.NotEqual(t, first.ID, second.ID)
	assert.Equal(t, []entity.Column{first, second}, store.Columns())
	assert.Equal(t, store.Snapshot(), *repo.saved)
	assert.Equal(t, 2, repo.saves)
}

func TestBoardStoreIDsStayUniqueAfterLoad(t *testing.T) {
	ctx := context.Background()
	saved := entity.NewSnapshot(
		[]entity.Column{{ID: "C1", Title: "a"}, {ID: "C2", Title: "b"}},
		[]entity.Task{{ID: "T1", ColumnID: "C1"}, {ID: "T2", ColumnID: "C1"}},
	)
	store := newTestStore(t, &fakeRepo{saved: &saved})

	col, err := store.AddColumn(ctx)
	require.NoError(t, err)
	task, err := store.AddTask(ctx, col.ID)
	require.NoError(t, err)

	assert.Equal(t, valueobject.ID("C3"), col.ID)
	assert.Equal(t, valueobject.ID("T3"), task.ID)
}

func TestBoardStoreUniqueIDsAcrossOperations(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t, &fakeRepo{})

	seen := map[valueobject.ID]bool{}
	for i := 0; i < 5; i++ {
		col, err := store.AddColumn(ctx)
		require.NoError(t, err)
		require.False(t, seen[col.ID], "duplicate column id %s", col.ID)
		seen[col.ID] = true

		for j := 0; j < 3; j++ {
			task, err := store.AddTask(ctx, col.ID)
			require.NoError(t, err)
			require.False(t, seen[task.ID], "duplicate task id %s", task.ID)
			seen[task.ID] = true
		}
	}
}

func TestBoardStoreDeleteColumnCascades(t *testing.T) {
	ctx := context.Background()
	saved := entity.NewSnapshot(columnsFixture(), tasksFixture())
	store := newTestStore(t, &fakeRepo{saved: &saved})

	require.NoError(t, store.DeleteColumn(ctx, "C1"))

	assert.Equal(t, []valueobject.ID{"C2", "C3"}, ids(store.Columns()))
	assert.Equal(t, []valueobject.ID{"T3", "T4"}, ids(store.Tasks()))
}

func TestBoardStoreUnknownIDStillRecords(t *testing.T) {
	ctx := context.Background()
	saved := entity.NewSnapshot(columnsFixture(), tasksFixture())
	repo := &fakeRepo{saved: &saved}
	store := newTestStore(t, repo)

	require.NoError(t, store.DeleteColumn(ctx, "missing"))
	require.NoError(t, store.UpdateTask(ctx, "missing", "x"))

	assert.Equal(t, saved, store.Snapshot())
	assert.Equal(t, 3, store.History().Len())
	assert.True(t, store.CanUndo())
}

func TestBoardStoreUpdates(t *testing.T) {
	ctx := context.Background()
	saved := entity.NewSnapshot(columnsFixture(), tasksFixture())
	store := newTestStore(t, &fakeRepo{saved: &saved})

	require.NoError(t, store.UpdateColumnTitle(ctx, "C2", "In progress"))
	require.NoError(t, store.UpdateTask(ctx, "T3", "changed"))
	require.NoError(t, store.DeleteTask(ctx, "T1"))

	assert.Equal(t, "In progress", store.Columns()[1].Title)
	assert.Equal(t, "Todo", store.Columns()[0].Title)
	assert.Equal(t, []valueobject.ID{"T2", "T3", "T4"}, ids(store.Tasks()))
	assert.Equal(t, "changed", store.TasksIn("C2")[0].Content)
}

func TestBoardStoreAccessorsReturnCopies(t *testing.T) {
	saved := entity.NewSnapshot(columnsFixture(), tasksFixture())
	store := newTestStore(t, &fakeRepo{saved: &saved})

	cols := store.Columns()
	cols[0].Title = "mutated"
	tasks := store.Tasks()
	tasks[0].Content = "mutated"

	assert.Equal(t, "Todo", store.Columns()[0].Title)
	assert.Equal(t, "one", store.Tasks()[0].Content)
}

func TestBoardStoreSaveFailureKeepsState(t *testing.T) {
	ctx := context.Background()
	repo := &fakeRepo{}
	store := newTestStore(t, repo)
	_, err := store.AddColumn(ctx)
	require.NoError(t, err)

	repo.saveErr = errBoom
	_, err = store.AddColumn(ctx)
	require.ErrorIs(t, err, errBoom)
	assert.Len(t, store.Columns(), 1)
}

func TestBoardStoreMoveColumn(t *testing.T) {
	ctx := context.Background()
	saved := entity.NewSnapshot(columnsFixture(), nil)
	store := newTestStore(t, &fakeRepo{saved: &saved})

	changed, err := store.MoveColumn(ctx, 0, 2)
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, []valueobject.ID{"C2", "C3", "C1"}, ids(store.Columns()))

	changed, err = store.MoveColumn(ctx, 2, 0)
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, columnsFixture(), store.Columns())

	changed, err = store.MoveColumn(ctx, 1, 1)
	require.NoError(t, err)
	assert.False(t, changed)
	assert.Equal(t, 3, store.History().Len())
}

func TestBoardStoreMoveTaskSameColNoop(t *testing.T) {
	ctx := context.Background()
	saved := entity.NewSnapshot(columnsFixture(), tasksFixture())
	store := newTestStore(t, &fakeRepo{saved: &saved})

	changed, err := store.MoveTaskSameCol(ctx, "T1", "T1")
	require.NoError(t, err)
	assert.False(t, changed)
	assert.Equal(t, saved, store.Snapshot())
	assert.Equal(t, 1, store.History().Len())
}

func TestBoardStoreMoveTask(t *testing.T) {
	ctx := context.Background()
	saved := entity.NewSnapshot(columnsFixture(), tasksFixture())
	store := newTestStore(t, &fakeRepo{saved: &saved})

	require.NoError(t, store.MoveTask(ctx, "T1", "C3"))
	assert.Equal(t, valueobject.ID("C3"), store.Tasks()[0].ColumnID)
	assert.True(t, store.CanUndo())
}

func TestBoardStoreRedoAfterUndoRestoresState(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t, &fakeRepo{})

	col, err := store.AddColumn(ctx)
	require.NoError(t, err)
	_, err = store.AddTask(ctx, col.ID)
	require.NoError(t, err)
	before := store.Snapshot()

	undone, err := store.Undo(ctx)
	require.NoError(t, err)
	require.True(t, undone)
	assert.Empty(t, store.Tasks())

	redone, err := store.Redo(ctx)
	require.NoError(t, err)
	require.True(t, redone)
	assert.Equal(t, before, store.Snapshot())
}

func TestBoardStoreReload(t *testing.T) {
	ctx := context.Background()
	repo := &fakeRepo{}
	store := newTestStore(t, repo)
	_, err := store.AddColumn(ctx)
	require.NoError(t, err)
	_, err = store.AddColumn(ctx)
	require.NoError(t, err)

	changed, err := store.Reload(ctx)
	require.NoError(t, err)
	assert.False(t, changed)
	assert.Equal(t, 2, store.History().Len())
	assert.True(t, store.CanUndo())

	external := entity.NewSnapshot([]entity.Column{{ID: "X", Title: "external"}}, nil)
	repo.saved = &external
	changed, err = store.Reload(ctx)
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, external, store.Snapshot())
	assert.Equal(t, 1, store.History().Len())
}

// Columns [C1], Tasks [] -> addTask -> updateTask -> undo -> deleteColumn
func TestBoardStoreBuyMilkScenario(t *testing.T) {
	ctx := context.Background()
	saved := entity.NewSnapshot([]entity.Column{{ID: "C1", Title: "Column no. 0"}}, nil)
	store := newTestStore(t, &fakeRepo{saved: &saved})

	task, err := store.AddTask(ctx, "C1")
	require.NoError(t, err)
	assert.Equal(t, []entity.Task{{ID: "T1", ColumnID: "C1", Content: "Task 1"}}, store.Tasks())

	require.NoError(t, store.UpdateTask(ctx, task.ID, "Buy milk"))
	assert.Equal(t, []entity.Task{{ID: "T1", ColumnID: "C1", Content: "Buy milk"}}, store.Tasks())

	undone, err := store.Undo(ctx)
	require.NoError(t, err)
	require.True(t, undone)
	assert.Equal(t, []entity.Task{{ID: "T1", ColumnID: "C1", Content: "Task 1"}}, store.Tasks())

	require.NoError(t, store.DeleteColumn(ctx, "C1"))
	assert.Empty(t, store.Columns())
	assert.Empty(t, store.Tasks())
	assert.False(t, store.CanRedo())
}

func TestBoardStoreAddWithExplicitText(t *testing.T) {
	ctx := context.Background()
	repo := &fakeRepo{}
	store := newTestStore(t, repo)

	col, err := store.AddColumnTitled(ctx, "Backlog")
	require.NoError(t, err)
	task, err := store.AddTaskWithContent(ctx, col.ID, "Write docs")
	require.NoError(t, err)

	assert.Equal(t, "Backlog", col.Title)
	assert.Equal(t, "Write docs", task.Content)
	assert.Equal(t, col.ID, task.ColumnID)
	assert.Equal(t, 2, repo.saves, "each add is one history step")

	fallback, err := store.AddTaskWithContent(ctx, col.ID, "")
	require.NoError(t, err)
	assert.Equal(t, "Task 2", fallback.Content)
}
