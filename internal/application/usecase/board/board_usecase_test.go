package board

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mboard/internal/application/dto"
	"mboard/internal/domain/entity"
	"mboard/internal/domain/service"
	"mboard/internal/domain/valueobject"
	"mboard/internal/infrastructure/persistence"
	"mboard/internal/infrastructure/persistence/memory"
)

func newUseCase(t *testing.T, recordTicks bool) (*BoardUseCase, *memory.StateStorageImpl) {
	t.Helper()

	storage := memory.NewStateStorage()
	repo, err := persistence.NewSnapshotRepository(storage, "kanbanState")
	require.NoError(t, err)

	store := service.NewBoardStore(service.NewHistory(repo, 0), valueobject.NewSequenceGenerator())
	uc := NewBoardUseCase(store, service.NewDragSession(store, recordTicks))
	require.NoError(t, uc.Open(context.Background()))
	return uc, storage
}

func taskRef(id string) dto.DescriptorDTO {
	return dto.DescriptorDTO{Kind: "Task", ID: id}
}

func columnRef(id string) dto.DescriptorDTO {
	return dto.DescriptorDTO{Kind: "Column", ID: id}
}

func contents(board *dto.BoardDTO, columnID string) []string {
	out := []string{}
	for _, task := range board.TasksIn(columnID) {
		out = append(out, task.Content)
	}
	return out
}

func TestBoardUseCaseAddAndPersist(t *testing.T) {
	ctx := context.Background()
	uc, storage := newUseCase(t, false)

	col, err := uc.AddColumn(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, "Column no. 0", col.Title)

	task, err := uc.AddTask(ctx, col.ID, "Buy milk")
	require.NoError(t, err)
	assert.Equal(t, col.ID, task.ColumnID)

	raw, found, err := storage.Get(ctx, "kanbanState")
	require.NoError(t, err)
	require.True(t, found)
	assert.JSONEq(t,
		`{"columns":[{"id":"C1","title":"Column no. 0"}],"tasks":[{"id":"T1","columnId":"C1","content":"Buy milk"}]}`,
		raw)

	board, err := uc.GetBoard(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, board.History.Length)
	assert.True(t, board.History.CanUndo)
	assert.False(t, board.History.CanRedo)
}

func TestBoardUseCaseUndoRedo(t *testing.T) {
	ctx := context.Background()
	uc, _ := newUseCase(t, false)

	col, err := uc.AddColumn(ctx, "Todo")
	require.NoError(t, err)
	_, err = uc.AddTask(ctx, col.ID, "one")
	require.NoError(t, err)

	result, err := uc.Undo(ctx)
	require.NoError(t, err)
	assert.True(t, result.Changed)
	assert.Empty(t, result.Board.Tasks)
	assert.True(t, result.Board.History.CanRedo)

	result, err = uc.Redo(ctx)
	require.NoError(t, err)
	assert.True(t, result.Changed)
	assert.Equal(t, []string{"one"}, contents(&result.Board, col.ID))

	result, err = uc.Redo(ctx)
	require.NoError(t, err)
	assert.False(t, result.Changed)
}

func TestBoardUseCaseMoveColumnValidates(t *testing.T) {
	ctx := context.Background()
	uc, _ := newUseCase(t, false)

	a, err := uc.AddColumn(ctx, "A")
	require.NoError(t, err)
	b, err := uc.AddColumn(ctx, "B")
	require.NoError(t, err)

	_, err = uc.MoveColumn(ctx, "missing", 0)
	assert.ErrorIs(t, err, entity.ErrColumnNotFound)

	_, err = uc.MoveColumn(ctx, a.ID, 5)
	assert.ErrorIs(t, err, entity.ErrInvalidColumnIndex)

	result, err := uc.MoveColumn(ctx, a.ID, 1)
	require.NoError(t, err)
	assert.True(t, result.Changed)
	assert.Equal(t, []dto.ColumnDTO{{ID: b.ID, Title: "B"}, {ID: a.ID, Title: "A"}}, result.Board.Columns)

	result, err = uc.MoveColumn(ctx, a.ID, 1)
	require.NoError(t, err)
	assert.False(t, result.Changed)
}

func TestBoardUseCaseReorderTask(t *testing.T) {
	ctx := context.Background()
	uc, _ := newUseCase(t, false)

	todo, err := uc.AddColumn(ctx, "Todo")
	require.NoError(t, err)
	done, err := uc.AddColumn(ctx, "Done")
	require.NoError(t, err)
	first, err := uc.AddTask(ctx, todo.ID, "first")
	require.NoError(t, err)
	second, err := uc.AddTask(ctx, done.ID, "second")
	require.NoError(t, err)

	_, err = uc.ReorderTask(ctx, first.ID, "nope")
	assert.ErrorIs(t, err, entity.ErrTaskNotFound)

	result, err := uc.ReorderTask(ctx, first.ID, second.ID)
	require.NoError(t, err)
	assert.True(t, result.Changed)
	assert.Empty(t, contents(&result.Board, todo.ID))
	assert.Equal(t, []string{"second", "first"}, contents(&result.Board, done.ID))
}

func TestBoardUseCaseDragBufferedRecordsOnce(t *testing.T) {
	ctx := context.Background()
	uc, _ := newUseCase(t, false)

	todo, err := uc.AddColumn(ctx, "Todo")
	require.NoError(t, err)
	done, err := uc.AddColumn(ctx, "Done")
	require.NoError(t, err)
	task, err := uc.AddTask(ctx, todo.ID, "move me")
	require.NoError(t, err)

	before, err := uc.History(ctx)
	require.NoError(t, err)

	require.NoError(t, uc.DragStart(ctx, taskRef(task.ID)))

	result, err := uc.DragOver(ctx, taskRef(task.ID), columnRef(done.ID))
	require.NoError(t, err)
	assert.True(t, result.Changed)
	assert.Equal(t, []string{"move me"}, contents(&result.Board, done.ID))
	assert.Equal(t, before.Length, result.Board.History.Length, "preview is not recorded")

	result, err = uc.DragEnd(ctx)
	require.NoError(t, err)
	assert.True(t, result.Changed)
	assert.Equal(t, before.Length+1, result.Board.History.Length)

	undone, err := uc.Undo(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"move me"}, contents(&undone.Board, todo.ID))
}

func TestBoardUseCaseDragCancelRestores(t *testing.T) {
	ctx := context.Background()
	uc, _ := newUseCase(t, false)

	todo, err := uc.AddColumn(ctx, "Todo")
	require.NoError(t, err)
	done, err := uc.AddColumn(ctx, "Done")
	require.NoError(t, err)
	task, err := uc.AddTask(ctx, todo.ID, "stay")
	require.NoError(t, err)

	require.NoError(t, uc.DragStart(ctx, taskRef(task.ID)))
	_, err = uc.DragOver(ctx, taskRef(task.ID), columnRef(done.ID))
	require.NoError(t, err)

	board, err := uc.DragCancel(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"stay"}, contents(board, todo.ID))
}

func TestBoardUseCaseMutationAbandonsDrag(t *testing.T) {
	ctx := context.Background()
	uc, _ := newUseCase(t, false)

	todo, err := uc.AddColumn(ctx, "Todo")
	require.NoError(t, err)
	done, err := uc.AddColumn(ctx, "Done")
	require.NoError(t, err)
	task, err := uc.AddTask(ctx, todo.ID, "dragged")
	require.NoError(t, err)

	require.NoError(t, uc.DragStart(ctx, taskRef(task.ID)))
	_, err = uc.DragOver(ctx, taskRef(task.ID), columnRef(done.ID))
	require.NoError(t, err)

	board, err := uc.RenameColumn(ctx, done.ID, "Finished")
	require.NoError(t, err)
	assert.Equal(t, []string{"dragged"}, contents(board, todo.ID))

	_, err = uc.DragOver(ctx, taskRef(task.ID), columnRef(done.ID))
	assert.ErrorIs(t, err, entity.ErrNoActiveDrag)

	result, err := uc.DragEnd(ctx)
	require.NoError(t, err)
	assert.False(t, result.Changed)
}

func TestBoardUseCaseDragRejectsBadDescriptor(t *testing.T) {
	ctx := context.Background()
	uc, _ := newUseCase(t, false)

	err := uc.DragStart(ctx, dto.DescriptorDTO{Kind: "Card", ID: "x"})
	assert.ErrorIs(t, err, entity.ErrInvalidDescriptor)

	_, err = uc.DragOver(ctx, taskRef("T1"), dto.DescriptorDTO{Kind: "Task"})
	assert.ErrorIs(t, err, entity.ErrInvalidDescriptor)
}

func TestBoardUseCaseReplaceAndReload(t *testing.T) {
	ctx := context.Background()
	uc, storage := newUseCase(t, false)

	board, err := uc.Replace(ctx, dto.BoardDTO{
		Columns: []dto.ColumnDTO{{ID: "c1", Title: "Imported"}},
		Tasks:   []dto.TaskDTO{{ID: "t1", ColumnID: "c1", Content: "from file"}},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"from file"}, contents(board, "c1"))
	assert.Equal(t, 1, board.History.Length)

	require.NoError(t, storage.Set(ctx, "kanbanState", `{"columns":[],"tasks":[]}`))

	result, err := uc.Reload(ctx)
	require.NoError(t, err)
	assert.True(t, result.Changed)
	assert.Empty(t, result.Board.Columns)
	assert.False(t, result.Board.History.CanUndo)

	result, err = uc.Reload(ctx)
	require.NoError(t, err)
	assert.False(t, result.Changed)
}

func TestBoardUseCaseDeleteColumnCascades(t *testing.T) {
	ctx := context.Background()
	uc, _ := newUseCase(t, false)

	col, err := uc.AddColumn(ctx, "Todo")
	require.NoError(t, err)
	task, err := uc.AddTask(ctx, col.ID, "gone")
	require.NoError(t, err)

	board, err := uc.UpdateTask(ctx, task.ID, "renamed")
	require.NoError(t, err)
	assert.Equal(t, []string{"renamed"}, contents(board, col.ID))

	board, err = uc.DeleteColumn(ctx, col.ID)
	require.NoError(t, err)
	assert.Empty(t, board.Columns)
	assert.Empty(t, board.Tasks)
}

func TestBoardUseCaseReloadKeepsDragWithoutExternalChange(t *testing.T) {
	ctx := context.Background()
	uc, _ := newUseCase(t, false)

	todo, err := uc.AddColumn(ctx, "Todo")
	require.NoError(t, err)
	done, err := uc.AddColumn(ctx, "Done")
	require.NoError(t, err)
	task, err := uc.AddTask(ctx, todo.ID, "ship")
	require.NoError(t, err)

	require.NoError(t, uc.DragStart(ctx, taskRef(task.ID)))
	_, err = uc.DragOver(ctx, taskRef(task.ID), columnRef(done.ID))
	require.NoError(t, err)

	result, err := uc.Reload(ctx)
	require.NoError(t, err)
	assert.False(t, result.Changed)
	assert.Equal(t, []string{"ship"}, contents(&result.Board, done.ID))

	result, err = uc.DragEnd(ctx)
	require.NoError(t, err)
	assert.True(t, result.Changed)
	assert.Equal(t, 4, result.Board.History.Length)
}
