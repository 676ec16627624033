package board

import (
	"context"
	"fmt"
	"sync"

	"mboard/internal/application/dto"
	"mboard/internal/domain/entity"
	"mboard/internal/domain/service"
	"mboard/internal/domain/valueobject"
)

// BoardUseCase serialises access to one board store and its drag session.
// Any mutation outside the drag calls abandons an in-flight drag first.
type BoardUseCase struct {
	mu    sync.Mutex
	store *service.BoardStore
	drag  *service.DragSession
}

var _ Backend = (*BoardUseCase)(nil)

// NewBoardUseCase creates a new BoardUseCase
func NewBoardUseCase(store *service.BoardStore, drag *service.DragSession) *BoardUseCase {
	return &BoardUseCase{
		store: store,
		drag:  drag,
	}
}

// Open loads the persisted board into the store
func (uc *BoardUseCase) Open(ctx context.Context) error {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	if err := uc.store.Load(ctx); err != nil {
		return fmt.Errorf("failed to open board: %w", err)
	}
	return nil
}

// GetBoard returns the live board
func (uc *BoardUseCase) GetBoard(ctx context.Context) (*dto.BoardDTO, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	return uc.board(), nil
}

// History summarises the undo/redo log
func (uc *BoardUseCase) History(ctx context.Context) (*dto.HistoryDTO, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	history := uc.history()
	return &history, nil
}

// Reload re-reads persisted state written by another process.
// An in-flight drag is dropped only when the state really changed.
func (uc *BoardUseCase) Reload(ctx context.Context) (*dto.ChangeResult, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	stale, err := uc.store.Stale(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to reload board: %w", err)
	}
	if !stale {
		return uc.result(false), nil
	}

	uc.drag.Cancel()
	changed, err := uc.store.Reload(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to reload board: %w", err)
	}
	return uc.result(changed), nil
}

// AddColumn appends a column. An empty title uses the default one.
func (uc *BoardUseCase) AddColumn(ctx context.Context, title string) (*dto.ColumnDTO, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	uc.drag.Cancel()

	column, err := uc.store.AddColumnTitled(ctx, title)
	if err != nil {
		return nil, fmt.Errorf("failed to add column: %w", err)
	}

	columnDTO := dto.ColumnToDTO(column)
	return &columnDTO, nil
}

// DeleteColumn removes a column together with its tasks
func (uc *BoardUseCase) DeleteColumn(ctx context.Context, columnID string) (*dto.BoardDTO, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	uc.drag.Cancel()

	if err := uc.store.DeleteColumn(ctx, valueobject.ID(columnID)); err != nil {
		return nil, fmt.Errorf("failed to delete column: %w", err)
	}
	return uc.board(), nil
}

// RenameColumn replaces a column title
func (uc *BoardUseCase) RenameColumn(ctx context.Context, columnID, title string) (*dto.BoardDTO, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	uc.drag.Cancel()

	if err := uc.store.UpdateColumnTitle(ctx, valueobject.ID(columnID), title); err != nil {
		return nil, fmt.Errorf("failed to rename column: %w", err)
	}
	return uc.board(), nil
}

// MoveColumn moves a column to toIndex
func (uc *BoardUseCase) MoveColumn(ctx context.Context, columnID string, toIndex int) (*dto.ChangeResult, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	uc.drag.Cancel()

	columns := uc.store.Columns()
	from := entity.ColumnIndex(columns, valueobject.ID(columnID))
	if from < 0 {
		return nil, fmt.Errorf("%w: %s", entity.ErrColumnNotFound, columnID)
	}
	if toIndex < 0 || toIndex >= len(columns) {
		return nil, fmt.Errorf("%w: %d", entity.ErrInvalidColumnIndex, toIndex)
	}

	changed, err := uc.store.MoveColumn(ctx, from, toIndex)
	if err != nil {
		return nil, fmt.Errorf("failed to move column: %w", err)
	}
	return uc.result(changed), nil
}

// AddTask appends a task to a column. Empty content uses the default one.
func (uc *BoardUseCase) AddTask(ctx context.Context, columnID, content string) (*dto.TaskDTO, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	uc.drag.Cancel()

	task, err := uc.store.AddTaskWithContent(ctx, valueobject.ID(columnID), content)
	if err != nil {
		return nil, fmt.Errorf("failed to add task: %w", err)
	}

	taskDTO := dto.TaskToDTO(task)
	return &taskDTO, nil
}

// DeleteTask removes a task
func (uc *BoardUseCase) DeleteTask(ctx context.Context, taskID string) (*dto.BoardDTO, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	uc.drag.Cancel()

	if err := uc.store.DeleteTask(ctx, valueobject.ID(taskID)); err != nil {
		return nil, fmt.Errorf("failed to delete task: %w", err)
	}
	return uc.board(), nil
}

// UpdateTask replaces a task's content
func (uc *BoardUseCase) UpdateTask(ctx context.Context, taskID, content string) (*dto.BoardDTO, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	uc.drag.Cancel()

	if err := uc.store.UpdateTask(ctx, valueobject.ID(taskID), content); err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}
	return uc.board(), nil
}

// MoveTask reassigns a task to another column
func (uc *BoardUseCase) MoveTask(ctx context.Context, taskID, columnID string) (*dto.BoardDTO, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	uc.drag.Cancel()

	if err := uc.store.MoveTask(ctx, valueobject.ID(taskID), valueobject.ID(columnID)); err != nil {
		return nil, fmt.Errorf("failed to move task: %w", err)
	}
	return uc.board(), nil
}

// ReorderTask drops a task onto another task, adopting its column and
// position in one recorded step
func (uc *BoardUseCase) ReorderTask(ctx context.Context, taskID, overTaskID string) (*dto.ChangeResult, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	uc.drag.Cancel()

	tasks := uc.store.Tasks()
	for _, id := range []string{taskID, overTaskID} {
		if entity.TaskIndex(tasks, valueobject.ID(id)) < 0 {
			return nil, fmt.Errorf("%w: %s", entity.ErrTaskNotFound, id)
		}
	}

	changed, err := uc.store.MoveTaskSameCol(ctx, valueobject.ID(taskID), valueobject.ID(overTaskID))
	if err != nil {
		return nil, fmt.Errorf("failed to reorder task: %w", err)
	}
	return uc.result(changed), nil
}

// DragStart begins a drag gesture
func (uc *BoardUseCase) DragStart(ctx context.Context, active dto.DescriptorDTO) error {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	descriptor, err := active.ToDescriptor()
	if err != nil {
		return fmt.Errorf("%w: %v", entity.ErrInvalidDescriptor, err)
	}
	return uc.drag.Start(descriptor)
}

// DragOver feeds one pointer-over event to the drag session
func (uc *BoardUseCase) DragOver(ctx context.Context, active, over dto.DescriptorDTO) (*dto.ChangeResult, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	activeDescriptor, err := active.ToDescriptor()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", entity.ErrInvalidDescriptor, err)
	}
	overDescriptor, err := over.ToDescriptor()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", entity.ErrInvalidDescriptor, err)
	}

	changed, err := uc.drag.Over(ctx, activeDescriptor, overDescriptor)
	if err != nil {
		return nil, err
	}
	return uc.result(changed), nil
}

// DragEnd drops the dragged item
func (uc *BoardUseCase) DragEnd(ctx context.Context) (*dto.ChangeResult, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	changed, err := uc.drag.End(ctx)
	if err != nil {
		return nil, err
	}
	return uc.result(changed), nil
}

// DragCancel abandons the drag and returns the restored board
func (uc *BoardUseCase) DragCancel(ctx context.Context) (*dto.BoardDTO, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	uc.drag.Cancel()
	return uc.board(), nil
}

// Undo steps back one history entry
func (uc *BoardUseCase) Undo(ctx context.Context) (*dto.ChangeResult, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	uc.drag.Cancel()

	changed, err := uc.store.Undo(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to undo: %w", err)
	}
	return uc.result(changed), nil
}

// Redo steps forward one history entry
func (uc *BoardUseCase) Redo(ctx context.Context) (*dto.ChangeResult, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	uc.drag.Cancel()

	changed, err := uc.store.Redo(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to redo: %w", err)
	}
	return uc.result(changed), nil
}

// Replace adopts a whole board as one undoable step
func (uc *BoardUseCase) Replace(ctx context.Context, board dto.BoardDTO) (*dto.BoardDTO, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	uc.drag.Cancel()
	if err := uc.store.Replace(ctx, dto.BoardDTOToSnapshot(board)); err != nil {
		return nil, fmt.Errorf("failed to replace board: %w", err)
	}
	return uc.board(), nil
}

func (uc *BoardUseCase) board() *dto.BoardDTO {
	board := dto.SnapshotToBoardDTO(uc.store.Snapshot(), uc.history())
	return &board
}

func (uc *BoardUseCase) history() dto.HistoryDTO {
	history := uc.store.History()
	return dto.HistoryDTO{
		Cursor:   history.Cursor(),
		Length:   history.Len(),
		Capacity: history.Capacity(),
		CanUndo:  history.CanUndo(),
		CanRedo:  history.CanRedo(),
	}
}

func (uc *BoardUseCase) result(changed bool) *dto.ChangeResult {
	return &dto.ChangeResult{Changed: changed, Board: *uc.board()}
}
