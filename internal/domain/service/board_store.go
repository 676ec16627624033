package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"mboard/internal/domain/entity"
	"mboard/internal/domain/valueobject"
)

const maxIDAttempts = 64

// BoardStore owns the canonical column and task sequences.
// Every mutation builds new slices and hands them to the History before
// publishing them; a failed save leaves the live board untouched.
// A BoardStore is not safe for concurrent use.
type BoardStore struct {
	columns []entity.Column
	tasks   []entity.Task
	history *History
	ids     valueobject.IDGenerator
}

// NewBoardStore creates an empty BoardStore
func NewBoardStore(history *History, ids valueobject.IDGenerator) *BoardStore {
	return &BoardStore{
		columns: []entity.Column{},
		tasks:   []entity.Task{},
		history: history,
		ids:     ids,
	}
}

// Load adopts the persisted board, if any, as the live state and as the
// only history entry
func (s *BoardStore) Load(ctx context.Context) error {
	snapshot, found, err := s.history.Load(ctx)
	if err != nil {
		return err
	}

	s.publish(snapshot)
	log.Debug().
		Bool("found", found).
		Int("columns", len(s.columns)).
		Int("tasks", len(s.tasks)).
		Msg("board loaded")
	return nil
}

// Stale reports whether persisted state differs from the last snapshot this
// store recorded, meaning another writer changed it.
func (s *BoardStore) Stale(ctx context.Context) (bool, error) {
	persisted, _, err := s.history.Peek(ctx)
	if err != nil {
		return false, err
	}
	return !persisted.Equal(s.history.Current()), nil
}

// Reload re-reads persisted state after an external writer changed it.
// State matching the store's own last write is ignored so its history
// survives. It reports whether the live board was replaced.
func (s *BoardStore) Reload(ctx context.Context) (bool, error) {
	stale, err := s.Stale(ctx)
	if err != nil || !stale {
		return false, err
	}
	if err := s.Load(ctx); err != nil {
		return false, err
	}
	return true, nil
}

// History exposes the store's history manager
func (s *BoardStore) History() *History {
	return s.history
}

// Columns returns a copy of the column sequence
func (s *BoardStore) Columns() []entity.Column {
	return entity.CloneColumns(s.columns)
}

// Tasks returns a copy of the task sequence
func (s *BoardStore) Tasks() []entity.Task {
	return entity.CloneTasks(s.tasks)
}

// TasksIn returns the tasks of one column in board order
func (s *BoardStore) TasksIn(columnID valueobject.ID) []entity.Task {
	return entity.TasksIn(s.tasks, columnID)
}

// Snapshot captures the live board
func (s *BoardStore) Snapshot() entity.Snapshot {
	return entity.NewSnapshot(s.columns, s.tasks)
}

// AddColumn appends a column with a default title
func (s *BoardStore) AddColumn(ctx context.Context) (entity.Column, error) {
	return s.AddColumnTitled(ctx, "")
}

// AddColumnTitled appends a column in a single history step.
// An empty title falls back to the default one.
func (s *BoardStore) AddColumnTitled(ctx context.Context, title string) (entity.Column, error) {
	if title == "" {
		title = fmt.Sprintf("Column no. %d", len(s.columns))
	}
	column := entity.NewColumn(s.freshID(valueobject.KindColumn), title)

	columns := append(entity.CloneColumns(s.columns), column)
	if err := s.commit(ctx, columns, s.tasks); err != nil {
		return entity.Column{}, err
	}
	return column, nil
}

// DeleteColumn removes the column and every task that belongs to it.
// Unknown ids still produce a history entry.
func (s *BoardStore) DeleteColumn(ctx context.Context, id valueobject.ID) error {
	columns := make([]entity.Column, 0, len(s.columns))
	for _, col := range s.columns {
		if col.ID != id {
			columns = append(columns, col)
		}
	}

	tasks := make([]entity.Task, 0, len(s.tasks))
	for _, task := range s.tasks {
		if task.ColumnID != id {
			tasks = append(tasks, task)
		}
	}

	return s.commit(ctx, columns, tasks)
}

// UpdateColumnTitle replaces the title of the matching column
func (s *BoardStore) UpdateColumnTitle(ctx context.Context, id valueobject.ID, title string) error {
	columns := entity.CloneColumns(s.columns)
	for i, col := range columns {
		if col.ID == id {
			columns[i] = col.WithTitle(title)
		}
	}
	return s.commit(ctx, columns, s.tasks)
}

// AddTask appends a task with default content to the given column.
// The column id is not validated.
func (s *BoardStore) AddTask(ctx context.Context, columnID valueobject.ID) (entity.Task, error) {
	return s.AddTaskWithContent(ctx, columnID, "")
}

// AddTaskWithContent appends a task in a single history step.
// Empty content falls back to the default one.
func (s *BoardStore) AddTaskWithContent(ctx context.Context, columnID valueobject.ID, content string) (entity.Task, error) {
	if content == "" {
		content = fmt.Sprintf("Task %d", len(s.tasks)+1)
	}
	task := entity.NewTask(s.freshID(valueobject.KindTask), columnID, content)

	tasks := append(entity.CloneTasks(s.tasks), task)
	if err := s.commit(ctx, s.columns, tasks); err != nil {
		return entity.Task{}, err
	}
	return task, nil
}

// DeleteTask removes the matching task
func (s *BoardStore) DeleteTask(ctx context.Context, taskID valueobject.ID) error {
	tasks := make([]entity.Task, 0, len(s.tasks))
	for _, task := range s.tasks {
		if task.ID != taskID {
			tasks = append(tasks, task)
		}
	}
	return s.commit(ctx, s.columns, tasks)
}

// UpdateTask replaces the content of the matching task
func (s *BoardStore) UpdateTask(ctx context.Context, taskID valueobject.ID, content string) error {
	tasks := entity.CloneTasks(s.tasks)
	for i, task := range tasks {
		if task.ID == taskID {
			tasks[i] = task.WithContent(content)
		}
	}
	return s.commit(ctx, s.columns, tasks)
}

// MoveTask reassigns a task to another column and records the result
func (s *BoardStore) MoveTask(ctx context.Context, taskID, newColumnID valueobject.ID) error {
	return s.commit(ctx, s.columns, MoveTask(s.tasks, taskID, newColumnID))
}

// MoveTaskSameCol applies the reorder engine's task-over-task move.
// Nothing is recorded when the move is a no-op.
func (s *BoardStore) MoveTaskSameCol(ctx context.Context, activeID, overID valueobject.ID) (bool, error) {
	return s.moveTaskSameCol(ctx, activeID, overID, true)
}

// MoveTaskDiffCol applies the reorder engine's task-over-column move.
// Nothing is recorded when the task already belongs to the column.
func (s *BoardStore) MoveTaskDiffCol(ctx context.Context, activeID, overColumnID valueobject.ID) (bool, error) {
	return s.moveTaskDiffCol(ctx, activeID, overColumnID, true)
}

// MoveColumn moves the column at fromIndex to toIndex.
// Out-of-range or identical indexes are ignored.
func (s *BoardStore) MoveColumn(ctx context.Context, fromIndex, toIndex int) (bool, error) {
	columns, changed := MoveColumn(s.columns, fromIndex, toIndex)
	if !changed {
		return false, nil
	}
	if err := s.commit(ctx, columns, s.tasks); err != nil {
		return false, err
	}
	return true, nil
}

// Replace adopts a whole board and records it
func (s *BoardStore) Replace(ctx context.Context, snapshot entity.Snapshot) error {
	return s.commit(ctx, snapshot.Columns, snapshot.Tasks)
}

// Undo restores the previous snapshot. It reports false when there is
// nothing to undo.
func (s *BoardStore) Undo(ctx context.Context) (bool, error) {
	snapshot, ok, err := s.history.Undo(ctx)
	if err != nil || !ok {
		return false, err
	}
	s.publish(snapshot)
	return true, nil
}

// Redo restores the next snapshot. It reports false when there is nothing
// to redo.
func (s *BoardStore) Redo(ctx context.Context) (bool, error) {
	snapshot, ok, err := s.history.Redo(ctx)
	if err != nil || !ok {
		return false, err
	}
	s.publish(snapshot)
	return true, nil
}

// CanUndo reports whether Undo would change the board
func (s *BoardStore) CanUndo() bool {
	return s.history.CanUndo()
}

// CanRedo reports whether Redo would change the board
func (s *BoardStore) CanRedo() bool {
	return s.history.CanRedo()
}

func (s *BoardStore) moveTaskSameCol(ctx context.Context, activeID, overID valueobject.ID, record bool) (bool, error) {
	tasks, changed := MoveTaskSameCol(s.tasks, activeID, overID)
	if !changed {
		return false, nil
	}
	return true, s.apply(ctx, s.columns, tasks, record)
}

func (s *BoardStore) moveTaskDiffCol(ctx context.Context, activeID, overColumnID valueobject.ID, record bool) (bool, error) {
	tasks, changed := MoveTaskDiffCol(s.tasks, activeID, overColumnID)
	if !changed {
		return false, nil
	}
	return true, s.apply(ctx, s.columns, tasks, record)
}

// apply either records the new state or only publishes it as a preview
func (s *BoardStore) apply(ctx context.Context, columns []entity.Column, tasks []entity.Task, record bool) error {
	if record {
		return s.commit(ctx, columns, tasks)
	}
	s.publish(entity.NewSnapshot(columns, tasks))
	return nil
}

func (s *BoardStore) commit(ctx context.Context, columns []entity.Column, tasks []entity.Task) error {
	snapshot := entity.NewSnapshot(columns, tasks)
	if err := s.history.Record(ctx, snapshot); err != nil {
		return err
	}
	s.publish(snapshot)
	return nil
}

func (s *BoardStore) publish(snapshot entity.Snapshot) {
	s.columns = snapshot.Columns
	s.tasks = snapshot.Tasks
}

// freshID draws identifiers until one is not held by a live entity
func (s *BoardStore) freshID(kind valueobject.Kind) valueobject.ID {
	var id valueobject.ID
	limit := len(s.columns) + len(s.tasks) + maxIDAttempts
	for attempt := 0; attempt < limit; attempt++ {
		id = s.ids.NewID(kind)
		if !s.idInUse(kind, id) {
			return id
		}
	}
	log.Warn().Str("kind", string(kind)).Str("id", id.String()).Msg("id generator kept colliding")
	return id
}

func (s *BoardStore) idInUse(kind valueobject.Kind, id valueobject.ID) bool {
	if kind == valueobject.KindColumn {
		return entity.ColumnIndex(s.columns, id) >= 0
	}
	return entity.TaskIndex(s.tasks, id) >= 0
}
