package mapper

import (
	"encoding/json"
	"fmt"

	"mboard/internal/domain/entity"
	"mboard/internal/domain/valueobject"
)

// ColumnStorage represents column storage format
type ColumnStorage struct {
	ID    valueobject.ID `json:"id" yaml:"id"`
	Title string         `json:"title" yaml:"title"`
}

// TaskStorage represents task storage format
type TaskStorage struct {
	ID       valueobject.ID `json:"id" yaml:"id"`
	ColumnID valueobject.ID `json:"columnId" yaml:"column_id"`
	Content  string         `json:"content" yaml:"content"`
}

// BoardStateStorage is the single blob persisted under the state key
type BoardStateStorage struct {
	Columns []ColumnStorage `json:"columns" yaml:"columns"`
	Tasks   []TaskStorage   `json:"tasks" yaml:"tasks"`
}

// rawBoardState distinguishes a missing array from an empty one
type rawBoardState struct {
	Columns *[]ColumnStorage `json:"columns"`
	Tasks   *[]TaskStorage   `json:"tasks"`
}

// SnapshotToState converts a Snapshot to its storage structs
func SnapshotToState(snapshot entity.Snapshot) BoardStateStorage {
	state := BoardStateStorage{
		Columns: make([]ColumnStorage, 0, len(snapshot.Columns)),
		Tasks:   make([]TaskStorage, 0, len(snapshot.Tasks)),
	}
	for _, col := range snapshot.Columns {
		state.Columns = append(state.Columns, ColumnStorage{ID: col.ID, Title: col.Title})
	}
	for _, task := range snapshot.Tasks {
		state.Tasks = append(state.Tasks, TaskStorage{ID: task.ID, ColumnID: task.ColumnID, Content: task.Content})
	}
	return state
}

// SnapshotFromState converts storage structs back to a Snapshot
func SnapshotFromState(state BoardStateStorage) entity.Snapshot {
	columns := make([]entity.Column, 0, len(state.Columns))
	for _, col := range state.Columns {
		columns = append(columns, entity.NewColumn(col.ID, col.Title))
	}
	tasks := make([]entity.Task, 0, len(state.Tasks))
	for _, task := range state.Tasks {
		tasks = append(tasks, entity.NewTask(task.ID, task.ColumnID, task.Content))
	}
	return entity.Snapshot{Columns: columns, Tasks: tasks}
}

// SnapshotToStorage encodes a Snapshot as the persisted JSON blob
func SnapshotToStorage(snapshot entity.Snapshot) (string, error) {
	data, err := json.Marshal(SnapshotToState(snapshot))
	if err != nil {
		return "", fmt.Errorf("failed to encode board state: %w", err)
	}
	return string(data), nil
}

// SnapshotFromStorage decodes the persisted JSON blob. Both arrays must be
// present; anything else is reported as entity.ErrStateMalformed.
func SnapshotFromStorage(data string) (entity.Snapshot, error) {
	var raw rawBoardState
	if err := json.Unmarshal([]byte(data), &raw); err != nil {
		return entity.Snapshot{}, fmt.Errorf("%w: %v", entity.ErrStateMalformed, err)
	}
	if raw.Columns == nil || raw.Tasks == nil {
		return entity.Snapshot{}, fmt.Errorf("%w: columns and tasks are required", entity.ErrStateMalformed)
	}

	return SnapshotFromState(BoardStateStorage{Columns: *raw.Columns, Tasks: *raw.Tasks}), nil
}
