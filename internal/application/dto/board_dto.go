package dto

import (
	"mboard/internal/domain/entity"
	"mboard/internal/domain/valueobject"
)

// BoardDTO is the full board as seen by clients. Tasks keep board order;
// a column's tasks are the ones whose column_id matches, in that order.
type BoardDTO struct {
	Columns []ColumnDTO `json:"columns" yaml:"columns"`
	Tasks   []TaskDTO   `json:"tasks" yaml:"tasks"`
	History HistoryDTO  `json:"history" yaml:"history"`
}

// ColumnDTO represents a column data transfer object
type ColumnDTO struct {
	ID    string `json:"id" yaml:"id"`
	Title string `json:"title" yaml:"title"`
}

// TaskDTO represents a task data transfer object
type TaskDTO struct {
	ID       string `json:"id" yaml:"id"`
	ColumnID string `json:"column_id" yaml:"column_id"`
	Content  string `json:"content" yaml:"content"`
}

// HistoryDTO summarises the undo/redo log
type HistoryDTO struct {
	Cursor   int  `json:"cursor" yaml:"cursor"`
	Length   int  `json:"length" yaml:"length"`
	Capacity int  `json:"capacity" yaml:"capacity"`
	CanUndo  bool `json:"can_undo" yaml:"can_undo"`
	CanRedo  bool `json:"can_redo" yaml:"can_redo"`
}

// ChangeResult reports whether an operation altered the board
type ChangeResult struct {
	Changed bool     `json:"changed" yaml:"changed"`
	Board   BoardDTO `json:"board" yaml:"board"`
}

// DescriptorDTO identifies a drag participant
type DescriptorDTO struct {
	Kind string `json:"kind" yaml:"kind"`
	ID   string `json:"id" yaml:"id"`
}

// TasksIn returns the tasks of one column in board order
func (b BoardDTO) TasksIn(columnID string) []TaskDTO {
	result := make([]TaskDTO, 0)
	for _, task := range b.Tasks {
		if task.ColumnID == columnID {
			result = append(result, task)
		}
	}
	return result
}

// ColumnIndex returns the position of a column or -1
func (b BoardDTO) ColumnIndex(columnID string) int {
	for i, col := range b.Columns {
		if col.ID == columnID {
			return i
		}
	}
	return -1
}

// FindTask returns the task with the given id
func (b BoardDTO) FindTask(taskID string) (TaskDTO, bool) {
	for _, task := range b.Tasks {
		if task.ID == taskID {
			return task, true
		}
	}
	return TaskDTO{}, false
}

// ColumnToDTO converts a column entity
func ColumnToDTO(col entity.Column) ColumnDTO {
	return ColumnDTO{ID: col.ID.String(), Title: col.Title}
}

// TaskToDTO converts a task entity
func TaskToDTO(task entity.Task) TaskDTO {
	return TaskDTO{ID: task.ID.String(), ColumnID: task.ColumnID.String(), Content: task.Content}
}

// SnapshotToBoardDTO converts a snapshot with its history summary
func SnapshotToBoardDTO(snapshot entity.Snapshot, history HistoryDTO) BoardDTO {
	board := BoardDTO{
		Columns: make([]ColumnDTO, 0, len(snapshot.Columns)),
		Tasks:   make([]TaskDTO, 0, len(snapshot.Tasks)),
		History: history,
	}
	for _, col := range snapshot.Columns {
		board.Columns = append(board.Columns, ColumnToDTO(col))
	}
	for _, task := range snapshot.Tasks {
		board.Tasks = append(board.Tasks, TaskToDTO(task))
	}
	return board
}

// BoardDTOToSnapshot converts a board back into a snapshot
func BoardDTOToSnapshot(board BoardDTO) entity.Snapshot {
	columns := make([]entity.Column, 0, len(board.Columns))
	for _, col := range board.Columns {
		columns = append(columns, entity.NewColumn(valueobject.ID(col.ID), col.Title))
	}
	tasks := make([]entity.Task, 0, len(board.Tasks))
	for _, task := range board.Tasks {
		tasks = append(tasks, entity.NewTask(valueobject.ID(task.ID), valueobject.ID(task.ColumnID), task.Content))
	}
	return entity.Snapshot{Columns: columns, Tasks: tasks}
}

// DescriptorToDTO converts a descriptor value object
func DescriptorToDTO(d valueobject.Descriptor) DescriptorDTO {
	return DescriptorDTO{Kind: string(d.Kind), ID: d.ID.String()}
}

// ToDescriptor parses the DTO into a validated descriptor
func (d DescriptorDTO) ToDescriptor() (valueobject.Descriptor, error) {
	kind, err := valueobject.ParseKind(d.Kind)
	if err != nil {
		return valueobject.Descriptor{}, err
	}
	descriptor := valueobject.Descriptor{Kind: kind, ID: valueobject.ID(d.ID)}
	if err := descriptor.Validate(); err != nil {
		return valueobject.Descriptor{}, err
	}
	return descriptor, nil
}
