package entity

import "mboard/internal/domain/valueobject"

// Snapshot is a full copy of the board captured at one point in time
type Snapshot struct {
	Columns []Column `json:"columns"`
	Tasks   []Task   `json:"tasks"`
}

// NewSnapshot copies the given slices into a new Snapshot
func NewSnapshot(columns []Column, tasks []Task) Snapshot {
	return Snapshot{
		Columns: CloneColumns(columns),
		Tasks:   CloneTasks(tasks),
	}
}

// Clone returns a deep copy of the snapshot
func (s Snapshot) Clone() Snapshot {
	return NewSnapshot(s.Columns, s.Tasks)
}

// IsEmpty reports whether the snapshot holds no columns and no tasks
func (s Snapshot) IsEmpty() bool {
	return len(s.Columns) == 0 && len(s.Tasks) == 0
}

// Equal compares both sequences element by element
func (s Snapshot) Equal(other Snapshot) bool {
	if len(s.Columns) != len(other.Columns) || len(s.Tasks) != len(other.Tasks) {
		return false
	}
	for i := range s.Columns {
		if s.Columns[i] != other.Columns[i] {
			return false
		}
	}
	for i := range s.Tasks {
		if s.Tasks[i] != other.Tasks[i] {
			return false
		}
	}
	return true
}

// ColumnIndex returns the position of the column or -1
func (s Snapshot) ColumnIndex(id valueobject.ID) int {
	return ColumnIndex(s.Columns, id)
}

// TasksIn returns the tasks of one column in board order
func (s Snapshot) TasksIn(columnID valueobject.ID) []Task {
	return TasksIn(s.Tasks, columnID)
}

// CloneColumns copies a column slice. A nil input yields an empty slice so
// that persisted state always encodes as [] rather than null.
func CloneColumns(columns []Column) []Column {
	out := make([]Column, len(columns))
	copy(out, columns)
	return out
}

// CloneTasks copies a task slice, never returning nil
func CloneTasks(tasks []Task) []Task {
	out := make([]Task, len(tasks))
	copy(out, tasks)
	return out
}

// ColumnIndex finds a column by id
func ColumnIndex(columns []Column, id valueobject.ID) int {
	for i, col := range columns {
		if col.ID == id {
			return i
		}
	}
	return -1
}

// TaskIndex finds a task by id
func TaskIndex(tasks []Task, id valueobject.ID) int {
	for i, task := range tasks {
		if task.ID == id {
			return i
		}
	}
	return -1
}

// TasksIn filters tasks by column, keeping sequence order
func TasksIn(tasks []Task, columnID valueobject.ID) []Task {
	out := make([]Task, 0)
	for _, task := range tasks {
		if task.ColumnID == columnID {
			out = append(out, task)
		}
	}
	return out
}
