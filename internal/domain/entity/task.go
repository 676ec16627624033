package entity

import "mboard/internal/domain/valueobject"

// Task represents a card that lives in exactly one column
type Task struct {
	ID       valueobject.ID `json:"id"`
	ColumnID valueobject.ID `json:"columnId"`
	Content  string         `json:"content"`
}

// NewTask creates a new Task
func NewTask(id, columnID valueobject.ID, content string) Task {
	return Task{ID: id, ColumnID: columnID, Content: content}
}

// WithContent returns a copy of the task carrying the new content
func (t Task) WithContent(content string) Task {
	t.Content = content
	return t
}

// WithColumn returns a copy of the task assigned to another column
func (t Task) WithColumn(columnID valueobject.ID) Task {
	t.ColumnID = columnID
	return t
}
