package entity

import "mboard/internal/domain/valueobject"

// Column is a vertical lane on the board
type Column struct {
	ID    valueobject.ID `json:"id"`
	Title string         `json:"title"`
}

// NewColumn creates a new Column
func NewColumn(id valueobject.ID, title string) Column {
	return Column{ID: id, Title: title}
}

// WithTitle returns a copy of the column carrying the new title
func (c Column) WithTitle(title string) Column {
	c.Title = title
	return c
}
