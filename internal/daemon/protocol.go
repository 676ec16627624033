package daemon

import "mboard/internal/application/dto"

// Request types
const (
	RequestPing         = "ping"
	RequestSubscribe    = "subscribe"
	RequestGetBoard     = "get_board"
	RequestHistory      = "history"
	RequestReload       = "reload"
	RequestAddColumn    = "add_column"
	RequestDeleteColumn = "delete_column"
	RequestRenameColumn = "rename_column"
	RequestMoveColumn   = "move_column"
	RequestAddTask      = "add_task"
	RequestDeleteTask   = "delete_task"
	RequestUpdateTask   = "update_task"
	RequestMoveTask     = "move_task"
	RequestReorderTask  = "reorder_task"
	RequestDragStart    = "drag_start"
	RequestDragOver     = "drag_over"
	RequestDragEnd      = "drag_end"
	RequestDragCancel   = "drag_cancel"
	RequestUndo         = "undo"
	RequestRedo         = "redo"
	RequestReplace      = "replace"
)

// Notification types
const (
	NotificationBoardChanged = "board_changed"
)

// Error codes let clients map failures back to domain errors
const (
	CodeColumnNotFound     = "column_not_found"
	CodeInvalidColumnIndex = "invalid_column_index"
	CodeTaskNotFound       = "task_not_found"
	CodeInvalidDescriptor  = "invalid_descriptor"
	CodeNoActiveDrag       = "no_active_drag"
	CodeStorageUnavailable = "storage_unavailable"
	CodeBadRequest         = "bad_request"
)

// Request represents a client request to the daemon
type Request struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload,omitempty"`
}

// Response represents a daemon response to the client
type Response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
	Code    string      `json:"code,omitempty"`
}

// Notification is pushed to subscribers after the board changes
type Notification struct {
	Type  string       `json:"type"`
	Board dto.BoardDTO `json:"board"`
}

// ColumnPayload contains data for column requests
type ColumnPayload struct {
	ColumnID string `json:"column_id,omitempty"`
	Title    string `json:"title,omitempty"`
	ToIndex  int    `json:"to_index,omitempty"`
}

// TaskPayload contains data for task requests
type TaskPayload struct {
	TaskID     string `json:"task_id,omitempty"`
	ColumnID   string `json:"column_id,omitempty"`
	Content    string `json:"content,omitempty"`
	OverTaskID string `json:"over_task_id,omitempty"`
}

// DragPayload contains data for drag requests
type DragPayload struct {
	Active dto.DescriptorDTO `json:"active"`
	Over   dto.DescriptorDTO `json:"over"`
}

// ReplacePayload carries a whole board
type ReplacePayload struct {
	Board dto.BoardDTO `json:"board"`
}
