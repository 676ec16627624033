package entity

import "errors"

var (
	// Board state errors
	ErrStateNotFound  = errors.New("no persisted board state")
	ErrStateMalformed = errors.New("persisted board state is malformed")

	// Column errors
	ErrColumnNotFound     = errors.New("column not found")
	ErrInvalidColumnIndex = errors.New("column index out of range")

	// Task errors
	ErrTaskNotFound = errors.New("task not found")

	// Drag errors
	ErrInvalidDescriptor = errors.New("invalid drag descriptor")
	ErrNoActiveDrag      = errors.New("no drag in progress")

	// Storage errors
	ErrStorageUnavailable = errors.New("state storage unavailable")
	ErrEmptyStateKey      = errors.New("state key cannot be empty")
)
