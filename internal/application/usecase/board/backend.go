package board

import (
	"context"

	"mboard/internal/application/dto"
)

// Backend is the set of board operations shared by the local use case and
// the daemon client, so the CLI and TUI can drive either.
type Backend interface {
	GetBoard(ctx context.Context) (*dto.BoardDTO, error)
	History(ctx context.Context) (*dto.HistoryDTO, error)
	Reload(ctx context.Context) (*dto.ChangeResult, error)

	AddColumn(ctx context.Context, title string) (*dto.ColumnDTO, error)
	DeleteColumn(ctx context.Context, columnID string) (*dto.BoardDTO, error)
	RenameColumn(ctx context.Context, columnID, title string) (*dto.BoardDTO, error)
	MoveColumn(ctx context.Context, columnID string, toIndex int) (*dto.ChangeResult, error)

	AddTask(ctx context.Context, columnID, content string) (*dto.TaskDTO, error)
	DeleteTask(ctx context.Context, taskID string) (*dto.BoardDTO, error)
	UpdateTask(ctx context.Context, taskID, content string) (*dto.BoardDTO, error)
	MoveTask(ctx context.Context, taskID, columnID string) (*dto.BoardDTO, error)
	ReorderTask(ctx context.Context, taskID, overTaskID string) (*dto.ChangeResult, error)

	DragStart(ctx context.Context, active dto.DescriptorDTO) error
	DragOver(ctx context.Context, active, over dto.DescriptorDTO) (*dto.ChangeResult, error)
	DragEnd(ctx context.Context) (*dto.ChangeResult, error)
	DragCancel(ctx context.Context) (*dto.BoardDTO, error)

	Undo(ctx context.Context) (*dto.ChangeResult, error)
	Redo(ctx context.Context) (*dto.ChangeResult, error)
	Replace(ctx context.Context, board dto.BoardDTO) (*dto.BoardDTO, error)
}
