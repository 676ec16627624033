package daemon

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"time"

	"github.com/rs/zerolog/log"

	"mboard/internal/application/dto"
	"mboard/internal/application/usecase/board"
	"mboard/internal/domain/entity"
)

const defaultRequestTimeout = 10 * time.Second

// ErrDaemonUnavailable is returned when the socket cannot be reached
var ErrDaemonUnavailable = errors.New("daemon unavailable")

// Client talks to a running daemon. It implements board.Backend.
type Client struct {
	socketPath string
	timeout    time.Duration
}

var _ board.Backend = (*Client)(nil)

// NewClient creates a new daemon client
func NewClient(socketPath string) *Client {
	return &Client{
		socketPath: socketPath,
		timeout:    defaultRequestTimeout,
	}
}

func (c *Client) dial(ctx context.Context) (net.Conn, error) {
	var dialer net.Dialer
	conn, err := dialer.DialContext(ctx, "unix", c.socketPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDaemonUnavailable, err)
	}
	return conn, nil
}

// sendRequest sends a request to the daemon and returns the response
func (c *Client) sendRequest(ctx context.Context, req *Request) (*Response, error) {
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	conn, err := c.dial(ctx)
	if err != nil {
		return nil, err
	}
	defer conn.Close()

	if deadline, ok := ctx.Deadline(); ok {
		_ = conn.SetDeadline(deadline)
	}

	if err := json.NewEncoder(conn).Encode(req); err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}

	var resp Response
	if err := json.NewDecoder(conn).Decode(&resp); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	return &resp, nil
}

// call sends a request and decodes a successful response into out
func (c *Client) call(ctx context.Context, reqType string, payload interface{}, out interface{}) error {
	resp, err := c.sendRequest(ctx, &Request{Type: reqType, Payload: payload})
	if err != nil {
		return err
	}

	if !resp.Success {
		return responseError(resp)
	}

	if out == nil || resp.Data == nil {
		return nil
	}

	data, err := json.Marshal(resp.Data)
	if err != nil {
		return fmt.Errorf("failed to marshal response data: %w", err)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("unexpected response format: %w", err)
	}
	return nil
}

// responseError maps daemon error codes back to domain errors
func responseError(resp *Response) error {
	var sentinel error
	switch resp.Code {
	case CodeColumnNotFound:
		sentinel = entity.ErrColumnNotFound
	case CodeInvalidColumnIndex:
		sentinel = entity.ErrInvalidColumnIndex
	case CodeTaskNotFound:
		sentinel = entity.ErrTaskNotFound
	case CodeInvalidDescriptor:
		sentinel = entity.ErrInvalidDescriptor
	case CodeNoActiveDrag:
		sentinel = entity.ErrNoActiveDrag
	case CodeStorageUnavailable:
		sentinel = entity.ErrStorageUnavailable
	}
	if sentinel != nil {
		return fmt.Errorf("daemon error: %w (%s)", sentinel, resp.Error)
	}
	return fmt.Errorf("daemon error: %s", resp.Error)
}

// Ping checks if the daemon is running and responding
func (c *Client) Ping(ctx context.Context) error {
	var pong string
	if err := c.call(ctx, RequestPing, nil, &pong); err != nil {
		return err
	}
	if pong != "pong" {
		return fmt.Errorf("unexpected ping reply %q", pong)
	}
	return nil
}

// Subscribe streams board_changed notifications until ctx is done.
// The returned channel is closed when the stream ends.
func (c *Client) Subscribe(ctx context.Context) (<-chan *Notification, error) {
	conn, err := c.dial(ctx)
	if err != nil {
		return nil, err
	}

	encoder := json.NewEncoder(conn)
	decoder := json.NewDecoder(conn)

	if err := encoder.Encode(&Request{Type: RequestSubscribe}); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to send subscribe: %w", err)
	}

	var ack Response
	if err := decoder.Decode(&ack); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to read subscribe reply: %w", err)
	}
	if !ack.Success {
		conn.Close()
		return nil, responseError(&ack)
	}

	notifications := make(chan *Notification, 10)

	go func() {
		<-ctx.Done()
		conn.Close()
	}()

	go func() {
		defer close(notifications)
		for {
			var n Notification
			if err := decoder.Decode(&n); err != nil {
				if ctx.Err() == nil {
					log.Debug().Err(err).Msg("subscription ended")
				}
				return
			}
			select {
			case notifications <- &n:
			case <-ctx.Done():
				return
			}
		}
	}()

	return notifications, nil
}

// GetBoard returns the daemon's live board
func (c *Client) GetBoard(ctx context.Context) (*dto.BoardDTO, error) {
	var out dto.BoardDTO
	if err := c.call(ctx, RequestGetBoard, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// History returns the daemon's history summary
func (c *Client) History(ctx context.Context) (*dto.HistoryDTO, error) {
	var out dto.HistoryDTO
	if err := c.call(ctx, RequestHistory, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Reload asks the daemon to re-read persisted state
func (c *Client) Reload(ctx context.Context) (*dto.ChangeResult, error) {
	return c.change(ctx, RequestReload, nil)
}

// AddColumn appends a column
func (c *Client) AddColumn(ctx context.Context, title string) (*dto.ColumnDTO, error) {
	var out dto.ColumnDTO
	if err := c.call(ctx, RequestAddColumn, ColumnPayload{Title: title}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteColumn removes a column and its tasks
func (c *Client) DeleteColumn(ctx context.Context, columnID string) (*dto.BoardDTO, error) {
	return c.board(ctx, RequestDeleteColumn, ColumnPayload{ColumnID: columnID})
}

// RenameColumn replaces a column title
func (c *Client) RenameColumn(ctx context.Context, columnID, title string) (*dto.BoardDTO, error) {
	return c.board(ctx, RequestRenameColumn, ColumnPayload{ColumnID: columnID, Title: title})
}

// MoveColumn moves a column to toIndex
func (c *Client) MoveColumn(ctx context.Context, columnID string, toIndex int) (*dto.ChangeResult, error) {
	return c.change(ctx, RequestMoveColumn, ColumnPayload{ColumnID: columnID, ToIndex: toIndex})
}

// AddTask appends a task to a column
func (c *Client) AddTask(ctx context.Context, columnID, content string) (*dto.TaskDTO, error) {
	var out dto.TaskDTO
	if err := c.call(ctx, RequestAddTask, TaskPayload{ColumnID: columnID, Content: content}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteTask removes a task
func (c *Client) DeleteTask(ctx context.Context, taskID string) (*dto.BoardDTO, error) {
	return c.board(ctx, RequestDeleteTask, TaskPayload{TaskID: taskID})
}

// UpdateTask replaces a task's content
func (c *Client) UpdateTask(ctx context.Context, taskID, content string) (*dto.BoardDTO, error) {
	return c.board(ctx, RequestUpdateTask, TaskPayload{TaskID: taskID, Content: content})
}

// MoveTask reassigns a task to another column
func (c *Client) MoveTask(ctx context.Context, taskID, columnID string) (*dto.BoardDTO, error) {
	return c.board(ctx, RequestMoveTask, TaskPayload{TaskID: taskID, ColumnID: columnID})
}

// ReorderTask drops a task onto another task
func (c *Client) ReorderTask(ctx context.Context, taskID, overTaskID string) (*dto.ChangeResult, error) {
	return c.change(ctx, RequestReorderTask, TaskPayload{TaskID: taskID, OverTaskID: overTaskID})
}

// DragStart begins a drag on the daemon
func (c *Client) DragStart(ctx context.Context, active dto.DescriptorDTO) error {
	return c.call(ctx, RequestDragStart, DragPayload{Active: active}, nil)
}

// DragOver sends one drag-over event
func (c *Client) DragOver(ctx context.Context, active, over dto.DescriptorDTO) (*dto.ChangeResult, error) {
	return c.change(ctx, RequestDragOver, DragPayload{Active: active, Over: over})
}

// DragEnd drops the dragged item
func (c *Client) DragEnd(ctx context.Context) (*dto.ChangeResult, error) {
	return c.change(ctx, RequestDragEnd, nil)
}

// DragCancel abandons the drag
func (c *Client) DragCancel(ctx context.Context) (*dto.BoardDTO, error) {
	return c.board(ctx, RequestDragCancel, nil)
}

// Undo steps back one history entry
func (c *Client) Undo(ctx context.Context) (*dto.ChangeResult, error) {
	return c.change(ctx, RequestUndo, nil)
}

// Redo steps forward one history entry
func (c *Client) Redo(ctx context.Context) (*dto.ChangeResult, error) {
	return c.change(ctx, RequestRedo, nil)
}

// Replace adopts a whole board
func (c *Client) Replace(ctx context.Context, board dto.BoardDTO) (*dto.BoardDTO, error) {
	return c.board(ctx, RequestReplace, ReplacePayload{Board: board})
}

func (c *Client) board(ctx context.Context, reqType string, payload interface{}) (*dto.BoardDTO, error) {
	var out dto.BoardDTO
	if err := c.call(ctx, reqType, payload, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) change(ctx context.Context, reqType string, payload interface{}) (*dto.ChangeResult, error) {
	var out dto.ChangeResult
	if err := c.call(ctx, reqType, payload, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
