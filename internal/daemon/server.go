package daemon

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"sync"

	"github.com/rs/zerolog/log"

	"mboard/internal/application/dto"
	"mboard/internal/application/usecase/board"
	"mboard/internal/domain/entity"
)

// job is one request waiting for the event loop
type job struct {
	req   *Request
	reply chan *Response
}

// Server serves one board over a unix socket. Connections are handled
// concurrently but every request runs on a single event-loop goroutine.
type Server struct {
	backend    board.Backend
	socketPath string
	listener   net.Listener
	jobs       chan job
	done       chan struct{}
	stopOnce   sync.Once
	wg         sync.WaitGroup

	subscribers map[net.Conn]chan *Notification
	subMu       sync.RWMutex
}

// NewServer creates a new daemon server
func NewServer(backend board.Backend, socketPath string) *Server {
	return &Server{
		backend:     backend,
		socketPath:  socketPath,
		jobs:        make(chan job),
		done:        make(chan struct{}),
		subscribers: make(map[net.Conn]chan *Notification),
	}
}

// Listen binds the unix socket, replacing a stale one
func (s *Server) Listen() error {
	if err := os.MkdirAll(filepath.Dir(s.socketPath), 0755); err != nil {
		return fmt.Errorf("failed to create socket directory: %w", err)
	}

	if err := os.RemoveAll(s.socketPath); err != nil {
		return fmt.Errorf("failed to remove existing socket: %w", err)
	}

	listener, err := net.Listen("unix", s.socketPath)
	if err != nil {
		return fmt.Errorf("failed to listen on socket: %w", err)
	}

	s.listener = listener
	log.Info().Str("socket", s.socketPath).Msg("daemon listening")
	return nil
}

// Serve runs the event loop and accepts connections until ctx is done or
// Stop is called. Listen must be called first.
func (s *Server) Serve(ctx context.Context) error {
	if s.listener == nil {
		return fmt.Errorf("server is not listening")
	}

	s.wg.Add(1)
	go s.eventLoop(ctx)

	go func() {
		select {
		case <-ctx.Done():
			_ = s.Stop()
		case <-s.done:
		}
	}()

	return s.acceptConnections()
}

// Stop closes the listener and every subscriber, then removes the socket
func (s *Server) Stop() error {
	var err error
	s.stopOnce.Do(func() {
		close(s.done)
		if s.listener != nil {
			err = s.listener.Close()
		}
		s.closeSubscribers()
		s.wg.Wait()
		if rmErr := os.Remove(s.socketPath); rmErr != nil && !os.IsNotExist(rmErr) {
			log.Warn().Err(rmErr).Msg("failed to remove socket")
		}
		log.Info().Msg("daemon stopped")
	})
	return err
}

// Reload re-reads persisted state on the event loop, notifying
// subscribers when another process changed the board
func (s *Server) Reload() (*dto.ChangeResult, error) {
	resp := s.submit(&Request{Type: RequestReload})
	if !resp.Success {
		return nil, responseError(resp)
	}
	result, ok := resp.Data.(*dto.ChangeResult)
	if !ok {
		return nil, fmt.Errorf("unexpected reload result %T", resp.Data)
	}
	return result, nil
}

// GetSocketPath returns the socket the server binds
func (s *Server) GetSocketPath() string {
	return s.socketPath
}

func (s *Server) acceptConnections() error {
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			select {
			case <-s.done:
				return nil
			default:
			}
			return fmt.Errorf("failed to accept connection: %w", err)
		}

		go s.handleConnection(conn)
	}
}

func (s *Server) eventLoop(ctx context.Context) {
	defer s.wg.Done()

	for {
		select {
		case <-s.done:
			return
		case j := <-s.jobs:
			resp := s.handleRequest(ctx, j.req)
			j.reply <- resp
		}
	}
}

// submit hands a request to the event loop and waits for its response
func (s *Server) submit(req *Request) *Response {
	j := job{req: req, reply: make(chan *Response, 1)}
	select {
	case s.jobs <- j:
	case <-s.done:
		return &Response{Success: false, Error: "daemon is shutting down"}
	}
	return <-j.reply
}

func (s *Server) handleConnection(conn net.Conn) {
	defer func() {
		s.cleanupSubscriber(conn)
		conn.Close()
	}()

	decoder := json.NewDecoder(conn)
	encoder := json.NewEncoder(conn)

	for {
		var req Request
		if err := decoder.Decode(&req); err != nil {
			return
		}

		if req.Type == RequestSubscribe {
			s.handleSubscribe(conn, encoder)
			return
		}

		resp := s.submit(&req)
		if err := encoder.Encode(resp); err != nil {
			log.Debug().Err(err).Msg("failed to encode response")
			return
		}
	}
}

// handleRequest runs on the event loop only
func (s *Server) handleRequest(ctx context.Context, req *Request) *Response {
	logger := log.With().Str("request", req.Type).Logger()

	data, mutated, err := s.dispatch(ctx, req)
	if err != nil {
		logger.Debug().Err(err).Msg("request failed")
		return errorResponse(err)
	}

	if mutated {
		if current, err := s.backend.GetBoard(ctx); err == nil {
			s.notifySubscribers(&Notification{Type: NotificationBoardChanged, Board: *current})
		}
	}

	logger.Debug().Bool("mutated", mutated).Msg("request handled")
	return &Response{Success: true, Data: data}
}

// dispatch reports whether the live board may have changed
func (s *Server) dispatch(ctx context.Context, req *Request) (interface{}, bool, error) {
	switch req.Type {
	case RequestPing:
		return "pong", false, nil
	case RequestGetBoard:
		data, err := s.backend.GetBoard(ctx)
		return data, false, err
	case RequestHistory:
		data, err := s.backend.History(ctx)
		return data, false, err
	case RequestReload:
		return changeResult(s.backend.Reload(ctx))
	case RequestUndo:
		return changeResult(s.backend.Undo(ctx))
	case RequestRedo:
		return changeResult(s.backend.Redo(ctx))
	case RequestDragEnd:
		return changeResult(s.backend.DragEnd(ctx))
	case RequestDragCancel:
		data, err := s.backend.DragCancel(ctx)
		return data, err == nil, err
	case RequestAddColumn, RequestDeleteColumn, RequestRenameColumn, RequestMoveColumn:
		return s.handleColumn(ctx, req)
	case RequestAddTask, RequestDeleteTask, RequestUpdateTask, RequestMoveTask, RequestReorderTask:
		return s.handleTask(ctx, req)
	case RequestDragStart, RequestDragOver:
		return s.handleDrag(ctx, req)
	case RequestReplace:
		var payload ReplacePayload
		if err := s.decodePayload(req.Payload, &payload); err != nil {
			return nil, false, err
		}
		data, err := s.backend.Replace(ctx, payload.Board)
		return data, err == nil, err
	default:
		return nil, false, badRequest(fmt.Sprintf("unknown request type: %s", req.Type))
	}
}

func (s *Server) handleColumn(ctx context.Context, req *Request) (interface{}, bool, error) {
	var payload ColumnPayload
	if err := s.decodePayload(req.Payload, &payload); err != nil {
		return nil, false, err
	}

	switch req.Type {
	case RequestAddColumn:
		data, err := s.backend.AddColumn(ctx, payload.Title)
		return data, err == nil, err
	case RequestDeleteColumn:
		data, err := s.backend.DeleteColumn(ctx, payload.ColumnID)
		return data, err == nil, err
	case RequestRenameColumn:
		data, err := s.backend.RenameColumn(ctx, payload.ColumnID, payload.Title)
		return data, err == nil, err
	default:
		return changeResult(s.backend.MoveColumn(ctx, payload.ColumnID, payload.ToIndex))
	}
}

func (s *Server) handleTask(ctx context.Context, req *Request) (interface{}, bool, error) {
	var payload TaskPayload
	if err := s.decodePayload(req.Payload, &payload); err != nil {
		return nil, false, err
	}

	switch req.Type {
	case RequestAddTask:
		data, err := s.backend.AddTask(ctx, payload.ColumnID, payload.Content)
		return data, err == nil, err
	case RequestDeleteTask:
		data, err := s.backend.DeleteTask(ctx, payload.TaskID)
		return data, err == nil, err
	case RequestUpdateTask:
		data, err := s.backend.UpdateTask(ctx, payload.TaskID, payload.Content)
		return data, err == nil, err
	case RequestMoveTask:
		data, err := s.backend.MoveTask(ctx, payload.TaskID, payload.ColumnID)
		return data, err == nil, err
	default:
		return changeResult(s.backend.ReorderTask(ctx, payload.TaskID, payload.OverTaskID))
	}
}

func (s *Server) handleDrag(ctx context.Context, req *Request) (interface{}, bool, error) {
	var payload DragPayload
	if err := s.decodePayload(req.Payload, &payload); err != nil {
		return nil, false, err
	}

	if req.Type == RequestDragStart {
		return nil, false, s.backend.DragStart(ctx, payload.Active)
	}
	return changeResult(s.backend.DragOver(ctx, payload.Active, payload.Over))
}

func changeResult(result *dto.ChangeResult, err error) (interface{}, bool, error) {
	if err != nil {
		return nil, false, err
	}
	return result, result.Changed, nil
}

// decodePayload decodes request payload into target struct
func (s *Server) decodePayload(payload interface{}, target interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return badRequest(fmt.Sprintf("failed to marshal payload: %v", err))
	}

	if err := json.Unmarshal(data, target); err != nil {
		return badRequest(fmt.Sprintf("failed to unmarshal payload: %v", err))
	}

	return nil
}

type requestError struct {
	message string
}

func (e *requestError) Error() string {
	return e.message
}

func badRequest(message string) error {
	return &requestError{message: message}
}

func errorResponse(err error) *Response {
	var reqErr *requestError
	code := ""
	switch {
	case errors.As(err, &reqErr):
		code = CodeBadRequest
	case errors.Is(err, entity.ErrColumnNotFound):
		code = CodeColumnNotFound
	case errors.Is(err, entity.ErrInvalidColumnIndex):
		code = CodeInvalidColumnIndex
	case errors.Is(err, entity.ErrTaskNotFound):
		code = CodeTaskNotFound
	case errors.Is(err, entity.ErrInvalidDescriptor):
		code = CodeInvalidDescriptor
	case errors.Is(err, entity.ErrNoActiveDrag):
		code = CodeNoActiveDrag
	case errors.Is(err, entity.ErrStorageUnavailable):
		code = CodeStorageUnavailable
	}
	return &Response{Success: false, Error: err.Error(), Code: code}
}

func (s *Server) handleSubscribe(conn net.Conn, encoder *json.Encoder) {
	notifChan := make(chan *Notification, 10)

	s.subMu.Lock()
	s.subscribers[conn] = notifChan
	s.subMu.Unlock()

	if err := encoder.Encode(&Response{Success: true, Data: "subscribed"}); err != nil {
		return
	}

	log.Debug().Msg("subscriber attached")

	// a subscriber only listens; a read error means the peer went away
	go func() {
		buf := make([]byte, 1)
		for {
			if _, err := conn.Read(buf); err != nil {
				s.cleanupSubscriber(conn)
				return
			}
		}
	}()

	for notification := range notifChan {
		if err := encoder.Encode(notification); err != nil {
			return
		}
	}
}

// notifySubscribers drops notifications for subscribers that are not keeping up
func (s *Server) notifySubscribers(notification *Notification) {
	s.subMu.RLock()
	defer s.subMu.RUnlock()

	for _, ch := range s.subscribers {
		select {
		case ch <- notification:
		default:
		}
	}
}

func (s *Server) cleanupSubscriber(conn net.Conn) {
	s.subMu.Lock()
	defer s.subMu.Unlock()

	if ch, exists := s.subscribers[conn]; exists {
		close(ch)
		delete(s.subscribers, conn)
	}
}

func (s *Server) closeSubscribers() {
	s.subMu.Lock()
	defer s.subMu.Unlock()

	for conn, ch := range s.subscribers {
		close(ch)
		conn.Close()
		delete(s.subscribers, conn)
	}
}
