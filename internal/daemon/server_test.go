package daemon

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mboard/internal/application/dto"
	"mboard/internal/application/usecase/board"
	"mboard/internal/domain/entity"
	"mboard/internal/domain/service"
	"mboard/internal/domain/valueobject"
	"mboard/internal/infrastructure/persistence"
	"mboard/internal/infrastructure/persistence/memory"
)

func startServer(t *testing.T) *Client {
	t.Helper()
	_, client, _ := startServerWithStorage(t)
	return client
}

func startServerWithStorage(t *testing.T) (*Server, *Client, *memory.StateStorageImpl) {
	t.Helper()

	storage := memory.NewStateStorage()
	repo, err := persistence.NewSnapshotRepository(storage, "kanbanState")
	require.NoError(t, err)
	store := service.NewBoardStore(service.NewHistory(repo, 0), valueobject.NewSequenceGenerator())
	uc := board.NewBoardUseCase(store, service.NewDragSession(store, false))
	require.NoError(t, uc.Open(context.Background()))

	socketPath := filepath.Join(t.TempDir(), "d.sock")
	server := NewServer(uc, socketPath)
	require.NoError(t, server.Listen())

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- server.Serve(ctx) }()

	t.Cleanup(func() {
		cancel()
		select {
		case err := <-errCh:
			assert.NoError(t, err)
		case <-time.After(5 * time.Second):
			t.Error("server did not stop")
		}
	})

	client := NewClient(socketPath)
	require.Eventually(t, func() bool {
		return client.Ping(context.Background()) == nil
	}, 5*time.Second, 10*time.Millisecond)
	return server, client, storage
}

func TestClientServerBoardOperations(t *testing.T) {
	client := startServer(t)
	ctx := context.Background()

	col, err := client.AddColumn(ctx, "Todo")
	require.NoError(t, err)
	assert.Equal(t, "C1", col.ID)

	task, err := client.AddTask(ctx, col.ID, "Buy milk")
	require.NoError(t, err)
	assert.Equal(t, "Buy milk", task.Content)

	board, err := client.GetBoard(ctx)
	require.NoError(t, err)
	assert.Equal(t, []dto.ColumnDTO{{ID: "C1", Title: "Todo"}}, board.Columns)
	assert.Equal(t, []dto.TaskDTO{{ID: task.ID, ColumnID: "C1", Content: "Buy milk"}}, board.Tasks)

	board, err = client.UpdateTask(ctx, task.ID, "Buy oat milk")
	require.NoError(t, err)
	assert.Equal(t, "Buy oat milk", board.Tasks[0].Content)

	result, err := client.Undo(ctx)
	require.NoError(t, err)
	assert.True(t, result.Changed)
	assert.Equal(t, "Buy milk", result.Board.Tasks[0].Content)

	result, err = client.Redo(ctx)
	require.NoError(t, err)
	assert.True(t, result.Changed)

	history, err := client.History(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, history.Length)
	assert.False(t, history.CanRedo)
}

func TestClientServerDrag(t *testing.T) {
	client := startServer(t)
	ctx := context.Background()

	todo, err := client.AddColumn(ctx, "Todo")
	require.NoError(t, err)
	done, err := client.AddColumn(ctx, "Done")
	require.NoError(t, err)
	task, err := client.AddTask(ctx, todo.ID, "ship")
	require.NoError(t, err)

	active := dto.DescriptorDTO{Kind: "Task", ID: task.ID}
	require.NoError(t, client.DragStart(ctx, active))

	result, err := client.DragOver(ctx, active, dto.DescriptorDTO{Kind: "Column", ID: done.ID})
	require.NoError(t, err)
	assert.True(t, result.Changed)

	result, err = client.DragEnd(ctx)
	require.NoError(t, err)
	assert.True(t, result.Changed)
	assert.Equal(t, done.ID, result.Board.Tasks[0].ColumnID)
}

func TestClientServerErrorCodes(t *testing.T) {
	client := startServer(t)
	ctx := context.Background()

	_, err := client.MoveColumn(ctx, "missing", 0)
	assert.ErrorIs(t, err, entity.ErrColumnNotFound)

	err = client.DragStart(ctx, dto.DescriptorDTO{Kind: "Board", ID: "x"})
	assert.ErrorIs(t, err, entity.ErrInvalidDescriptor)

	_, err = client.DragOver(ctx, dto.DescriptorDTO{Kind: "Task", ID: "T1"}, dto.DescriptorDTO{Kind: "Column", ID: "C1"})
	assert.ErrorIs(t, err, entity.ErrNoActiveDrag)

	resp, err := client.sendRequest(ctx, &Request{Type: "explode"})
	require.NoError(t, err)
	assert.False(t, resp.Success)
	assert.Equal(t, CodeBadRequest, resp.Code)
	assert.Contains(t, resp.Error, "explode")
}

func TestClientSubscribeReceivesChanges(t *testing.T) {
	client := startServer(t)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	notifications, err := client.Subscribe(ctx)
	require.NoError(t, err)

	_, err = client.AddColumn(context.Background(), "Todo")
	require.NoError(t, err)

	select {
	case n := <-notifications:
		require.NotNil(t, n)
		assert.Equal(t, NotificationBoardChanged, n.Type)
		assert.Equal(t, []dto.ColumnDTO{{ID: "C1", Title: "Todo"}}, n.Board.Columns)
	case <-time.After(5 * time.Second):
		t.Fatal("expected a board_changed notification")
	}

	cancel()
	for range notifications {
	}
}

func TestClientUnavailable(t *testing.T) {
	client := NewClient(filepath.Join(t.TempDir(), "missing.sock"))

	err := client.Ping(context.Background())
	assert.ErrorIs(t, err, ErrDaemonUnavailable)
}

func TestServerReloadNotifiesSubscribers(t *testing.T) {
	server, client, storage := startServerWithStorage(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	_, err := client.AddColumn(ctx, "Local")
	require.NoError(t, err)

	result, err := server.Reload()
	require.NoError(t, err)
	assert.False(t, result.Changed)

	notifications, err := client.Subscribe(ctx)
	require.NoError(t, err)

	require.NoError(t, storage.Set(ctx, "kanbanState", `{"columns":[{"id":"X","title":"External"}],"tasks":[]}`))
	result, err = server.Reload()
	require.NoError(t, err)
	assert.True(t, result.Changed)

	select {
	case n := <-notifications:
		require.NotNil(t, n)
		assert.Equal(t, NotificationBoardChanged, n.Type)
		assert.Equal(t, []dto.ColumnDTO{{ID: "X", Title: "External"}}, n.Board.Columns)
	case <-time.After(5 * time.Second):
		t.Fatal("no notification after reload")
	}
}
