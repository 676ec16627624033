package di

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mboard/internal/infrastructure/persistence/filesystem"
)

func writeConfig(t *testing.T, body string) ConfigPath {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return ConfigPath(path)
}

func TestInitializeContainerMemory(t *testing.T) {
	path := writeConfig(t, "storage:\n  backend: memory\nids:\n  strategy: sequence\n")

	container, cleanup, err := InitializeContainer(context.Background(), path)
	require.NoError(t, err)
	defer cleanup()

	watcher, err := container.WatchState()
	require.NoError(t, err)
	assert.Nil(t, watcher)

	col, err := container.BoardUseCase.AddColumn(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, "C1", col.ID)
	assert.Equal(t, "Column no. 0", col.Title)
}

func TestInitializeContainerFile(t *testing.T) {
	dataDir := t.TempDir()
	path := writeConfig(t, fmt.Sprintf("storage:\n  backend: file\n  data_path: %s\n", dataDir))

	container, cleanup, err := InitializeContainer(context.Background(), path)
	require.NoError(t, err)
	defer cleanup()

	watcher, err := container.WatchState()
	require.NoError(t, err)
	require.NotNil(t, watcher)
	defer watcher.Close()

	_, ok := container.StateStorage.(*filesystem.StateStorageImpl)
	assert.True(t, ok)

	_, err = container.BoardUseCase.AddColumn(context.Background(), "Todo")
	require.NoError(t, err)

	_, err = os.Stat(filepath.Join(dataDir, "kanbanState.json"))
	assert.NoError(t, err)
}

func TestInitializeContainerRedis(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()

	path := writeConfig(t, fmt.Sprintf("storage:\n  backend: redis\n  redis:\n    addr: %s\n    key_prefix: \"test:\"\n", mr.Addr()))

	container, cleanup, err := InitializeContainer(context.Background(), path)
	require.NoError(t, err)
	defer cleanup()

	_, err = container.BoardUseCase.AddColumn(context.Background(), "Todo")
	require.NoError(t, err)
	assert.True(t, mr.Exists("test:kanbanState"))
}

func TestInitializeContainerRedisUnavailable(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	addr := mr.Addr()
	mr.Close()

	path := writeConfig(t, fmt.Sprintf("storage:\n  backend: redis\n  redis:\n    addr: %s\n", addr))

	_, _, err = InitializeContainer(context.Background(), path)
	assert.Error(t, err)
}
