package redis

import (
	"context"
	"testing"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mboard/internal/domain/entity"
)

func newMiniredis(t *testing.T) *miniredis.Miniredis {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)
	return mr
}

func TestStateStorageGetSet(t *testing.T) {
	mr := newMiniredis(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	ctx := context.Background()
	storage := NewWithClient(client, "mboard:")

	_, found, err := storage.Get(ctx, "kanbanState")
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, storage.Set(ctx, "kanbanState", `{"columns":[],"tasks":[]}`))

	value, found, err := storage.Get(ctx, "kanbanState")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, `{"columns":[],"tasks":[]}`, value)

	raw, err := mr.Get("mboard:kanbanState")
	require.NoError(t, err)
	assert.Equal(t, value, raw)
	assert.Zero(t, mr.TTL("mboard:kanbanState"))
}

func TestStateStorageNew(t *testing.T) {
	mr := newMiniredis(t)
	ctx := context.Background()

	storage, err := New(ctx, mr.Addr(), "", 0, "")
	require.NoError(t, err)
	t.Cleanup(func() { _ = storage.Close() })

	require.NoError(t, storage.Set(ctx, "k", "v"))
	assert.True(t, mr.Exists("k"))
}

func TestStateStorageUnavailable(t *testing.T) {
	mr := newMiniredis(t)
	addr := mr.Addr()
	mr.Close()

	_, err := New(context.Background(), addr, "", 0, "")
	require.Error(t, err)
	assert.ErrorIs(t, err, entity.ErrStorageUnavailable)
}
