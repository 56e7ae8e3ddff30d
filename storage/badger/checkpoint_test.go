package badger

import (
	"context"
	"testing"

	"github.com/poiesic/substrate/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCheckpointStore(t *testing.T) storage.CheckpointStore {
	t.Helper()
	backend, err := NewCheckpointStore(inMemoryConfig())
	require.NoError(t, err)
	t.Cleanup(func() { backend.Close() })
	return backend.(storage.CheckpointStore)
}

func TestCheckpointStoreSaveLoad(t *testing.T) {
	ctx := context.Background()
	store := newCheckpointStore(t)

	t.Run("round trip", func(t *testing.T) {
		state := []byte(`{"step": 4}`)
		metadata := map[string]string{"agent": "planner"}
		require.NoError(t, store.SaveCheckpoint(ctx, "run-1", state, metadata))

		checkpoint, err := store.LoadCheckpoint(ctx, "run-1")
		require.NoError(t, err)
		assert.Equal(t, "run-1", checkpoint.Id)
		assert.Equal(t, state, checkpoint.State)
		assert.Equal(t, metadata, checkpoint.Metadata)
		assert.False(t, checkpoint.UpdatedAt.IsZero())
	})

	t.Run("save overwrites", func(t *testing.T) {
		require.NoError(t, store.SaveCheckpoint(ctx, "run-1", []byte("new"), nil))
		checkpoint, err := store.LoadCheckpoint(ctx, "run-1")
		require.NoError(t, err)
		assert.Equal(t, []byte("new"), checkpoint.State)
	})

	t.Run("unknown id", func(t *testing.T) {
		_, err := store.LoadCheckpoint(ctx, "ghost")
		assert.ErrorIs(t, err, storage.ErrNotFound)
	})
}

func TestCheckpointStoreList(t *testing.T) {
	ctx := context.Background()
	store := newCheckpointStore(t)

	ids, err := store.ListCheckpoints(ctx)
	require.NoError(t, err)
	assert.Empty(t, ids)

	require.NoError(t, store.SaveCheckpoint(ctx, "zeta", nil, nil))
	require.NoError(t, store.SaveCheckpoint(ctx, "alpha", nil, nil))

	ids, err = store.ListCheckpoints(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"alpha", "zeta"}, ids)
}

func TestCheckpointStoreDelete(t *testing.T) {
	ctx := context.Background()
	store := newCheckpointStore(t)

	require.NoError(t, store.SaveCheckpoint(ctx, "run-1", []byte("x"), nil))
	require.NoError(t, store.DeleteCheckpoint(ctx, "run-1"))

	_, err := store.LoadCheckpoint(ctx, "run-1")
	assert.ErrorIs(t, err, storage.ErrNotFound)

	err = store.DeleteCheckpoint(ctx, "run-1")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestCheckpointStorePersistence(t *testing.T) {
	ctx := context.Background()
	cfg := storage.Config{ConfigPath: t.TempDir() + "/checkpoints"}

	backend, err := NewCheckpointStore(cfg)
	require.NoError(t, err)
	store := backend.(storage.CheckpointStore)
	require.NoError(t, store.SaveCheckpoint(ctx, "run-1", []byte("state"), nil))
	require.NoError(t, store.Close())

	backend, err = NewCheckpointStore(cfg)
	require.NoError(t, err)
	store = backend.(storage.CheckpointStore)
	defer store.Close()

	checkpoint, err := store.LoadCheckpoint(ctx, "run-1")
	require.NoError(t, err)
	assert.Equal(t, []byte("state"), checkpoint.State)
}
