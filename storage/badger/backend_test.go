package badger

import (
	"testing"

	"github.com/poiesic/substrate/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenBackend(t *testing.T) {
	t.Run("in-memory database", func(t *testing.T) {
		backend, err := OpenBackend("", true)
		require.NoError(t, err)
		assert.False(t, backend.IsClosed())
		require.NoError(t, backend.Close())
		assert.True(t, backend.IsClosed())
	})

	t.Run("creates the directory", func(t *testing.T) {
		dir := t.TempDir() + "/db"
		backend, err := OpenBackend(dir, false)
		require.NoError(t, err)
		require.NoError(t, backend.Close())

		// Reopening the same directory works.
		backend, err = OpenBackend(dir, false)
		require.NoError(t, err)
		require.NoError(t, backend.Close())
	})
}

func TestOpenFromConfig(t *testing.T) {
	t.Run("in_memory needs no path", func(t *testing.T) {
		backend, err := openFromConfig(storage.Config{ConfigInMemory: true})
		require.NoError(t, err)
		backend.Close()
	})

	t.Run("path required otherwise", func(t *testing.T) {
		_, err := openFromConfig(storage.Config{})
		assert.ErrorIs(t, err, storage.ErrConfiguration)
	})

	t.Run("non-boolean in_memory", func(t *testing.T) {
		_, err := openFromConfig(storage.Config{ConfigInMemory: "yes"})
		assert.ErrorIs(t, err, storage.ErrConfiguration)
	})
}

func TestRelationKeys(t *testing.T) {
	t.Run("deterministic", func(t *testing.T) {
		a := makeRelationKey("s", "knows", "t")
		b := makeRelationKey("s", "knows", "t")
		assert.Equal(t, a, b)
	})

	t.Run("tuple fields do not bleed into each other", func(t *testing.T) {
		a := makeRelationKey("ab", "c", "d")
		b := makeRelationKey("a", "bc", "d")
		assert.NotEqual(t, a, b)
	})
}

func TestIDFromKey(t *testing.T) {
	assert.Equal(t, "v1", idFromKey(makeVectorKey("v1"), vectorPrefix))
	assert.Equal(t, "run-1", idFromKey(makeCheckpointKey("run-1"), checkpointPrefix))
}
