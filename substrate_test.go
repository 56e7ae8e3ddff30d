package substrate

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/poiesic/substrate/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuiltinProviders(t *testing.T) {
	factory := storage.NewFactory()
	require.NoError(t, RegisterBuiltins(factory))

	for _, typ := range storage.BackendTypes() {
		assert.Equal(t, []string{"badger", "file", "memory"}, factory.Providers(typ),
			"provider set for %s", typ)
	}
}

func TestDefault(t *testing.T) {
	t.Cleanup(func() { storage.ResetDefaultRegistry() })
	require.NoError(t, storage.ResetDefaultRegistry())

	registry, err := Default()
	require.NoError(t, err)
	assert.True(t, registry.Factory().HasProvider(storage.VectorStoreType, "memory"))

	// Repeated calls are idempotent.
	again, err := Default()
	require.NoError(t, err)
	assert.Same(t, registry, again)
}

func TestOpen(t *testing.T) {
	t.Run("empty store has providers but no backends", func(t *testing.T) {
		store, err := Open()
		require.NoError(t, err)
		defer store.Close()

		_, err = store.VectorStore("")
		assert.ErrorIs(t, err, storage.ErrBackendNotFound)
	})

	t.Run("WithBackends registers at open", func(t *testing.T) {
		store, err := Open(WithBackends(BackendSpec{
			Type:     "vector_store",
			Provider: "memory",
			Name:     "main",
		}))
		require.NoError(t, err)
		defer store.Close()

		vectors, err := store.VectorStore("main")
		require.NoError(t, err)
		assert.NoError(t, vectors.Add(context.Background(), "v1", []float32{1}, nil))

		// First registration is the default.
		_, err = store.VectorStore("")
		assert.NoError(t, err)
	})

	t.Run("spec without a name registers under the provider name", func(t *testing.T) {
		store, err := Open(WithBackends(BackendSpec{
			Type:     "checkpoint_store",
			Provider: "memory",
		}))
		require.NoError(t, err)
		defer store.Close()

		_, err = store.CheckpointStore("memory")
		assert.NoError(t, err)
	})

	t.Run("unknown backend type fails", func(t *testing.T) {
		_, err := Open(WithBackends(BackendSpec{Type: "blob_store", Provider: "memory"}))
		assert.ErrorIs(t, err, storage.ErrUnknownBackendType)
	})

	t.Run("unknown provider fails", func(t *testing.T) {
		_, err := Open(WithBackends(BackendSpec{Type: "vector_store", Provider: "nope"}))
		assert.ErrorIs(t, err, storage.ErrUnknownProvider)
	})
}

func TestOpenWithConfigFile(t *testing.T) {
	writeConfig := func(t *testing.T, content string) string {
		t.Helper()
		path := filepath.Join(t.TempDir(), "backends.yaml")
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
		return path
	}

	t.Run("registers declared backends", func(t *testing.T) {
		dir := t.TempDir()
		path := writeConfig(t, fmt.Sprintf(`
backends:
  - type: vector_store
    provider: memory
    name: fast
  - type: vector_store
    provider: file
    name: durable
    default: true
    config:
      path: %s/vectors.json
  - type: checkpoint_store
    provider: memory
`, dir))

		store, err := Open(WithConfigFile(path))
		require.NoError(t, err)
		defer store.Close()

		_, err = store.VectorStore("fast")
		assert.NoError(t, err)
		_, err = store.VectorStore("durable")
		assert.NoError(t, err)
		_, err = store.CheckpointStore("memory")
		assert.NoError(t, err)

		// The explicit default wins over registration order.
		name, ok := store.Registry().DefaultName(storage.VectorStoreType)
		require.True(t, ok)
		assert.Equal(t, "durable", name)
	})

	t.Run("missing file fails", func(t *testing.T) {
		_, err := Open(WithConfigFile(filepath.Join(t.TempDir(), "absent.yaml")))
		assert.Error(t, err)
	})

	t.Run("invalid spec fails and closes earlier backends", func(t *testing.T) {
		path := writeConfig(t, `
backends:
  - type: vector_store
    provider: memory
  - type: vector_store
    provider: nope
`)
		_, err := Open(WithConfigFile(path))
		assert.ErrorIs(t, err, storage.ErrUnknownProvider)
	})
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "backends.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
backends:
  - type: knowledge_graph
    provider: memory
    name: kg
    default: true
`), 0644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	require.Len(t, cfg.Backends, 1)
	assert.Equal(t, "knowledge_graph", cfg.Backends[0].Type)
	assert.Equal(t, "memory", cfg.Backends[0].Provider)
	assert.Equal(t, "kg", cfg.Backends[0].Name)
	assert.True(t, cfg.Backends[0].Default)
}

func TestStoreAccessors(t *testing.T) {
	store, err := Open(WithBackends(
		BackendSpec{Type: "vector_store", Provider: "memory"},
		BackendSpec{Type: "knowledge_graph", Provider: "memory"},
		BackendSpec{Type: "checkpoint_store", Provider: "memory"},
	))
	require.NoError(t, err)
	defer store.Close()

	_, err = store.VectorStore("")
	assert.NoError(t, err)
	_, err = store.KnowledgeGraph("")
	assert.NoError(t, err)
	_, err = store.CheckpointStore("")
	assert.NoError(t, err)
	assert.NotNil(t, store.Registry())
}
