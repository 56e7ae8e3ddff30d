package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBackendTypeString(t *testing.T) {
	assert.Equal(t, "vector_store", VectorStoreType.String())
	assert.Equal(t, "knowledge_graph", KnowledgeGraphType.String())
	assert.Equal(t, "checkpoint_store", CheckpointStoreType.String())
	assert.Equal(t, "backend_type(0)", BackendType(0).String())
}

func TestParseBackendType(t *testing.T) {
	t.Run("round trips every defined type", func(t *testing.T) {
		for _, typ := range BackendTypes() {
			parsed, err := ParseBackendType(typ.String())
			require.NoError(t, err)
			assert.Equal(t, typ, parsed)
		}
	})

	t.Run("unknown name", func(t *testing.T) {
		_, err := ParseBackendType("blob_store")
		assert.ErrorIs(t, err, ErrUnknownBackendType)
	})

	t.Run("empty name", func(t *testing.T) {
		_, err := ParseBackendType("")
		assert.ErrorIs(t, err, ErrUnknownBackendType)
	})
}
