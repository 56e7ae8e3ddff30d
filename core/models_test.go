package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIDFromContent(t *testing.T) {
	t.Run("deterministic for identical content", func(t *testing.T) {
		a := IDFromContent("the same text")
		b := IDFromContent("the same text")
		assert.Equal(t, a, b)
	})

	t.Run("distinct content yields distinct IDs", func(t *testing.T) {
		a := IDFromContent("first")
		b := IDFromContent("second")
		assert.NotEqual(t, a, b)
	})

	t.Run("produces 16 hex characters", func(t *testing.T) {
		id := IDFromContent("anything")
		require.Len(t, id, 16)
		assert.Regexp(t, "^[0-9a-f]+$", id)
	})

	t.Run("empty content is still a valid ID", func(t *testing.T) {
		id := IDFromContent("")
		assert.Len(t, id, 16)
	})
}
