package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateID(t *testing.T) {
	assert.NoError(t, ValidateID("entity-1"))
	assert.ErrorIs(t, ValidateID(""), ErrEmptyID)
}

func TestValidateVector(t *testing.T) {
	assert.NoError(t, ValidateVector([]float32{0.1}))
	assert.ErrorIs(t, ValidateVector(nil), ErrEmptyVector)
	assert.ErrorIs(t, ValidateVector([]float32{}), ErrEmptyVector)
}

func TestValidateRelation(t *testing.T) {
	t.Run("valid relation", func(t *testing.T) {
		rel := &Relation{Source: "a", Type: "knows", Target: "b"}
		assert.NoError(t, ValidateRelation(rel))
	})

	t.Run("nil attributes are valid", func(t *testing.T) {
		rel := &Relation{Source: "a", Type: "knows", Target: "b", Attributes: nil}
		assert.NoError(t, ValidateRelation(rel))
	})

	t.Run("nil relation", func(t *testing.T) {
		err := ValidateRelation(nil)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrInvalidRelation)
	})

	t.Run("empty source", func(t *testing.T) {
		rel := &Relation{Source: "", Type: "knows", Target: "b"}
		err := ValidateRelation(rel)
		assert.ErrorIs(t, err, ErrInvalidRelation)
		assert.ErrorIs(t, err, ErrEmptyID)
	})

	t.Run("empty target", func(t *testing.T) {
		rel := &Relation{Source: "a", Type: "knows", Target: ""}
		err := ValidateRelation(rel)
		assert.ErrorIs(t, err, ErrInvalidRelation)
	})

	t.Run("empty type", func(t *testing.T) {
		rel := &Relation{Source: "a", Type: "", Target: "b"}
		err := ValidateRelation(rel)
		assert.ErrorIs(t, err, ErrInvalidRelation)
		assert.ErrorIs(t, err, ErrEmptyRelationType)
	})
}
