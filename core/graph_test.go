package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReachable(t *testing.T) {
	relations := []Relation{
		{Source: "a", Type: "knows", Target: "b"},
		{Source: "b", Type: "knows", Target: "c"},
		{Source: "c", Type: "knows", Target: "d"},
		{Source: "a", Type: "owns", Target: "x"},
	}
	all := func(string) bool { return true }

	t.Run("single hop", func(t *testing.T) {
		result := Reachable(relations, all, "a", "knows", 1)
		assert.Equal(t, []string{"b"}, result)
	})

	t.Run("two hops", func(t *testing.T) {
		result := Reachable(relations, all, "a", "knows", 2)
		assert.Equal(t, []string{"b", "c"}, result)
	})

	t.Run("depth beyond the chain is harmless", func(t *testing.T) {
		result := Reachable(relations, all, "a", "knows", 10)
		assert.Equal(t, []string{"b", "c", "d"}, result)
	})

	t.Run("empty relation type follows all edges", func(t *testing.T) {
		result := Reachable(relations, all, "a", "", 1)
		assert.Equal(t, []string{"b", "x"}, result)
	})

	t.Run("relation type filters edges", func(t *testing.T) {
		result := Reachable(relations, all, "a", "owns", 2)
		assert.Equal(t, []string{"x"}, result)
	})

	t.Run("depth zero returns just the start", func(t *testing.T) {
		result := Reachable(relations, all, "a", "knows", 0)
		assert.Equal(t, []string{"a"}, result)
	})

	t.Run("depth zero with missing start is empty", func(t *testing.T) {
		missing := func(id string) bool { return id != "ghost" }
		result := Reachable(relations, missing, "ghost", "knows", 0)
		assert.Empty(t, result)
	})

	t.Run("negative depth is empty", func(t *testing.T) {
		result := Reachable(relations, all, "a", "knows", -1)
		assert.Empty(t, result)
	})

	t.Run("missing start is empty", func(t *testing.T) {
		missing := func(id string) bool { return id != "ghost" }
		result := Reachable(relations, missing, "ghost", "knows", 3)
		assert.Empty(t, result)
	})

	t.Run("cycle includes the start", func(t *testing.T) {
		cyclic := []Relation{
			{Source: "a", Type: "next", Target: "b"},
			{Source: "b", Type: "next", Target: "a"},
		}
		result := Reachable(cyclic, all, "a", "next", 2)
		assert.Equal(t, []string{"a", "b"}, result)
	})

	t.Run("edges are directed", func(t *testing.T) {
		result := Reachable(relations, all, "d", "knows", 3)
		assert.Empty(t, result)
	})
}
