package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigClone(t *testing.T) {
	t.Run("nil config clones to empty", func(t *testing.T) {
		var cfg Config
		clone := cfg.Clone()
		require.NotNil(t, clone)
		assert.Empty(t, clone)
	})

	t.Run("mutating the clone leaves the original untouched", func(t *testing.T) {
		cfg := Config{"path": "/tmp/a"}
		clone := cfg.Clone()
		clone["path"] = "/tmp/b"
		assert.Equal(t, "/tmp/a", cfg["path"])
	})
}

func TestConfigString(t *testing.T) {
	cfg := Config{
		"path":  "/var/data",
		"empty": "",
		"count": 3,
	}

	t.Run("present string", func(t *testing.T) {
		s, err := cfg.String("path")
		require.NoError(t, err)
		assert.Equal(t, "/var/data", s)
	})

	t.Run("missing key", func(t *testing.T) {
		_, err := cfg.String("absent")
		assert.ErrorIs(t, err, ErrConfiguration)
	})

	t.Run("empty value", func(t *testing.T) {
		_, err := cfg.String("empty")
		assert.ErrorIs(t, err, ErrConfiguration)
	})

	t.Run("wrong type", func(t *testing.T) {
		_, err := cfg.String("count")
		assert.ErrorIs(t, err, ErrConfiguration)
	})
}

func TestConfigStringOr(t *testing.T) {
	cfg := Config{"host": "localhost", "count": 3}

	s, err := cfg.StringOr("host", "fallback")
	require.NoError(t, err)
	assert.Equal(t, "localhost", s)

	s, err = cfg.StringOr("absent", "fallback")
	require.NoError(t, err)
	assert.Equal(t, "fallback", s)

	_, err = cfg.StringOr("count", "fallback")
	assert.ErrorIs(t, err, ErrConfiguration)
}

func TestConfigBoolOr(t *testing.T) {
	cfg := Config{"sync": false, "path": "/tmp"}

	b, err := cfg.BoolOr("sync", true)
	require.NoError(t, err)
	assert.False(t, b)

	b, err = cfg.BoolOr("absent", true)
	require.NoError(t, err)
	assert.True(t, b)

	_, err = cfg.BoolOr("path", true)
	assert.ErrorIs(t, err, ErrConfiguration)
}

func TestConfigIntOr(t *testing.T) {
	t.Run("int value", func(t *testing.T) {
		n, err := Config{"limit": 5}.IntOr("limit", 10)
		require.NoError(t, err)
		assert.Equal(t, 5, n)
	})

	t.Run("int64 value", func(t *testing.T) {
		n, err := Config{"limit": int64(5)}.IntOr("limit", 10)
		require.NoError(t, err)
		assert.Equal(t, 5, n)
	})

	t.Run("whole float from decoded JSON", func(t *testing.T) {
		n, err := Config{"limit": float64(5)}.IntOr("limit", 10)
		require.NoError(t, err)
		assert.Equal(t, 5, n)
	})

	t.Run("fractional float", func(t *testing.T) {
		_, err := Config{"limit": 5.5}.IntOr("limit", 10)
		assert.ErrorIs(t, err, ErrConfiguration)
	})

	t.Run("missing key uses fallback", func(t *testing.T) {
		n, err := Config{}.IntOr("limit", 10)
		require.NoError(t, err)
		assert.Equal(t, 10, n)
	})

	t.Run("wrong type", func(t *testing.T) {
		_, err := Config{"limit": "five"}.IntOr("limit", 10)
		assert.ErrorIs(t, err, ErrConfiguration)
	})
}
