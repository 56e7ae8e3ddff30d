package badger

import (
	"strings"

	"github.com/poiesic/substrate/core"
)

// Key prefixes for different data types
const (
	vectorPrefix     = "vec:"
	entityPrefix     = "ent:"
	relationPrefix   = "rel:"
	checkpointPrefix = "ckpt:"
)

// makeVectorKey generates a key for a vector entry by ID.
func makeVectorKey(id string) []byte {
	return []byte(vectorPrefix + id)
}

// makeEntityKey generates a key for a graph entity by ID.
func makeEntityKey(id string) []byte {
	return []byte(entityPrefix + id)
}

// makeRelationKey generates a key for a relation. The (source, type,
// target) tuple is content-hashed so IDs containing separator bytes cannot
// collide with other tuples; the full tuple lives in the stored value.
func makeRelationKey(source, relationType, target string) []byte {
	tuple := source + "\x00" + relationType + "\x00" + target
	return []byte(relationPrefix + core.IDFromContent(tuple))
}

// makeCheckpointKey generates a key for a checkpoint by ID.
func makeCheckpointKey(id string) []byte {
	return []byte(checkpointPrefix + id)
}

// idFromKey strips a prefix from a key, recovering the record ID.
func idFromKey(key []byte, prefix string) string {
	return strings.TrimPrefix(string(key), prefix)
}
