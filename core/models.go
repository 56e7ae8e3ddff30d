package core

import (
	"encoding/hex"
	"time"

	"github.com/go-crypt/x/blake2b"
)

// IDFromContent generates a deterministic ID from text content using BLAKE2b hashing.
// This ensures that identical content produces identical IDs.
func IDFromContent(text string) string {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	return hex.EncodeToString(h.Sum(nil))
}

// Match represents a vector similarity search hit.
type Match struct {
	Id    string
	Score float32
}

// Relation is a typed, directed edge between two entities in a knowledge graph.
type Relation struct {
	Source     string
	Type       string
	Target     string
	Attributes map[string]string
}

// Checkpoint is an opaque state snapshot saved by a caller.
// State is stored verbatim; the storage layer never interprets it.
type Checkpoint struct {
	Id        string
	State     []byte
	Metadata  map[string]string
	UpdatedAt time.Time // When the checkpoint was last saved
}
