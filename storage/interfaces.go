package storage

import (
	"context"

	"github.com/poiesic/substrate/core"
)

// Backend is the base contract shared by all backend instances.
// Implementations must be thread-safe and support concurrent access.
type Backend interface {
	// Close releases the backend's resources. A closed backend is not
	// reusable; further operations return ErrStorageClosed.
	Close() error
}

// Flusher is implemented by backends that support deferred persistence.
// Backends configured to skip per-mutation flushing rely on the caller
// invoking Save to make in-memory state durable.
type Flusher interface {
	// Save persists the current in-memory state.
	Save(ctx context.Context) error
}

// VectorStore stores embedding vectors with attached metadata and serves
// similarity queries over them.
type VectorStore interface {
	Backend

	// Add stores a vector under id, overwriting any existing entry.
	Add(ctx context.Context, id string, vector []float32, metadata map[string]string) error

	// Get retrieves the vector and metadata stored under id.
	// Returns ErrNotFound if the id does not exist.
	Get(ctx context.Context, id string) ([]float32, map[string]string, error)

	// Search returns up to limit matches ordered by descending cosine
	// similarity to query. An empty store yields an empty result, not an
	// error.
	Search(ctx context.Context, query []float32, limit int) ([]core.Match, error)

	// Delete removes the entry stored under id.
	// Returns ErrNotFound if the id does not exist.
	Delete(ctx context.Context, id string) error
}

// KnowledgeGraph stores typed entities and directed, typed relations
// between them, and answers bounded-depth reachability queries.
type KnowledgeGraph interface {
	Backend

	// AddEntity stores an entity, overwriting any existing attributes.
	AddEntity(ctx context.Context, id string, attributes map[string]string) error

	// AddRelation stores a directed edge from source to target. Both
	// endpoints must already exist; otherwise ErrNotFound is returned.
	AddRelation(ctx context.Context, source, relationType, target string, attributes map[string]string) error

	// GetEntity retrieves the attributes of an entity.
	// Returns ErrNotFound if the entity does not exist.
	GetEntity(ctx context.Context, id string) (map[string]string, error)

	// Traverse returns the IDs reachable from start within maxDepth hops,
	// following only edges of relationType (empty string follows all
	// types). With maxDepth 0 the result is just the start ID if it
	// exists, empty otherwise. The result is sorted.
	Traverse(ctx context.Context, start, relationType string, maxDepth int) ([]string, error)

	// DeleteEntity removes an entity and cascades to its incident
	// relations in both directions.
	// Returns ErrNotFound if the entity does not exist.
	DeleteEntity(ctx context.Context, id string) error
}

// CheckpointStore stores opaque state snapshots identified by ID.
type CheckpointStore interface {
	Backend

	// SaveCheckpoint persists a snapshot, atomically overwriting any
	// existing checkpoint with the same id. A concurrent or crashing
	// write never leaves a half-written checkpoint readable.
	SaveCheckpoint(ctx context.Context, id string, state []byte, metadata map[string]string) error

	// LoadCheckpoint retrieves a checkpoint by id.
	// Returns ErrNotFound if the checkpoint does not exist.
	LoadCheckpoint(ctx context.Context, id string) (*core.Checkpoint, error)

	// ListCheckpoints returns the stored checkpoint IDs in
	// implementation-defined order.
	ListCheckpoints(ctx context.Context) ([]string, error)

	// DeleteCheckpoint removes a checkpoint by id.
	// Returns ErrNotFound if the checkpoint does not exist.
	DeleteCheckpoint(ctx context.Context, id string) error
}
