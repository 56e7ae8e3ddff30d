package memory

import (
	"context"
	"fmt"
	"maps"
	"sync"

	"github.com/poiesic/substrate/core"
	"github.com/poiesic/substrate/storage"
)

// KnowledgeGraph is a volatile entity/relation store backed by in-process
// maps. Relations are held as a flat list, mirroring the document layout
// used by the persistent providers.
type KnowledgeGraph struct {
	mu        sync.RWMutex
	entities  map[string]map[string]string
	relations []core.Relation
	closed    bool
}

var _ storage.KnowledgeGraph = (*KnowledgeGraph)(nil)

// NewKnowledgeGraph creates an in-memory knowledge graph. The configuration
// is ignored; the memory provider has no required keys.
func NewKnowledgeGraph(cfg storage.Config) (storage.Backend, error) {
	return &KnowledgeGraph{
		entities: make(map[string]map[string]string),
	}, nil
}

// AddEntity stores an entity, overwriting any existing attributes.
func (g *KnowledgeGraph) AddEntity(ctx context.Context, id string, attributes map[string]string) error {
	if err := core.ValidateID(id); err != nil {
		return err
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	if g.closed {
		return storage.ErrStorageClosed
	}
	g.entities[id] = maps.Clone(attributes)
	return nil
}

// AddRelation stores a directed edge between two existing entities.
func (g *KnowledgeGraph) AddRelation(ctx context.Context, source, relationType, target string, attributes map[string]string) error {
	relation := core.Relation{
		Source:     source,
		Type:       relationType,
		Target:     target,
		Attributes: maps.Clone(attributes),
	}
	if err := core.ValidateRelation(&relation); err != nil {
		return err
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	if g.closed {
		return storage.ErrStorageClosed
	}
	if _, ok := g.entities[source]; !ok {
		return fmt.Errorf("%w: entity %q", storage.ErrNotFound, source)
	}
	if _, ok := g.entities[target]; !ok {
		return fmt.Errorf("%w: entity %q", storage.ErrNotFound, target)
	}
	g.relations = append(g.relations, relation)
	return nil
}

// GetEntity retrieves the attributes of an entity.
func (g *KnowledgeGraph) GetEntity(ctx context.Context, id string) (map[string]string, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	if g.closed {
		return nil, storage.ErrStorageClosed
	}
	attributes, ok := g.entities[id]
	if !ok {
		return nil, fmt.Errorf("%w: entity %q", storage.ErrNotFound, id)
	}
	return maps.Clone(attributes), nil
}

// Traverse returns the sorted IDs reachable from start within maxDepth
// hops following edges of relationType (empty string follows all types).
func (g *KnowledgeGraph) Traverse(ctx context.Context, start, relationType string, maxDepth int) ([]string, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	if g.closed {
		return nil, storage.ErrStorageClosed
	}
	exists := func(id string) bool {
		_, ok := g.entities[id]
		return ok
	}
	return core.Reachable(g.relations, exists, start, relationType, maxDepth), nil
}

// DeleteEntity removes an entity and all relations that reference it.
func (g *KnowledgeGraph) DeleteEntity(ctx context.Context, id string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.closed {
		return storage.ErrStorageClosed
	}
	if _, ok := g.entities[id]; !ok {
		return fmt.Errorf("%w: entity %q", storage.ErrNotFound, id)
	}
	delete(g.entities, id)

	kept := g.relations[:0]
	for _, rel := range g.relations {
		if rel.Source == id || rel.Target == id {
			continue
		}
		kept = append(kept, rel)
	}
	g.relations = kept
	return nil
}

// Close discards all state. The graph is not reusable afterwards.
func (g *KnowledgeGraph) Close() error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.closed = true
	g.entities = nil
	g.relations = nil
	return nil
}
