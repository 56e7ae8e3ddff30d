package file

import (
	"context"
	"fmt"
	"maps"
	"sync"

	"github.com/poiesic/substrate/core"
	"github.com/poiesic/substrate/storage"
)

type relationEntry struct {
	Source     string            `json:"source"`
	Type       string            `json:"type"`
	Target     string            `json:"target"`
	Attributes map[string]string `json:"attributes,omitempty"`
}

type graphDocument struct {
	Entities  map[string]map[string]string `json:"entities"`
	Relations []relationEntry              `json:"relations"`
}

// KnowledgeGraph is an entity/relation store persisted as one JSON
// document: {entities: id -> attributes, relations: [{source, type,
// target, attributes}]}. Reads are served from the in-memory copy.
type KnowledgeGraph struct {
	mu         sync.RWMutex
	path       string
	syncWrites bool
	entities   map[string]map[string]string
	relations  []core.Relation
	closed     bool
}

var (
	_ storage.KnowledgeGraph = (*KnowledgeGraph)(nil)
	_ storage.Flusher        = (*KnowledgeGraph)(nil)
)

// NewKnowledgeGraph creates a file-backed knowledge graph, loading the
// snapshot at the configured path (empty state if the file does not exist).
func NewKnowledgeGraph(cfg storage.Config) (storage.Backend, error) {
	path, syncWrites, err := backendConfig(cfg)
	if err != nil {
		return nil, err
	}
	if err := ensureDir(path); err != nil {
		return nil, err
	}

	g := &KnowledgeGraph{
		path:       path,
		syncWrites: syncWrites,
		entities:   make(map[string]map[string]string),
	}

	var doc graphDocument
	ok, err := loadSnapshot(path, &doc)
	if err != nil {
		return nil, err
	}
	if ok {
		if doc.Entities != nil {
			g.entities = doc.Entities
		}
		g.relations = make([]core.Relation, len(doc.Relations))
		for i, rel := range doc.Relations {
			g.relations[i] = core.Relation{
				Source:     rel.Source,
				Type:       rel.Type,
				Target:     rel.Target,
				Attributes: rel.Attributes,
			}
		}
	}
	return g, nil
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
	return g.persistLocked()
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
	return g.persistLocked()
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
	return g.persistLocked()
}

// Save persists the current in-memory state regardless of the sync mode.
func (g *KnowledgeGraph) Save(ctx context.Context) error {
	g.mu.RLock()
	defer g.mu.RUnlock()
	if g.closed {
		return storage.ErrStorageClosed
	}
	return writeSnapshot(g.path, g.documentLocked())
}

func (g *KnowledgeGraph) persistLocked() error {
	if !g.syncWrites {
		return nil
	}
	return writeSnapshot(g.path, g.documentLocked())
}

// documentLocked builds the JSON document from in-memory state.
// Callers must hold at least the read lock.
func (g *KnowledgeGraph) documentLocked() graphDocument {
	relations := make([]relationEntry, len(g.relations))
	for i, rel := range g.relations {
		relations[i] = relationEntry{
			Source:     rel.Source,
			Type:       rel.Type,
			Target:     rel.Target,
			Attributes: rel.Attributes,
		}
	}
	return graphDocument{
		Entities:  g.entities,
		Relations: relations,
	}
}

// Close flushes deferred state and discards the in-memory copy.
func (g *KnowledgeGraph) Close() error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.closed {
		return nil
	}
	var err error
	if !g.syncWrites {
		err = writeSnapshot(g.path, g.documentLocked())
	}
	g.closed = true
	g.entities = nil
	g.relations = nil
	return err
}
