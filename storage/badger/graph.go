// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package badger

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/substrate/core"
	"github.com/poiesic/substrate/storage"
)

type relationEntry struct {
	Source     string            `json:"source"`
	Type       string            `json:"type"`
	Target     string            `json:"target"`
	Attributes map[string]string `json:"attributes,omitempty"`
}

// KnowledgeGraph implements storage.KnowledgeGraph on BadgerDB. Entities
// and relations live under separate key prefixes; relation keys are
// content-hashed from the (source, type, target) tuple so re-adding the
// same edge overwrites rather than duplicates.
type KnowledgeGraph struct {
	backend *Backend
}

var _ storage.KnowledgeGraph = (*KnowledgeGraph)(nil)

// NewKnowledgeGraph creates a badger-backed knowledge graph.
func NewKnowledgeGraph(cfg storage.Config) (storage.Backend, error) {
	backend, err := openFromConfig(cfg)
	if err != nil {
		return nil, err
	}
	return &KnowledgeGraph{backend: backend}, nil
}

// AddEntity stores an entity, overwriting any existing attributes.
func (g *KnowledgeGraph) AddEntity(ctx context.Context, id string, attributes map[string]string) error {
	if err := core.ValidateID(id); err != nil {
		return err
	}
	value, err := json.Marshal(attributes)
	if err != nil {
		return fmt.Errorf("%w: encoding entity %q: %v", storage.ErrStorageIO, id, err)
	}

	return g.backend.WithTx(func(tx *badger.Txn) error {
		if err := tx.Set(makeEntityKey(id), value); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
}

// AddRelation stores a directed edge between two existing entities.
func (g *KnowledgeGraph) AddRelation(ctx context.Context, source, relationType, target string, attributes map[string]string) error {
	relation := core.Relation{Source: source, Type: relationType, Target: target, Attributes: attributes}
	if err := core.ValidateRelation(&relation); err != nil {
		return err
	}
	value, err := json.Marshal(relationEntry{
		Source:     source,
		Type:       relationType,
		Target:     target,
		Attributes: attributes,
	})
	if err != nil {
		return fmt.Errorf("%w: encoding relation: %v", storage.ErrStorageIO, err)
	}

	return g.backend.WithTx(func(tx *badger.Txn) error {
		for _, id := range []string{source, target} {
			if _, err := tx.Get(makeEntityKey(id)); err != nil {
				if errors.Is(err, badger.ErrKeyNotFound) {
					return fmt.Errorf("%w: entity %q", storage.ErrNotFound, id)
				}
				return err
			}
		}
		if err := tx.Set(makeRelationKey(source, relationType, target), value); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
}

// GetEntity retrieves the attributes of an entity.
func (g *KnowledgeGraph) GetEntity(ctx context.Context, id string) (map[string]string, error) {
	var attributes map[string]string
	err := g.backend.WithTx(func(tx *badger.Txn) error {
		item, err := tx.Get(makeEntityKey(id))
		if err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return fmt.Errorf("%w: entity %q", storage.ErrNotFound, id)
			}
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &attributes)
		})
	}, false)
	if err != nil {
		return nil, err
	}
	return attributes, nil
}

// Traverse returns the sorted IDs reachable from start within maxDepth
// hops following edges of relationType (empty string follows all types).
// The relation set and entity existence checks are read within a single
// transaction for a consistent view.
func (g *KnowledgeGraph) Traverse(ctx context.Context, start, relationType string, maxDepth int) ([]string, error) {
	var reachable []string
	err := g.backend.WithTx(func(tx *badger.Txn) error {
		relations, err := readRelations(tx)
		if err != nil {
			return err
		}
		exists := func(id string) bool {
			_, err := tx.Get(makeEntityKey(id))
			return err == nil
		}
		reachable = core.Reachable(relations, exists, start, relationType, maxDepth)
		return nil
	}, false)
	if err != nil {
		return nil, err
	}
	return reachable, nil
}

// DeleteEntity removes an entity and all relations that reference it.
func (g *KnowledgeGraph) DeleteEntity(ctx context.Context, id string) error {
	return g.backend.WithTx(func(tx *badger.Txn) error {
		key := makeEntityKey(id)
		if _, err := tx.Get(key); err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return fmt.Errorf("%w: entity %q", storage.ErrNotFound, id)
			}
			return err
		}
		if err := tx.Delete(key); err != nil {
			return err
		}

		// Collect incident relation keys first; deleting while the
		// iterator is open invalidates it.
		var incident [][]byte
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(relationPrefix)
		iter := tx.NewIterator(opts)
		for iter.Rewind(); iter.Valid(); iter.Next() {
			item := iter.Item()
			var rel relationEntry
			err := item.Value(func(val []byte) error {
				return json.Unmarshal(val, &rel)
			})
			if err != nil {
				iter.Close()
				return err
			}
			if rel.Source == id || rel.Target == id {
				incident = append(incident, item.KeyCopy(nil))
			}
		}
		iter.Close()

		for _, relKey := range incident {
			if err := tx.Delete(relKey); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)
}

// Close closes the underlying database.
func (g *KnowledgeGraph) Close() error {
	return g.backend.Close()
}

// readRelations loads every stored relation within the transaction.
func readRelations(tx *badger.Txn) ([]core.Relation, error) {
	var relations []core.Relation

	opts := badger.DefaultIteratorOptions
	opts.Prefix = []byte(relationPrefix)
	iter := tx.NewIterator(opts)
	defer iter.Close()

	for iter.Rewind(); iter.Valid(); iter.Next() {
		var rel relationEntry
		err := iter.Item().Value(func(val []byte) error {
			return json.Unmarshal(val, &rel)
		})
		if err != nil {
			return nil, err
		}
		relations = append(relations, core.Relation{
			Source:     rel.Source,
			Type:       rel.Type,
			Target:     rel.Target,
			Attributes: rel.Attributes,
		})
	}
	return relations, nil
}
