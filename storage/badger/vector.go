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

type vectorEntry struct {
	Vector   []float32         `json:"vector"`
	Metadata map[string]string `json:"metadata,omitempty"`
}

// VectorStore implements storage.VectorStore on BadgerDB.
type VectorStore struct {
	backend *Backend
}

var _ storage.VectorStore = (*VectorStore)(nil)

// NewVectorStore creates a badger-backed vector store.
func NewVectorStore(cfg storage.Config) (storage.Backend, error) {
	backend, err := openFromConfig(cfg)
	if err != nil {
		return nil, err
	}
	return &VectorStore{backend: backend}, nil
}

// Add stores a vector under id, overwriting any existing entry.
func (s *VectorStore) Add(ctx context.Context, id string, vector []float32, metadata map[string]string) error {
	if err := core.ValidateID(id); err != nil {
		return err
	}
	value, err := json.Marshal(vectorEntry{Vector: vector, Metadata: metadata})
	if err != nil {
		return fmt.Errorf("%w: encoding vector %q: %v", storage.ErrStorageIO, id, err)
	}

	return s.backend.WithTx(func(tx *badger.Txn) error {
		if err := tx.Set(makeVectorKey(id), value); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
}

// Get retrieves the vector and metadata stored under id.
func (s *VectorStore) Get(ctx context.Context, id string) ([]float32, map[string]string, error) {
	var entry vectorEntry
	err := s.backend.WithTx(func(tx *badger.Txn) error {
		item, err := tx.Get(makeVectorKey(id))
		if err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return fmt.Errorf("%w: vector %q", storage.ErrNotFound, id)
			}
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &entry)
		})
	}, false)
	if err != nil {
		return nil, nil, err
	}
	return entry.Vector, entry.Metadata, nil
}

// Search iterates all vector entries, scores them by cosine similarity
// against the query, and returns up to limit matches by descending score.
func (s *VectorStore) Search(ctx context.Context, query []float32, limit int) ([]core.Match, error) {
	var matches []core.Match

	err := s.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(vectorPrefix)
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			item := iter.Item()
			id := idFromKey(item.Key(), vectorPrefix)

			var entry vectorEntry
			err := item.Value(func(val []byte) error {
				return json.Unmarshal(val, &entry)
			})
			if err != nil {
				return err
			}

			matches = append(matches, core.Match{
				Id:    id,
				Score: core.CosineSimilarity(query, entry.Vector),
			})
		}
		return nil
	}, false)
	if err != nil {
		return nil, err
	}

	return core.TopMatches(matches, limit), nil
}

// Delete removes the entry stored under id.
func (s *VectorStore) Delete(ctx context.Context, id string) error {
	return s.backend.WithTx(func(tx *badger.Txn) error {
		key := makeVectorKey(id)
		if _, err := tx.Get(key); err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return fmt.Errorf("%w: vector %q", storage.ErrNotFound, id)
			}
			return err
		}
		if err := tx.Delete(key); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
}

// Close closes the underlying database.
func (s *VectorStore) Close() error {
	return s.backend.Close()
}
