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


package memory

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"sync"

	"github.com/poiesic/substrate/core"
	"github.com/poiesic/substrate/storage"
)

type vectorEntry struct {
	vector   []float32
	metadata map[string]string
}

// VectorStore is a volatile vector store backed by an in-process map.
type VectorStore struct {
	mu      sync.RWMutex
	entries map[string]vectorEntry
	closed  bool
}

var _ storage.VectorStore = (*VectorStore)(nil)

// NewVectorStore creates an in-memory vector store. The configuration is
// ignored; the memory provider has no required keys.
func NewVectorStore(cfg storage.Config) (storage.Backend, error) {
	return &VectorStore{
		entries: make(map[string]vectorEntry),
	}, nil
}

// Add stores a vector under id, overwriting any existing entry.
// The vector and metadata are copied so later caller mutation cannot
// corrupt stored state.
func (s *VectorStore) Add(ctx context.Context, id string, vector []float32, metadata map[string]string) error {
	if err := core.ValidateID(id); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return storage.ErrStorageClosed
	}
	s.entries[id] = vectorEntry{
		vector:   slices.Clone(vector),
		metadata: maps.Clone(metadata),
	}
	return nil
}

// Get retrieves the vector and metadata stored under id.
func (s *VectorStore) Get(ctx context.Context, id string) ([]float32, map[string]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return nil, nil, storage.ErrStorageClosed
	}
	entry, ok := s.entries[id]
	if !ok {
		return nil, nil, fmt.Errorf("%w: vector %q", storage.ErrNotFound, id)
	}
	return slices.Clone(entry.vector), maps.Clone(entry.metadata), nil
}

// Search scans all entries, scores them by cosine similarity against the
// query, and returns up to limit matches ordered by descending score.
func (s *VectorStore) Search(ctx context.Context, query []float32, limit int) ([]core.Match, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return nil, storage.ErrStorageClosed
	}

	matches := make([]core.Match, 0, len(s.entries))
	for id, entry := range s.entries {
		matches = append(matches, core.Match{
			Id:    id,
			Score: core.CosineSimilarity(query, entry.vector),
		})
	}
	return core.TopMatches(matches, limit), nil
}

// Delete removes the entry stored under id.
func (s *VectorStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return storage.ErrStorageClosed
	}
	if _, ok := s.entries[id]; !ok {
		return fmt.Errorf("%w: vector %q", storage.ErrNotFound, id)
	}
	delete(s.entries, id)
	return nil
}

// Close discards all state. The store is not reusable afterwards.
func (s *VectorStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	s.entries = nil
	return nil
}
