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


package file

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
	Vector   []float32         `json:"vector"`
	Metadata map[string]string `json:"metadata,omitempty"`
}

// VectorStore is a vector store persisted as one JSON document mapping
// id to {vector, metadata}. Reads are served from the in-memory copy.
type VectorStore struct {
	mu         sync.RWMutex
	path       string
	syncWrites bool
	entries    map[string]vectorEntry
	closed     bool
}

var (
	_ storage.VectorStore = (*VectorStore)(nil)
	_ storage.Flusher     = (*VectorStore)(nil)
)

// NewVectorStore creates a file-backed vector store, loading the snapshot
// at the configured path (empty state if the file does not exist).
func NewVectorStore(cfg storage.Config) (storage.Backend, error) {
	path, syncWrites, err := backendConfig(cfg)
	if err != nil {
		return nil, err
	}
	if err := ensureDir(path); err != nil {
		return nil, err
	}

	s := &VectorStore{
		path:       path,
		syncWrites: syncWrites,
		entries:    make(map[string]vectorEntry),
	}
	if _, err := loadSnapshot(path, &s.entries); err != nil {
		return nil, err
	}
	return s, nil
}

// Add stores a vector under id, overwriting any existing entry.
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
		Vector:   slices.Clone(vector),
		Metadata: maps.Clone(metadata),
	}
	return s.persistLocked()
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
	return slices.Clone(entry.Vector), maps.Clone(entry.Metadata), nil
}

// Search scans the in-memory entries, scores them by cosine similarity
// against the query, and returns up to limit matches by descending score.
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
			Score: core.CosineSimilarity(query, entry.Vector),
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
	return s.persistLocked()
}

// Save persists the current in-memory state regardless of the sync mode.
func (s *VectorStore) Save(ctx context.Context) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return storage.ErrStorageClosed
	}
	return writeSnapshot(s.path, s.entries)
}

// persistLocked flushes after a mutation when sync mode is on.
// Callers must hold the write lock.
func (s *VectorStore) persistLocked() error {
	if !s.syncWrites {
		return nil
	}
	return writeSnapshot(s.path, s.entries)
}

// Close flushes deferred state and discards the in-memory copy.
func (s *VectorStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	var err error
	if !s.syncWrites {
		err = writeSnapshot(s.path, s.entries)
	}
	s.closed = true
	s.entries = nil
	return err
}
