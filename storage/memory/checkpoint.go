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
	"time"

	"github.com/poiesic/substrate/core"
	"github.com/poiesic/substrate/storage"
)

// CheckpointStore is a volatile checkpoint store backed by an in-process
// map. Each save replaces the stored snapshot under the lock, so readers
// always observe either the previous or the new checkpoint, never a mix.
type CheckpointStore struct {
	mu          sync.RWMutex
	checkpoints map[string]core.Checkpoint
	closed      bool
}

var _ storage.CheckpointStore = (*CheckpointStore)(nil)

// NewCheckpointStore creates an in-memory checkpoint store. The
// configuration is ignored; the memory provider has no required keys.
func NewCheckpointStore(cfg storage.Config) (storage.Backend, error) {
	return &CheckpointStore{
		checkpoints: make(map[string]core.Checkpoint),
	}, nil
}

// SaveCheckpoint stores a snapshot, overwriting any checkpoint with the
// same id. State and metadata are copied.
func (s *CheckpointStore) SaveCheckpoint(ctx context.Context, id string, state []byte, metadata map[string]string) error {
	if err := core.ValidateID(id); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return storage.ErrStorageClosed
	}
	s.checkpoints[id] = core.Checkpoint{
		Id:        id,
		State:     slices.Clone(state),
		Metadata:  maps.Clone(metadata),
		UpdatedAt: time.Now().UTC(),
	}
	return nil
}

// LoadCheckpoint retrieves a checkpoint by id.
func (s *CheckpointStore) LoadCheckpoint(ctx context.Context, id string) (*core.Checkpoint, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return nil, storage.ErrStorageClosed
	}
	checkpoint, ok := s.checkpoints[id]
	if !ok {
		return nil, fmt.Errorf("%w: checkpoint %q", storage.ErrNotFound, id)
	}
	checkpoint.State = slices.Clone(checkpoint.State)
	checkpoint.Metadata = maps.Clone(checkpoint.Metadata)
	return &checkpoint, nil
}

// ListCheckpoints returns the stored checkpoint IDs, sorted.
func (s *CheckpointStore) ListCheckpoints(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return nil, storage.ErrStorageClosed
	}
	ids := make([]string, 0, len(s.checkpoints))
	for id := range s.checkpoints {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids, nil
}

// DeleteCheckpoint removes a checkpoint by id.
func (s *CheckpointStore) DeleteCheckpoint(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return storage.ErrStorageClosed
	}
	if _, ok := s.checkpoints[id]; !ok {
		return fmt.Errorf("%w: checkpoint %q", storage.ErrNotFound, id)
	}
	delete(s.checkpoints, id)
	return nil
}

// Close discards all state. The store is not reusable afterwards.
func (s *CheckpointStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	s.checkpoints = nil
	return nil
}
