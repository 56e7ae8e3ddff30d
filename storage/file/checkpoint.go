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
	"time"

	"github.com/poiesic/substrate/core"
	"github.com/poiesic/substrate/storage"
)

type checkpointEntry struct {
	Timestamp time.Time         `json:"timestamp"`
	Metadata  map[string]string `json:"metadata,omitempty"`
	State     []byte            `json:"state_blob"`
}

// CheckpointStore is a checkpoint store persisted as one JSON document
// mapping checkpoint id to {timestamp, metadata, state_blob}. The
// temp-file-then-replace protocol makes every save an atomic overwrite.
type CheckpointStore struct {
	mu          sync.RWMutex
	path        string
	syncWrites  bool
	checkpoints map[string]checkpointEntry
	closed      bool
}

var (
	_ storage.CheckpointStore = (*CheckpointStore)(nil)
	_ storage.Flusher         = (*CheckpointStore)(nil)
)

// NewCheckpointStore creates a file-backed checkpoint store, loading the
// snapshot at the configured path (empty state if the file does not exist).
func NewCheckpointStore(cfg storage.Config) (storage.Backend, error) {
	path, syncWrites, err := backendConfig(cfg)
	if err != nil {
		return nil, err
	}
	if err := ensureDir(path); err != nil {
		return nil, err
	}

	s := &CheckpointStore{
		path:        path,
		syncWrites:  syncWrites,
		checkpoints: make(map[string]checkpointEntry),
	}
	if _, err := loadSnapshot(path, &s.checkpoints); err != nil {
		return nil, err
	}
	return s, nil
}

// SaveCheckpoint stores a snapshot, atomically overwriting any checkpoint
// with the same id.
func (s *CheckpointStore) SaveCheckpoint(ctx context.Context, id string, state []byte, metadata map[string]string) error {
	if err := core.ValidateID(id); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return storage.ErrStorageClosed
	}
	s.checkpoints[id] = checkpointEntry{
		Timestamp: time.Now().UTC(),
		Metadata:  maps.Clone(metadata),
		State:     slices.Clone(state),
	}
	return s.persistLocked()
}

// LoadCheckpoint retrieves a checkpoint by id.
func (s *CheckpointStore) LoadCheckpoint(ctx context.Context, id string) (*core.Checkpoint, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return nil, storage.ErrStorageClosed
	}
	entry, ok := s.checkpoints[id]
	if !ok {
		return nil, fmt.Errorf("%w: checkpoint %q", storage.ErrNotFound, id)
	}
	return &core.Checkpoint{
		Id:        id,
		State:     slices.Clone(entry.State),
		Metadata:  maps.Clone(entry.Metadata),
		UpdatedAt: entry.Timestamp,
	}, nil
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
	return s.persistLocked()
}

// Save persists the current in-memory state regardless of the sync mode.
func (s *CheckpointStore) Save(ctx context.Context) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return storage.ErrStorageClosed
	}
	return writeSnapshot(s.path, s.checkpoints)
}

func (s *CheckpointStore) persistLocked() error {
	if !s.syncWrites {
		return nil
	}
	return writeSnapshot(s.path, s.checkpoints)
}

// Close flushes deferred state and discards the in-memory copy.
func (s *CheckpointStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	var err error
	if !s.syncWrites {
		err = writeSnapshot(s.path, s.checkpoints)
	}
	s.closed = true
	s.checkpoints = nil
	return err
}
