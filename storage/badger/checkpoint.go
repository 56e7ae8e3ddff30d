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
	"sort"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/substrate/core"
	"github.com/poiesic/substrate/storage"
)

type checkpointEntry struct {
	Timestamp time.Time         `json:"timestamp"`
	Metadata  map[string]string `json:"metadata,omitempty"`
	State     []byte            `json:"state_blob"`
}

// CheckpointStore implements storage.CheckpointStore on BadgerDB.
// BadgerDB transactions make each save an atomic overwrite.
type CheckpointStore struct {
	backend *Backend
}

var _ storage.CheckpointStore = (*CheckpointStore)(nil)

// NewCheckpointStore creates a badger-backed checkpoint store.
func NewCheckpointStore(cfg storage.Config) (storage.Backend, error) {
	backend, err := openFromConfig(cfg)
	if err != nil {
		return nil, err
	}
	return &CheckpointStore{backend: backend}, nil
}

// SaveCheckpoint persists a snapshot, overwriting any checkpoint with the
// same id.
func (s *CheckpointStore) SaveCheckpoint(ctx context.Context, id string, state []byte, metadata map[string]string) error {
	if err := core.ValidateID(id); err != nil {
		return err
	}
	value, err := json.Marshal(checkpointEntry{
		Timestamp: time.Now().UTC(),
		Metadata:  metadata,
		State:     state,
	})
	if err != nil {
		return fmt.Errorf("%w: encoding checkpoint %q: %v", storage.ErrStorageIO, id, err)
	}

	return s.backend.WithTx(func(tx *badger.Txn) error {
		if err := tx.Set(makeCheckpointKey(id), value); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
}

// LoadCheckpoint retrieves a checkpoint by id.
func (s *CheckpointStore) LoadCheckpoint(ctx context.Context, id string) (*core.Checkpoint, error) {
	var entry checkpointEntry
	err := s.backend.WithTx(func(tx *badger.Txn) error {
		item, err := tx.Get(makeCheckpointKey(id))
		if err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return fmt.Errorf("%w: checkpoint %q", storage.ErrNotFound, id)
			}
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &entry)
		})
	}, false)
	if err != nil {
		return nil, err
	}

	return &core.Checkpoint{
		Id:        id,
		State:     entry.State,
		Metadata:  entry.Metadata,
		UpdatedAt: entry.Timestamp,
	}, nil
}

// ListCheckpoints returns the stored checkpoint IDs, sorted.
func (s *CheckpointStore) ListCheckpoints(ctx context.Context) ([]string, error) {
	var ids []string
	err := s.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(checkpointPrefix)
		opts.PrefetchValues = false
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			ids = append(ids, idFromKey(iter.Item().Key(), checkpointPrefix))
		}
		return nil
	}, false)
	if err != nil {
		return nil, err
	}

	sort.Strings(ids)
	return ids, nil
}

// DeleteCheckpoint removes a checkpoint by id.
func (s *CheckpointStore) DeleteCheckpoint(ctx context.Context, id string) error {
	return s.backend.WithTx(func(tx *badger.Txn) error {
		key := makeCheckpointKey(id)
		if _, err := tx.Get(key); err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return fmt.Errorf("%w: checkpoint %q", storage.ErrNotFound, id)
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
func (s *CheckpointStore) Close() error {
	return s.backend.Close()
}
