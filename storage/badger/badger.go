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


// Package badger provides BadgerDB-backed backends for all three storage
// capabilities. Values are stored as JSON documents under prefixed keys;
// BadgerDB's write-ahead log provides crash consistency.
//
// Configuration keys:
//
//	path       string  database directory; required unless in_memory
//	in_memory  bool    optional; true keeps the database in memory
//
// Each backend instance opens and exclusively owns its database directory,
// so distinct backends must be configured with distinct paths.
package badger

import (
	"fmt"

	"github.com/poiesic/substrate/storage"
)

// ProviderName is the name these backends register under.
const ProviderName = "badger"

// Configuration keys consumed by the badger providers.
const (
	ConfigPath     = "path"
	ConfigInMemory = "in_memory"
)

// Providers returns the provider registrations for the badger backend
// family.
func Providers() []storage.ProviderRegistration {
	return []storage.ProviderRegistration{
		{Type: storage.VectorStoreType, Name: ProviderName, New: NewVectorStore},
		{Type: storage.KnowledgeGraphType, Name: ProviderName, New: NewKnowledgeGraph},
		{Type: storage.CheckpointStoreType, Name: ProviderName, New: NewCheckpointStore},
	}
}

// openFromConfig validates the shared configuration subset and opens the
// underlying database.
func openFromConfig(cfg storage.Config) (*Backend, error) {
	inMemory, err := cfg.BoolOr(ConfigInMemory, false)
	if err != nil {
		return nil, err
	}
	var path string
	if !inMemory {
		path, err = cfg.String(ConfigPath)
		if err != nil {
			return nil, err
		}
	}

	backend, err := OpenBackend(path, inMemory)
	if err != nil {
		return nil, fmt.Errorf("%w: opening badger database %q: %v", storage.ErrStorageIO, path, err)
	}
	return backend, nil
}
