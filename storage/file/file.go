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


// Package file provides JSON-persisted backends for all three storage
// capabilities. Each backend instance owns one file path; the full state
// is loaded into memory on construction and every mutation persists by
// writing a temporary file in the same directory and atomically replacing
// the target, so a reader never observes a partially written snapshot.
//
// Configuration keys:
//
//	path  string  required; the snapshot file path
//	sync  bool    optional; true (default) flushes every mutation,
//	              false defers persistence to an explicit Save call
package file

import "github.com/poiesic/substrate/storage"

// ProviderName is the name these backends register under.
const ProviderName = "file"

// Configuration keys consumed by the file providers.
const (
	ConfigPath = "path"
	ConfigSync = "sync"
)

// Providers returns the provider registrations for the file backend family.
func Providers() []storage.ProviderRegistration {
	return []storage.ProviderRegistration{
		{Type: storage.VectorStoreType, Name: ProviderName, New: NewVectorStore},
		{Type: storage.KnowledgeGraphType, Name: ProviderName, New: NewKnowledgeGraph},
		{Type: storage.CheckpointStoreType, Name: ProviderName, New: NewCheckpointStore},
	}
}

// backendConfig extracts the configuration subset shared by all file
// providers.
func backendConfig(cfg storage.Config) (path string, syncWrites bool, err error) {
	path, err = cfg.String(ConfigPath)
	if err != nil {
		return "", false, err
	}
	syncWrites, err = cfg.BoolOr(ConfigSync, true)
	if err != nil {
		return "", false, err
	}
	return path, syncWrites, nil
}
