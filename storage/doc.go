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


// Package storage provides the pluggable storage-backend layer for substrate.
//
// This package defines capability interfaces that decouple storage
// implementation from the rest of the system. It allows different backends
// (in-memory, JSON files, BadgerDB, third-party engines) to be used
// interchangeably behind stable contracts.
//
// # Capabilities
//
// Each BackendType has exactly one capability interface:
//
//   - VectorStore: embedding storage with similarity search
//   - KnowledgeGraph: typed entities and relations with bounded traversal
//   - CheckpointStore: opaque state snapshots with atomic overwrite
//
// # Providers and the Factory
//
// A provider is a named Constructor for one BackendType. Providers are
// registered explicitly with a Factory; there is no auto-discovery. The
// factory resolves (type, name) pairs to constructors and builds instances
// from a Config map, verifying that the result implements the capability
// interface for its type:
//
//	factory := storage.NewFactory()
//	err := factory.RegisterProvider(storage.VectorStoreType, "custom", NewCustomStore)
//	backend, err := factory.CreateBackend(storage.VectorStoreType, "custom", storage.Config{})
//
// # The Registry
//
// A Registry owns live backend instances keyed by (type, name) and tracks a
// default name per type. The first backend registered for a type becomes its
// default. The process-wide singleton is reached through DefaultRegistry;
// ResetDefaultRegistry exists solely for test isolation.
//
// # Thread Safety
//
// Factory and Registry serialize their structural state internally. Once an
// instance is retrieved, concurrency control is the instance's own
// responsibility; all bundled providers are safe for concurrent use.
//
// # Context Support
//
// All capability methods accept context.Context for cancellation and
// timeout support. Pass context.Background() for operations without
// specific timeout requirements.
package storage
