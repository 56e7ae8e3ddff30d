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


// Package memory provides volatile in-process backends for all three
// storage capabilities. State is guarded by a per-instance RWMutex and is
// lost when the instance is closed or the process ends.
package memory

import "github.com/poiesic/substrate/storage"

// ProviderName is the name these backends register under.
const ProviderName = "memory"

// Providers returns the provider registrations for the memory backend
// family. The memory providers accept an empty configuration.
func Providers() []storage.ProviderRegistration {
	return []storage.ProviderRegistration{
		{Type: storage.VectorStoreType, Name: ProviderName, New: NewVectorStore},
		{Type: storage.KnowledgeGraphType, Name: ProviderName, New: NewKnowledgeGraph},
		{Type: storage.CheckpointStoreType, Name: ProviderName, New: NewCheckpointStore},
	}
}
