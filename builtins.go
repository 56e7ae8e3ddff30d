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


package substrate

import (
	"github.com/poiesic/substrate/storage"
	"github.com/poiesic/substrate/storage/badger"
	"github.com/poiesic/substrate/storage/file"
	"github.com/poiesic/substrate/storage/memory"
)

// BuiltinProviders returns the enumerated registration table for the
// bundled provider families: memory (volatile), file (JSON snapshots),
// and badger (BadgerDB). The table is a plain value so the available
// providers are inspectable and reproducible; nothing registers itself
// through import side effects.
func BuiltinProviders() []storage.ProviderRegistration {
	var regs []storage.ProviderRegistration
	regs = append(regs, memory.Providers()...)
	regs = append(regs, file.Providers()...)
	regs = append(regs, badger.Providers()...)
	return regs
}

// RegisterBuiltins registers the bundled providers with a factory in a
// single initialization pass.
func RegisterBuiltins(factory *storage.Factory, opts ...storage.RegisterOption) error {
	return factory.RegisterAll(BuiltinProviders(), opts...)
}

// Default returns the process-wide registry with the bundled providers
// registered. Repeated calls are cheap; providers already present (for
// example replaced by a test) are left untouched.
func Default() (*storage.Registry, error) {
	registry := storage.DefaultRegistry()
	factory := registry.Factory()
	for _, reg := range BuiltinProviders() {
		if factory.HasProvider(reg.Type, reg.Name) {
			continue
		}
		if err := factory.RegisterProvider(reg.Type, reg.Name, reg.New); err != nil {
			return nil, err
		}
	}
	return registry, nil
}
