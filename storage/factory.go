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


package storage

import (
	"fmt"
	"sort"
	"sync"
)

// Constructor builds a backend instance from a configuration map.
// Constructors must validate their own configuration subset and return an
// error wrapping ErrConfiguration on missing or invalid keys.
type Constructor func(cfg Config) (Backend, error)

// RegisterOption configures a provider registration.
type RegisterOption func(*registerOptions)

type registerOptions struct {
	replace bool
}

// WithReplace allows RegisterProvider to overwrite an existing registration
// for the same (type, name) pair. Intended for test and mocking hooks.
func WithReplace() RegisterOption {
	return func(o *registerOptions) {
		o.replace = true
	}
}

// Factory maps (BackendType, provider name) pairs to constructors and
// instantiates backends from configuration. Registrations are additive and
// explicit; there is no discovery mechanism.
type Factory struct {
	mu        sync.RWMutex
	providers map[BackendType]map[string]Constructor
}

// NewFactory creates an empty provider factory.
func NewFactory() *Factory {
	return &Factory{
		providers: make(map[BackendType]map[string]Constructor),
	}
}

// RegisterProvider stores the constructor for a (type, name) pair.
// Registering an already-registered pair returns ErrDuplicateRegistration
// unless WithReplace is passed.
func (f *Factory) RegisterProvider(typ BackendType, name string, ctor Constructor, opts ...RegisterOption) error {
	if name == "" {
		return fmt.Errorf("%w: provider name must not be empty", ErrConfiguration)
	}
	if ctor == nil {
		return fmt.Errorf("%w: provider %s/%s has a nil constructor", ErrConfiguration, typ, name)
	}

	var options registerOptions
	for _, opt := range opts {
		opt(&options)
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	byName := f.providers[typ]
	if byName == nil {
		byName = make(map[string]Constructor)
		f.providers[typ] = byName
	}
	if _, exists := byName[name]; exists && !options.replace {
		return fmt.Errorf("%w: %s/%s", ErrDuplicateRegistration, typ, name)
	}
	byName[name] = ctor
	return nil
}

// RegisterAll registers a table of providers in one pass. Registration
// stops at the first error.
func (f *Factory) RegisterAll(regs []ProviderRegistration, opts ...RegisterOption) error {
	for _, reg := range regs {
		if err := f.RegisterProvider(reg.Type, reg.Name, reg.New, opts...); err != nil {
			return err
		}
	}
	return nil
}

// UnregisterProvider removes a provider registration. Removing an unknown
// pair is a no-op. Provided for test isolation.
func (f *Factory) UnregisterProvider(typ BackendType, name string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.providers[typ], name)
}

// HasProvider reports whether a constructor is registered for (type, name).
func (f *Factory) HasProvider(typ BackendType, name string) bool {
	f.mu.RLock()
	defer f.mu.RUnlock()
	_, ok := f.providers[typ][name]
	return ok
}

// Providers returns the sorted provider names registered for a type.
func (f *Factory) Providers(typ BackendType) []string {
	f.mu.RLock()
	defer f.mu.RUnlock()

	names := make([]string, 0, len(f.providers[typ]))
	for name := range f.providers[typ] {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// CreateBackend instantiates a backend by invoking the registered
// constructor with a clone of cfg. Construction has no effect on any
// registry; the caller owns the returned instance.
//
// Returns ErrUnknownProvider if no constructor is registered for
// (type, name), propagates constructor errors unchanged, and returns
// ErrInvalidProvider if the constructed instance does not implement the
// capability interface for typ (the instance is closed before returning).
func (f *Factory) CreateBackend(typ BackendType, name string, cfg Config) (Backend, error) {
	f.mu.RLock()
	ctor, ok := f.providers[typ][name]
	f.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %s/%s", ErrUnknownProvider, typ, name)
	}

	backend, err := ctor(cfg.Clone())
	if err != nil {
		return nil, err
	}
	if backend == nil {
		return nil, fmt.Errorf("%w: %s/%s constructor returned nil", ErrInvalidProvider, typ, name)
	}

	if !implementsCapability(typ, backend) {
		backend.Close()
		return nil, fmt.Errorf("%w: %s/%s does not implement %s", ErrInvalidProvider, typ, name, typ)
	}
	return backend, nil
}

// implementsCapability checks the instance against the capability interface
// for its BackendType.
func implementsCapability(typ BackendType, backend Backend) bool {
	switch typ {
	case VectorStoreType:
		_, ok := backend.(VectorStore)
		return ok
	case KnowledgeGraphType:
		_, ok := backend.(KnowledgeGraph)
		return ok
	case CheckpointStoreType:
		_, ok := backend.(CheckpointStore)
		return ok
	default:
		return false
	}
}
