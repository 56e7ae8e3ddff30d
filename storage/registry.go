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
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"sync"
)

// Registry owns active backend instances keyed by (type, name) and tracks a
// default name per type. The registry is the sole long-lived owner of its
// instances: unregistering (or replacing) an entry closes the instance.
// Structural operations are serialized behind an internal lock; concurrency
// control for calls into a retrieved instance is the instance's own
// responsibility.
type Registry struct {
	mu       sync.RWMutex
	factory  *Factory
	backends map[BackendType]map[string]Backend
	defaults map[BackendType]string
	logger   *slog.Logger
}

// NewRegistry creates a registry backed by the given factory.
// A nil factory gets a fresh empty one.
func NewRegistry(factory *Factory) *Registry {
	if factory == nil {
		factory = NewFactory()
	}
	return &Registry{
		factory:  factory,
		backends: make(map[BackendType]map[string]Backend),
		defaults: make(map[BackendType]string),
		logger:   slog.Default(),
	}
}

var (
	defaultRegistryMu sync.Mutex
	defaultRegistry   *Registry
)

// DefaultRegistry returns the process-wide registry, creating it on first
// access. All production code reaches the shared registry through this
// accessor.
func DefaultRegistry() *Registry {
	defaultRegistryMu.Lock()
	defer defaultRegistryMu.Unlock()
	if defaultRegistry == nil {
		defaultRegistry = NewRegistry(NewFactory())
	}
	return defaultRegistry
}

// ResetDefaultRegistry closes the process-wide registry and discards it so
// the next DefaultRegistry call starts fresh. Exposed solely for test
// isolation.
func ResetDefaultRegistry() error {
	defaultRegistryMu.Lock()
	defer defaultRegistryMu.Unlock()
	if defaultRegistry == nil {
		return nil
	}
	err := defaultRegistry.Close()
	defaultRegistry = nil
	return err
}

// Factory returns the factory used to construct this registry's backends.
func (r *Registry) Factory() *Factory {
	return r.factory
}

// RegisterBackend constructs a backend through the factory and stores it
// under (typ, name). The first backend registered for a type becomes that
// type's default. Registering an existing (typ, name) replaces the prior
// instance after closing it; the default pointer is unaffected.
func (r *Registry) RegisterBackend(typ BackendType, provider, name string, cfg Config) (Backend, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: backend name must not be empty", ErrConfiguration)
	}

	// Construction may do I/O; keep it outside the registry lock.
	backend, err := r.factory.CreateBackend(typ, provider, cfg)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	byName := r.backends[typ]
	if byName == nil {
		byName = make(map[string]Backend)
		r.backends[typ] = byName
	}
	previous := byName[name]
	byName[name] = backend
	if _, ok := r.defaults[typ]; !ok {
		r.defaults[typ] = name
	}
	r.mu.Unlock()

	if previous != nil {
		if closeErr := previous.Close(); closeErr != nil {
			r.logger.Error("error closing replaced backend",
				"type", typ.String(), "name", name, "err", closeErr)
		}
	}
	return backend, nil
}

// GetBackend retrieves a registered backend. An empty name selects the
// default for the type. Returns ErrBackendNotFound if the type has no
// default, or if the named backend is not registered.
func (r *Registry) GetBackend(typ BackendType, name string) (Backend, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if name == "" {
		var ok bool
		name, ok = r.defaults[typ]
		if !ok {
			return nil, fmt.Errorf("%w: no default %s backend", ErrBackendNotFound, typ)
		}
	}
	backend, ok := r.backends[typ][name]
	if !ok {
		return nil, fmt.Errorf("%w: %s/%s", ErrBackendNotFound, typ, name)
	}
	return backend, nil
}

// UnregisterBackend removes the entry and closes the instance. If the
// default pointer for the type referred to this name it is cleared; no
// other backend is promoted — callers set a new default explicitly via
// SetDefault.
func (r *Registry) UnregisterBackend(typ BackendType, name string) error {
	r.mu.Lock()
	backend, ok := r.backends[typ][name]
	if !ok {
		r.mu.Unlock()
		return fmt.Errorf("%w: %s/%s", ErrBackendNotFound, typ, name)
	}
	delete(r.backends[typ], name)
	if r.defaults[typ] == name {
		delete(r.defaults, typ)
	}
	r.mu.Unlock()

	if err := backend.Close(); err != nil {
		return fmt.Errorf("closing backend %s/%s: %w", typ, name, err)
	}
	return nil
}

// SetDefault makes name the default backend for the type.
// Returns ErrBackendNotFound if name is not currently registered.
func (r *Registry) SetDefault(typ BackendType, name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.backends[typ][name]; !ok {
		return fmt.Errorf("%w: %s/%s", ErrBackendNotFound, typ, name)
	}
	r.defaults[typ] = name
	return nil
}

// DefaultName returns the default backend name for a type, if set.
func (r *Registry) DefaultName(typ BackendType) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	name, ok := r.defaults[typ]
	return name, ok
}

// Names returns the sorted backend names registered for a type.
func (r *Registry) Names(typ BackendType) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.backends[typ]))
	for name := range r.backends[typ] {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// VectorStore retrieves a registered vector store. An empty name selects
// the default.
func (r *Registry) VectorStore(name string) (VectorStore, error) {
	backend, err := r.GetBackend(VectorStoreType, name)
	if err != nil {
		return nil, err
	}
	store, ok := backend.(VectorStore)
	if !ok {
		return nil, fmt.Errorf("%w: %s/%s is not a vector store", ErrInvalidProvider, VectorStoreType, name)
	}
	return store, nil
}

// KnowledgeGraph retrieves a registered knowledge graph. An empty name
// selects the default.
func (r *Registry) KnowledgeGraph(name string) (KnowledgeGraph, error) {
	backend, err := r.GetBackend(KnowledgeGraphType, name)
	if err != nil {
		return nil, err
	}
	graph, ok := backend.(KnowledgeGraph)
	if !ok {
		return nil, fmt.Errorf("%w: %s/%s is not a knowledge graph", ErrInvalidProvider, KnowledgeGraphType, name)
	}
	return graph, nil
}

// CheckpointStore retrieves a registered checkpoint store. An empty name
// selects the default.
func (r *Registry) CheckpointStore(name string) (CheckpointStore, error) {
	backend, err := r.GetBackend(CheckpointStoreType, name)
	if err != nil {
		return nil, err
	}
	store, ok := backend.(CheckpointStore)
	if !ok {
		return nil, fmt.Errorf("%w: %s/%s is not a checkpoint store", ErrInvalidProvider, CheckpointStoreType, name)
	}
	return store, nil
}

// Close closes every registered backend and clears the registry. Errors
// are collected; closing continues past failures.
func (r *Registry) Close() error {
	r.mu.Lock()
	backends := r.backends
	r.backends = make(map[BackendType]map[string]Backend)
	r.defaults = make(map[BackendType]string)
	r.mu.Unlock()

	var errs []error
	for typ, byName := range backends {
		for name, backend := range byName {
			if err := backend.Close(); err != nil {
				r.logger.Error("error closing backend",
					"type", typ.String(), "name", name, "err", err)
				errs = append(errs, fmt.Errorf("closing backend %s/%s: %w", typ, name, err))
			}
		}
	}
	return errors.Join(errs...)
}
