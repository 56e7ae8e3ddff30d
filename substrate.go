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


// Package substrate wires the pluggable storage layer together: the
// bundled providers, a registry, and optional declarative configuration.
//
// Most applications open a Store at startup and hand its typed accessors
// to the components that need them:
//
//	store, err := substrate.Open(substrate.WithConfigFile("backends.yaml"))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer store.Close()
//
//	vectors, err := store.VectorStore("")
package substrate

import (
	"log/slog"

	"github.com/poiesic/substrate/storage"
)

// Store is the facade over a registry with the bundled providers
// registered. It owns the registry and every backend registered through
// it.
type Store struct {
	registry *storage.Registry
	logger   *slog.Logger
}

// Option configures a Store.
type Option func(*storeOptions)

type storeOptions struct {
	configPath string
	backends   []BackendSpec
	logger     *slog.Logger
}

// WithConfigFile loads and applies a declarative backend configuration
// during Open.
func WithConfigFile(path string) Option {
	return func(o *storeOptions) {
		o.configPath = path
	}
}

// WithBackends registers the given backends during Open, after any
// configuration file is applied.
func WithBackends(specs ...BackendSpec) Option {
	return func(o *storeOptions) {
		o.backends = append(o.backends, specs...)
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(o *storeOptions) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// Open creates a Store with its own registry and the bundled providers
// registered. Backends declared through options are registered before
// Open returns; any failure closes what was already built.
func Open(opts ...Option) (*Store, error) {
	options := &storeOptions{logger: slog.Default()}
	for _, opt := range opts {
		opt(options)
	}

	factory := storage.NewFactory()
	if err := RegisterBuiltins(factory); err != nil {
		return nil, err
	}
	registry := storage.NewRegistry(factory)

	if options.configPath != "" {
		cfg, err := LoadConfig(options.configPath)
		if err != nil {
			return nil, err
		}
		if err := cfg.Apply(registry); err != nil {
			registry.Close()
			return nil, err
		}
	}
	if len(options.backends) > 0 {
		cfg := &Config{Backends: options.backends}
		if err := cfg.Apply(registry); err != nil {
			registry.Close()
			return nil, err
		}
	}

	return &Store{
		registry: registry,
		logger:   options.logger,
	}, nil
}

// Registry returns the underlying registry for direct registration and
// lookup.
func (s *Store) Registry() *storage.Registry {
	return s.registry
}

// VectorStore retrieves a registered vector store. An empty name selects
// the default.
func (s *Store) VectorStore(name string) (storage.VectorStore, error) {
	return s.registry.VectorStore(name)
}

// KnowledgeGraph retrieves a registered knowledge graph. An empty name
// selects the default.
func (s *Store) KnowledgeGraph(name string) (storage.KnowledgeGraph, error) {
	return s.registry.KnowledgeGraph(name)
}

// CheckpointStore retrieves a registered checkpoint store. An empty name
// selects the default.
func (s *Store) CheckpointStore(name string) (storage.CheckpointStore, error) {
	return s.registry.CheckpointStore(name)
}

// Close closes every backend owned by the store's registry.
func (s *Store) Close() error {
	if err := s.registry.Close(); err != nil {
		s.logger.Error("error closing storage backends", "err", err)
		return err
	}
	return nil
}
