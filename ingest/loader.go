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


package ingest

import (
	"context"
	"errors"
	"log/slog"
	"runtime"
	"sync"

	"github.com/google/uuid"
	"github.com/panjf2000/ants/v2"
	"github.com/poiesic/substrate/core"
	"github.com/poiesic/substrate/storage"
)

// Record is one vector entry to load. Content, when present, is the
// source text the vector was derived from; it is used for
// content-addressed IDs and copied into the stored metadata under the
// "content" key.
type Record struct {
	Id       string            `json:"id,omitempty"`
	Content  string            `json:"content,omitempty"`
	Vector   []float32         `json:"vector"`
	Metadata map[string]string `json:"metadata,omitempty"`
}

// Loader bulk-loads vector records into a vector store using a worker
// pool to overlap storage writes.
type Loader struct {
	vectors     storage.VectorStore
	pool        *ants.Pool
	generateIDs bool
	logger      *slog.Logger
}

// Option configures a Loader.
type Option func(*Loader) error

// WithWorkers sets the worker pool size.
// Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithWorkers(size int) Option {
	return func(l *Loader) error {
		if size < 1 {
			size = 1
		}
		if l.pool != nil {
			l.pool.Release()
		}
		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}
		l.pool = pool
		return nil
	}
}

// WithGeneratedIDs assigns a random UUID to records that have neither an
// ID nor content to derive one from. Without this option such records
// fail the load with ErrMissingID.
func WithGeneratedIDs() Option {
	return func(l *Loader) error {
		l.generateIDs = true
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(l *Loader) error {
		if logger == nil {
			logger = slog.Default()
		}
		l.logger = logger
		return nil
	}
}

// NewLoader creates a bulk loader writing to the given vector store.
func NewLoader(vectors storage.VectorStore, opts ...Option) (*Loader, error) {
	if vectors == nil {
		return nil, ErrVectorStoreRequired
	}

	poolSize := runtime.NumCPU() / 2
	if poolSize < 1 {
		poolSize = 1
	}
	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}

	l := &Loader{
		vectors: vectors,
		pool:    pool,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		if optErr := opt(l); optErr != nil {
			l.Release()
			return nil, optErr
		}
	}
	return l, nil
}

// Load writes all records to the vector store, submitting each to the
// worker pool and waiting for completion. Failures are collected and
// returned joined; successful records are not rolled back.
func (l *Loader) Load(ctx context.Context, records []Record) error {
	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		errs []error
	)
	fail := func(err error) {
		mu.Lock()
		errs = append(errs, err)
		mu.Unlock()
	}

	for _, record := range records {
		record, err := l.prepare(record)
		if err != nil {
			fail(err)
			continue
		}

		wg.Add(1)
		submitErr := l.pool.Submit(func() {
			defer wg.Done()
			if err := l.vectors.Add(ctx, record.Id, record.Vector, record.Metadata); err != nil {
				l.logger.Error("error loading vector record", "id", record.Id, "err", err)
				fail(err)
			}
		})
		if submitErr != nil {
			wg.Done()
			fail(submitErr)
		}
	}

	wg.Wait()
	return errors.Join(errs...)
}

// prepare validates a record and resolves its ID.
func (l *Loader) prepare(record Record) (Record, error) {
	if err := core.ValidateVector(record.Vector); err != nil {
		return record, err
	}

	if record.Id == "" {
		switch {
		case record.Content != "":
			record.Id = core.IDFromContent(record.Content)
		case l.generateIDs:
			record.Id = uuid.NewString()
		default:
			return record, ErrMissingID
		}
	}

	if record.Content != "" {
		metadata := make(map[string]string, len(record.Metadata)+1)
		for k, v := range record.Metadata {
			metadata[k] = v
		}
		metadata["content"] = record.Content
		record.Metadata = metadata
	}
	return record, nil
}

// Release releases the worker pool.
// The loader should not be used after calling Release.
func (l *Loader) Release() {
	if l.pool != nil {
		l.pool.Release()
	}
}
