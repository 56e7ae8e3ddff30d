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

import "errors"

var (
	// ErrNotFound indicates that the requested record, entity, or
	// checkpoint does not exist in the backend's store.
	ErrNotFound = errors.New("record not found")

	// ErrConfiguration indicates a required configuration key is missing
	// or malformed. Raised by provider constructors and surfaced unchanged.
	ErrConfiguration = errors.New("invalid configuration")

	// ErrUnknownProvider indicates a (type, name) pair with no registered
	// provider factory.
	ErrUnknownProvider = errors.New("unknown provider")

	// ErrDuplicateRegistration indicates RegisterProvider was called twice
	// for the same (type, name) without WithReplace.
	ErrDuplicateRegistration = errors.New("provider already registered")

	// ErrInvalidProvider indicates a provider constructed an instance that
	// does not implement the capability interface for its BackendType.
	ErrInvalidProvider = errors.New("provider does not implement required capability")

	// ErrBackendNotFound indicates a registry lookup referenced a
	// (type, name) with no active instance, or a type with no default.
	ErrBackendNotFound = errors.New("backend not found")

	// ErrUnknownBackendType indicates a string that names no BackendType.
	ErrUnknownBackendType = errors.New("unknown backend type")

	// ErrStorageIO indicates an underlying I/O failure in a persistent
	// provider (disk full, permission denied, corrupt file on load).
	ErrStorageIO = errors.New("storage i/o failure")

	// ErrStorageClosed indicates that the backend instance is closed.
	ErrStorageClosed = errors.New("storage is closed")
)
