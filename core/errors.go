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


package core

import "errors"

// Domain validation errors
var (
	// ErrEmptyID indicates an entity, record, or checkpoint ID is empty.
	ErrEmptyID = errors.New("id cannot be empty")

	// ErrEmptyVector indicates a vector has no components.
	ErrEmptyVector = errors.New("vector cannot be empty")

	// ErrInvalidRelation indicates a Relation failed validation.
	ErrInvalidRelation = errors.New("invalid relation")

	// ErrEmptyRelationType indicates the relation Type field is empty.
	ErrEmptyRelationType = errors.New("relation type cannot be empty")
)
