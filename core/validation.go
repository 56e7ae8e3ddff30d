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

import "fmt"

// ValidateID validates an entity, record, or checkpoint identifier.
//
// Validation rules:
//   - ID must not be empty
func ValidateID(id string) error {
	if id == "" {
		return ErrEmptyID
	}
	return nil
}

// ValidateVector validates an embedding vector.
//
// Validation rules:
//   - Vector must have at least one component
func ValidateVector(vector []float32) error {
	if len(vector) == 0 {
		return ErrEmptyVector
	}
	return nil
}

// ValidateRelation validates a Relation according to domain rules.
//
// Validation rules:
//   - Source and Target must be non-empty IDs
//   - Type must not be empty
//
// NOT validated:
//   - Existence of the endpoints (a storage concern)
//   - Attributes (any mapping is valid, including nil)
func ValidateRelation(relation *Relation) error {
	if relation == nil {
		return fmt.Errorf("%w: relation is nil", ErrInvalidRelation)
	}

	if relation.Source == "" || relation.Target == "" {
		return fmt.Errorf("%w: %w", ErrInvalidRelation, ErrEmptyID)
	}

	if relation.Type == "" {
		return fmt.Errorf("%w: %w", ErrInvalidRelation, ErrEmptyRelationType)
	}

	return nil
}
