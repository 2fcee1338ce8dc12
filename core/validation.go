// Copyright 2025 Veritell Systems
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

import (
	"fmt"
	"time"
)

// ValidateCatalogEntity validates a CatalogEntity according to domain rules.
//
// Validation rules:
//   - Name must not be empty
//   - InsertedAt, when set, must not be in the future
//
// NOT validated (populated by the catalog store):
//   - ID (0 is valid; the store assigns a content-based ID on insert)
//   - AltName, Category, City, State (optional in every catalog source)
func ValidateCatalogEntity(entity *CatalogEntity) error {
	if entity == nil {
		return fmt.Errorf("%w: entity is nil", ErrInvalidEntity)
	}

	if entity.Name == "" {
		return fmt.Errorf("%w: %w", ErrInvalidEntity, ErrEmptyEntityName)
	}

	if !entity.InsertedAt.IsZero() && !IsValidTimestamp(entity.InsertedAt) {
		return fmt.Errorf("%w: %w", ErrInvalidEntity, ErrInvalidTimestamp)
	}

	return nil
}

// ValidateConfidence checks that a confidence value is within [0,1].
func ValidateConfidence(confidence float64) error {
	if confidence < 0 || confidence > 1 {
		return fmt.Errorf("%w: value %f", ErrInvalidConfidence, confidence)
	}
	return nil
}

// IsValidTimestamp checks if a timestamp is valid (not in the future).
func IsValidTimestamp(ts time.Time) bool {
	return !ts.After(time.Now())
}
