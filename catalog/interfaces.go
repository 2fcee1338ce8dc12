package catalog

import (
	"context"

	"github.com/veritell/matchbook/core"
)

// Store provides access to the reference catalog of known entities.
// Implementations must be thread-safe and support concurrent access.
//
// All search methods take already-normalized names (normalize.Name output)
// and return at most limit entities. Empty result sets are normal, not
// errors; implementations should reserve errors for genuine store failures
// so that callers can degrade gracefully.
type Store interface {
	// SearchExactOrPrefix finds entities whose normalized primary or
	// alternate name equals the query or starts with it. Exact matches are
	// ordered before prefix matches; within each group shorter names first.
	SearchExactOrPrefix(ctx context.Context, query string, limit int) ([]*core.CatalogEntity, error)

	// SearchPrefix finds entities whose normalized primary or alternate name
	// starts with the given variant, shorter names first.
	SearchPrefix(ctx context.Context, variant string, limit int) ([]*core.CatalogEntity, error)

	// SearchTokenContains finds entities whose normalized name contains any
	// of the given tokens as a word prefix.
	SearchTokenContains(ctx context.Context, tokens []string, limit int) ([]*core.CatalogEntity, error)

	// PutEntities adds or replaces catalog entities. For entities with ID=0,
	// a content-based ID is generated from the identity tuple. InsertedAt is
	// set if not already set. Returns the entities with IDs and timestamps
	// populated.
	PutEntities(ctx context.Context, entities ...*core.CatalogEntity) ([]*core.CatalogEntity, error)

	// GetEntity retrieves a single entity by ID.
	// Returns ErrNotFound if the entity doesn't exist.
	GetEntity(ctx context.Context, id core.ID) (*core.CatalogEntity, error)

	// Count returns the number of entities in the catalog.
	Count(ctx context.Context) (int, error)

	// Close closes the store and releases resources.
	Close() error
}
