package badger

import (
	"context"
	"errors"
	"testing"

	"github.com/veritell/matchbook/catalog"
	"github.com/veritell/matchbook/core"
)

func seedStore(t *testing.T, names ...string) (catalog.Store, func()) {
	t.Helper()

	store, backend, err := NewMemoryStore()
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}

	entities := make([]*core.CatalogEntity, 0, len(names))
	for _, name := range names {
		entities = append(entities, &core.CatalogEntity{Name: name})
	}
	if len(entities) > 0 {
		if _, err := store.PutEntities(context.Background(), entities...); err != nil {
			store.Close()
			backend.Close()
			t.Fatalf("Failed to seed store: %v", err)
		}
	}

	return store, func() { store.Close(); backend.Close() }
}

func TestEntityStoreBasics(t *testing.T) {
	store, cleanup := seedStore(t)
	defer cleanup()

	ctx := context.Background()

	entity := &core.CatalogEntity{
		Name:     "Amazon.com Inc",
		AltName:  "Amazon",
		Category: "retail",
		City:     "Seattle",
		State:    "WA",
	}

	added, err := store.PutEntities(ctx, entity)
	if err != nil {
		t.Fatalf("Failed to add entity: %v", err)
	}

	if len(added) != 1 {
		t.Fatalf("Expected 1 entity, got %d", len(added))
	}
	if added[0].Id == 0 {
		t.Fatal("Expected non-zero ID")
	}
	if added[0].InsertedAt.IsZero() {
		t.Fatal("Expected InsertedAt to be set")
	}

	retrieved, err := store.GetEntity(ctx, added[0].Id)
	if err != nil {
		t.Fatalf("Failed to get entity: %v", err)
	}
	if retrieved.Name != "Amazon.com Inc" {
		t.Fatalf("Expected 'Amazon.com Inc', got '%s'", retrieved.Name)
	}
	if retrieved.City != "Seattle" {
		t.Fatalf("Expected 'Seattle', got '%s'", retrieved.City)
	}

	count, err := store.Count(ctx)
	if err != nil {
		t.Fatalf("Failed to count: %v", err)
	}
	if count != 1 {
		t.Fatalf("Expected count 1, got %d", count)
	}
}

func TestGetEntityNotFound(t *testing.T) {
	store, cleanup := seedStore(t)
	defer cleanup()

	_, err := store.GetEntity(context.Background(), core.ID(12345))
	if !errors.Is(err, catalog.ErrNotFound) {
		t.Fatalf("Expected ErrNotFound, got %v", err)
	}
}

func TestPutEntityRejectsEmptyName(t *testing.T) {
	store, cleanup := seedStore(t)
	defer cleanup()

	_, err := store.PutEntities(context.Background(), &core.CatalogEntity{})
	if !errors.Is(err, core.ErrInvalidEntity) {
		t.Fatalf("Expected ErrInvalidEntity, got %v", err)
	}
}

func TestSearchExactOrPrefix(t *testing.T) {
	store, cleanup := seedStore(t,
		"Amazon.com Inc",
		"Amazon Web Services",
		"Amazonia Freight",
		"Apple Inc",
	)
	defer cleanup()

	ctx := context.Background()

	// All three amazon variants match the prefix
	results, err := store.SearchExactOrPrefix(ctx, "amazon", 10)
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("Expected 3 results, got %d", len(results))
	}

	// Exact normalized match sorts first
	results, err = store.SearchExactOrPrefix(ctx, "amazon com", 10)
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("Expected 1 result, got %d", len(results))
	}
	if results[0].Name != "Amazon.com Inc" {
		t.Fatalf("Expected 'Amazon.com Inc', got '%s'", results[0].Name)
	}

	// Shorter names sort before longer ones
	results, err = store.SearchExactOrPrefix(ctx, "amazon", 2)
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("Expected 2 results, got %d", len(results))
	}
	if results[0].Name != "Amazon.com Inc" {
		t.Fatalf("Expected shortest normalized name first, got '%s'", results[0].Name)
	}
}

func TestSearchExactOrPrefixAltName(t *testing.T) {
	store, backend, err := NewMemoryStore()
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	defer func() { store.Close(); backend.Close() }()

	ctx := context.Background()

	_, err = store.PutEntities(ctx, &core.CatalogEntity{
		Name:    "International Business Machines",
		AltName: "IBM",
	})
	if err != nil {
		t.Fatalf("Failed to add entity: %v", err)
	}

	results, err := store.SearchExactOrPrefix(ctx, "ibm", 10)
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("Expected 1 result via alt name, got %d", len(results))
	}
	if results[0].Name != "International Business Machines" {
		t.Fatalf("Expected primary record back, got '%s'", results[0].Name)
	}
}

func TestSearchPrefix(t *testing.T) {
	store, cleanup := seedStore(t,
		"Quorvex Industries",
		"Quorvex Logistics Group",
		"Quantum Leap Labs",
	)
	defer cleanup()

	results, err := store.SearchPrefix(context.Background(), "quorvex", 10)
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("Expected 2 results, got %d", len(results))
	}
	if results[0].Name != "Quorvex Industries" {
		t.Fatalf("Expected shorter name first, got '%s'", results[0].Name)
	}
}

func TestSearchTokenContains(t *testing.T) {
	store, cleanup := seedStore(t,
		"First National Bank",
		"Riverside National Insurance",
		"Quorvex Industries",
	)
	defer cleanup()

	ctx := context.Background()

	results, err := store.SearchTokenContains(ctx, []string{"national"}, 10)
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("Expected 2 results, got %d", len(results))
	}

	// Tokens from multiple entities dedupe by entity
	results, err = store.SearchTokenContains(ctx, []string{"national", "bank"}, 10)
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("Expected 2 deduplicated results, got %d", len(results))
	}

	results, err = store.SearchTokenContains(ctx, []string{"missing"}, 10)
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(results) != 0 {
		t.Fatalf("Expected no results, got %d", len(results))
	}
}

func TestPutEntitiesReplacesIndexRows(t *testing.T) {
	store, cleanup := seedStore(t)
	defer cleanup()

	ctx := context.Background()

	added, err := store.PutEntities(ctx, &core.CatalogEntity{Name: "Old Name Corp"})
	if err != nil {
		t.Fatalf("Failed to add entity: %v", err)
	}

	updated := &core.CatalogEntity{Id: added[0].Id, Name: "New Name Corp"}
	if _, err := store.PutEntities(ctx, updated); err != nil {
		t.Fatalf("Failed to replace entity: %v", err)
	}

	// Old name no longer resolves
	results, err := store.SearchExactOrPrefix(ctx, "old name", 10)
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(results) != 0 {
		t.Fatalf("Expected stale index rows removed, got %d results", len(results))
	}

	results, err = store.SearchExactOrPrefix(ctx, "new name", 10)
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("Expected 1 result for new name, got %d", len(results))
	}

	count, err := store.Count(ctx)
	if err != nil {
		t.Fatalf("Failed to count: %v", err)
	}
	if count != 1 {
		t.Fatalf("Expected count 1 after replace, got %d", count)
	}
}

func TestSearchInvalidQuery(t *testing.T) {
	store, cleanup := seedStore(t, "Quorvex Industries")
	defer cleanup()

	ctx := context.Background()

	if _, err := store.SearchExactOrPrefix(ctx, "", 10); !errors.Is(err, catalog.ErrInvalidQuery) {
		t.Fatalf("Expected ErrInvalidQuery, got %v", err)
	}

	results, err := store.SearchExactOrPrefix(ctx, "quorvex", 0)
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(results) != 0 {
		t.Fatalf("Expected no results with limit 0, got %d", len(results))
	}
}
