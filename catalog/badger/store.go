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


package badger

import (
	"context"
	"sort"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/veritell/matchbook/catalog"
	"github.com/veritell/matchbook/core"
	"github.com/veritell/matchbook/normalize"
)

// EntityStore implements catalog.Store for BadgerDB.
//
// Each entity is stored once as a primary record and indexed three ways:
// by normalized primary name, by normalized alternate name, and by every
// token of both. The name indexes carry the normalized name in the key so
// prefix queries never need to load entity records that lose the filter.
type EntityStore struct {
	backend *Backend
}

var _ catalog.Store = (*EntityStore)(nil)

// NewEntityStore creates a new EntityStore on top of an open backend.
func NewEntityStore(backend *Backend) (*EntityStore, error) {
	if backend == nil {
		return nil, catalog.ErrStoreClosed
	}
	return &EntityStore{
		backend: backend,
	}, nil
}

// Close releases resources. The backend is owned by the caller and stays open.
func (s *EntityStore) Close() error {
	return nil
}

// indexHit is one row read from a name index.
type indexHit struct {
	name  string
	id    core.ID
	exact bool
}

// PutEntities adds or replaces catalog entities.
func (s *EntityStore) PutEntities(ctx context.Context, entities ...*core.CatalogEntity) ([]*core.CatalogEntity, error) {
	err := s.backend.WithTx(func(tx *badger.Txn) error {
		for _, entity := range entities {
			if err := core.ValidateCatalogEntity(entity); err != nil {
				return err
			}

			// Use content-based ID if not set
			if entity.Id == 0 {
				entity.Id = core.IDFromContent(entity.Tuple())
			}

			// Set timestamps
			now := time.Now().UTC()
			if entity.InsertedAt.IsZero() {
				entity.InsertedAt = now
			}
			entity.UpdatedAt = now

			key := makeEntityRecordKey(entity.Id)

			// Read old record so stale index rows can be cleaned up
			old, err := readEntity(tx, key)
			if err != nil {
				return err
			}
			if old != nil {
				entity.InsertedAt = old.InsertedAt
				if err := deleteIndexRows(tx, old); err != nil {
					return err
				}
			}

			// Store primary record
			if err := tx.Set(key, catalog.MarshalEntity(entity)); err != nil {
				return err
			}

			if err := writeIndexRows(tx, entity); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)

	return entities, err
}

// GetEntity retrieves a single entity by ID.
func (s *EntityStore) GetEntity(ctx context.Context, id core.ID) (*core.CatalogEntity, error) {
	var result *core.CatalogEntity
	err := s.backend.WithTx(func(tx *badger.Txn) error {
		var err error
		result, err = readEntity(tx, makeEntityRecordKey(id))
		if err != nil {
			return err
		}
		if result == nil {
			return catalog.ErrNotFound
		}
		return nil
	}, false)
	return result, err
}

// Count returns the number of entities in the catalog.
func (s *EntityStore) Count(ctx context.Context) (int, error) {
	count := 0
	err := s.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(entityRecordPrefix + ":")
		opts.PrefetchValues = false
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			count++
		}
		return nil
	}, false)
	return count, err
}

// SearchExactOrPrefix finds entities whose normalized primary or alternate
// name equals the query or starts with it. Exact matches sort first.
func (s *EntityStore) SearchExactOrPrefix(ctx context.Context, query string, limit int) ([]*core.CatalogEntity, error) {
	return s.searchByName(ctx, query, limit, true)
}

// SearchPrefix finds entities whose normalized primary or alternate name
// starts with the given variant, shorter names first.
func (s *EntityStore) SearchPrefix(ctx context.Context, variant string, limit int) ([]*core.CatalogEntity, error) {
	return s.searchByName(ctx, variant, limit, false)
}

func (s *EntityStore) searchByName(ctx context.Context, query string, limit int, exactFirst bool) ([]*core.CatalogEntity, error) {
	if query == "" {
		return nil, catalog.ErrInvalidQuery
	}
	if limit <= 0 {
		return nil, nil
	}

	var results []*core.CatalogEntity
	err := s.backend.WithTx(func(tx *badger.Txn) error {
		hits := scanNameIndex(tx, entityNamePrefix, query)
		hits = append(hits, scanNameIndex(tx, entityAltPrefix, query)...)

		// Keep the best row per entity: an exact hit on either name wins
		// over a prefix hit, shorter indexed name breaks ties.
		best := make(map[core.ID]indexHit, len(hits))
		for _, hit := range hits {
			prev, seen := best[hit.id]
			if !seen || betterHit(hit, prev, exactFirst) {
				best[hit.id] = hit
			}
		}

		ordered := make([]indexHit, 0, len(best))
		for _, hit := range best {
			ordered = append(ordered, hit)
		}
		sort.Slice(ordered, func(i, j int) bool {
			return betterHit(ordered[i], ordered[j], exactFirst)
		})

		if len(ordered) > limit {
			ordered = ordered[:limit]
		}

		var err error
		results, err = readEntities(tx, ordered)
		return err
	}, false)
	return results, err
}

// SearchTokenContains finds entities whose normalized name contains any of
// the given tokens as a word prefix.
func (s *EntityStore) SearchTokenContains(ctx context.Context, tokens []string, limit int) ([]*core.CatalogEntity, error) {
	if limit <= 0 || len(tokens) == 0 {
		return nil, nil
	}

	var results []*core.CatalogEntity
	err := s.backend.WithTx(func(tx *badger.Txn) error {
		seen := make(map[core.ID]indexHit)
		for _, token := range tokens {
			if token == "" {
				continue
			}
			for _, hit := range scanNameIndex(tx, entityTokenPrefix, token) {
				if _, ok := seen[hit.id]; !ok {
					seen[hit.id] = hit
				}
			}
		}

		ordered := make([]indexHit, 0, len(seen))
		for _, hit := range seen {
			ordered = append(ordered, hit)
		}
		sort.Slice(ordered, func(i, j int) bool {
			return betterHit(ordered[i], ordered[j], false)
		})

		if len(ordered) > limit {
			ordered = ordered[:limit]
		}

		var err error
		results, err = readEntities(tx, ordered)
		return err
	}, false)
	return results, err
}

// betterHit orders index hits: exact before prefix when exactFirst is set,
// then shorter indexed names, then lexicographic for a stable order.
func betterHit(a, b indexHit, exactFirst bool) bool {
	if exactFirst && a.exact != b.exact {
		return a.exact
	}
	if len(a.name) != len(b.name) {
		return len(a.name) < len(b.name)
	}
	if a.name != b.name {
		return a.name < b.name
	}
	return a.id < b.id
}

// scanNameIndex collects all rows under prefix whose indexed name starts
// with query.
func scanNameIndex(tx *badger.Txn, idxPrefix, query string) []indexHit {
	opts := badger.DefaultIteratorOptions
	opts.Prefix = makePartialNameIndexKey(idxPrefix, query)
	opts.PrefetchValues = false
	iter := tx.NewIterator(opts)
	defer iter.Close()

	var hits []indexHit
	for iter.Rewind(); iter.Valid(); iter.Next() {
		name, id, ok := parseNameIndexKey(idxPrefix, iter.Item().Key())
		if !ok {
			continue
		}
		hits = append(hits, indexHit{
			name:  name,
			id:    id,
			exact: name == query,
		})
	}
	return hits
}

func readEntity(tx *badger.Txn, key []byte) (*core.CatalogEntity, error) {
	item, err := tx.Get(key)
	if err != nil {
		if err == badger.ErrKeyNotFound {
			return nil, nil
		}
		return nil, err
	}

	var entity *core.CatalogEntity
	err = item.Value(func(val []byte) error {
		var err error
		entity, err = catalog.UnmarshalEntity(val)
		return err
	})
	if err != nil {
		return nil, err
	}
	return entity, nil
}

func readEntities(tx *badger.Txn, hits []indexHit) ([]*core.CatalogEntity, error) {
	var results []*core.CatalogEntity
	for _, hit := range hits {
		entity, err := readEntity(tx, makeEntityRecordKey(hit.id))
		if err != nil {
			return nil, err
		}
		// Index rows can briefly outlive their record under concurrent
		// replaces; skip rather than fail.
		if entity != nil {
			results = append(results, entity)
		}
	}
	return results, nil
}

// indexRows yields every index key an entity occupies.
func indexRows(entity *core.CatalogEntity) [][]byte {
	var keys [][]byte
	name := normalize.Name(entity.Name)
	if name != "" {
		keys = append(keys, makeNameIndexKey(entityNamePrefix, name, entity.Id))
	}
	alt := normalize.Name(entity.AltName)
	if alt != "" && alt != name {
		keys = append(keys, makeNameIndexKey(entityAltPrefix, alt, entity.Id))
	}

	tokens := make(map[string]struct{})
	for _, token := range normalize.Tokens(name) {
		tokens[token] = struct{}{}
	}
	for _, token := range normalize.Tokens(alt) {
		tokens[token] = struct{}{}
	}
	for token := range tokens {
		keys = append(keys, makeNameIndexKey(entityTokenPrefix, token, entity.Id))
	}
	return keys
}

func writeIndexRows(tx *badger.Txn, entity *core.CatalogEntity) error {
	idValue := catalog.MarshalID(entity.Id)
	for _, key := range indexRows(entity) {
		if err := tx.Set(key, idValue); err != nil {
			return err
		}
	}
	return nil
}

func deleteIndexRows(tx *badger.Txn, entity *core.CatalogEntity) error {
	for _, key := range indexRows(entity) {
		if err := tx.Delete(key); err != nil {
			return err
		}
	}
	return nil
}
