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


package matchbook

import (
	"context"
	"log/slog"
	"time"

	"github.com/veritell/matchbook/catalog"
	badgerstore "github.com/veritell/matchbook/catalog/badger"
	"github.com/veritell/matchbook/core"
	"github.com/veritell/matchbook/match"
	"github.com/veritell/matchbook/oracle"
	"github.com/veritell/matchbook/oracle/openai"
)

// Resolver is the top-level entry point: an on-disk (or in-memory) catalog
// plus the matching machinery wired on top of it.
type Resolver struct {
	backend *badgerstore.Backend
	store   catalog.Store
	cache   *match.ResultCache
	matcher *match.Matcher
	pairs   *match.PairMatcher
	oracle  oracle.Oracle
	logger  *slog.Logger
}

// ResolverOption configures a Resolver.
type ResolverOption func(*resolverOptions)

type resolverOptions struct {
	inMemory     bool
	oracleConfig *oracle.Config
	cacheTTL     time.Duration
}

// WithInMemory keeps the catalog entirely in memory. Intended for tests and
// short-lived batch jobs.
func WithInMemory() ResolverOption {
	return func(o *resolverOptions) {
		o.inMemory = true
	}
}

// WithOracleConfig enables semantic escalation for uncertain pair matches.
// Without it, uncertain pairs are rejected deterministically.
func WithOracleConfig(cfg *oracle.Config) ResolverOption {
	return func(o *resolverOptions) {
		o.oracleConfig = cfg
	}
}

// WithCacheTTL overrides how long match outcomes are memoized.
func WithCacheTTL(ttl time.Duration) ResolverOption {
	return func(o *resolverOptions) {
		o.cacheTTL = ttl
	}
}

// NewResolver opens a catalog at filePath and wires the match engine over it.
func NewResolver(filePath string, opts ...ResolverOption) (*Resolver, error) {
	// Apply options
	options := &resolverOptions{}
	for _, opt := range opts {
		opt(options)
	}

	// Open backend
	backend, err := badgerstore.OpenBackend(filePath, options.inMemory)
	if err != nil {
		return nil, err
	}

	// Create entity store
	store, err := badgerstore.NewEntityStore(backend)
	if err != nil {
		backend.Close()
		return nil, err
	}

	// Create result cache
	cache, err := match.NewResultCache(options.cacheTTL)
	if err != nil {
		store.Close()
		backend.Close()
		return nil, err
	}

	// Create matcher
	matcher, err := match.NewMatcher(store, match.WithCache(cache))
	if err != nil {
		cache.Close()
		store.Close()
		backend.Close()
		return nil, err
	}

	// Create semantic oracle when configured
	var judge oracle.Oracle
	pairOpts := []match.PairOption{}
	if options.oracleConfig != nil {
		judge, err = openai.NewJudge(options.oracleConfig)
		if err != nil {
			cache.Close()
			store.Close()
			backend.Close()
			return nil, err
		}
		pairOpts = append(pairOpts, match.WithOracle(judge))
	}

	pairs, err := match.NewPairMatcher(pairOpts...)
	if err != nil {
		if judge != nil {
			judge.Close()
		}
		cache.Close()
		store.Close()
		backend.Close()
		return nil, err
	}

	return &Resolver{
		backend: backend,
		store:   store,
		cache:   cache,
		matcher: matcher,
		pairs:   pairs,
		oracle:  judge,
		logger:  slog.Default(),
	}, nil
}

// Close releases every resource the resolver owns.
func (r *Resolver) Close() error {
	if r.oracle != nil {
		if err := r.oracle.Close(); err != nil {
			r.logger.Error("error closing oracle", "err", err)
		}
	}

	r.cache.Close()

	if err := r.store.Close(); err != nil {
		r.logger.Error("error closing catalog store", "err", err)
		return err
	}
	if err := r.backend.Close(); err != nil {
		r.logger.Error("error closing backend storage", "err", err)
		return err
	}
	return nil
}

// Store exposes the underlying catalog store.
func (r *Resolver) Store() catalog.Store {
	return r.store
}

// AddEntities loads entities into the catalog and drops memoized outcomes
// that may now be stale.
func (r *Resolver) AddEntities(ctx context.Context, entities ...*core.CatalogEntity) ([]*core.CatalogEntity, error) {
	added, err := r.store.PutEntities(ctx, entities...)
	if err != nil {
		return nil, err
	}
	r.cache.Clear()
	return added, nil
}

// FindBestMatch resolves a free-text name against the catalog.
func (r *Resolver) FindBestMatch(ctx context.Context, query string, limit int) (*core.MatchOutcome, error) {
	return r.matcher.FindBestMatch(ctx, query, limit)
}

// MatchPair judges whether two names refer to the same entity.
func (r *Resolver) MatchPair(ctx context.Context, nameA, nameB string) (*core.PairVerdict, error) {
	return r.pairs.MatchPair(ctx, nameA, nameB)
}

// NewBatchMatcher creates a batch matcher sharing this resolver's engine.
func (r *Resolver) NewBatchMatcher(opts ...match.BatchOption) (*match.BatchMatcher, error) {
	return match.NewBatchMatcher(r.matcher, opts...)
}
