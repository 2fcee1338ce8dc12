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


package match

import (
	"context"
	"log/slog"

	"github.com/veritell/matchbook/catalog"
	"github.com/veritell/matchbook/core"
	"github.com/veritell/matchbook/normalize"
)

// Retrieval strategy names reported to monitors and logs.
const (
	StrategyExactOrPrefix = "exact_or_prefix"
	StrategyTypoVariants  = "typo_variants"
	StrategyTokens        = "tokens"
	StrategyNone          = "none"
)

const (
	// retrieverHardCap bounds how many candidates any strategy may hand to
	// the scoring stage, independent of the caller's limit.
	retrieverHardCap = 10

	// Variant generation only makes sense for queries long enough that a
	// truncated form still carries signal.
	variantMinQueryLen = 4
	variantHeadLen     = 5

	// Token search uses only tokens long enough to discriminate, and at
	// most this many of them.
	tokenMinLen    = 4
	tokenMaxSearch = 2
)

// Retriever narrows the catalog to a small candidate set for scoring.
//
// Strategies cascade: exact-or-prefix lookup first, then prefix search over
// typo variants of the query, then token containment. Each stage runs only
// while the candidate set is still under the requested limit, so a cheap
// precise lookup that fills it short-circuits the broad ones while a single
// weak hit does not suppress them. Store errors degrade to the next strategy
// rather than failing the match.
type Retriever struct {
	store  catalog.Store
	logger *slog.Logger
}

// RetrieverOption configures a Retriever.
type RetrieverOption func(*Retriever) error

// WithRetrieverLogger sets a custom logger.
// Default is slog.Default().
func WithRetrieverLogger(logger *slog.Logger) RetrieverOption {
	return func(r *Retriever) error {
		if logger == nil {
			logger = slog.Default()
		}
		r.logger = logger
		return nil
	}
}

// NewRetriever creates a new candidate retriever.
func NewRetriever(store catalog.Store, opts ...RetrieverOption) (*Retriever, error) {
	if store == nil {
		return nil, ErrStoreRequired
	}

	r := &Retriever{
		store:  store,
		logger: slog.Default(),
	}

	for _, opt := range opts {
		if err := opt(r); err != nil {
			return nil, err
		}
	}

	return r, nil
}

// Retrieve returns up to limit candidate entities for the query, along with
// the name of the strategy that produced the first of them. A query that
// normalizes to nothing, or a catalog with nothing resembling the query,
// yields an empty candidate set with strategy "none".
func (r *Retriever) Retrieve(ctx context.Context, query string, limit int) ([]*core.CatalogEntity, string, error) {
	normQuery := normalize.Name(query)
	if normQuery == "" {
		return nil, StrategyNone, nil
	}
	if limit <= 0 || limit > retrieverHardCap {
		limit = retrieverHardCap
	}

	var merged []*core.CatalogEntity
	seen := make(map[core.ID]struct{})
	strategy := StrategyNone

	collect := func(hits []*core.CatalogEntity, name string) {
		for _, hit := range hits {
			if len(merged) >= limit {
				return
			}
			if _, dup := seen[hit.Id]; dup {
				continue
			}
			seen[hit.Id] = struct{}{}
			merged = append(merged, hit)
			if strategy == StrategyNone {
				strategy = name
			}
		}
	}

	// Stage 1: exact or prefix on the normalized query.
	hits, err := r.store.SearchExactOrPrefix(ctx, normQuery, limit)
	if err != nil {
		r.logger.Warn("exact/prefix retrieval failed", "query", normQuery, "err", err)
	}
	collect(hits, StrategyExactOrPrefix)

	// Stage 2: prefix search over typo variants.
	if len(merged) < limit {
		for _, variant := range typoVariants(normQuery) {
			if len(merged) >= limit {
				break
			}
			hits, err := r.store.SearchPrefix(ctx, variant, limit)
			if err != nil {
				r.logger.Warn("variant retrieval failed", "variant", variant, "err", err)
				continue
			}
			collect(hits, StrategyTypoVariants)
		}
	}

	// Stage 3: token containment.
	if len(merged) < limit {
		collect(r.retrieveByTokens(ctx, normQuery, limit), StrategyTokens)
	}

	return merged, strategy, nil
}

// typoVariants derives truncated forms of the query that survive a trailing
// typo or a pluralized last word: the query minus its last character, minus
// its last two, and for single-word queries the first five characters.
func typoVariants(normQuery string) []string {
	runes := []rune(normQuery)
	if len(runes) < variantMinQueryLen {
		return nil
	}

	variants := []string{
		string(runes[:len(runes)-1]),
		string(runes[:len(runes)-2]),
	}
	if len(normalize.Tokens(normQuery)) == 1 && len(runes) >= variantHeadLen {
		variants = append(variants, string(runes[:variantHeadLen]))
	}

	seen := map[string]struct{}{normQuery: {}}
	kept := variants[:0]
	for _, v := range variants {
		if _, dup := seen[v]; dup || v == "" {
			continue
		}
		seen[v] = struct{}{}
		kept = append(kept, v)
	}
	return kept
}

func (r *Retriever) retrieveByTokens(ctx context.Context, normQuery string, limit int) []*core.CatalogEntity {
	var tokens []string
	for _, token := range normalize.Tokens(normQuery) {
		if len(token) >= tokenMinLen {
			tokens = append(tokens, token)
		}
		if len(tokens) == tokenMaxSearch {
			break
		}
	}
	if len(tokens) == 0 {
		return nil
	}

	hits, err := r.store.SearchTokenContains(ctx, tokens, limit)
	if err != nil {
		r.logger.Warn("token retrieval failed", "tokens", tokens, "err", err)
		return nil
	}
	return hits
}
