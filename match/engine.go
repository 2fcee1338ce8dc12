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
	"fmt"
	"log/slog"
	"sort"

	"github.com/veritell/matchbook/catalog"
	"github.com/veritell/matchbook/core"
	"github.com/veritell/matchbook/normalize"
	"github.com/veritell/matchbook/score"
)

const (
	// defaultLimit is used when callers pass a non-positive limit.
	defaultLimit = 10

	// retrievalFactor over-fetches so near-miss candidates survive the
	// display cut.
	retrievalFactor = 3

	// scoreCandidateCap bounds how many retrieved candidates are fused.
	scoreCandidateCap = 10

	// lengthRatioMin prefilters candidates whose normalized length differs
	// too much from the query to plausibly be the same name.
	lengthRatioMin = 0.3

	// earlyExitThreshold stops scoring once a candidate is this confident.
	earlyExitThreshold = 0.95

	// displayThreshold is the minimum confidence for a candidate to appear
	// in the outcome at all.
	displayThreshold = 0.60

	// acceptThreshold is the minimum confidence for the top candidate to be
	// promoted to BestMatch.
	acceptThreshold = 0.75
)

// Matcher resolves a free-text name to its best catalog entity.
type Matcher struct {
	store     catalog.Store
	retriever *Retriever
	cache     *ResultCache
	logger    *slog.Logger
}

// MatcherOption configures a Matcher.
type MatcherOption func(*Matcher) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) MatcherOption {
	return func(m *Matcher) error {
		if logger == nil {
			logger = slog.Default()
		}
		m.logger = logger
		return nil
	}
}

// WithCache attaches a result cache. Without one every call rescores from
// scratch.
func WithCache(cache *ResultCache) MatcherOption {
	return func(m *Matcher) error {
		m.cache = cache
		return nil
	}
}

// NewMatcher creates a new matcher over the given catalog store.
func NewMatcher(store catalog.Store, opts ...MatcherOption) (*Matcher, error) {
	if store == nil {
		return nil, ErrStoreRequired
	}

	retriever, err := NewRetriever(store)
	if err != nil {
		return nil, err
	}

	m := &Matcher{
		store:     store,
		retriever: retriever,
		logger:    slog.Default(),
	}

	for _, opt := range opts {
		if err := opt(m); err != nil {
			return nil, err
		}
	}

	// Retriever logs through the matcher's logger.
	m.retriever.logger = m.logger

	return m, nil
}

// FindBestMatch resolves query against the catalog.
// Returns up to limit display-worthy candidates, ranked by confidence.
func (m *Matcher) FindBestMatch(ctx context.Context, query string, limit int) (*core.MatchOutcome, error) {
	return m.FindBestMatchWithMonitor(ctx, query, limit, nil)
}

// FindBestMatchWithMonitor resolves query against the catalog with
// monitoring. The monitor receives callbacks at each stage of the match.
func (m *Matcher) FindBestMatchWithMonitor(ctx context.Context, query string, limit int, monitor MatchMonitor) (*core.MatchOutcome, error) {
	// Use noop monitor if none provided
	if monitor == nil {
		monitor = &noopMonitor{}
	}
	if limit <= 0 {
		limit = defaultLimit
	}

	monitor.Start(query)

	// A query that normalizes to nothing cannot match anything; report the
	// empty outcome rather than an error.
	normQuery := normalize.Name(query)
	if normQuery == "" {
		outcome := &core.MatchOutcome{Matches: []*core.MatchCandidate{}}
		monitor.Finish(outcome)
		return outcome, nil
	}

	cacheKey := fmt.Sprintf("%s|%d", normQuery, limit)
	if m.cache != nil {
		if outcome, ok := m.cache.Get(cacheKey); ok {
			monitor.CacheHit(query, outcome)
			return outcome, nil
		}
	}

	// 1. Narrow the catalog to candidates.
	candidates, strategy, err := m.retriever.Retrieve(ctx, query, retrievalFactor*limit)
	if err != nil {
		return nil, err
	}
	monitor.AfterRetrieval(strategy, candidates)

	if len(candidates) > scoreCandidateCap {
		candidates = candidates[:scoreCandidateCap]
	}

	// 2. Fuse each candidate against the query.
	scored := make([]*core.MatchCandidate, 0, len(candidates))
	for _, entity := range candidates {
		if !plausibleLength(normQuery, entity) {
			monitor.CandidateSkipped(entity, "length ratio")
			continue
		}

		candidate := scoreEntity(query, entity)
		monitor.AfterScore(candidate)
		scored = append(scored, candidate)

		if candidate.Confidence >= earlyExitThreshold {
			monitor.EarlyExit(candidate)
			break
		}
	}

	// 3. Rank and cut.
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Confidence > scored[j].Confidence
	})

	matches := make([]*core.MatchCandidate, 0, limit)
	for _, candidate := range scored {
		if candidate.Confidence < displayThreshold {
			continue
		}
		matches = append(matches, candidate)
		if len(matches) == limit {
			break
		}
	}

	outcome := &core.MatchOutcome{
		Matches: matches,
	}
	if len(matches) > 0 && matches[0].Confidence >= acceptThreshold {
		outcome.BestMatch = matches[0].Entity
		outcome.Confidence = matches[0].Confidence
	}

	if m.cache != nil {
		m.cache.Set(cacheKey, outcome)
	}

	m.logger.Debug("match complete",
		"query", query,
		"strategy", strategy,
		"scored", len(scored),
		"matches", len(matches),
		"accepted", outcome.BestMatch != nil)
	monitor.Finish(outcome)

	return outcome, nil
}

// scoreEntity fuses the query against both names of an entity and keeps the
// stronger result.
func scoreEntity(query string, entity *core.CatalogEntity) *core.MatchCandidate {
	fusion := score.Fuse(query, entity.Name)
	if entity.AltName != "" {
		if alt := score.Fuse(query, entity.AltName); alt.Confidence > fusion.Confidence {
			fusion = alt
		}
	}

	return &core.MatchCandidate{
		Entity:     entity,
		Scores:     fusion.Scores,
		Confidence: fusion.Confidence,
		MatchType:  fusion.MatchType,
		Reasoning:  fusion.Reasoning,
	}
}

// plausibleLength reports whether any of the entity's normalized names is
// within the length-ratio window of the query. Containment-style matches
// keep the window generous.
func plausibleLength(normQuery string, entity *core.CatalogEntity) bool {
	if ok := lengthRatioOK(normQuery, normalize.Name(entity.Name)); ok {
		return true
	}
	if entity.AltName == "" {
		return false
	}
	return lengthRatioOK(normQuery, normalize.Name(entity.AltName))
}

func lengthRatioOK(a, b string) bool {
	la, lb := len(a), len(b)
	if la == 0 || lb == 0 {
		return false
	}
	if la > lb {
		la, lb = lb, la
	}
	return float64(la)/float64(lb) >= lengthRatioMin
}
