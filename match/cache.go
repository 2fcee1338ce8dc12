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
	"time"

	"github.com/dgraph-io/ristretto/v2"
	"github.com/veritell/matchbook/core"
)

const (
	cacheNumCounters = 1e4
	cacheMaxCost     = 1 << 20
	cacheBufferItems = 64

	// DefaultCacheTTL bounds how long a match outcome may be served without
	// rescoring. Catalog writes should call Clear to drop stale outcomes
	// sooner.
	DefaultCacheTTL = 5 * time.Minute
)

// ResultCache memoizes match outcomes per query. Entries expire after the
// configured TTL; admission and eviction are delegated to ristretto.
type ResultCache struct {
	cache *ristretto.Cache[string, *core.MatchOutcome]
	ttl   time.Duration
}

// NewResultCache creates a result cache with the given TTL.
// A non-positive TTL falls back to DefaultCacheTTL.
func NewResultCache(ttl time.Duration) (*ResultCache, error) {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}

	cache, err := ristretto.NewCache(&ristretto.Config[string, *core.MatchOutcome]{
		NumCounters: cacheNumCounters,
		MaxCost:     cacheMaxCost,
		BufferItems: cacheBufferItems,
	})
	if err != nil {
		return nil, err
	}

	return &ResultCache{
		cache: cache,
		ttl:   ttl,
	}, nil
}

// Get returns the cached outcome for a key, if present and unexpired.
func (c *ResultCache) Get(key string) (*core.MatchOutcome, bool) {
	return c.cache.Get(key)
}

// Set stores an outcome under a key. Each outcome costs one cache unit
// regardless of candidate count; admission may still reject it.
func (c *ResultCache) Set(key string, outcome *core.MatchOutcome) {
	c.cache.SetWithTTL(key, outcome, 1, c.ttl)
}

// Clear drops all cached outcomes. Call after catalog writes.
func (c *ResultCache) Clear() {
	c.cache.Clear()
}

// Wait blocks until pending writes are applied. Intended for tests.
func (c *ResultCache) Wait() {
	c.cache.Wait()
}

// Close releases the cache's resources.
func (c *ResultCache) Close() {
	c.cache.Close()
}
