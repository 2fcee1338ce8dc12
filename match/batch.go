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
	"sync"

	"github.com/panjf2000/ants/v2"
	"github.com/veritell/matchbook/core"
)

// defaultBatchWorkers bounds concurrent match operations in a batch.
const defaultBatchWorkers = 10

// BatchResult pairs one input query with its outcome or error.
type BatchResult struct {
	Query   string
	Outcome *core.MatchOutcome
	Err     error
}

// BatchMatcher runs many match operations concurrently over a worker pool.
type BatchMatcher struct {
	matcher *Matcher
	pool    *ants.Pool
	logger  *slog.Logger
}

// BatchOption configures a BatchMatcher.
type BatchOption func(*BatchMatcher) error

// WithWorkers sets the worker pool size for concurrent matching.
// Default is 10, minimum 1.
func WithWorkers(size int) BatchOption {
	return func(b *BatchMatcher) error {
		if size < 1 {
			size = 1
		}

		if b.pool != nil {
			b.pool.Release()
		}

		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}
		b.pool = pool
		return nil
	}
}

// WithBatchLogger sets a custom logger.
// Default is slog.Default().
func WithBatchLogger(logger *slog.Logger) BatchOption {
	return func(b *BatchMatcher) error {
		if logger == nil {
			logger = slog.Default()
		}
		b.logger = logger
		return nil
	}
}

// NewBatchMatcher creates a batch matcher over an existing Matcher.
func NewBatchMatcher(matcher *Matcher, opts ...BatchOption) (*BatchMatcher, error) {
	if matcher == nil {
		return nil, ErrMatcherRequired
	}

	pool, err := ants.NewPool(defaultBatchWorkers)
	if err != nil {
		return nil, err
	}

	b := &BatchMatcher{
		matcher: matcher,
		pool:    pool,
		logger:  slog.Default(),
	}

	for _, opt := range opts {
		if optErr := opt(b); optErr != nil {
			b.Release()
			return nil, optErr
		}
	}

	return b, nil
}

// FindBestMatches resolves every query concurrently and returns results in
// input order. Per-query failures are recorded in the corresponding
// BatchResult, not returned from this method; only pool submission failures
// surface as an error.
func (b *BatchMatcher) FindBestMatches(ctx context.Context, queries []string, limit int) ([]*BatchResult, error) {
	results := make([]*BatchResult, len(queries))

	var wg sync.WaitGroup
	for i, query := range queries {
		results[i] = &BatchResult{Query: query}

		// Cancellation stops new submissions; in-flight matches complete.
		if ctxErr := ctx.Err(); ctxErr != nil {
			results[i].Err = ctxErr
			continue
		}

		wg.Add(1)
		result := results[i]
		q := query
		// Detached context so a cancel mid-batch does not corrupt results
		// already being computed.
		matchCtx := context.WithoutCancel(ctx)
		err := b.pool.Submit(func() {
			defer wg.Done()
			result.Outcome, result.Err = b.matcher.FindBestMatch(matchCtx, q, limit)
			if result.Err != nil {
				b.logger.Warn("batch match failed", "query", q, "err", result.Err)
			}
		})
		if err != nil {
			wg.Done()
			result.Err = err
			b.logger.Error("failed to submit batch match", "query", q, "err", err)
		}
	}
	wg.Wait()

	return results, nil
}

// Release releases resources including the worker pool.
// The batch matcher should not be used after calling Release.
func (b *BatchMatcher) Release() {
	if b.pool != nil {
		b.pool.Release()
	}
}
