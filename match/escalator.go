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

	"github.com/veritell/matchbook/core"
	"github.com/veritell/matchbook/oracle"
	"github.com/veritell/matchbook/score"
)

const (
	// Lexical confidence at or above this accepts the pair without
	// escalation; below escalateFloor it is rejected without escalation.
	// The band in between goes to the oracle.
	escalateCeiling = 0.90
	escalateFloor   = 0.40

	// surnamePenaltyFloor identifies pairs whose only ambiguity is a shared
	// common surname. Those are rejected deterministically; the oracle adds
	// nothing to a bare surname.
	surnamePenaltyFloor = 0.30
)

// PairMatcher decides whether two free-text names refer to the same entity.
//
// Confident lexical scores decide directly. Scores in the uncertain middle
// band escalate to the semantic oracle when one is configured; without an
// oracle, or when the oracle fails, the pair is rejected rather than
// guessed. An oracle error never produces a match.
type PairMatcher struct {
	oracle oracle.Oracle
	logger *slog.Logger
}

// PairOption configures a PairMatcher.
type PairOption func(*PairMatcher) error

// WithOracle attaches a semantic oracle for the uncertain middle band.
func WithOracle(o oracle.Oracle) PairOption {
	return func(p *PairMatcher) error {
		p.oracle = o
		return nil
	}
}

// WithPairLogger sets a custom logger.
// Default is slog.Default().
func WithPairLogger(logger *slog.Logger) PairOption {
	return func(p *PairMatcher) error {
		if logger == nil {
			logger = slog.Default()
		}
		p.logger = logger
		return nil
	}
}

// NewPairMatcher creates a pair matcher. The oracle is optional.
func NewPairMatcher(opts ...PairOption) (*PairMatcher, error) {
	p := &PairMatcher{
		logger: slog.Default(),
	}
	for _, opt := range opts {
		if err := opt(p); err != nil {
			return nil, err
		}
	}
	return p, nil
}

// MatchPair judges whether nameA and nameB denote the same entity.
func (p *PairMatcher) MatchPair(ctx context.Context, nameA, nameB string) (*core.PairVerdict, error) {
	fusion := score.Fuse(nameA, nameB)

	verdict := &core.PairVerdict{
		Confidence: fusion.Confidence,
		MatchType:  fusion.MatchType,
		Reasoning:  fusion.Reasoning,
		Scores:     fusion.Scores,
	}

	switch {
	case fusion.Confidence >= escalateCeiling:
		verdict.IsMatch = true
		return verdict, nil

	case fusion.Confidence < escalateFloor:
		verdict.IsMatch = false
		return verdict, nil
	}

	// Middle band. A surname-only overlap is decided here, not escalated.
	if fusion.Penalty >= surnamePenaltyFloor {
		verdict.IsMatch = false
		verdict.Reasoning = "shared common surname is not sufficient evidence; " + fusion.Reasoning
		return verdict, nil
	}

	if p.oracle == nil {
		p.logger.Debug("uncertain pair, no oracle configured",
			"nameA", nameA, "nameB", nameB, "confidence", fusion.Confidence)
		verdict.IsMatch = false
		verdict.Reasoning = "uncertain without semantic judgment; " + fusion.Reasoning
		return verdict, nil
	}

	judgment, err := p.oracle.Judge(ctx, nameA, nameB, fusion.Scores)
	if err != nil {
		// Fail closed. An unreachable oracle must not manufacture matches.
		p.logger.Warn("oracle judgment failed",
			"nameA", nameA, "nameB", nameB, "err", err)
		verdict.IsMatch = false
		verdict.Confidence = 0
		verdict.Reasoning = "semantic judgment unavailable"
		return verdict, nil
	}

	verdict.IsMatch = judgment.IsMatch
	verdict.Confidence = judgment.Confidence
	verdict.MatchType = core.MatchTypeSemantic
	verdict.Reasoning = judgment.Reasoning
	return verdict, nil
}
