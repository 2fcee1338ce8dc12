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


package score

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/veritell/matchbook/core"
	"github.com/veritell/matchbook/normalize"
)

// Kernel weights. The weighted sum is normalized by totalWeight so the base
// confidence stays in [0,1].
const (
	weightExact          = 1.0
	weightEditDistance   = 0.8
	weightPhoneticPrefix = 0.9
	weightTokenSet       = 0.85
	weightPhoneticCode   = 0.7
	weightNGram          = 0.75
	totalWeight          = weightExact + weightEditDistance + weightPhoneticPrefix +
		weightTokenSet + weightPhoneticCode + weightNGram
)

// Boost values computed from raw (non-normalized) strings.
const (
	exactBoost          = 0.30
	normalizedBoost     = 0.25
	prefixBoost         = 0.20
	boundaryBoostFloor  = 0.10
	boundaryBoostScale  = 0.05
	boundaryMinQueryLen = 4
	boostCap            = 0.40
)

// Ambiguity penalties for single-token comparisons, applied multiplicatively.
const (
	surnamePenalty     = 0.30
	typoPenalty        = 0.05
	singleTokenPenalty = 0.20
	typoSimilarityMin  = 0.8
)

// Fusion is the fused scoring result for one (query, candidate) pair.
type Fusion struct {
	Confidence float64
	MatchType  string
	Reasoning  string
	Scores     core.KernelScoreSet
	Penalty    float64
}

// Fuse scores a candidate name against a query name.
//
// All six kernels run on the normalized forms; their weighted sum gives a
// base confidence. Boosts derived from the raw strings (exact equality,
// prefix with separator, whole-word containment) are summed, capped at
// +0.40, and added. Single-token comparisons then take a multiplicative
// ambiguity penalty: common surnames are penalized hardest, near-identical
// single tokens (likely typos) barely at all.
//
// Fuse is pure computation: no I/O, no shared state, safe for concurrent use.
func Fuse(query, candidate string) Fusion {
	rawQuery := strings.TrimSpace(query)
	rawCandidate := strings.TrimSpace(candidate)
	normQuery := normalize.Name(query)
	normCandidate := normalize.Name(candidate)

	scores := Kernels(normQuery, normCandidate)
	base := (weightExact*scores.Exact +
		weightEditDistance*scores.EditDistance +
		weightPhoneticPrefix*scores.PhoneticPrefix +
		weightTokenSet*scores.TokenSet +
		weightPhoneticCode*scores.PhoneticCode +
		weightNGram*scores.NGram) / totalWeight

	reasons := []string{fmt.Sprintf("weighted kernels %.3f", base)}

	// Boosts from the raw strings.
	var equalityBoost, prefBoost, boundBoost float64
	rawEqual := rawQuery != "" && strings.EqualFold(rawQuery, rawCandidate)
	switch {
	case rawEqual:
		equalityBoost = exactBoost
		reasons = append(reasons, fmt.Sprintf("exact name boost +%.2f", exactBoost))
	case normQuery != "" && normQuery == normCandidate:
		equalityBoost = normalizedBoost
		reasons = append(reasons, fmt.Sprintf("normalized name boost +%.2f", normalizedBoost))
	}

	if hasPrefixWithSeparator(rawCandidate, rawQuery) {
		prefBoost = prefixBoost
		reasons = append(reasons, fmt.Sprintf("prefix boost +%.2f", prefixBoost))
	}

	if b := wordBoundaryBoost(rawCandidate, rawQuery); b > 0 {
		boundBoost = b
		reasons = append(reasons, fmt.Sprintf("word boundary boost +%.2f", b))
	}

	boosts := equalityBoost + prefBoost + boundBoost
	if boosts > boostCap {
		boosts = boostCap
		reasons = append(reasons, fmt.Sprintf("boosts capped at +%.2f", boostCap))
	}

	confidence := base + boosts
	if confidence > 1.0 {
		confidence = 1.0
	}

	// Ambiguity penalty. Exact raw equality is never ambiguous, so identical
	// inputs keep confidence 1.0 even for bare surnames.
	var penalty float64
	if !rawEqual {
		penalty = ambiguityPenalty(normQuery, normCandidate)
	}
	if penalty > 0 {
		confidence *= 1.0 - penalty
		reasons = append(reasons, fmt.Sprintf("ambiguity penalty -%.0f%%", penalty*100))
	}

	return Fusion{
		Confidence: confidence,
		MatchType:  dominantMatchType(equalityBoost, prefBoost, boundBoost),
		Reasoning:  strings.Join(reasons, "; "),
		Scores:     scores,
		Penalty:    penalty,
	}
}

// ambiguityPenalty returns the multiplicative penalty for single-token
// comparisons. A single-token surname on either side is penalized hardest;
// two dissimilar single tokens take the generic discount. A single token
// compared against a multi-token name is not inherently ambiguous (prefix
// and containment matches like "Amazon" vs "Amazon Web Services" are the
// normal case), so only the surname rule applies there.
func ambiguityPenalty(normQuery, normCandidate string) float64 {
	queryTokens := normalize.Tokens(normQuery)
	candTokens := normalize.Tokens(normCandidate)
	querySingle := len(queryTokens) == 1
	candSingle := len(candTokens) == 1

	if (querySingle && normalize.IsCommonSurname(queryTokens[0])) ||
		(candSingle && normalize.IsCommonSurname(candTokens[0])) {
		return surnamePenalty
	}

	if querySingle && candSingle {
		if EditDistance(normQuery, normCandidate) > typoSimilarityMin {
			// Near-identical single tokens are more likely a typo than a
			// genuinely ambiguous reference.
			return typoPenalty
		}
		return singleTokenPenalty
	}

	return 0
}

// hasPrefixWithSeparator reports whether candidate starts with query followed
// by a separator rune, e.g. "AMAZON" against "AMAZON BUSINESS" or
// "Amazon.com Inc". Comparison is case-insensitive.
func hasPrefixWithSeparator(candidate, query string) bool {
	if query == "" || len(candidate) <= len(query) {
		return false
	}
	if !strings.EqualFold(candidate[:len(query)], query) {
		return false
	}
	switch candidate[len(query)] {
	case ' ', '.', ',', '-':
		return true
	}
	return false
}

// wordBoundaryBoost returns a boost in [0.10, 0.15] when the query appears as
// a whole word inside the candidate, scaled by the length ratio. Queries
// shorter than four characters are too common to be meaningful.
func wordBoundaryBoost(candidate, query string) float64 {
	if len(query) < boundaryMinQueryLen || len(candidate) <= len(query) {
		return 0
	}

	lowerCandidate := strings.ToLower(candidate)
	lowerQuery := strings.ToLower(query)

	for start := 0; ; {
		idx := strings.Index(lowerCandidate[start:], lowerQuery)
		if idx < 0 {
			return 0
		}
		idx += start
		end := idx + len(lowerQuery)
		if boundaryBefore(lowerCandidate, idx) && boundaryAfter(lowerCandidate, end) {
			ratio := float64(len(query)) / float64(len(candidate))
			if ratio > 1 {
				ratio = 1
			}
			return boundaryBoostFloor + boundaryBoostScale*ratio
		}
		start = idx + 1
	}
}

func boundaryBefore(s string, idx int) bool {
	if idx == 0 {
		return true
	}
	return !isWordRune(rune(s[idx-1]))
}

func boundaryAfter(s string, idx int) bool {
	if idx >= len(s) {
		return true
	}
	return !isWordRune(rune(s[idx]))
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

// dominantMatchType tags the fusion with the strongest boost that fired.
func dominantMatchType(equality, prefix, boundary float64) string {
	switch {
	case equality > 0 && equality >= prefix && equality >= boundary:
		return core.MatchTypeExact
	case prefix > 0 && prefix >= boundary:
		return core.MatchTypePrefix
	case boundary > 0:
		return core.MatchTypeBoundary
	default:
		return core.MatchTypeCascading
	}
}
