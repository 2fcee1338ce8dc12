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
	"strings"

	"github.com/agnivade/levenshtein"
	"github.com/antzucaro/matchr"

	"github.com/veritell/matchbook/core"
	"github.com/veritell/matchbook/normalize"
)

// The six similarity kernels. Each is a pure function over two normalized
// names returning a score in [0,1], symmetric in its arguments, with no I/O.
// Callers are expected to pass normalize.Name output; the kernels do not
// re-normalize.

// ngramSize is the n-gram length used by the NGram kernel.
const ngramSize = 3

// Exact returns 1.0 when the two normalized names are identical, else 0.0.
func Exact(a, b string) float64 {
	if a == b {
		return 1.0
	}
	return 0.0
}

// EditDistance returns 1 - levenshtein(a,b)/max(len(a),len(b)), clamped to
// [0,1]. Two empty strings are defined as identical (1.0).
func EditDistance(a, b string) float64 {
	if a == b {
		return 1.0
	}

	maxLen := len([]rune(a))
	if lb := len([]rune(b)); lb > maxLen {
		maxLen = lb
	}
	if maxLen == 0 {
		return 1.0
	}

	distance := levenshtein.ComputeDistance(a, b)
	similarity := 1.0 - float64(distance)/float64(maxLen)
	if similarity < 0 {
		return 0.0
	}
	return similarity
}

// PhoneticPrefix returns the Jaro-Winkler similarity of the two names: a
// bounded-window, transposition-aware similarity with a shared-prefix bonus
// (up to 4 characters at 0.1 weight each).
func PhoneticPrefix(a, b string) float64 {
	if a == b {
		return 1.0
	}
	if a == "" || b == "" {
		return 0.0
	}
	return matchr.JaroWinkler(a, b, false)
}

// TokenSet compares the names as sets of whitespace-separated tokens.
// Strict containment (one token set a subset of the other) is rewarded with
// 0.9 + 0.1*sizeRatio so that "amazon" scores highly against "amazon web
// services"; otherwise the Jaccard similarity of the two sets is returned.
func TokenSet(a, b string) float64 {
	setA := tokenSet(a)
	setB := tokenSet(b)

	if len(setA) == 0 && len(setB) == 0 {
		return 1.0
	}
	if len(setA) == 0 || len(setB) == 0 {
		return 0.0
	}

	intersection := 0
	for token := range setA {
		if _, ok := setB[token]; ok {
			intersection++
		}
	}

	smaller, larger := len(setA), len(setB)
	if smaller > larger {
		smaller, larger = larger, smaller
	}

	if intersection == smaller {
		// One set contains the other.
		return 0.9 + 0.1*float64(smaller)/float64(larger)
	}

	union := len(setA) + len(setB) - intersection
	return float64(intersection) / float64(union)
}

// PhoneticCode reduces both names to consonant-skeleton phonetic codes
// (Double Metaphone primary codes, token by token) and returns 1.0 when the
// codes agree, else the edit-distance similarity between the codes.
func PhoneticCode(a, b string) float64 {
	codeA := phoneticCode(a)
	codeB := phoneticCode(b)

	if codeA == "" && codeB == "" {
		// No phonetic content (e.g. purely numeric names); fall back to
		// literal comparison.
		return Exact(a, b)
	}
	if codeA == codeB {
		return 1.0
	}
	return EditDistance(codeA, codeB)
}

// NGram returns the Jaccard similarity of the two names' boundary-padded
// trigram sets. Empty input falls back to the Exact result.
func NGram(a, b string) float64 {
	if a == "" || b == "" {
		return Exact(a, b)
	}

	gramsA := ngramSet(a, ngramSize)
	gramsB := ngramSet(b, ngramSize)

	intersection := 0
	for gram := range gramsA {
		if _, ok := gramsB[gram]; ok {
			intersection++
		}
	}

	union := len(gramsA) + len(gramsB) - intersection
	if union == 0 {
		return 1.0
	}
	return float64(intersection) / float64(union)
}

// Kernels computes the full score set for one pair of normalized names.
func Kernels(a, b string) core.KernelScoreSet {
	return core.KernelScoreSet{
		Exact:          Exact(a, b),
		EditDistance:   EditDistance(a, b),
		PhoneticPrefix: PhoneticPrefix(a, b),
		TokenSet:       TokenSet(a, b),
		PhoneticCode:   PhoneticCode(a, b),
		NGram:          NGram(a, b),
	}
}

func tokenSet(s string) map[string]struct{} {
	tokens := normalize.Tokens(s)
	set := make(map[string]struct{}, len(tokens))
	for _, token := range tokens {
		set[token] = struct{}{}
	}
	return set
}

// phoneticCode joins the primary Double Metaphone code of each token.
func phoneticCode(s string) string {
	tokens := normalize.Tokens(s)
	codes := make([]string, 0, len(tokens))
	for _, token := range tokens {
		primary, _ := matchr.DoubleMetaphone(token)
		if primary != "" {
			codes = append(codes, primary)
		}
	}
	return strings.Join(codes, " ")
}

// ngramSet extracts the set of all length-n substrings of s after padding
// both ends with n-1 boundary markers.
func ngramSet(s string, n int) map[string]struct{} {
	pad := strings.Repeat("#", n-1)
	padded := pad + s + pad

	runes := []rune(padded)
	grams := make(map[string]struct{}, len(runes))
	for i := 0; i+n <= len(runes); i++ {
		grams[string(runes[i:i+n])] = struct{}{}
	}
	return grams
}
