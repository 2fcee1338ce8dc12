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


package normalize

import (
	"strings"
	"unicode"
)

// Business-entity suffix tokens removed during normalization.
// Matched on whole tokens only, so "Coca Cola" keeps its tokens while
// "Acme Co" loses the trailing "co".
var suffixTokens = map[string]struct{}{
	"corp":         {},
	"corporation":  {},
	"inc":          {},
	"incorporated": {},
	"llc":          {},
	"llp":          {},
	"lp":           {},
	"ltd":          {},
	"limited":      {},
	"co":           {},
	"company":      {},
	"plc":          {},
	"pllc":         {},
}

// Name canonicalizes a raw business or person name for comparison.
//
// The transformation lowercases and trims the input, replaces every rune
// that is not a letter or digit with a space, drops business-entity suffix
// tokens, and collapses whitespace runs to single spaces. It is total (never
// fails, empty input yields ""), idempotent, and never produces an output
// longer than its input.
func Name(raw string) string {
	lower := strings.ToLower(strings.TrimSpace(raw))
	if lower == "" {
		return ""
	}

	var b strings.Builder
	b.Grow(len(lower))
	for _, r := range lower {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		} else {
			b.WriteByte(' ')
		}
	}

	fields := strings.Fields(b.String())
	kept := fields[:0]
	for _, f := range fields {
		if _, isSuffix := suffixTokens[f]; !isSuffix {
			kept = append(kept, f)
		}
	}

	return strings.Join(kept, " ")
}

// Tokens returns the whitespace-separated tokens of a normalized name.
func Tokens(normalized string) []string {
	return strings.Fields(normalized)
}
