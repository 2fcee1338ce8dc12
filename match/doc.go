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


// Package match orchestrates entity resolution against the catalog.
//
// The Matcher type implements a multi-stage match algorithm:
//
//  1. The Retriever narrows the catalog through cascading strategies:
//     exact-or-prefix lookup, then prefix search over typo variants of the
//     query, then token containment. Each stage runs only while the
//     candidate set is still short of the requested limit.
//  2. Each surviving candidate is fused against the query with the full
//     kernel set, after a cheap length-ratio prefilter. Scoring stops early
//     once a candidate is confident enough that further work cannot change
//     the outcome.
//  3. Candidates are ranked by confidence; only those above the display
//     threshold are returned, and the top candidate is promoted to
//     BestMatch only above the acceptance threshold.
//
// PairMatcher answers the narrower question of whether two specific names
// refer to the same entity, escalating only the uncertain middle band to
// the semantic oracle. BatchMatcher fans FindBestMatch out over a worker
// pool. ResultCache memoizes outcomes per normalized query with a TTL.
package match
