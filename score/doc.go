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


// Package score computes fused match confidence between two names.
//
// Six independent similarity kernels (exact, edit distance, Jaro-Winkler,
// token set, phonetic code, trigram) each produce a score in [0,1]. Fuse
// combines them with fixed weights, applies boosts derived from the raw
// strings, and discounts ambiguous single-token comparisons.
//
// Everything in this package is pure CPU-bound computation with no I/O, so
// scoring is deterministic, reproducible, and unit-testable in isolation.
// I/O-bound concerns (candidate retrieval, oracle escalation) live in the
// match package.
package score
