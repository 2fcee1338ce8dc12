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


// Package catalog defines storage abstractions for the reference catalog.
//
// The Store interface exposes the three search shapes the candidate
// retriever cascades through (exact-or-prefix, prefix variant, token
// containment) plus entity management. The badger subpackage provides the
// BadgerDB-backed implementation; everything above this package depends on
// the interface only, so the catalog engine can be swapped out.
package catalog
