// Copyright 2025 Poiesic Systems
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


// Package retrieval orchestrates passage retrieval for a question:
//
//   - Cache check, bypassing everything on a hit
//   - Deterministic query expansion into a small set of variants
//   - Fan-out to the search engine, one call per variant
//   - Merge and dedup by passage identity, first-seen-wins
//   - Token-overlap reranking with section-aware boosts
//   - Automatic vector-to-hybrid fallback on empty results
//
// Failures from the search engine degrade gracefully: a failing variant
// contributes zero passages, and a total failure yields an empty result
// rather than an error.
package retrieval
