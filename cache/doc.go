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


// Package cache provides an in-memory TTL cache used at two tiers of
// the pipeline: a short-TTL unbounded cache for retrieval results and
// a longer-TTL size-bounded cache for final answers.
//
// The two tiers are separate Cache instances, so key collisions between
// them are impossible by construction. Entries are idempotent
// recomputations, which is why the cache promises safety under
// concurrent access but not strict linearizability between Get and Set.
package cache
