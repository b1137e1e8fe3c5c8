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


// Package coalesce guarantees at most one in-flight execution of an
// expensive handler per request fingerprint. Concurrent identical
// requests attach to the same execution and observe the same terminal
// result, including the same error.
//
// The state machine per key is absent -> pending -> absent; no
// completed state is retained. Result reuse across time is the TTL
// caches' job, not this package's.
package coalesce
