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

package weaviate

import "errors"

var (
	// ErrConnectionRequired is returned when no Weaviate connection is
	// provided.
	ErrConnectionRequired = errors.New("weaviate connection is required")

	// ErrClassNameRequired is returned when an empty class name is
	// configured.
	ErrClassNameRequired = errors.New("class name must not be empty")

	// ErrInvalidAlpha is returned when the hybrid alpha is outside
	// [0, 1].
	ErrInvalidAlpha = errors.New("hybrid alpha must be between 0 and 1")

	// ErrQueryFailed is returned when the GraphQL layer reports an
	// error in an otherwise successful response.
	ErrQueryFailed = errors.New("weaviate query failed")
)
