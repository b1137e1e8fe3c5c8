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

package filit

import "errors"

var (
	// ErrSearchClientRequired is returned when no search client is
	// provided.
	ErrSearchClientRequired = errors.New("search client is required")

	// ErrGeneratorRequired is returned when no answer generator is
	// provided.
	ErrGeneratorRequired = errors.New("answer generator is required")

	// ErrFetcherNotConfigured is returned by WarmFilings when the
	// service was built without a filing fetcher.
	ErrFetcherNotConfigured = errors.New("filing fetcher not configured")
)
