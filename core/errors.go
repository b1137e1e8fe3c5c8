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


package core

import "errors"

// Request validation errors
var (
	// ErrEmptyQuestion indicates the question field is empty.
	ErrEmptyQuestion = errors.New("question cannot be empty")

	// ErrEmptyTicker indicates the ticker field is empty.
	ErrEmptyTicker = errors.New("ticker cannot be empty")

	// ErrNotEnoughTickers indicates a comparison was requested with fewer
	// than two distinct tickers.
	ErrNotEnoughTickers = errors.New("at least two distinct tickers are required")
)
