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


package mock

import (
	"context"
	"sync"

	"github.com/poiesic/filit/core"
	"github.com/poiesic/filit/retrieval"
)

// SearchClient is a test double for retrieval.SearchClient.
// It allows custom behavior injection via function fields and records
// call counts for assertions.
type SearchClient struct {
	// SearchFunc is called by Search if set. If nil, Search returns
	// Passages unchanged.
	SearchFunc func(ctx context.Context, query string, topK int, filter retrieval.Filter) ([]core.Passage, error)

	// HybridSearchFunc is called by HybridSearch if set. If nil,
	// HybridSearch returns Passages unchanged.
	HybridSearchFunc func(ctx context.Context, query string, topK int, filter retrieval.Filter) ([]core.Passage, error)

	// Passages is the default result set served when no function field
	// is installed.
	Passages []core.Passage

	mu          sync.Mutex
	searchCalls int
	hybridCalls int
}

// NewSearchClient creates a mock search client serving the given
// passages by default.
func NewSearchClient(passages ...core.Passage) *SearchClient {
	return &SearchClient{Passages: passages}
}

// Search implements retrieval.SearchClient.
func (m *SearchClient) Search(ctx context.Context, query string, topK int, filter retrieval.Filter) ([]core.Passage, error) {
	m.mu.Lock()
	m.searchCalls++
	m.mu.Unlock()

	if m.SearchFunc != nil {
		return m.SearchFunc(ctx, query, topK, filter)
	}
	return m.Passages, nil
}

// HybridSearch implements retrieval.SearchClient.
func (m *SearchClient) HybridSearch(ctx context.Context, query string, topK int, filter retrieval.Filter) ([]core.Passage, error) {
	m.mu.Lock()
	m.hybridCalls++
	m.mu.Unlock()

	if m.HybridSearchFunc != nil {
		return m.HybridSearchFunc(ctx, query, topK, filter)
	}
	return m.Passages, nil
}

// SearchCalls returns how many times Search was invoked.
func (m *SearchClient) SearchCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.searchCalls
}

// HybridCalls returns how many times HybridSearch was invoked.
func (m *SearchClient) HybridCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.hybridCalls
}
