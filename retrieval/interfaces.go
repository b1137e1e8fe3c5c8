package retrieval

import (
	"context"

	"github.com/poiesic/filit/core"
)

// Filter narrows a search to one company and optionally one source.
// An empty Source means both SEC and user-uploaded documents.
type Filter struct {
	Ticker string
	Source string
}

// SearchClient is the boundary to the external vector search engine.
// Implementations own their timeouts and must be safe for concurrent
// use. Either method may fail; the orchestrator treats a failing call
// as contributing zero passages rather than aborting retrieval.
type SearchClient interface {
	// Search performs pure vector-similarity search.
	Search(ctx context.Context, query string, topK int, filter Filter) ([]core.Passage, error)

	// HybridSearch combines vector similarity with keyword matching for
	// better recall on sparse queries.
	HybridSearch(ctx context.Context, query string, topK int, filter Filter) ([]core.Passage, error)
}
