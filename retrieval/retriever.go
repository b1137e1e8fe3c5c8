package retrieval

import (
	"context"
	"log/slog"

	"github.com/poiesic/filit/cache"
	"github.com/poiesic/filit/core"
)

// DefaultTopK is the passage count retrieved for most questions.
// Trend analysis fetches a little more context.
const (
	DefaultTopK       = 6
	TrendAnalysisTopK = 8
)

// Mode selects the search strategy.
type Mode string

const (
	// ModeVector is pure vector-similarity search.
	ModeVector Mode = "vector"
	// ModeHybrid combines vector similarity with keyword matching.
	ModeHybrid Mode = "hybrid"
)

// ParseMode maps a request string onto a Mode, defaulting to vector.
func ParseMode(s string) Mode {
	if s == string(ModeHybrid) {
		return ModeHybrid
	}
	return ModeVector
}

// Query describes one retrieval: what to search for, where, and which
// optional stages to run.
type Query struct {
	Question string
	Ticker   string
	// Sources filters by document origin: "sec", "user", or "both".
	// Empty is treated as both.
	Sources string
	Mode    Mode
	TopK    int
	Task    core.TaskType
	Flags   core.RetrievalFlags
}

// topK applies the task-aware default.
func (q *Query) topK() int {
	if q.TopK > 0 {
		return q.TopK
	}
	if q.Task == core.TaskTrendAnalysis {
		return TrendAnalysisTopK
	}
	return DefaultTopK
}

func (q *Query) filter() Filter {
	f := Filter{Ticker: q.Ticker}
	if q.Sources != "" && q.Sources != "both" {
		f.Source = q.Sources
	}
	return f
}

// cacheKey derives the retrieval-cache fingerprint. Sources and mode
// participate so a hybrid result never answers a vector lookup.
func (q *Query) cacheKey() core.Fingerprint {
	return core.NewFingerprint(q.Ticker, q.Question, q.Sources, string(q.Mode))
}

// Retriever turns one question into a ranked, deduplicated passage set:
// cache check, query expansion, fan-out to the search engine, merge,
// rerank, truncate, cache write.
type Retriever struct {
	client SearchClient
	cache  *cache.Cache[[]core.Passage]
	logger *slog.Logger
}

// Option configures a Retriever.
type Option func(*Retriever) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(r *Retriever) error {
		if logger == nil {
			logger = slog.Default()
		}
		r.logger = logger
		return nil
	}
}

// NewRetriever creates a retriever backed by the given search client
// and retrieval-result cache.
func NewRetriever(client SearchClient, resultCache *cache.Cache[[]core.Passage], opts ...Option) (*Retriever, error) {
	if client == nil {
		return nil, ErrSearchClientRequired
	}
	if resultCache == nil {
		return nil, ErrCacheRequired
	}

	r := &Retriever{
		client: client,
		cache:  resultCache,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		if err := opt(r); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Retrieve returns the ranked passages for q and whether the retrieval
// cache served them. Search-engine failures degrade to fewer (possibly
// zero) passages; an empty result is a legitimate outcome, not an
// error.
func (r *Retriever) Retrieve(ctx context.Context, q Query) ([]core.Passage, bool, error) {
	key := string(q.cacheKey())
	if q.Flags.RetrievalCache {
		if cached, ok := r.cache.Get(key); ok {
			r.logger.Debug("retrieval cache hit", "ticker", q.Ticker, "mode", q.Mode)
			return cached, true, nil
		}
	}

	queries := []string{q.Question}
	if q.Flags.QueryRewrite {
		queries = expandQuery(q.Question, q.Ticker)
	}

	topK := q.topK()
	filter := q.filter()

	var merged []core.Passage
	failures := 0
	for _, query := range queries {
		var (
			found []core.Passage
			err   error
		)
		if q.Mode == ModeHybrid {
			found, err = r.client.HybridSearch(ctx, query, topK, filter)
		} else {
			found, err = r.client.Search(ctx, query, topK, filter)
		}
		if err != nil {
			// A failing variant contributes nothing; the others proceed.
			failures++
			r.logger.Warn("search call failed", "ticker", q.Ticker, "mode", q.Mode, "err", err)
			continue
		}
		merged = append(merged, found...)
	}
	if failures == len(queries) && failures > 0 {
		r.logger.Warn("all search variants failed, returning empty result", "ticker", q.Ticker)
	}

	deduped := dedupByID(merged)

	var final []core.Passage
	if q.Flags.Rerank {
		final = rerank(q.Question, deduped, q.Task, topK, q.Flags.SectionBoost)
	} else {
		final = truncate(deduped, topK)
	}

	if q.Flags.RetrievalCache {
		r.cache.Set(key, final)
	}
	r.logger.Info("retrieved passages", "ticker", q.Ticker, "count", len(final), "variants", len(queries))
	return final, false, nil
}

// RetrieveWithFallback runs Retrieve and, when vector mode finds
// nothing, retries exactly once in hybrid mode with the same
// parameters before giving up.
func (r *Retriever) RetrieveWithFallback(ctx context.Context, q Query) ([]core.Passage, bool, error) {
	passages, cacheHit, err := r.Retrieve(ctx, q)
	if err != nil {
		return nil, false, err
	}
	if len(passages) == 0 && q.Mode != ModeHybrid {
		r.logger.Info("no passages from vector search, falling back to hybrid", "ticker", q.Ticker)
		q.Mode = ModeHybrid
		return r.Retrieve(ctx, q)
	}
	return passages, cacheHit, nil
}

// dedupByID removes passages whose ID was already seen, keeping the
// first occurrence. Passages without an ID are treated as unique.
func dedupByID(passages []core.Passage) []core.Passage {
	seen := make(map[string]bool, len(passages))
	out := make([]core.Passage, 0, len(passages))
	for _, p := range passages {
		if p.ID != "" {
			if seen[p.ID] {
				continue
			}
			seen[p.ID] = true
		}
		out = append(out, p)
	}
	return out
}
