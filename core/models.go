package core

// TaskType categorizes a question so downstream stages can pick a
// processing path. Classification happens once per question and the
// result is never mutated afterwards.
type TaskType string

const (
	// TaskSimple marks greetings and acknowledgments. The pipeline is
	// skipped entirely and a canned answer is returned.
	TaskSimple TaskType = "simple"
	// TaskRiskAnalysis marks questions about risk factors.
	TaskRiskAnalysis TaskType = "risk_analysis"
	// TaskFinancialMetrics marks questions about financial data.
	TaskFinancialMetrics TaskType = "financial_metrics"
	// TaskTrendAnalysis marks questions about change over time.
	TaskTrendAnalysis TaskType = "trend_analysis"
	// TaskSummary marks questions asking for an overview.
	TaskSummary TaskType = "summary"
	// TaskGeneral is the fallback for everything else.
	TaskGeneral TaskType = "general"
)

// Passage is a chunk of filing text returned by the search engine.
// Score is filled in by the reranker; it stays zero when reranking is
// disabled.
type Passage struct {
	ID       string
	Text     string
	Metadata map[string]string
	Score    float64
}

// Section returns the filing section this passage came from.
// Returns "" when the search engine supplied no section metadata.
func (p *Passage) Section() string {
	if p.Metadata == nil {
		return ""
	}
	return p.Metadata["section"]
}

// Citation points a reader back at the filing a passage came from.
type Citation struct {
	Ticker     string
	FormType   string
	Year       int
	ChunkIndex int
	Source     string // "sec" or "user"
}

// RetrievalFlags toggle the optional retrieval stages. The defaults
// favor speed: only the retrieval cache is on.
type RetrievalFlags struct {
	Rerank         bool
	QueryRewrite   bool
	RetrievalCache bool
	SectionBoost   bool
}

// DefaultRetrievalFlags returns the flag set the service uses when a
// request carries no override.
func DefaultRetrievalFlags() RetrievalFlags {
	return RetrievalFlags{RetrievalCache: true}
}

// ChatRequest asks one question about one company.
type ChatRequest struct {
	Ticker   string
	Question string
	// Provider names the generation backend ("openai", "anthropic", ...).
	// It participates in the answer-cache key so answers from different
	// models never collide.
	Provider string
	// SearchMode selects "vector" or "hybrid" retrieval. Empty means vector.
	SearchMode string
	// Sources filters by origin: "sec", "user", or "both". Empty means both.
	Sources string
	// Flags overrides the service defaults when non-nil.
	Flags *RetrievalFlags
}

// ChatResult is the answer to a single ChatRequest.
type ChatResult struct {
	Answer       string
	Citations    []Citation
	TaskType     TaskType
	FlagsSummary string
	// CacheHit reports whether the retrieval cache served the passages.
	CacheHit bool
	// Coalesced reports whether this caller attached to another caller's
	// in-flight execution instead of running the pipeline itself.
	Coalesced bool
}

// CompareRequest asks the same question across several companies.
type CompareRequest struct {
	Tickers    []string
	Question   string
	Provider   string
	SearchMode string
	Sources    string
	Flags      *RetrievalFlags
}

// CompareResult is one company's slot in a comparison run. A failed
// company still gets a slot: the answer carries the error text so the
// other companies' results are unaffected.
type CompareResult struct {
	Ticker       string
	Answer       string
	FlagsSummary string
	CacheHit     bool
}

// Comparison aggregates per-company results in the caller's ticker
// order, regardless of the order executions finished in.
type Comparison struct {
	CombinedAnswer string
	Results        []CompareResult
}
