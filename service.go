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

import (
	"context"
	"log/slog"
	"time"

	"github.com/poiesic/filit/ai"
	"github.com/poiesic/filit/cache"
	"github.com/poiesic/filit/classify"
	"github.com/poiesic/filit/coalesce"
	"github.com/poiesic/filit/compare"
	"github.com/poiesic/filit/core"
	"github.com/poiesic/filit/filings"
	"github.com/poiesic/filit/retrieval"
)

// Cache defaults. Answers are cached longer than most questioning
// sessions last; the entry bound keeps a busy instance from growing
// without limit.
const (
	DefaultAnswerCacheTTL     = 15 * time.Minute
	DefaultAnswerCacheEntries = 500
	DefaultRetrievalCacheTTL  = 10 * time.Minute
)

// Service is the request-orchestration layer: it answers questions
// about SEC filings by classifying, retrieving, and generating, with
// answer and retrieval caching, request coalescing, and bounded
// fan-out for comparisons.
type Service struct {
	answerCache    *cache.Cache[*core.ChatResult]
	retrievalCache *cache.Cache[[]core.Passage]
	group          *coalesce.Group[*core.ChatResult]
	retriever      *retrieval.Retriever
	generator      ai.Generator
	scheduler      *compare.Scheduler
	fetcher        filings.Fetcher
	flags          core.RetrievalFlags
	logger         *slog.Logger
}

// ServiceOption configures a Service.
type ServiceOption func(*serviceOptions)

type serviceOptions struct {
	answerTTL     time.Duration
	answerEntries int
	retrievalTTL  time.Duration
	concurrency   int
	flags         core.RetrievalFlags
	fetcher       filings.Fetcher
	logger        *slog.Logger
}

// WithAnswerCacheTTL sets how long finished answers are served from
// cache. Default is DefaultAnswerCacheTTL.
func WithAnswerCacheTTL(ttl time.Duration) ServiceOption {
	return func(o *serviceOptions) {
		o.answerTTL = ttl
	}
}

// WithAnswerCacheEntries bounds the answer cache. Default is
// DefaultAnswerCacheEntries; zero keeps it unbounded.
func WithAnswerCacheEntries(n int) ServiceOption {
	return func(o *serviceOptions) {
		o.answerEntries = n
	}
}

// WithRetrievalCacheTTL sets how long retrieval results are served
// from cache. Default is DefaultRetrievalCacheTTL.
func WithRetrievalCacheTTL(ttl time.Duration) ServiceOption {
	return func(o *serviceOptions) {
		o.retrievalTTL = ttl
	}
}

// WithCompareConcurrency bounds how many tickers a comparison answers
// at once. Default is compare.DefaultConcurrency.
func WithCompareConcurrency(n int) ServiceOption {
	return func(o *serviceOptions) {
		o.concurrency = n
	}
}

// WithDefaultFlags sets the retrieval flags used when a request
// carries no override.
func WithDefaultFlags(flags core.RetrievalFlags) ServiceOption {
	return func(o *serviceOptions) {
		o.flags = flags
	}
}

// WithFetcher wires a filing source, enabling WarmFilings.
func WithFetcher(fetcher filings.Fetcher) ServiceOption {
	return func(o *serviceOptions) {
		o.fetcher = fetcher
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) ServiceOption {
	return func(o *serviceOptions) {
		o.logger = logger
	}
}

// NewService creates the orchestration service on top of a search
// client and an answer generator.
func NewService(client retrieval.SearchClient, generator ai.Generator, opts ...ServiceOption) (*Service, error) {
	if client == nil {
		return nil, ErrSearchClientRequired
	}
	if generator == nil {
		return nil, ErrGeneratorRequired
	}

	options := &serviceOptions{
		answerTTL:     DefaultAnswerCacheTTL,
		answerEntries: DefaultAnswerCacheEntries,
		retrievalTTL:  DefaultRetrievalCacheTTL,
		concurrency:   compare.DefaultConcurrency,
		flags:         core.DefaultRetrievalFlags(),
		logger:        slog.Default(),
	}
	for _, opt := range opts {
		opt(options)
	}

	retrievalCache := cache.New[[]core.Passage](options.retrievalTTL)
	retriever, err := retrieval.NewRetriever(client, retrievalCache,
		retrieval.WithLogger(options.logger))
	if err != nil {
		return nil, err
	}

	scheduler, err := compare.NewScheduler(
		compare.WithConcurrency(options.concurrency),
		compare.WithLogger(options.logger))
	if err != nil {
		return nil, err
	}

	return &Service{
		answerCache: cache.New[*core.ChatResult](options.answerTTL,
			cache.WithMaxEntries[*core.ChatResult](options.answerEntries)),
		retrievalCache: retrievalCache,
		group:          coalesce.NewGroup[*core.ChatResult](),
		retriever:      retriever,
		generator:      generator,
		scheduler:      scheduler,
		fetcher:        options.fetcher,
		flags:          options.flags,
		logger:         options.logger,
	}, nil
}

// Close releases the comparison worker pool.
func (s *Service) Close() {
	s.scheduler.Close()
}

// answerKey derives the answer-cache fingerprint. The provider
// participates so answers from different models never collide.
func answerKey(ticker, question, provider string) string {
	return string(core.NewFingerprint(ticker, question, provider))
}

// flightKey derives the coalescing fingerprint. Search mode and source
// filter participate on top of the answer key: requests that retrieve
// differently must not attach to one another's execution. The mode is
// parsed first so "" and "vector" still coalesce.
func flightKey(req *core.ChatRequest) string {
	mode := string(retrieval.ParseMode(req.SearchMode))
	return string(core.NewFingerprint(req.Ticker, req.Question, req.Provider, mode, req.Sources))
}

// Chat answers one question about one company. Identical concurrent
// requests share a single pipeline execution; finished answers are
// served from cache until they expire.
func (s *Service) Chat(ctx context.Context, req *core.ChatRequest) (*core.ChatResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	flags := s.flags
	if req.Flags != nil {
		flags = *req.Flags
	}

	key := answerKey(req.Ticker, req.Question, req.Provider)
	if cached, ok := s.answerCache.Get(key); ok {
		s.logger.Info("answer cache hit", "ticker", req.Ticker)
		out := *cached
		return &out, nil
	}

	// Greetings and acknowledgments skip the pipeline entirely.
	if classify.IsSimple(req.Question) {
		s.logger.Debug("simple query detected", "question", req.Question)
		return &core.ChatResult{
			Answer:       greetingAnswer,
			TaskType:     core.TaskSimple,
			FlagsSummary: "simple_query=true",
		}, nil
	}

	result, coalesced, err := s.group.Do(ctx, flightKey(req), func(ctx context.Context) (*core.ChatResult, error) {
		return s.runPipeline(ctx, req, flags, key)
	})
	if err != nil {
		return nil, err
	}
	if coalesced {
		s.logger.Info("request coalesced", "ticker", req.Ticker)
	}

	// Callers share the leader's result; each gets its own copy so the
	// coalesced flag stays per-caller.
	out := *result
	out.Coalesced = coalesced
	return &out, nil
}

// runPipeline executes classify, retrieve, and generate for one
// question and caches the finished answer.
func (s *Service) runPipeline(ctx context.Context, req *core.ChatRequest, flags core.RetrievalFlags, key string) (*core.ChatResult, error) {
	task := classify.Classify(req.Question)
	summary := summarizeFlags(flags)

	passages, cacheHit, err := s.retriever.RetrieveWithFallback(ctx, retrieval.Query{
		Question: req.Question,
		Ticker:   req.Ticker,
		Sources:  req.Sources,
		Mode:     retrieval.ParseMode(req.SearchMode),
		Task:     task,
		Flags:    flags,
	})
	if err != nil {
		return nil, err
	}

	if len(passages) == 0 {
		result := &core.ChatResult{
			Answer:       notFoundAnswer(req.Ticker),
			TaskType:     task,
			FlagsSummary: summary,
		}
		s.answerCache.Set(key, result)
		return result, nil
	}

	prompt := ai.BuildUserPrompt(req.Question, req.Ticker, passages)
	answer, err := s.generator.Generate(ctx, ai.SystemPrompt, prompt)
	if err != nil {
		if ai.IsCredentialError(err) {
			s.logger.Error("credential failure from provider", "provider", req.Provider, "err", err)
			// Not cached: the key may be fixed before the TTL runs out.
			return &core.ChatResult{
				Answer:       credentialAnswer(req.Provider),
				TaskType:     task,
				FlagsSummary: "error=true",
			}, nil
		}
		return nil, err
	}

	result := &core.ChatResult{
		Answer:       answer,
		Citations:    buildCitations(req.Ticker, passages),
		TaskType:     task,
		FlagsSummary: summary,
		CacheHit:     cacheHit,
	}
	s.answerCache.Set(key, result)
	s.logger.Info("answer generated", "ticker", req.Ticker, "task", task, "citations", len(result.Citations))
	return result, nil
}

// Compare answers the same question for several companies in parallel
// and merges the per-company answers. Companies already answered in
// the cache are served from it without re-running the pipeline.
func (s *Service) Compare(ctx context.Context, req *core.CompareRequest) (*core.Comparison, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	run := func(ctx context.Context, ticker, question string) (core.CompareResult, error) {
		if cached, ok := s.answerCache.Get(answerKey(ticker, question, req.Provider)); ok {
			s.logger.Info("answer cache hit", "ticker", ticker)
			return core.CompareResult{
				Ticker:       ticker,
				Answer:       cached.Answer,
				FlagsSummary: "cached=true",
				CacheHit:     true,
			}, nil
		}

		res, err := s.Chat(ctx, &core.ChatRequest{
			Ticker:     ticker,
			Question:   question,
			Provider:   req.Provider,
			SearchMode: req.SearchMode,
			Sources:    req.Sources,
			Flags:      req.Flags,
		})
		if err != nil {
			return core.CompareResult{}, err
		}
		return core.CompareResult{
			Ticker:       ticker,
			Answer:       res.Answer,
			FlagsSummary: res.FlagsSummary,
			CacheHit:     res.CacheHit,
		}, nil
	}

	return s.scheduler.Compare(ctx, req.Tickers, req.Question, run)
}

// Classify exposes the deterministic question classifier.
func (s *Service) Classify(question string) core.TaskType {
	return classify.Classify(question)
}

// Retrieve runs retrieval only, without answer generation. Useful for
// debugging what the engine returns for a question.
func (s *Service) Retrieve(ctx context.Context, req *core.ChatRequest) ([]core.Passage, bool, error) {
	if err := req.Validate(); err != nil {
		return nil, false, err
	}

	flags := s.flags
	if req.Flags != nil {
		flags = *req.Flags
	}

	return s.retriever.RetrieveWithFallback(ctx, retrieval.Query{
		Question: req.Question,
		Ticker:   req.Ticker,
		Sources:  req.Sources,
		Mode:     retrieval.ParseMode(req.SearchMode),
		Task:     classify.Classify(req.Question),
		Flags:    flags,
	})
}

// WarmFilings pre-ingests recent filings for popular tickers via the
// configured fetcher. Returns the number of filings ingested.
func (s *Service) WarmFilings(ctx context.Context, opts ...filings.WarmerOption) (int, error) {
	if s.fetcher == nil {
		return 0, ErrFetcherNotConfigured
	}

	opts = append([]filings.WarmerOption{filings.WithLogger(s.logger)}, opts...)
	warmer, err := filings.NewWarmer(s.fetcher, opts...)
	if err != nil {
		return 0, err
	}
	return warmer.Warm(ctx)
}

// SweepCaches removes up to limit expired entries from each cache.
// Intended to run from a periodic background goroutine.
func (s *Service) SweepCaches(limit int) int {
	return s.answerCache.Sweep(limit) + s.retrievalCache.Sweep(limit)
}
