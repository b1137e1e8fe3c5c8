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

package compare

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/panjf2000/ants/v2"

	"github.com/poiesic/filit/core"
)

// DefaultConcurrency bounds how many entities are answered at once.
// Model providers throttle past five or so concurrent calls.
const DefaultConcurrency = 5

// RunFunc answers one ticker's question. It is supplied by the caller
// so the scheduler stays independent of the answer pipeline.
type RunFunc func(ctx context.Context, ticker, question string) (core.CompareResult, error)

// Scheduler fans a comparison question out across tickers with bounded
// concurrency and assembles the per-ticker answers into one response.
type Scheduler struct {
	pool   *ants.Pool
	logger *slog.Logger
}

// Option configures a Scheduler.
type Option func(*Scheduler) error

// WithConcurrency sets the maximum number of tickers processed at
// once. Default is DefaultConcurrency.
func WithConcurrency(n int) Option {
	return func(s *Scheduler) error {
		if n < 1 {
			return ErrInvalidConcurrency
		}
		if s.pool != nil {
			s.pool.Release()
		}
		pool, err := ants.NewPool(n)
		if err != nil {
			return err
		}
		s.pool = pool
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Scheduler) error {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger
		return nil
	}
}

// NewScheduler creates a comparison scheduler.
func NewScheduler(opts ...Option) (*Scheduler, error) {
	pool, err := ants.NewPool(DefaultConcurrency)
	if err != nil {
		return nil, err
	}

	s := &Scheduler{
		pool:   pool,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		if err := opt(s); err != nil {
			pool.Release()
			return nil, err
		}
	}
	return s, nil
}

// Close releases the worker pool.
func (s *Scheduler) Close() {
	s.pool.Release()
}

// Compare runs the question against every ticker and combines the
// answers. Tickers are normalized and deduplicated first; fewer than
// two distinct tickers is an error. One ticker failing does not abort
// the rest: its slot carries an error message instead of an answer.
// Result order follows the normalized ticker order regardless of
// completion order.
func (s *Scheduler) Compare(ctx context.Context, tickers []string, question string, run RunFunc) (*core.Comparison, error) {
	unique := core.NormalizeTickers(tickers)
	if len(unique) < 2 {
		return nil, core.ErrNotEnoughTickers
	}

	results := make([]core.CompareResult, len(unique))
	var wg sync.WaitGroup

	for i, ticker := range unique {
		i, ticker := i, ticker
		wg.Add(1)
		err := s.pool.Submit(func() {
			defer wg.Done()
			res, err := run(ctx, ticker, question)
			if err != nil {
				s.logger.Error("comparison slot failed", "ticker", ticker, "err", err)
				results[i] = errorResult(ticker, err)
				return
			}
			results[i] = res
		})
		if err != nil {
			// Pool rejected the task (released or overloaded); the
			// slot still has to be filled.
			wg.Done()
			s.logger.Error("failed to submit comparison task", "ticker", ticker, "err", err)
			results[i] = errorResult(ticker, err)
		}
	}
	wg.Wait()

	s.logger.Info("comparison complete", "tickers", len(unique))
	return &core.Comparison{
		CombinedAnswer: combineAnswers(results),
		Results:        results,
	}, nil
}

func errorResult(ticker string, err error) core.CompareResult {
	return core.CompareResult{
		Ticker:       ticker,
		Answer:       fmt.Sprintf("Error processing %s: %v", ticker, err),
		FlagsSummary: "error=true",
	}
}

// combineAnswers renders the per-ticker answers as one markdown block.
func combineAnswers(results []core.CompareResult) string {
	parts := make([]string, len(results))
	for i, r := range results {
		parts[i] = fmt.Sprintf("**%s**: %s", r.Ticker, r.Answer)
	}
	return strings.Join(parts, "\n\n")
}
