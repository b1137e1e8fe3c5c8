package compare

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poiesic/filit/core"
)

func newScheduler(t *testing.T, opts ...Option) *Scheduler {
	t.Helper()
	s, err := NewScheduler(opts...)
	require.NoError(t, err)
	t.Cleanup(s.Close)
	return s
}

func echoRun(ctx context.Context, ticker, question string) (core.CompareResult, error) {
	return core.CompareResult{
		Ticker: ticker,
		Answer: "answer for " + ticker,
	}, nil
}

func TestNewScheduler(t *testing.T) {
	t.Run("invalid concurrency", func(t *testing.T) {
		_, err := NewScheduler(WithConcurrency(0))
		assert.Equal(t, ErrInvalidConcurrency, err)
	})
}

func TestCompare(t *testing.T) {
	t.Run("combines answers in ticker order", func(t *testing.T) {
		s := newScheduler(t)

		comparison, err := s.Compare(context.Background(), []string{"AAPL", "MSFT", "GOOG"}, "revenue?", echoRun)
		require.NoError(t, err)

		require.Len(t, comparison.Results, 3)
		assert.Equal(t, "AAPL", comparison.Results[0].Ticker)
		assert.Equal(t, "MSFT", comparison.Results[1].Ticker)
		assert.Equal(t, "GOOG", comparison.Results[2].Ticker)
		assert.Equal(t,
			"**AAPL**: answer for AAPL\n\n**MSFT**: answer for MSFT\n\n**GOOG**: answer for GOOG",
			comparison.CombinedAnswer)
	})

	t.Run("normalizes and deduplicates tickers", func(t *testing.T) {
		s := newScheduler(t)

		comparison, err := s.Compare(context.Background(), []string{"aapl", "AAPL", " aapl ", "MSFT"}, "q", echoRun)
		require.NoError(t, err)

		require.Len(t, comparison.Results, 2)
		assert.Equal(t, "AAPL", comparison.Results[0].Ticker)
		assert.Equal(t, "MSFT", comparison.Results[1].Ticker)
	})

	t.Run("fewer than two distinct tickers", func(t *testing.T) {
		s := newScheduler(t)

		_, err := s.Compare(context.Background(), []string{"aapl", "AAPL"}, "q", echoRun)
		assert.Equal(t, core.ErrNotEnoughTickers, err)
	})

	t.Run("one failure does not abort the rest", func(t *testing.T) {
		s := newScheduler(t)

		run := func(ctx context.Context, ticker, question string) (core.CompareResult, error) {
			if ticker == "MSFT" {
				return core.CompareResult{}, errors.New("engine down")
			}
			return echoRun(ctx, ticker, question)
		}

		comparison, err := s.Compare(context.Background(), []string{"AAPL", "MSFT", "GOOG"}, "q", run)
		require.NoError(t, err)

		require.Len(t, comparison.Results, 3)
		assert.Equal(t, "answer for AAPL", comparison.Results[0].Answer)
		assert.Equal(t, "Error processing MSFT: engine down", comparison.Results[1].Answer)
		assert.Equal(t, "error=true", comparison.Results[1].FlagsSummary)
		assert.Equal(t, "answer for GOOG", comparison.Results[2].Answer)
	})

	t.Run("respects the concurrency bound", func(t *testing.T) {
		const limit = 2
		s := newScheduler(t, WithConcurrency(limit))

		var inFlight, peak atomic.Int32
		run := func(ctx context.Context, ticker, question string) (core.CompareResult, error) {
			n := inFlight.Add(1)
			defer inFlight.Add(-1)
			for {
				p := peak.Load()
				if n <= p || peak.CompareAndSwap(p, n) {
					break
				}
			}
			time.Sleep(20 * time.Millisecond)
			return echoRun(ctx, ticker, question)
		}

		tickers := make([]string, 8)
		for i := range tickers {
			tickers[i] = fmt.Sprintf("TK%d", i)
		}

		_, err := s.Compare(context.Background(), tickers, "q", run)
		require.NoError(t, err)
		assert.LessOrEqual(t, peak.Load(), int32(limit))
	})

	t.Run("order holds under scrambled completion", func(t *testing.T) {
		s := newScheduler(t, WithConcurrency(4))

		var mu sync.Mutex
		delay := map[string]time.Duration{
			"AAPL": 30 * time.Millisecond,
			"MSFT": 10 * time.Millisecond,
			"GOOG": 20 * time.Millisecond,
			"AMZN": 0,
		}
		run := func(ctx context.Context, ticker, question string) (core.CompareResult, error) {
			mu.Lock()
			d := delay[ticker]
			mu.Unlock()
			time.Sleep(d)
			return echoRun(ctx, ticker, question)
		}

		comparison, err := s.Compare(context.Background(), []string{"AAPL", "MSFT", "GOOG", "AMZN"}, "q", run)
		require.NoError(t, err)

		got := make([]string, len(comparison.Results))
		for i, r := range comparison.Results {
			got[i] = r.Ticker
		}
		assert.Equal(t, []string{"AAPL", "MSFT", "GOOG", "AMZN"}, got)
	})
}
