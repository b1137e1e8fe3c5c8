package filings

import (
	"context"
	"log/slog"
	"time"
)

// Default warmup parameters. The ticker list covers the companies
// almost every first-time user asks about.
var defaultWarmTickers = []string{"AAPL", "MSFT", "GOOGL", "AMZN", "META", "NVDA", "TSLA"}

const (
	defaultWarmFormCount   = 2
	defaultWarmMaxAttempts = 3
	defaultWarmBaseDelay   = 500 * time.Millisecond
)

var defaultWarmFormTypes = []string{"10-K", "10-Q"}

// Warmer pre-fetches filings for popular tickers so first questions
// answer from a warm index instead of waiting on EDGAR.
type Warmer struct {
	fetcher     Fetcher
	tickers     []string
	formTypes   []string
	count       int
	maxAttempts int
	baseDelay   time.Duration
	logger      *slog.Logger
}

// WarmerOption configures a Warmer.
type WarmerOption func(*Warmer) error

// WithTickers overrides the default warm-up ticker list.
func WithTickers(tickers []string) WarmerOption {
	return func(w *Warmer) error {
		if len(tickers) > 0 {
			w.tickers = tickers
		}
		return nil
	}
}

// WithFormTypes overrides the default form types.
func WithFormTypes(formTypes []string) WarmerOption {
	return func(w *Warmer) error {
		if len(formTypes) > 0 {
			w.formTypes = formTypes
		}
		return nil
	}
}

// WithRetry sets the retry policy for each fetch.
func WithRetry(maxAttempts int, baseDelay time.Duration) WarmerOption {
	return func(w *Warmer) error {
		if maxAttempts <= 0 {
			return ErrInvalidMaxAttempts
		}
		w.maxAttempts = maxAttempts
		w.baseDelay = baseDelay
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) WarmerOption {
	return func(w *Warmer) error {
		if logger == nil {
			logger = slog.Default()
		}
		w.logger = logger
		return nil
	}
}

// NewWarmer creates a filing warmer backed by the given fetcher.
func NewWarmer(fetcher Fetcher, opts ...WarmerOption) (*Warmer, error) {
	if fetcher == nil {
		return nil, ErrFetcherRequired
	}

	w := &Warmer{
		fetcher:     fetcher,
		tickers:     defaultWarmTickers,
		formTypes:   defaultWarmFormTypes,
		count:       defaultWarmFormCount,
		maxAttempts: defaultWarmMaxAttempts,
		baseDelay:   defaultWarmBaseDelay,
		logger:      slog.Default(),
	}
	for _, opt := range opts {
		if err := opt(w); err != nil {
			return nil, err
		}
	}
	return w, nil
}

// Warm lists and ingests recent filings for every configured ticker.
// A ticker failing is logged and skipped; cancellation stops the run.
// Returns the number of filings ingested.
func (w *Warmer) Warm(ctx context.Context) (int, error) {
	w.logger.Info("starting filing warmup", "tickers", len(w.tickers))

	ingested := 0
	for _, ticker := range w.tickers {
		if err := ctx.Err(); err != nil {
			return ingested, err
		}

		var filings []Filing
		err := RetryWithBackoff(ctx, func() error {
			var fetchErr error
			filings, fetchErr = w.fetcher.FetchRecent(ctx, ticker, w.formTypes, w.count)
			return fetchErr
		}, w.maxAttempts, w.baseDelay)
		if err != nil {
			w.logger.Error("failed to list filings", "ticker", ticker, "err", err)
			continue
		}

		for _, filing := range filings {
			if err := ctx.Err(); err != nil {
				return ingested, err
			}
			if err := w.fetcher.Ingest(ctx, filing); err != nil {
				w.logger.Error("failed to ingest filing", "filing", filing.ID(), "err", err)
				continue
			}
			ingested++
		}
	}

	w.logger.Info("filing warmup complete", "ingested", ingested)
	return ingested, nil
}
