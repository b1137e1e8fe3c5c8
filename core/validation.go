package core

import "strings"

// NormalizeTickers canonicalizes a caller-supplied ticker list: each
// entry is trimmed and uppercased, blanks are dropped, and duplicates
// are removed while preserving first-seen order.
func NormalizeTickers(tickers []string) []string {
	seen := make(map[string]bool, len(tickers))
	out := make([]string, 0, len(tickers))
	for _, t := range tickers {
		upper := strings.ToUpper(strings.TrimSpace(t))
		if upper == "" || seen[upper] {
			continue
		}
		seen[upper] = true
		out = append(out, upper)
	}
	return out
}

// Validate checks that the request carries a ticker and a question.
// Rejection happens here, before any caching or coalescing.
func (r *ChatRequest) Validate() error {
	if strings.TrimSpace(r.Ticker) == "" {
		return ErrEmptyTicker
	}
	if strings.TrimSpace(r.Question) == "" {
		return ErrEmptyQuestion
	}
	return nil
}

// Validate checks that the request carries a question and at least two
// distinct tickers after normalization.
func (r *CompareRequest) Validate() error {
	if strings.TrimSpace(r.Question) == "" {
		return ErrEmptyQuestion
	}
	if len(NormalizeTickers(r.Tickers)) < 2 {
		return ErrNotEnoughTickers
	}
	return nil
}
