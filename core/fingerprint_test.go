package core

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewFingerprint_Normalization(t *testing.T) {
	t.Run("case and whitespace do not change the key", func(t *testing.T) {
		a := NewFingerprint("aapl", "What is revenue?")
		b := NewFingerprint(" AAPL ", "  what is revenue?  ")
		assert.Equal(t, a, b)
	})

	t.Run("different tickers produce different keys", func(t *testing.T) {
		a := NewFingerprint("AAPL", "What is revenue?")
		b := NewFingerprint("MSFT", "What is revenue?")
		assert.NotEqual(t, a, b)
	})

	t.Run("different questions produce different keys", func(t *testing.T) {
		a := NewFingerprint("AAPL", "What is revenue?")
		b := NewFingerprint("AAPL", "What are the risks?")
		assert.NotEqual(t, a, b)
	})

	t.Run("extra parameters participate in the key", func(t *testing.T) {
		a := NewFingerprint("AAPL", "What is revenue?", "vector")
		b := NewFingerprint("AAPL", "What is revenue?", "hybrid")
		assert.NotEqual(t, a, b)
	})
}

func TestNewFingerprint_Truncation(t *testing.T) {
	long := strings.Repeat("a", 150)

	// Only the first 100 characters of the question matter.
	a := NewFingerprint("AAPL", long+" tail one")
	b := NewFingerprint("AAPL", long+" tail two")
	assert.Equal(t, a, b)

	// Differences inside the first 100 characters still matter.
	c := NewFingerprint("AAPL", "b"+long[1:])
	assert.NotEqual(t, a, c)
}

func TestNewFingerprint_TruncatesOnRuneBoundary(t *testing.T) {
	// 100 multibyte characters, then divergent tails. Truncation counts
	// characters, not bytes, so the tails must not leak into the key.
	long := strings.Repeat("é", 100)
	a := NewFingerprint("AAPL", long+"第一")
	b := NewFingerprint("AAPL", long+"第二")
	assert.Equal(t, a, b)

	// The 100th character itself still participates.
	c := NewFingerprint("AAPL", strings.Repeat("é", 99)+"ü")
	assert.NotEqual(t, a, c)
}

func TestNewFingerprint_Stable(t *testing.T) {
	// The derivation is a wire-format contract; it must not drift.
	a := NewFingerprint("AAPL", "What is revenue?", "openai")
	b := NewFingerprint("AAPL", "What is revenue?", "openai")
	assert.Equal(t, a, b)
	assert.Len(t, string(a), 32) // 128-bit hex
}
