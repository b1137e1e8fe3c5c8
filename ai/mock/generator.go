package mock

import (
	"context"
	"sync"
)

// MockGenerator is a test double for ai.Generator.
// It allows custom behavior injection via function fields.
type MockGenerator struct {
	// GenerateFunc is called by Generate if set.
	// If nil, Answer is returned.
	GenerateFunc func(ctx context.Context, systemPrompt, userPrompt string) (string, error)

	// Answer is the default response when GenerateFunc is nil.
	Answer string

	// ProviderName is returned by Provider. Defaults to "mock".
	ProviderName string

	mu        sync.Mutex
	callCount int
}

// NewMockGenerator creates a mock generator with default behavior.
// Note: Returns concrete type to allow test assertions via CallCount().
func NewMockGenerator() *MockGenerator {
	return &MockGenerator{
		Answer:       "mock answer",
		ProviderName: "mock",
	}
}

// Generate returns the canned answer or delegates to GenerateFunc.
// Safe for concurrent use; coalescing tests call it from many
// goroutines.
func (m *MockGenerator) Generate(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	m.mu.Lock()
	m.callCount++
	m.mu.Unlock()

	if m.GenerateFunc != nil {
		return m.GenerateFunc(ctx, systemPrompt, userPrompt)
	}
	return m.Answer, nil
}

// Provider returns the configured provider name.
func (m *MockGenerator) Provider() string {
	if m.ProviderName == "" {
		return "mock"
	}
	return m.ProviderName
}

// CallCount returns the number of times Generate was called.
func (m *MockGenerator) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.callCount
}

// Reset clears the call count and custom functions.
func (m *MockGenerator) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.callCount = 0
	m.GenerateFunc = nil
}
