package assistant

import (
	"context"
	"sync"
)

// MockProvider is a canned-response provider for tests and the "mock"
// assistant setting.
type MockProvider struct {
	mu       sync.Mutex
	Response string
	Err      error
	Prompts  []string
}

// NewMockProvider returns a provider that always answers with response.
func NewMockProvider(response string) *MockProvider {
	return &MockProvider{Response: response}
}

func (m *MockProvider) GenerateText(ctx context.Context, name, prompt string) (string, error) {
	m.mu.Lock()
	m.Prompts = append(m.Prompts, prompt)
	m.mu.Unlock()
	if m.Err != nil {
		return "", m.Err
	}
	return m.Response, nil
}

func (m *MockProvider) Configured() bool { return true }

func (m *MockProvider) Close() {}
