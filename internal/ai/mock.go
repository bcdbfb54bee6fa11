package ai

import "context"

// MockAsker is a test double for Asker.
type MockAsker struct {
	ProviderName string
	AskFunc      func(ctx context.Context, question string) (string, error)
}

func (m *MockAsker) Name() string {
	if m.ProviderName == "" {
		return "mock"
	}
	return m.ProviderName
}

func (m *MockAsker) Ask(ctx context.Context, question string) (string, error) {
	if m.AskFunc != nil {
		return m.AskFunc(ctx, question)
	}
	return "mock answer", nil
}
