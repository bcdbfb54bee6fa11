// Package ai defines the question-answering collaborator used by the
// dispatch engine when a conversation is in AI mode.
package ai

import (
	"context"
	"fmt"
)

// Asker answers a free-text question. Failures are recoverable: the caller
// shows a fallback message instead of propagating the error.
type Asker interface {
	// Ask sends the question and returns the assistant's answer.
	Ask(ctx context.Context, question string) (string, error)

	// Name returns the provider name (e.g. "openrouter").
	Name() string
}

// ProviderError is returned when the AI provider rejects a request.
type ProviderError struct {
	Provider string
	Code     int
	Message  string
}

func (e *ProviderError) Error() string {
	if e.Code > 0 {
		return fmt.Sprintf("%s: %d %s", e.Provider, e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Provider, e.Message)
}
