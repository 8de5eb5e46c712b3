package llm

import (
	"context"
	"fmt"
)

// MockClient is a mock implementation of LLMClient for testing.
type MockClient struct {
	// Response, when set, is returned verbatim.
	Response string
	// Err, when set, is returned instead of a response.
	Err error
}

// NewMockClient creates a new mock LLM client.
func NewMockClient() *MockClient {
	return &MockClient{}
}

// Ensure MockClient implements LLMClient interface.
var _ LLMClient = (*MockClient)(nil)

// Generate returns a mock synthesis.
func (m *MockClient) Generate(ctx context.Context, system, user string) (string, error) {
	if m.Err != nil {
		return "", m.Err
	}
	if m.Response != "" {
		return m.Response, nil
	}
	return fmt.Sprintf("[MOCK] Synthesized response for: %q", truncate(user, 100)), nil
}

// truncate truncates a string to the given length.
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
