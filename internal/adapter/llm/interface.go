// Package llm provides an abstraction for the language-generation
// collaborator used by the result combiner.
package llm

import "context"

// LLMClient defines the interface for language-generation operations.
type LLMClient interface {
	// Generate sends a single-turn request with system instructions and
	// user content, returning the generated text.
	Generate(ctx context.Context, system, user string) (string, error)
}

// Ensure Client implements LLMClient interface.
var _ LLMClient = (*Client)(nil)
