package backend

import (
	"context"
	"fmt"

	"github.com/dualquery/orchestrator/internal/agent"
	"github.com/dualquery/orchestrator/internal/domain"
)

// Mock is an in-process backend for mock mode and tests. It answers every
// query it is asked to run; relevance still comes from the keyword table so
// routing behaves the same as against real backends.
type Mock struct {
	name      string
	predicate *agent.KeywordPredicate

	// Result, when set, overrides the canned response.
	Result *domain.AgentResult
}

var _ agent.Backend = (*Mock)(nil)

// NewMock creates a mock backend.
func NewMock(name string, keywords []string) *Mock {
	return &Mock{
		name:      name,
		predicate: agent.NewKeywordPredicate(keywords),
	}
}

func (m *Mock) Name() string {
	return m.name
}

func (m *Mock) CanHandle(query string) bool {
	return m.predicate.Match(query)
}

func (m *Mock) Run(ctx context.Context, query string) domain.AgentResult {
	if m.Result != nil {
		return *m.Result
	}
	return domain.AgentResult{
		Success:  true,
		Response: fmt.Sprintf("[MOCK] %s backend answer for: %q", m.name, truncate(query, 100)),
	}
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
