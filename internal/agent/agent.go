// Package agent defines the contract the orchestrator uses to invoke an
// answering backend.
package agent

import (
	"context"
	"strings"

	"github.com/dualquery/orchestrator/internal/domain"
)

// Backend is one answering capability the supervisor can route to. The
// structured-query and semantic-search backends both satisfy it; their
// internals (query planning, embedding, vector search) live elsewhere.
type Backend interface {
	// Name is the agent tag recorded on messages this backend produces.
	Name() string

	// CanHandle is a cheap lexical self-assessment of whether this
	// backend is relevant to the query. It must not block or fail.
	CanHandle(query string) bool

	// Run executes the query. Failures are reported inside the result,
	// never as an error; the state machine decides what to do with them.
	Run(ctx context.Context, query string) domain.AgentResult
}

// KeywordPredicate matches a query against a configured keyword table,
// case-insensitively. The tables are data, not code, so routing behavior
// can be tuned without touching the state machine.
type KeywordPredicate struct {
	keywords []string
}

// NewKeywordPredicate builds a predicate from a keyword table.
func NewKeywordPredicate(keywords []string) *KeywordPredicate {
	lowered := make([]string, 0, len(keywords))
	for _, k := range keywords {
		if k = strings.ToLower(strings.TrimSpace(k)); k != "" {
			lowered = append(lowered, k)
		}
	}
	return &KeywordPredicate{keywords: lowered}
}

// Match reports whether any keyword occurs in the query.
func (p *KeywordPredicate) Match(query string) bool {
	q := strings.ToLower(query)
	for _, k := range p.keywords {
		if strings.Contains(q, k) {
			return true
		}
	}
	return false
}
