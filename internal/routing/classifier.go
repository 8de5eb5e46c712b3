// Package routing decides which backend(s) should handle a query.
package routing

import (
	"strings"

	"github.com/dualquery/orchestrator/internal/agent"
	"github.com/dualquery/orchestrator/internal/domain"
)

// CueTables holds the continuity cues used for context refinement. Like
// the backend keyword tables, cues are configuration data.
type CueTables struct {
	// Continuity cues signal a follow-up to an earlier turn.
	Continuity []string
	// Explain cues signal a request to elaborate on earlier results.
	Explain []string
}

// Classifier maps a query plus optional recent-session context to a
// routing decision. Classify is a pure function of its inputs; it never
// fails, and ambiguous queries resolve to RouteBoth.
type Classifier struct {
	sql  agent.Backend
	rag  agent.Backend
	cues CueTables
}

// NewClassifier creates a classifier over the two backends.
func NewClassifier(sql, rag agent.Backend, cues CueTables) *Classifier {
	return &Classifier{sql: sql, rag: rag, cues: cues}
}

// Classify returns the routing decision for a query. The context string is
// the formatted recent session history, or empty for a fresh session.
func (c *Classifier) Classify(query, context string) domain.Route {
	return c.refine(c.base(query), query, context)
}

// base combines the backends' lexical self-assessments. The semantic
// backend is the general-purpose fallback when neither matches.
func (c *Classifier) base(query string) domain.Route {
	sqlRelevant := c.sql.CanHandle(query)
	ragRelevant := c.rag.CanHandle(query)

	switch {
	case sqlRelevant && ragRelevant:
		return domain.RouteBoth
	case sqlRelevant:
		return domain.RouteSQL
	case ragRelevant:
		return domain.RouteRAG
	default:
		return domain.RouteRAG
	}
}

// refine broadens the base decision toward RouteBoth when the session
// context suggests the query continues an earlier thread. It never narrows
// a decision.
func (c *Classifier) refine(base domain.Route, query, context string) domain.Route {
	if base == domain.RouteBoth || context == "" {
		return base
	}

	q := strings.ToLower(query)
	ctx := strings.ToLower(context)
	usedSQL := strings.Contains(ctx, "("+c.sql.Name()+")")
	usedRAG := strings.Contains(ctx, "("+c.rag.Name()+")")
	continuity := containsAny(q, c.cues.Continuity)

	// Follow-up to earlier structured results wants them joined with the
	// semantic answer, and symmetrically for explanation requests after
	// semantic results.
	if base == domain.RouteRAG && usedSQL && continuity {
		return domain.RouteBoth
	}
	if base == domain.RouteSQL && usedRAG && containsAny(q, c.cues.Explain) {
		return domain.RouteBoth
	}
	if usedSQL && usedRAG && continuity {
		return domain.RouteBoth
	}
	return base
}

func containsAny(s string, needles []string) bool {
	for _, n := range needles {
		if n != "" && strings.Contains(s, strings.ToLower(n)) {
			return true
		}
	}
	return false
}
