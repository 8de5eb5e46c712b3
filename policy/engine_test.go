package policy

import (
	"context"
	"strings"
	"testing"
)

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	engine, err := NewEngine(context.Background(), DefaultPolicy)
	if err != nil {
		t.Fatalf("failed to create engine: %v", err)
	}
	return engine
}

func TestEvaluateAllowsNormalQuery(t *testing.T) {
	engine := newTestEngine(t)

	decision, _, err := engine.Evaluate(context.Background(), map[string]interface{}{
		"query":      "How many events are in the database?",
		"session_id": "s1",
	})
	if err != nil {
		t.Fatalf("Evaluate failed: %v", err)
	}
	if decision != "allow" {
		t.Fatalf("expected allow, got %q", decision)
	}
}

func TestEvaluateBlocksEmptyQuery(t *testing.T) {
	engine := newTestEngine(t)

	for _, query := range []string{"", "   "} {
		decision, _, err := engine.Evaluate(context.Background(), map[string]interface{}{
			"query":      query,
			"session_id": "s1",
		})
		if err != nil {
			t.Fatalf("Evaluate failed: %v", err)
		}
		if decision != "block" {
			t.Fatalf("expected block for %q, got %q", query, decision)
		}
	}
}

func TestEvaluateBlocksOversizedQuery(t *testing.T) {
	engine := newTestEngine(t)

	decision, _, err := engine.Evaluate(context.Background(), map[string]interface{}{
		"query":      strings.Repeat("a", 5000),
		"session_id": "s1",
	})
	if err != nil {
		t.Fatalf("Evaluate failed: %v", err)
	}
	if decision != "block" {
		t.Fatalf("expected block, got %q", decision)
	}
}
