package v1

import (
	"context"
	"testing"

	"github.com/dualquery/orchestrator/internal/adapter/backend"
	"github.com/dualquery/orchestrator/internal/adapter/llm"
	"github.com/dualquery/orchestrator/internal/combiner"
	"github.com/dualquery/orchestrator/internal/config"
	"github.com/dualquery/orchestrator/internal/domain"
	"github.com/dualquery/orchestrator/internal/routing"
	"github.com/dualquery/orchestrator/internal/service"
	"github.com/dualquery/orchestrator/internal/store"
	"github.com/dualquery/orchestrator/internal/workflow"
	"github.com/dualquery/orchestrator/policy"
)

// newTestHandler builds a handler over a full service with mock backends
// and an in-memory store.
func newTestHandler(t *testing.T) (*Handler, *backend.Mock, *backend.Mock, *store.SQLiteStore) {
	t.Helper()
	cfg := config.Load()

	st, err := store.NewSQLiteStore(":memory:")
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { st.Close() })

	sql := backend.NewMock(domain.AgentSQL, cfg.SQLKeywords)
	rag := backend.NewMock(domain.AgentRAG, cfg.RAGKeywords)
	classifier := routing.NewClassifier(sql, rag, routing.CueTables{
		Continuity: cfg.ContinuityCues,
		Explain:    cfg.ExplainCues,
	})
	machine := workflow.NewMachine(classifier, sql, rag, combiner.New(llm.NewMockClient()), st, cfg.ContextWindow)

	engine, err := policy.NewEngine(context.Background(), policy.DefaultPolicy)
	if err != nil {
		t.Fatalf("failed to create policy engine: %v", err)
	}

	svc := service.New(st, machine, engine, cfg)
	return NewHandler(svc), sql, rag, st
}
