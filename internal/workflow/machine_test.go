package workflow

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dualquery/orchestrator/internal/adapter/backend"
	"github.com/dualquery/orchestrator/internal/adapter/llm"
	"github.com/dualquery/orchestrator/internal/combiner"
	"github.com/dualquery/orchestrator/internal/config"
	"github.com/dualquery/orchestrator/internal/domain"
	"github.com/dualquery/orchestrator/internal/routing"
	"github.com/dualquery/orchestrator/internal/store"
)

type fixture struct {
	machine *Machine
	sql     *backend.Mock
	rag     *backend.Mock
	llm     *llm.MockClient
	store   *store.SQLiteStore
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	cfg := config.Load()

	st, err := store.NewSQLiteStore(":memory:")
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { st.Close() })

	sql := backend.NewMock(domain.AgentSQL, cfg.SQLKeywords)
	rag := backend.NewMock(domain.AgentRAG, cfg.RAGKeywords)
	mockLLM := llm.NewMockClient()
	classifier := routing.NewClassifier(sql, rag, routing.CueTables{
		Continuity: cfg.ContinuityCues,
		Explain:    cfg.ExplainCues,
	})

	return &fixture{
		machine: NewMachine(classifier, sql, rag, combiner.New(mockLLM), st, cfg.ContextWindow),
		sql:     sql,
		rag:     rag,
		llm:     mockLLM,
		store:   st,
	}
}

func newRunState(query string) *domain.RunState {
	return &domain.RunState{
		RunID:     "run_test",
		SessionID: "s1",
		Query:     query,
	}
}

func TestRunSQLOnly(t *testing.T) {
	f := newFixture(t)
	f.sql.Result = &domain.AgentResult{Success: true, Response: "There are 42 events."}

	st := newRunState("How many events are in the database?")
	final := f.machine.Run(context.Background(), st)

	assert.Equal(t, StateEnd, final)
	assert.Equal(t, domain.RouteSQL, st.Route)
	assert.NotNil(t, st.SQLResult)
	assert.Nil(t, st.RAGResult)
	assert.Empty(t, st.FinalResponse) // resolved by the supervisor from messages

	// Supervisor turn plus the sql answer.
	assert.Len(t, st.Messages, 2)
	assert.Equal(t, domain.RoleSupervisor, st.Messages[0].Role)
	assert.Equal(t, domain.RoleAssistant, st.Messages[1].Role)
	assert.Equal(t, "There are 42 events.", st.Messages[1].Content)
	assert.Equal(t, []string{domain.AgentSupervisor, domain.AgentSQL}, st.AgentsUsed)
}

func TestRunBothEndsInCombine(t *testing.T) {
	f := newFixture(t)
	f.sql.Result = &domain.AgentResult{Success: true, Response: "3 events this week."}
	f.rag.Result = &domain.AgentResult{Success: true, Response: "Trends favor robotics."}
	f.llm.Response = "Combined: 3 events this week, trends favor robotics."

	st := newRunState("Show me recent events and also explain the trends")
	f.machine.Run(context.Background(), st)

	assert.Equal(t, domain.RouteBoth, st.Route)
	assert.NotNil(t, st.SQLResult)
	assert.NotNil(t, st.RAGResult)
	// The final response is the combiner's synthesis, not either backend's
	// raw output.
	assert.Equal(t, "Combined: 3 events this week, trends favor robotics.", st.FinalResponse)
	assert.Equal(t, domain.AgentCombiner, st.CurrentAgent)
	assert.Len(t, st.Messages, 4)
}

func TestRunSQLFailureFallsBackToRAG(t *testing.T) {
	f := newFixture(t)
	f.sql.Result = &domain.AgentResult{Success: false, Error: "connection refused", Response: "sql backend error"}
	f.rag.Result = &domain.AgentResult{Success: true, Response: "Based on the articles, about 40."}

	// "count" alone routes sql-only.
	st := newRunState("count of registrations")
	f.machine.Run(context.Background(), st)

	assert.Equal(t, domain.RouteSQL, st.Route)
	assert.NotNil(t, st.RAGResult, "failed sql route must fall back to the rag backend")
	// Fallback is not a both plan: no combine step ran.
	assert.Empty(t, st.FinalResponse)
	last := st.Messages[len(st.Messages)-1]
	assert.Equal(t, f.rag.Name(), last.Agent)
	assert.Equal(t, "Based on the articles, about 40.", last.Content)
}

func TestRunBothWithFailedSQLStillCombines(t *testing.T) {
	// The combine gate checks presence of a structured result, not its
	// success flag; a failed structured result still reaches the combiner.
	f := newFixture(t)
	f.sql.Result = &domain.AgentResult{Success: false, Error: "timeout", Response: "sql backend error: timeout"}
	f.rag.Result = &domain.AgentResult{Success: true, Response: "Trends favor robotics."}
	f.llm.Response = "Combined answer."

	st := newRunState("Show me recent events and also explain the trends")
	f.machine.Run(context.Background(), st)

	assert.Equal(t, domain.RouteBoth, st.Route)
	assert.Equal(t, "Combined answer.", st.FinalResponse)
}

func TestRunRAGOnly(t *testing.T) {
	f := newFixture(t)
	f.rag.Result = &domain.AgentResult{Success: true, Response: "AI trends lean multimodal."}

	st := newRunState("Tell me about AI trends")
	f.machine.Run(context.Background(), st)

	assert.Equal(t, domain.RouteRAG, st.Route)
	assert.Nil(t, st.SQLResult)
	assert.Len(t, st.Messages, 2)
}

func TestRunPersistsEachStep(t *testing.T) {
	f := newFixture(t)
	f.sql.Result = &domain.AgentResult{Success: true, Response: "3 events."}
	f.rag.Result = &domain.AgentResult{Success: true, Response: "Robotics."}
	f.llm.Response = "Combined."

	st := newRunState("Show me recent events and also explain the trends")
	f.machine.Run(context.Background(), st)

	stored, err := f.store.Messages(context.Background(), "s1", 10)
	if err != nil {
		t.Fatalf("Messages failed: %v", err)
	}
	// Every state entry appended its message: supervisor, sql, rag, combiner.
	assert.Len(t, stored, 4)
	assert.Equal(t, string(domain.RoleSupervisor), string(stored[0].Role))
	assert.Equal(t, domain.AgentSQL, stored[1].Agent)
	assert.Equal(t, domain.AgentRAG, stored[2].Agent)
	assert.Equal(t, domain.AgentCombiner, stored[3].Agent)
	assert.JSONEq(t, `{"success":true}`, string(stored[1].Metadata))
	for _, msg := range stored {
		assert.Equal(t, "run_test", msg.RunID)
	}
}

func TestRunContextBroadensFollowUp(t *testing.T) {
	f := newFixture(t)
	f.sql.Result = &domain.AgentResult{Success: true, Response: "42."}
	f.rag.Result = &domain.AgentResult{Success: true, Response: "Context answer."}
	f.llm.Response = "Combined follow-up."

	st := newRunState("What about that?")
	st.Messages = []domain.Message{
		{Role: domain.RoleUser, Content: "How many events are there?"},
		{Role: domain.RoleAssistant, Agent: domain.AgentSQL, Content: "There are 42 events."},
	}
	f.machine.Run(context.Background(), st)

	assert.Equal(t, domain.RouteBoth, st.Route)
	assert.Equal(t, "Combined follow-up.", st.FinalResponse)
}
