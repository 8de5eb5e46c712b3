// Package workflow implements the state machine that sequences backend
// calls for one query-processing run.
package workflow

import (
	"context"
	"fmt"
	"log"

	"github.com/google/uuid"

	"github.com/dualquery/orchestrator/internal/agent"
	"github.com/dualquery/orchestrator/internal/domain"
	"github.com/dualquery/orchestrator/internal/routing"
	"github.com/dualquery/orchestrator/internal/store"
)

// State enumerates the machine's states. StateEnd is terminal and
// absorbing.
type State string

const (
	StateSupervise State = "SUPERVISE"
	StateSQL       State = "SQL"
	StateRAG       State = "RAG"
	StateCombine   State = "COMBINE"
	StateEnd       State = "END"
)

// Combiner synthesizes one answer from two partial backend results.
type Combiner interface {
	Combine(ctx context.Context, query string, sqlRes, ragRes *domain.AgentResult) string
}

// Machine runs the SUPERVISE -> {SQL,RAG} -> COMBINE -> END workflow over
// a RunState it exclusively owns for the duration of Run. Backend calls
// are sequential: under the both route the semantic step and the combiner
// both depend on the structured result already being recorded.
type Machine struct {
	classifier    *routing.Classifier
	sql           agent.Backend
	rag           agent.Backend
	combiner      Combiner
	store         store.Store
	contextWindow int
}

// NewMachine creates a workflow machine.
func NewMachine(classifier *routing.Classifier, sql, rag agent.Backend, combiner Combiner, st store.Store, contextWindow int) *Machine {
	return &Machine{
		classifier:    classifier,
		sql:           sql,
		rag:           rag,
		combiner:      combiner,
		store:         st,
		contextWindow: contextWindow,
	}
}

// Run drives the state machine to completion and returns the final state,
// which is always StateEnd.
func (m *Machine) Run(ctx context.Context, st *domain.RunState) State {
	state := StateSupervise
	for state != StateEnd {
		switch state {
		case StateSupervise:
			state = m.superviseStep(ctx, st)
		case StateSQL:
			state = m.sqlStep(ctx, st)
		case StateRAG:
			state = m.ragStep(ctx, st)
		case StateCombine:
			state = m.combineStep(ctx, st)
		default:
			log.Printf("ERROR: unknown workflow state %q for run %s", state, st.RunID)
			state = StateEnd
		}
	}
	return StateEnd
}

func (m *Machine) superviseStep(ctx context.Context, st *domain.RunState) State {
	sessionContext := routing.FormatContext(st.Messages, m.contextWindow)
	st.Route = m.classifier.Classify(st.Query, sessionContext)
	log.Printf("INFO: supervisor routing session %s run %s to: %s", st.SessionID, st.RunID, st.Route)

	m.record(ctx, st, domain.RoleSupervisor, domain.AgentSupervisor,
		fmt.Sprintf("Analyzing query and routing to: %s", st.Route), nil)

	switch st.Route {
	case domain.RouteSQL, domain.RouteBoth:
		return StateSQL
	case domain.RouteRAG:
		return StateRAG
	default:
		return StateEnd
	}
}

func (m *Machine) sqlStep(ctx context.Context, st *domain.RunState) State {
	res := m.sql.Run(ctx, st.Query)
	st.SQLResult = &res

	m.record(ctx, st, domain.RoleAssistant, m.sql.Name(), resultContent(&res, m.sql.Name()), &res)

	if st.Route == domain.RouteBoth {
		return StateRAG
	}
	if res.Success {
		return StateEnd
	}
	// A failed single-backend route should not surface a raw error while
	// the general-purpose backend can still attempt an answer.
	log.Printf("WARN: %s backend failed for run %s, falling back to %s: %s", m.sql.Name(), st.RunID, m.rag.Name(), res.Error)
	return StateRAG
}

func (m *Machine) ragStep(ctx context.Context, st *domain.RunState) State {
	res := m.rag.Run(ctx, st.Query)
	st.RAGResult = &res

	m.record(ctx, st, domain.RoleAssistant, m.rag.Name(), resultContent(&res, m.rag.Name()), &res)

	// Combining is only valid on a real both plan: a structured result
	// must be present, not merely the RAG state reached via fallback.
	if st.Route == domain.RouteBoth && st.SQLResult != nil {
		return StateCombine
	}
	return StateEnd
}

func (m *Machine) combineStep(ctx context.Context, st *domain.RunState) State {
	combined := m.combiner.Combine(ctx, st.Query, st.SQLResult, st.RAGResult)
	st.FinalResponse = combined

	m.record(ctx, st, domain.RoleAssistant, domain.AgentCombiner, combined, nil)
	return StateEnd
}

// record is the shared state entry action: the message goes into the run's
// message list and is appended to the session store immediately so it
// survives a crash in a later step. A store failure is logged and does not
// abort the run.
func (m *Machine) record(ctx context.Context, st *domain.RunState, role domain.Role, agentName, content string, res *domain.AgentResult) {
	var metadata []byte
	if res != nil {
		metadata = []byte(fmt.Sprintf(`{"success":%t}`, res.Success))
	}

	msg := domain.Message{
		MessageID: "msg_" + uuid.New().String()[:8],
		SessionID: st.SessionID,
		RunID:     st.RunID,
		Role:      role,
		Content:   content,
		Agent:     agentName,
		Metadata:  metadata,
	}
	if err := m.store.Append(ctx, &msg); err != nil {
		log.Printf("ERROR: failed to save %s message for session %s: %v", agentName, st.SessionID, err)
	}

	st.Messages = append(st.Messages, msg)
	st.Touch(agentName)
}

func resultContent(res *domain.AgentResult, name string) string {
	if res.Response != "" {
		return res.Response
	}
	return fmt.Sprintf("No response from %s backend", name)
}
