package domain

import "time"

// AgentResult is the payload returned by one answering backend.
type AgentResult struct {
	Success  bool            `json:"success"`
	Response string          `json:"response"`
	Error    string          `json:"error,omitempty"`
	Items    []RetrievedItem `json:"items,omitempty"`
}

// RetrievedItem is a preview of a document retrieved by the semantic backend.
type RetrievedItem struct {
	Title   string  `json:"title,omitempty"`
	Preview string  `json:"preview,omitempty"`
	Source  string  `json:"source,omitempty"`
	Score   float64 `json:"score,omitempty"`
}

// RunState is the working state for one query-processing run. It is owned
// by exactly one state-machine run and discarded when the run completes;
// only its message deltas persist, into the session store.
type RunState struct {
	RunID     string
	SessionID string
	Query     string

	// Messages accumulates the session history plus this run's new turns.
	Messages []Message

	Route         Route
	SQLResult     *AgentResult
	RAGResult     *AgentResult
	FinalResponse string

	CurrentAgent string
	AgentsUsed   []string
	StartedAt    time.Time
	LastActivity time.Time
}

// Touch refreshes the run metadata after a state entry action.
func (s *RunState) Touch(agent string) {
	s.CurrentAgent = agent
	s.LastActivity = time.Now()
	for _, a := range s.AgentsUsed {
		if a == agent {
			return
		}
	}
	s.AgentsUsed = append(s.AgentsUsed, agent)
}
