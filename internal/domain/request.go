package domain

// ChatRequest is the inbound payload for processing one query.
type ChatRequest struct {
	Message   string `json:"message"`
	SessionID string `json:"session_id"`
}

// ChatResult is the structured outcome of one run, returned by the
// supervisor and serialized as the chat API response.
type ChatResult struct {
	Success      bool          `json:"success"`
	Response     string        `json:"response"`
	Error        string        `json:"error,omitempty"`
	SQLResult    *AgentResult  `json:"sql_result,omitempty"`
	RAGResult    *AgentResult  `json:"rag_result,omitempty"`
	RouteTaken   Route         `json:"route_taken,omitempty"`
	Messages     []Message     `json:"messages,omitempty"`
	RunID        string        `json:"run_id,omitempty"`
	SessionID    string        `json:"session_id"`
	SessionStats *SessionStats `json:"session_stats,omitempty"`
}
