package domain

import (
	"encoding/json"
	"time"
)

// Message is a single entry in a session's conversation log.
// Messages are immutable once written; ordering is by Seq, which the
// store assigns monotonically per append.
type Message struct {
	MessageID string          `json:"message_id"`
	SessionID string          `json:"session_id"`
	RunID     string          `json:"run_id,omitempty"`
	Seq       int64           `json:"seq,omitempty"`
	Role      Role            `json:"role"`
	Content   string          `json:"content"`
	Agent     string          `json:"agent,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
	Metadata  json.RawMessage `json:"metadata,omitempty"`
}

// SessionStats is the derivable metadata view of a session.
type SessionStats struct {
	SessionID      string     `json:"session_id"`
	MessageCount   int        `json:"message_count"`
	FirstMessageAt *time.Time `json:"first_message_at,omitempty"`
	LastMessageAt  *time.Time `json:"last_message_at,omitempty"`
	AgentsUsed     int        `json:"agents_used"`
}
