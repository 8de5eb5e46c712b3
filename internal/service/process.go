package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/dualquery/orchestrator/internal/domain"
)

// NoResponseFallback is returned when a run ends without any assistant
// output to surface.
const NoResponseFallback = "I couldn't generate a response to your query."

// Process runs the full workflow for one query within a session and
// returns the structured result. No failure inside the run is fatal;
// every failure mode degrades to a text response with success=false or an
// embedded error.
func (s *Service) Process(ctx context.Context, query, sessionID string) *domain.ChatResult {
	log.Printf("INFO: processing query for session %s", sessionID)

	if blocked := s.admit(ctx, query, sessionID); blocked != nil {
		return blocked
	}

	// The user turn is persisted before the run so it is durable even if
	// a later step crashes.
	userMsg := domain.Message{
		SessionID: sessionID,
		Role:      domain.RoleUser,
		Content:   query,
	}
	if err := s.store.Append(ctx, &userMsg); err != nil {
		log.Printf("ERROR: failed to save user message for session %s: %v", sessionID, err)
	}

	st := &domain.RunState{
		RunID:     "run_" + uuid.New().String()[:8],
		SessionID: sessionID,
		Query:     query,
		Messages:  s.history(ctx, sessionID, &userMsg),
		StartedAt: time.Now(),
	}

	s.machine.Run(ctx, st)

	result := &domain.ChatResult{
		Success:    true,
		Response:   finalResponse(st),
		SQLResult:  st.SQLResult,
		RAGResult:  st.RAGResult,
		RouteTaken: st.Route,
		Messages:   st.Messages,
		RunID:      st.RunID,
		SessionID:  sessionID,
	}
	if stats, err := s.store.Stats(ctx, sessionID); err != nil {
		log.Printf("WARN: failed to read session stats for %s: %v", sessionID, err)
	} else {
		result.SessionStats = stats
	}
	return result
}

// admit evaluates the admission policy. Policy engine failures degrade to
// allow; admission is advisory and must not kill the run.
func (s *Service) admit(ctx context.Context, query, sessionID string) *domain.ChatResult {
	if s.policy == nil {
		return nil
	}
	decision, reason, err := s.policy.Evaluate(ctx, map[string]interface{}{
		"query":      query,
		"session_id": sessionID,
	})
	if err != nil {
		log.Printf("WARN: policy evaluation failed for session %s: %v", sessionID, err)
		return nil
	}
	if decision != "block" {
		return nil
	}

	log.Printf("INFO: query blocked by policy for session %s", sessionID)
	response := "This query cannot be processed."
	if reason != "" {
		response = fmt.Sprintf("This query cannot be processed: %s", reason)
	}
	return &domain.ChatResult{
		Success:    false,
		Response:   response,
		Error:      "blocked by policy",
		RouteTaken: domain.RouteEnd,
		SessionID:  sessionID,
	}
}

// history loads the run's context window. The user message appended just
// before the run is excluded so the classifier sees previous turns only.
// A read failure means no context, not a dead run.
func (s *Service) history(ctx context.Context, sessionID string, current *domain.Message) []domain.Message {
	messages, err := s.store.Messages(ctx, sessionID, s.config.HistoryLimit)
	if err != nil {
		log.Printf("WARN: failed to load history for session %s: %v", sessionID, err)
		return nil
	}
	if n := len(messages); n > 0 && messages[n-1].MessageID == current.MessageID {
		messages = messages[:n-1]
	}
	return messages
}

// History returns the stored conversation history for a session.
func (s *Service) History(ctx context.Context, sessionID string, limit int) ([]domain.Message, error) {
	return s.store.Messages(ctx, sessionID, limit)
}

// ClearSession deletes all stored messages for a session.
func (s *Service) ClearSession(ctx context.Context, sessionID string) (bool, error) {
	ok, err := s.store.Clear(ctx, sessionID)
	if err == nil && ok {
		log.Printf("INFO: cleared session memory for %s", sessionID)
	}
	return ok, err
}

// SessionStats returns the metadata view for a session, including the
// advisory inactivity timeout the caller is expected to enforce.
func (s *Service) SessionStats(ctx context.Context, sessionID string) (*domain.SessionStats, error) {
	return s.store.Stats(ctx, sessionID)
}

// SessionTTL reports the advisory session inactivity timeout.
func (s *Service) SessionTTL() time.Duration {
	return s.config.SessionTTL
}

func finalResponse(st *domain.RunState) string {
	if st.FinalResponse != "" {
		return st.FinalResponse
	}
	for i := len(st.Messages) - 1; i >= 0; i-- {
		if st.Messages[i].Role == domain.RoleAssistant {
			return st.Messages[i].Content
		}
	}
	return NoResponseFallback
}
