// Package store provides the durable per-session message log.
package store

import (
	"context"
	"time"

	"github.com/dualquery/orchestrator/internal/domain"
)

// Store is the session-scoped append log the supervisor depends on.
//
// Appends for the same session are serialized so the read-back order of a
// session's messages always matches a consistent total order. Reads never
// observe a partially written row.
type Store interface {
	// Append writes a new message row. The store assigns the order key;
	// MessageID and CreatedAt are filled in when empty.
	Append(ctx context.Context, msg *domain.Message) error

	// Messages returns up to limit messages for a session, oldest to
	// newest, taken from the most recent limit rows (a sliding window
	// over history, not a prefix).
	Messages(ctx context.Context, sessionID string, limit int) ([]domain.Message, error)

	// Clear deletes all messages for a session. Clearing an empty or
	// unknown session still reports success.
	Clear(ctx context.Context, sessionID string) (bool, error)

	// Stats returns the derivable metadata view for a session.
	Stats(ctx context.Context, sessionID string) (*domain.SessionStats, error)

	// PurgeBefore deletes messages older than the cutoff across all
	// sessions and returns the number of rows removed. Session expiry is
	// caller-owned; this is the helper for it.
	PurgeBefore(ctx context.Context, cutoff time.Time) (int64, error)

	Close() error
}
