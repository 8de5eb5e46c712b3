package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/dualquery/orchestrator/internal/domain"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db *sql.DB

	// Per-session append locks. Appends for one session must not
	// interleave; unrelated sessions stay unblocked.
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewSQLiteStore creates a new SQLite store.
func NewSQLiteStore(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// For in-memory SQLite, multiple connections create separate databases.
	// Keep a single connection to avoid schema/data disappearing across goroutines.
	if dsn == ":memory:" || strings.Contains(dsn, "mode=memory") {
		db.SetMaxOpenConns(1)
		db.SetMaxIdleConns(1)
	}

	s := &SQLiteStore{db: db, locks: make(map[string]*sync.Mutex)}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return s, nil
}

// migrate runs database migrations.
func (s *SQLiteStore) migrate() error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS session_messages (
			seq INTEGER PRIMARY KEY AUTOINCREMENT,
			message_id TEXT NOT NULL,
			session_id TEXT NOT NULL,
			run_id TEXT,
			role TEXT NOT NULL,
			content TEXT NOT NULL,
			agent TEXT,
			created_at DATETIME NOT NULL,
			metadata TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_session_messages_session ON session_messages(session_id)`,
		`CREATE INDEX IF NOT EXISTS idx_session_messages_session_created ON session_messages(session_id, created_at)`,
	}
	for _, m := range migrations {
		if _, err := s.db.Exec(m); err != nil {
			return fmt.Errorf("migration failed: %w\n%s", err, m)
		}
	}
	return nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) sessionLock(sessionID string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.locks[sessionID]
	if !ok {
		l = &sync.Mutex{}
		s.locks[sessionID] = l
	}
	return l
}

// Append writes a new message row for a session.
func (s *SQLiteStore) Append(ctx context.Context, msg *domain.Message) error {
	if msg.SessionID == "" {
		return fmt.Errorf("session_id is required")
	}
	if msg.MessageID == "" {
		msg.MessageID = "msg_" + uuid.New().String()[:8]
	}
	if msg.CreatedAt.IsZero() {
		msg.CreatedAt = time.Now()
	}

	lock := s.sessionLock(msg.SessionID)
	lock.Lock()
	defer lock.Unlock()

	res, err := s.db.ExecContext(ctx,
		`INSERT INTO session_messages (message_id, session_id, run_id, role, content, agent, created_at, metadata)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		msg.MessageID, msg.SessionID, nullString(msg.RunID), string(msg.Role), msg.Content,
		nullString(msg.Agent), msg.CreatedAt, nullStringBytes(msg.Metadata))
	if err != nil {
		return err
	}
	if seq, err := res.LastInsertId(); err == nil {
		msg.Seq = seq
	}
	return nil
}

// Messages returns the most recent limit messages, oldest to newest.
func (s *SQLiteStore) Messages(ctx context.Context, sessionID string, limit int) ([]domain.Message, error) {
	query := `SELECT seq, message_id, session_id, run_id, role, content, agent, created_at, metadata
		FROM session_messages WHERE session_id = ? ORDER BY seq DESC`
	args := []interface{}{sessionID}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var messages []domain.Message
	for rows.Next() {
		var msg domain.Message
		var role string
		var runID, agent, metadata sql.NullString
		if err := rows.Scan(&msg.Seq, &msg.MessageID, &msg.SessionID, &runID, &role, &msg.Content, &agent, &msg.CreatedAt, &metadata); err != nil {
			return nil, err
		}
		msg.Role = domain.Role(role)
		if runID.Valid {
			msg.RunID = runID.String
		}
		if agent.Valid {
			msg.Agent = agent.String
		}
		if metadata.Valid {
			msg.Metadata = []byte(metadata.String)
		}
		messages = append(messages, msg)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	// Rows were fetched newest-first to take the window; flip back to
	// append order.
	for i, j := 0, len(messages)-1; i < j; i, j = i+1, j-1 {
		messages[i], messages[j] = messages[j], messages[i]
	}
	return messages, nil
}

// Clear deletes all messages for a session.
func (s *SQLiteStore) Clear(ctx context.Context, sessionID string) (bool, error) {
	lock := s.sessionLock(sessionID)
	lock.Lock()
	defer lock.Unlock()

	_, err := s.db.ExecContext(ctx, `DELETE FROM session_messages WHERE session_id = ?`, sessionID)
	if err != nil {
		return false, err
	}
	return true, nil
}

// Stats returns aggregate statistics for a session.
func (s *SQLiteStore) Stats(ctx context.Context, sessionID string) (*domain.SessionStats, error) {
	var count, agents int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*), COUNT(DISTINCT agent) FROM session_messages WHERE session_id = ?`,
		sessionID).Scan(&count, &agents)
	if err != nil {
		return nil, err
	}

	stats := &domain.SessionStats{
		SessionID:    sessionID,
		MessageCount: count,
		AgentsUsed:   agents,
	}
	if count == 0 {
		return stats, nil
	}

	// MIN/MAX over a DATETIME column come back untyped from the driver,
	// so read the boundary rows directly.
	var first, last time.Time
	if err := s.db.QueryRowContext(ctx,
		`SELECT created_at FROM session_messages WHERE session_id = ? ORDER BY seq ASC LIMIT 1`,
		sessionID).Scan(&first); err != nil {
		return nil, err
	}
	if err := s.db.QueryRowContext(ctx,
		`SELECT created_at FROM session_messages WHERE session_id = ? ORDER BY seq DESC LIMIT 1`,
		sessionID).Scan(&last); err != nil {
		return nil, err
	}
	stats.FirstMessageAt = &first
	stats.LastMessageAt = &last
	return stats, nil
}

// PurgeBefore deletes messages older than the cutoff across all sessions.
func (s *SQLiteStore) PurgeBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM session_messages WHERE created_at < ?`, cutoff)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

func nullStringBytes(b []byte) sql.NullString {
	if len(b) == 0 {
		return sql.NullString{}
	}
	return sql.NullString{String: string(b), Valid: true}
}
