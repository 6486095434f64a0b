package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// ErrNoSavedSession is returned by LoadSession when nothing is saved for
// the client key.
var ErrNoSavedSession = errors.New("no saved session")

// SavedSession is a session ID kept between CLI invocations.
type SavedSession struct {
	ClientKey string
	SessionID string
	UserID    int64 // 0 when no user is logged in
	Username  string
	StartedAt time.Time
	UpdatedAt time.Time
}

// Authenticated reports whether a user was logged in when the session was saved.
func (s SavedSession) Authenticated() bool {
	return s.UserID != 0
}

// SaveSession inserts or replaces the saved session for its client key.
// Saving the same session ID again keeps its original start time.
func (s *Store) SaveSession(ctx context.Context, saved SavedSession) error {
	if saved.ClientKey == "" || saved.SessionID == "" {
		return fmt.Errorf("client key and session id are required")
	}

	now := time.Now()
	if saved.StartedAt.IsZero() {
		saved.StartedAt = now
	}

	query := `
		INSERT INTO sessions (client_key, session_id, user_id, username, started_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(client_key) DO UPDATE SET
			session_id = excluded.session_id,
			user_id = excluded.user_id,
			username = excluded.username,
			started_at = CASE
				WHEN sessions.session_id = excluded.session_id THEN sessions.started_at
				ELSE excluded.started_at
			END,
			updated_at = excluded.updated_at
	`

	_, err := s.db.ExecContext(ctx, query,
		saved.ClientKey,
		saved.SessionID,
		saved.UserID,
		saved.Username,
		saved.StartedAt.Unix(),
		now.Unix(),
	)
	if err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}

	return nil
}

// LoadSession returns the saved session for a client key.
func (s *Store) LoadSession(ctx context.Context, clientKey string) (*SavedSession, error) {
	query := `
		SELECT client_key, session_id, user_id, COALESCE(username, ''), started_at, updated_at
		FROM sessions
		WHERE client_key = ?
	`

	var saved SavedSession
	var startedUnix, updatedUnix int64
	err := s.db.QueryRowContext(ctx, query, clientKey).Scan(
		&saved.ClientKey,
		&saved.SessionID,
		&saved.UserID,
		&saved.Username,
		&startedUnix,
		&updatedUnix,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNoSavedSession
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}

	saved.StartedAt = time.Unix(startedUnix, 0)
	saved.UpdatedAt = time.Unix(updatedUnix, 0)

	return &saved, nil
}

// ClearUser forgets the logged-in user but keeps the session ID.
func (s *Store) ClearUser(ctx context.Context, clientKey string) error {
	query := `
		UPDATE sessions
		SET user_id = 0, username = NULL, updated_at = ?
		WHERE client_key = ?
	`

	result, err := s.db.ExecContext(ctx, query, time.Now().Unix(), clientKey)
	if err != nil {
		return fmt.Errorf("failed to clear session user: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rows == 0 {
		return ErrNoSavedSession
	}

	return nil
}

// DeleteSession removes the saved session for a client key. Deleting a
// missing session is not an error.
func (s *Store) DeleteSession(ctx context.Context, clientKey string) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM sessions WHERE client_key = ?", clientKey); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}
