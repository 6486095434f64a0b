package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jfmyers9/grooveshark/pkg/grooveshark"
)

// Error kinds stored in the journal.
const (
	KindValidation = "validation"
	KindTransport  = "transport"
	KindAPI        = "api"
	KindProtocol   = "protocol"
	KindOther      = "other"
)

// JournalEntry is one recorded API call.
type JournalEntry struct {
	ID         string
	Method     string
	StatusCode int
	ErrorKind  string // Empty on success
	ErrorCode  int    // Grooveshark error code for KindAPI
	Error      string
	Duration   time.Duration
	StartedAt  time.Time
}

// Failed reports whether the call returned an error.
func (e JournalEntry) Failed() bool {
	return e.ErrorKind != ""
}

// RecordCall implements grooveshark.Recorder. Failures to write are logged,
// never returned to the API caller.
func (s *Store) RecordCall(ctx context.Context, call grooveshark.Call) {
	entry := journalEntryFromCall(call)

	// The call's own context may already be done (e.g. it timed out)
	if err := s.AddJournalEntry(context.WithoutCancel(ctx), entry); err != nil {
		s.logger.Warn().Err(err).Str("method", call.Method).Msg("Failed to record call")
	}
}

// AddJournalEntry stores an entry, assigning an ID if it has none.
func (s *Store) AddJournalEntry(ctx context.Context, entry JournalEntry) error {
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}

	query := `
		INSERT INTO calls (id, method, status_code, error_kind, error_code, error, duration_ms, started_at)
		VALUES (?, ?, ?, NULLIF(?, ''), ?, NULLIF(?, ''), ?, ?)
	`

	_, err := s.db.ExecContext(ctx, query,
		entry.ID,
		entry.Method,
		entry.StatusCode,
		entry.ErrorKind,
		entry.ErrorCode,
		entry.Error,
		entry.Duration.Milliseconds(),
		entry.StartedAt.UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert journal entry: %w", err)
	}

	return nil
}

// RecentCalls returns the most recent journal entries, newest first.
// A limit of 0 returns everything.
func (s *Store) RecentCalls(ctx context.Context, limit int) ([]JournalEntry, error) {
	query := `
		SELECT id, method, status_code, COALESCE(error_kind, ''), error_code, COALESCE(error, ''), duration_ms, started_at
		FROM calls
		ORDER BY started_at DESC
	`

	if limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", limit)
	}

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query journal: %w", err)
	}
	defer rows.Close()

	var entries []JournalEntry
	for rows.Next() {
		var e JournalEntry
		var durationMs, startedMs int64

		err := rows.Scan(
			&e.ID,
			&e.Method,
			&e.StatusCode,
			&e.ErrorKind,
			&e.ErrorCode,
			&e.Error,
			&durationMs,
			&startedMs,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan journal entry: %w", err)
		}

		e.Duration = time.Duration(durationMs) * time.Millisecond
		e.StartedAt = time.UnixMilli(startedMs)

		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating journal: %w", err)
	}

	return entries, nil
}

// PruneCalls removes journal entries older than maxAge.
func (s *Store) PruneCalls(ctx context.Context, maxAge time.Duration) (int64, error) {
	cutoff := time.Now().Add(-maxAge).UnixMilli()

	result, err := s.db.ExecContext(ctx, "DELETE FROM calls WHERE started_at < ?", cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to prune journal: %w", err)
	}

	deleted, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}

	return deleted, nil
}

func journalEntryFromCall(call grooveshark.Call) JournalEntry {
	entry := JournalEntry{
		Method:     call.Method,
		StatusCode: call.StatusCode,
		Duration:   call.Duration,
		StartedAt:  call.StartedAt,
	}
	if call.Err == nil {
		return entry
	}

	entry.Error = call.Err.Error()

	var (
		validationErr *grooveshark.ValidationError
		transportErr  *grooveshark.TransportError
		apiErr        *grooveshark.APIError
		protocolErr   *grooveshark.ProtocolError
	)
	switch {
	case errors.As(call.Err, &apiErr):
		entry.ErrorKind = KindAPI
		entry.ErrorCode = apiErr.Code
	case errors.As(call.Err, &transportErr):
		entry.ErrorKind = KindTransport
	case errors.As(call.Err, &protocolErr):
		entry.ErrorKind = KindProtocol
	case errors.As(call.Err, &validationErr):
		entry.ErrorKind = KindValidation
	default:
		entry.ErrorKind = KindOther
	}

	return entry
}
