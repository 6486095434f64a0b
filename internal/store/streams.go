package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jfmyers9/grooveshark/pkg/grooveshark"
)

// LoadStreamMarks reports which progress reports were already sent for a
// stream key. An unknown stream has neither.
func (s *Store) LoadStreamMarks(ctx context.Context, streamKey string) (over30, complete bool, err error) {
	query := `
		SELECT over30_at IS NOT NULL, completed_at IS NOT NULL
		FROM streams
		WHERE stream_key = ?
	`

	err = s.db.QueryRowContext(ctx, query, streamKey).Scan(&over30, &complete)
	if errors.Is(err, sql.ErrNoRows) {
		return false, false, nil
	}
	if err != nil {
		return false, false, fmt.Errorf("failed to load stream marks: %w", err)
	}

	return over30, complete, nil
}

// SaveStreamMarks records the reports sent for a stream. Marks only
// accumulate: passing false never clears an earlier mark.
func (s *Store) SaveStreamMarks(ctx context.Context, streamKey string, songID grooveshark.ID, over30, complete bool) error {
	if streamKey == "" {
		return fmt.Errorf("stream key is required")
	}

	now := time.Now().Unix()
	var over30At, completedAt sql.NullInt64
	if over30 {
		over30At = sql.NullInt64{Int64: now, Valid: true}
	}
	if complete {
		completedAt = sql.NullInt64{Int64: now, Valid: true}
	}

	query := `
		INSERT INTO streams (stream_key, song_id, over30_at, completed_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(stream_key) DO UPDATE SET
			over30_at = COALESCE(streams.over30_at, excluded.over30_at),
			completed_at = COALESCE(streams.completed_at, excluded.completed_at),
			updated_at = excluded.updated_at
	`

	if _, err := s.db.ExecContext(ctx, query, streamKey, int64(songID), over30At, completedAt, now); err != nil {
		return fmt.Errorf("failed to save stream marks: %w", err)
	}

	return nil
}
