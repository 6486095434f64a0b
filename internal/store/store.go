package store

import (
	"database/sql"
	"fmt"

	"github.com/rs/zerolog"
	_ "modernc.org/sqlite"
)

// Store is the local SQLite database holding saved sessions, the call
// journal and the reports sent for each stream. The SDK itself never
// persists anything; only the CLI uses this.
type Store struct {
	db     *sql.DB
	logger zerolog.Logger
}

// Open opens (creating if needed) the database at dbPath. Use ":memory:"
// for tests.
func Open(dbPath string, logger zerolog.Logger) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// A single connection keeps in-memory databases consistent
	db.SetMaxOpenConns(1)

	pragmas := []string{
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 10000",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA journal_mode = WAL",
		"PRAGMA temp_store = MEMORY",
	}

	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to set pragma: %w", err)
		}
	}

	schema := `
		CREATE TABLE IF NOT EXISTS sessions (
			client_key TEXT PRIMARY KEY,
			session_id TEXT NOT NULL,
			user_id INTEGER NOT NULL DEFAULT 0,
			username TEXT,
			started_at INTEGER NOT NULL,
			updated_at INTEGER NOT NULL
		);

		CREATE TABLE IF NOT EXISTS calls (
			id TEXT PRIMARY KEY,
			method TEXT NOT NULL,
			status_code INTEGER NOT NULL DEFAULT 0,
			error_kind TEXT,
			error_code INTEGER NOT NULL DEFAULT 0,
			error TEXT,
			duration_ms INTEGER NOT NULL,
			started_at INTEGER NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_calls_started_at ON calls(started_at);

		CREATE TABLE IF NOT EXISTS streams (
			stream_key TEXT PRIMARY KEY,
			song_id INTEGER NOT NULL,
			over30_at INTEGER,
			completed_at INTEGER,
			updated_at INTEGER NOT NULL
		);
	`

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	return &Store{
		db:     db,
		logger: logger.With().Str("component", "store").Logger(),
	}, nil
}

// Close closes the database connection
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}
