package store

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/jfmyers9/grooveshark/pkg/grooveshark"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

// createTestStore creates an in-memory SQLite store for testing
func createTestStore(t *testing.T) *Store {
	t.Helper()

	s, err := Open(":memory:", zerolog.Nop())
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = s.Close()
	})

	return s
}

func TestOpen(t *testing.T) {
	t.Run("in-memory database", func(t *testing.T) {
		s := createTestStore(t)
		require.NotNil(t, s.db)
	})

	t.Run("file-based database", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "grooveshark.db")

		s, err := Open(path, zerolog.Nop())
		require.NoError(t, err)
		require.NoError(t, s.Close())

		// Reopening must not fail on the existing schema
		s, err = Open(path, zerolog.Nop())
		require.NoError(t, err)
		require.NoError(t, s.Close())
	})
}

func TestSessions(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	_, err := s.LoadSession(ctx, "key")
	require.ErrorIs(t, err, ErrNoSavedSession)

	started := time.Unix(1700000000, 0)
	require.NoError(t, s.SaveSession(ctx, SavedSession{
		ClientKey: "key",
		SessionID: "abc",
		StartedAt: started,
	}))

	saved, err := s.LoadSession(ctx, "key")
	require.NoError(t, err)
	require.Equal(t, "abc", saved.SessionID)
	require.False(t, saved.Authenticated())
	require.True(t, saved.StartedAt.Equal(started))

	require.NoError(t, s.SaveSession(ctx, SavedSession{
		ClientKey: "key",
		SessionID: "abc",
		UserID:    42,
		Username:  "someone",
		StartedAt: started,
	}))

	saved, err = s.LoadSession(ctx, "key")
	require.NoError(t, err)
	require.True(t, saved.Authenticated())
	require.Equal(t, "someone", saved.Username)

	require.NoError(t, s.ClearUser(ctx, "key"))
	saved, err = s.LoadSession(ctx, "key")
	require.NoError(t, err)
	require.Equal(t, "abc", saved.SessionID)
	require.False(t, saved.Authenticated())
	require.Empty(t, saved.Username)

	require.NoError(t, s.DeleteSession(ctx, "key"))
	_, err = s.LoadSession(ctx, "key")
	require.ErrorIs(t, err, ErrNoSavedSession)

	require.ErrorIs(t, s.ClearUser(ctx, "key"), ErrNoSavedSession)
	require.NoError(t, s.DeleteSession(ctx, "key"))
}

func TestSaveSessionKeepsStartTime(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	started := time.Unix(1700000000, 0)
	require.NoError(t, s.SaveSession(ctx, SavedSession{
		ClientKey: "key",
		SessionID: "abc",
		StartedAt: started,
	}))

	// Logging in saves the same session without a start time
	require.NoError(t, s.SaveSession(ctx, SavedSession{
		ClientKey: "key",
		SessionID: "abc",
		UserID:    42,
		Username:  "someone",
	}))

	saved, err := s.LoadSession(ctx, "key")
	require.NoError(t, err)
	require.True(t, saved.StartedAt.Equal(started))
	require.Equal(t, int64(42), saved.UserID)

	// A new session ID gets a new start time
	require.NoError(t, s.SaveSession(ctx, SavedSession{
		ClientKey: "key",
		SessionID: "def",
	}))

	saved, err = s.LoadSession(ctx, "key")
	require.NoError(t, err)
	require.Equal(t, "def", saved.SessionID)
	require.True(t, saved.StartedAt.After(started))
}

func TestSaveSessionValidation(t *testing.T) {
	s := createTestStore(t)
	require.Error(t, s.SaveSession(context.Background(), SavedSession{ClientKey: "key"}))
	require.Error(t, s.SaveSession(context.Background(), SavedSession{SessionID: "abc"}))
}

func TestJournal(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()
	now := time.Now()

	calls := []grooveshark.Call{
		{Method: "startSession", StatusCode: 200, StartedAt: now.Add(-3 * time.Second), Duration: 120 * time.Millisecond},
		{Method: "getUserInfo", StatusCode: 200, StartedAt: now.Add(-2 * time.Second), Err: &grooveshark.APIError{Code: 11, Message: "Bad key"}},
		{Method: "getCountry", StatusCode: 403, StartedAt: now.Add(-1 * time.Second), Err: &grooveshark.TransportError{Method: "getCountry", StatusCode: 403}},
		{Method: "logout", StartedAt: now, Err: errors.New("boom")},
	}
	for _, call := range calls {
		s.RecordCall(ctx, call)
	}

	entries, err := s.RecentCalls(ctx, 0)
	require.NoError(t, err)
	require.Len(t, entries, 4)

	require.Equal(t, "logout", entries[0].Method)
	require.Equal(t, KindOther, entries[0].ErrorKind)

	require.Equal(t, "getCountry", entries[1].Method)
	require.Equal(t, KindTransport, entries[1].ErrorKind)
	require.Equal(t, 403, entries[1].StatusCode)

	require.Equal(t, KindAPI, entries[2].ErrorKind)
	require.Equal(t, 11, entries[2].ErrorCode)
	require.Contains(t, entries[2].Error, "Bad key")

	require.False(t, entries[3].Failed())
	require.Equal(t, 120*time.Millisecond, entries[3].Duration)
	require.NotEmpty(t, entries[3].ID)

	limited, err := s.RecentCalls(ctx, 2)
	require.NoError(t, err)
	require.Len(t, limited, 2)
}

func TestPruneCalls(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.AddJournalEntry(ctx, JournalEntry{Method: "old", StartedAt: time.Now().Add(-48 * time.Hour)}))
	require.NoError(t, s.AddJournalEntry(ctx, JournalEntry{Method: "new", StartedAt: time.Now()}))

	deleted, err := s.PruneCalls(ctx, 24*time.Hour)
	require.NoError(t, err)
	require.EqualValues(t, 1, deleted)

	entries, err := s.RecentCalls(ctx, 0)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Equal(t, "new", entries[0].Method)
}

func TestStoreAsRecorder(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"result":{"sessionID":"abc"}}`))
	}))
	defer server.Close()

	s := createTestStore(t)
	client, err := grooveshark.NewClient(grooveshark.Config{
		ClientKey:    "key",
		ClientSecret: "secret",
		BaseURL:      server.URL,
		Recorder:     s,
	})
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, client.Session().Start(ctx))

	// Validation failures never reach the transport, so nothing is recorded
	_, err = client.Session().AuthenticateToken(ctx, "")
	require.Error(t, err)

	entries, err := s.RecentCalls(ctx, 0)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Equal(t, "startSession", entries[0].Method)
	require.Equal(t, 200, entries[0].StatusCode)
	require.False(t, entries[0].Failed())
}

func TestStoreRecordsMissingSessionIDAsProtocolError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"result":{"success":true}}`))
	}))
	defer server.Close()

	s := createTestStore(t)
	client, err := grooveshark.NewClient(grooveshark.Config{
		ClientKey:    "key",
		ClientSecret: "secret",
		BaseURL:      server.URL,
		Recorder:     s,
	})
	require.NoError(t, err)

	ctx := context.Background()
	require.Error(t, client.Session().Start(ctx))

	entries, err := s.RecentCalls(ctx, 0)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Equal(t, "startSession", entries[0].Method)
	require.True(t, entries[0].Failed())
	require.Equal(t, KindProtocol, entries[0].ErrorKind)
	require.Contains(t, entries[0].Error, "sessionID")
}

func TestStreamMarks(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	over30, complete, err := s.LoadStreamMarks(ctx, "stream-key")
	require.NoError(t, err)
	require.False(t, over30)
	require.False(t, complete)

	require.NoError(t, s.SaveStreamMarks(ctx, "stream-key", 42, true, false))
	over30, complete, err = s.LoadStreamMarks(ctx, "stream-key")
	require.NoError(t, err)
	require.True(t, over30)
	require.False(t, complete)

	// Marks only accumulate
	require.NoError(t, s.SaveStreamMarks(ctx, "stream-key", 42, false, true))
	over30, complete, err = s.LoadStreamMarks(ctx, "stream-key")
	require.NoError(t, err)
	require.True(t, over30)
	require.True(t, complete)

	require.Error(t, s.SaveStreamMarks(ctx, "", 42, true, false))
}
