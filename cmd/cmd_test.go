package cmd

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/jfmyers9/grooveshark/pkg/grooveshark"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseIDs(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		want    []grooveshark.ID
		wantErr bool
	}{
		{name: "empty", args: nil, want: []grooveshark.ID{}},
		{name: "single", args: []string{"42"}, want: []grooveshark.ID{42}},
		{name: "several", args: []string{"1", "2", "3"}, want: []grooveshark.ID{1, 2, 3}},
		{name: "not a number", args: []string{"abc"}, wantErr: true},
		{name: "zero", args: []string{"0"}, wantErr: true},
		{name: "negative", args: []string{"-5"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseIDs(tt.args)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestListOptionsOnlyChangedFlags(t *testing.T) {
	c := &cobra.Command{Use: "test"}
	c.Flags().Int("limit", 0, "")
	c.Flags().Int("offset", 0, "")

	assert.Empty(t, listOptions(c))

	require.NoError(t, c.Flags().Set("limit", "5"))
	opts := listOptions(c)
	require.Len(t, opts, 1)

	params := grooveshark.Params{}
	for _, opt := range opts {
		opt(params)
	}
	assert.Equal(t, grooveshark.Params{"limit": 5}, params)
}

func TestDisplayName(t *testing.T) {
	assert.Equal(t, "Ada Lovelace", displayName("Ada", "Lovelace"))
	assert.Equal(t, "Ada", displayName("Ada", ""))
	assert.Equal(t, "", displayName("", ""))
}

// fakeGrooveshark answers envelope requests by method name
type fakeGrooveshark struct {
	mu      sync.Mutex
	methods []string
	results map[string]string
}

func newFakeGrooveshark(t *testing.T, results map[string]string) *fakeGrooveshark {
	t.Helper()

	f := &fakeGrooveshark{results: results}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		var req grooveshark.Request
		if err := json.Unmarshal(body, &req); err != nil {
			t.Errorf("invalid request body: %v", err)
		}

		f.mu.Lock()
		f.methods = append(f.methods, req.Method)
		f.mu.Unlock()

		result, ok := f.results[req.Method]
		if !ok {
			_, _ = io.WriteString(w, `{"errors":[{"code":7,"message":"Method not found"}]}`)
			return
		}
		_, _ = io.WriteString(w, `{"result":`+result+`}`)
	}))
	t.Cleanup(server.Close)

	t.Setenv("HOME", t.TempDir())
	t.Setenv("GROOVESHARK_API_CLIENT_KEY", "test-key")
	t.Setenv("GROOVESHARK_API_CLIENT_SECRET", "test-secret")
	t.Setenv("GROOVESHARK_API_BASE_URL", server.URL)

	dataDir = t.TempDir()
	t.Cleanup(func() { dataDir = "" })

	return f
}

func (f *fakeGrooveshark) calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.methods...)
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(io.Discard)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})

	err := rootCmd.Execute()
	return out.String(), err
}

func TestPingCommand(t *testing.T) {
	api := newFakeGrooveshark(t, map[string]string{
		"pingService": `"Hello, World"`,
	})

	out, err := execute(t, "ping")
	require.NoError(t, err)
	assert.Equal(t, "Hello, World\n", out)
	assert.Equal(t, []string{"pingService"}, api.calls())
}

func TestSearchSongsStartsAndReusesSession(t *testing.T) {
	api := newFakeGrooveshark(t, map[string]string{
		"startSession":         `{"success":true,"sessionID":"abc123"}`,
		"getCountry":           `{"ID":223,"CC1":0,"CC2":0,"CC3":0,"CC4":1073741824,"DMA":0,"IPR":0}`,
		"getSongSearchResults": `{"songs":[{"SongID":"1","SongName":"Around the World","ArtistID":2,"ArtistName":"Daft Punk","AlbumID":3,"AlbumName":"Homework"}]}`,
	})

	out, err := execute(t, "search", "songs", "daft", "punk")
	require.NoError(t, err)
	assert.Contains(t, out, "Around the World")
	assert.Equal(t, []string{"startSession", "getCountry", "getSongSearchResults"}, api.calls())

	// The saved session is resumed by the next invocation
	_, err = execute(t, "search", "songs", "daft", "punk")
	require.NoError(t, err)
	assert.Equal(t, []string{
		"startSession", "getCountry", "getSongSearchResults",
		"getCountry", "getSongSearchResults",
	}, api.calls())

	out, err = execute(t, "auth", "status")
	require.NoError(t, err)
	assert.Contains(t, out, "abc123")
	assert.Contains(t, out, "not logged in")
}

func TestAPIErrorIsReturned(t *testing.T) {
	newFakeGrooveshark(t, map[string]string{
		"startSession": `{"success":true,"sessionID":"abc123"}`,
	})

	_, err := execute(t, "whoami")
	require.Error(t, err)

	var apiErr *grooveshark.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 7, apiErr.Code)
}

func TestHistoryListsJournaledCalls(t *testing.T) {
	newFakeGrooveshark(t, map[string]string{
		"pingService": `"Hello, World"`,
	})

	_, err := execute(t, "ping")
	require.NoError(t, err)

	out, err := execute(t, "history")
	require.NoError(t, err)
	assert.Contains(t, out, "pingService")
	assert.Contains(t, out, "ok")
}

func TestLoginWithEmptyPasswordMakesNoCalls(t *testing.T) {
	api := newFakeGrooveshark(t, map[string]string{
		"startSession": `{"success":true,"sessionID":"abc123"}`,
	})

	rootCmd.SetIn(strings.NewReader("\n"))
	t.Cleanup(func() {
		rootCmd.SetIn(nil)
		passwordStdin = false
	})

	_, err := execute(t, "auth", "login", "bob", "--password-stdin")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "username and password are required")
	assert.Empty(t, api.calls())

	out, err := execute(t, "auth", "status")
	require.NoError(t, err)
	assert.Contains(t, out, "No saved session")
}

func TestSongReportSendsEachMarkOnceAcrossRuns(t *testing.T) {
	api := newFakeGrooveshark(t, map[string]string{
		"startSession":            `{"success":true,"sessionID":"abc123"}`,
		"markStreamKeyOver30Secs": `{"success":true}`,
		"markSongComplete":        `{"success":true}`,
	})

	report := func(played string) string {
		out, err := execute(t, "song", "report", "42",
			"--stream-key", "stream-key",
			"--server-id", "7",
			"--length", "3m",
			"--played", played,
		)
		require.NoError(t, err)
		return out
	}

	assert.Contains(t, report("45s"), "over 30 seconds")
	assert.Contains(t, report("90s"), "Nothing to report")
	assert.Contains(t, report("3m"), "complete")

	assert.Equal(t, []string{"startSession", "markStreamKeyOver30Secs", "markSongComplete"}, api.calls())
}

func TestMissingCredentials(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("GROOVESHARK_API_CLIENT_KEY", "")
	t.Setenv("GROOVESHARK_API_CLIENT_SECRET", "")

	_, err := execute(t, "ping")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "auth setup")
}
