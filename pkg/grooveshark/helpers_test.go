package grooveshark

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"
)

const (
	testKey    = "test-ws-key"
	testSecret = "test-secret"
)

// recordedRequest is what the fake API saw for one call.
type recordedRequest struct {
	HTTPMethod string
	Query      url.Values
	Header     http.Header
	Body       []byte
	Envelope   Request
}

// fakeAPI is an httptest server speaking the Grooveshark envelope protocol.
type fakeAPI struct {
	t       *testing.T
	server  *httptest.Server
	respond func(rec recordedRequest) (int, string)

	mu       sync.Mutex
	requests []recordedRequest
}

func newFakeAPI(t *testing.T, respond func(rec recordedRequest) (int, string)) *fakeAPI {
	t.Helper()

	f := &fakeAPI{t: t, respond: respond}
	f.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(r.Body)
		if err != nil {
			t.Errorf("failed to read request body: %v", err)
		}

		rec := recordedRequest{
			HTTPMethod: r.Method,
			Query:      r.URL.Query(),
			Header:     r.Header.Clone(),
			Body:       body,
		}
		if err := json.Unmarshal(body, &rec.Envelope); err != nil {
			t.Errorf("request body is not a JSON envelope: %v", err)
		}

		f.mu.Lock()
		f.requests = append(f.requests, rec)
		f.mu.Unlock()

		status, response := f.respond(rec)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		if _, err := w.Write([]byte(response)); err != nil {
			t.Errorf("failed to write response body: %v", err)
		}
	}))
	t.Cleanup(f.server.Close)

	return f
}

// respondWith answers every request with the same status and body.
func respondWith(status int, body string) func(recordedRequest) (int, string) {
	return func(recordedRequest) (int, string) {
		return status, body
	}
}

func (f *fakeAPI) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.requests)
}

func (f *fakeAPI) request(i int) recordedRequest {
	f.t.Helper()
	f.mu.Lock()
	defer f.mu.Unlock()
	if i >= len(f.requests) {
		f.t.Fatalf("expected at least %d requests, got %d", i+1, len(f.requests))
	}
	return f.requests[i]
}

func (f *fakeAPI) last() recordedRequest {
	f.t.Helper()
	return f.request(f.count() - 1)
}

func newTestClient(t *testing.T, f *fakeAPI) *Client {
	t.Helper()

	client, err := NewClient(Config{
		ClientKey:    testKey,
		ClientSecret: testSecret,
		BaseURL:      f.server.URL,
	})
	if err != nil {
		t.Fatalf("failed to create client: %v", err)
	}
	return client
}
