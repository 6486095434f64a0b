package grooveshark

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"time"
)

const (
	// DefaultBaseURL is the default Grooveshark API endpoint.
	DefaultBaseURL = "https://api.grooveshark.com/ws3.php"

	// DefaultConnectTimeout bounds dialing and the TLS handshake.
	DefaultConnectTimeout = 2 * time.Second

	// DefaultTimeout bounds a whole call, body included.
	DefaultTimeout = 6 * time.Second

	userAgentPrefix = "grooveshark-go-"

	// maxResponseBodySize caps how much of a response body is read.
	maxResponseBodySize = 8 << 20
)

// Request is the envelope sent for every call. Field order is significant:
// it fixes the serialized form the signature is computed over.
type Request struct {
	Method     string        `json:"method"`
	Parameters Params        `json:"parameters"`
	Header     RequestHeader `json:"header"`
}

// RequestHeader identifies the caller. SessionID is omitted until a
// session has been started.
type RequestHeader struct {
	WSKey     string `json:"wsKey"`
	SessionID string `json:"sessionID,omitempty"`
}

// Response is a successfully decoded response envelope.
type Response struct {
	Result json.RawMessage
}

// ErrorPayload is one entry of the "errors" array.
type ErrorPayload struct {
	Message *string `json:"message"`
	Code    *int    `json:"code"`
}

type envelope struct {
	Result json.RawMessage `json:"result"`
	Errors json.RawMessage `json:"errors"`
}

// Decode unmarshals the result into v. A missing or null result leaves v
// untouched.
func (r *Response) Decode(v any) error {
	if isNull(r.Result) {
		return nil
	}
	return json.Unmarshal(r.Result, v)
}

// Field returns the raw value of a top-level result field.
func (r *Response) Field(name string) (json.RawMessage, bool) {
	if isNull(r.Result) {
		return nil, false
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(r.Result, &fields); err != nil {
		return nil, false
	}
	raw, ok := fields[name]
	if !ok || isNull(raw) {
		return nil, false
	}
	return raw, true
}

// Call describes a completed round trip. It is handed to the Recorder.
type Call struct {
	Method     string
	StatusCode int // 0 when no response was received
	StartedAt  time.Time
	Duration   time.Duration
	Err        error
}

// Recorder is an optional observer notified after every call.
type Recorder interface {
	RecordCall(ctx context.Context, call Call)
}

// TransportConfig configures a Transport.
type TransportConfig struct {
	HTTPClient *http.Client // Optional: defaults to a client with the fixed timeouts
	BaseURL    string       // Optional: defaults to DefaultBaseURL
	Logger     Logger       // Optional
	Recorder   Recorder     // Optional
}

// Transport serializes, signs and sends calls. It holds no session state and
// is safe for concurrent use; every call carries its own State snapshot.
type Transport struct {
	httpClient *http.Client
	baseURL    string
	logger     Logger
	recorder   Recorder
}

// NewTransport creates a Transport.
func NewTransport(cfg TransportConfig) (*Transport, error) {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if _, err := url.Parse(baseURL); err != nil {
		return nil, fmt.Errorf("%w: base URL: %v", ErrInvalidConfig, err)
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = NewHTTPClient(DefaultConnectTimeout, DefaultTimeout)
	}

	return &Transport{
		httpClient: httpClient,
		baseURL:    baseURL,
		logger:     cfg.Logger,
		recorder:   cfg.Recorder,
	}, nil
}

// NewHTTPClient returns an HTTP client with the given connect and total
// timeouts. Certificate verification is left enabled.
func NewHTTPClient(connectTimeout, timeout time.Duration) *http.Client {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.DialContext = (&net.Dialer{
		Timeout:   connectTimeout,
		KeepAlive: 30 * time.Second,
	}).DialContext
	transport.TLSHandshakeTimeout = connectTimeout

	return &http.Client{
		Timeout:   timeout,
		Transport: transport,
	}
}

// Send performs a single call.
//
// It handles:
// - Envelope construction from the session snapshot
// - Signing the exact body bytes that are transmitted
// - Status and error-envelope decoding into typed errors
//
// There are no retries. Failures are *TransportError, *APIError,
// *ProtocolError or *ValidationError.
func (t *Transport) Send(ctx context.Context, method string, params Params, st State) (*Response, error) {
	return t.send(ctx, method, params, st, nil)
}

// send is Send with an optional check of the decoded response. The check
// runs before the Recorder is notified, so errors found while reading the
// result are recorded with the call.
func (t *Transport) send(ctx context.Context, method string, params Params, st State, check func(*Response) error) (*Response, error) {
	if method == "" {
		return nil, &ValidationError{Op: "send", Message: "method is required"}
	}

	call := Call{Method: method, StartedAt: time.Now()}
	resp, err := t.roundTrip(ctx, method, params, st, &call)
	if err == nil && check != nil {
		err = check(resp)
	}
	call.Duration = time.Since(call.StartedAt)
	call.Err = err

	if t.recorder != nil {
		t.recorder.RecordCall(ctx, call)
	}
	if err != nil {
		t.logDebugf("grooveshark: %s failed after %s: %v", method, call.Duration, err)
		return nil, err
	}

	t.logDebugf("grooveshark: %s succeeded in %s", method, call.Duration)
	return resp, nil
}

func (t *Transport) roundTrip(ctx context.Context, method string, params Params, st State, call *Call) (*Response, error) {
	body, err := encodeRequest(method, params, st)
	if err != nil {
		return nil, &ValidationError{Op: method, Message: fmt.Sprintf("parameters are not serializable: %v", err)}
	}

	endpoint, err := signedURL(t.baseURL, calculateSignature(body, st.Secret))
	if err != nil {
		return nil, &TransportError{Method: method, Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, &TransportError{Method: method, Err: fmt.Errorf("failed to create request: %w", err)}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgentPrefix+st.Key)

	t.logDebugf("grooveshark: calling %s (session=%t)", method, st.ID != "")

	resp, err := t.httpClient.Do(req)
	if err != nil {
		return nil, &TransportError{Method: method, Err: err}
	}
	call.StatusCode = resp.StatusCode

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBodySize))
	_ = resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &TransportError{Method: method, StatusCode: resp.StatusCode}
	}
	if err != nil {
		return nil, &TransportError{Method: method, StatusCode: resp.StatusCode, Err: fmt.Errorf("failed to read response: %w", err)}
	}

	return decodeResponse(method, raw)
}

// encodeRequest produces the canonical body for a call: envelope fields in
// declaration order, map keys sorted, no HTML escaping, no trailing newline.
func encodeRequest(method string, params Params, st State) ([]byte, error) {
	if params == nil {
		params = Params{}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	err := enc.Encode(Request{
		Method:     method,
		Parameters: params,
		Header: RequestHeader{
			WSKey:     st.Key,
			SessionID: st.ID,
		},
	})
	if err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

func signedURL(base, sig string) (string, error) {
	u, err := url.Parse(base)
	if err != nil {
		return "", err
	}
	q := u.Query()
	q.Set("sig", sig)
	u.RawQuery = q.Encode()
	return u.String(), nil
}

func decodeResponse(method string, raw []byte) (*Response, error) {
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, &ProtocolError{Method: method, Err: fmt.Errorf("failed to parse JSON response: %w", err)}
	}

	if !isNull(env.Errors) {
		return nil, firstAPIError(env.Errors)
	}

	return &Response{Result: env.Result}, nil
}

// firstAPIError converts the errors payload into an *APIError. Anything
// other than a first entry carrying both message and code is reported as
// an unknown exception.
func firstAPIError(raw json.RawMessage) *APIError {
	var payloads []ErrorPayload
	if err := json.Unmarshal(raw, &payloads); err != nil || len(payloads) == 0 {
		return &APIError{Message: unknownAPIErrorMessage}
	}

	first := payloads[0]
	if first.Message == nil || first.Code == nil {
		return &APIError{Message: unknownAPIErrorMessage}
	}
	return &APIError{Code: *first.Code, Message: *first.Message}
}

func isNull(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}

// logDebugf logs a debug message if a logger is configured.
func (t *Transport) logDebugf(format string, args ...interface{}) {
	if t.logger != nil {
		t.logger.Debugf(format, args...)
	}
}
