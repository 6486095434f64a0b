package grooveshark

import (
	"context"
)

// Credentials identify an API client. Key is sent as the wsKey header on
// every call; Secret only ever feeds the request signature.
type Credentials struct {
	Key    string
	Secret string
}

// State is an immutable snapshot of a Session, taken for each call.
type State struct {
	Credentials
	ID string // Server-issued session ID, empty before Start
}

// Session owns client credentials and the server-issued session ID.
//
// A Session moves from anonymous (no ID) to active (after Start) and is
// authenticated once AuthenticateCredentials or AuthenticateToken succeeds.
// Authentication is tracked only informationally through User; the server
// decides what a session may do.
//
// A Session is not safe for concurrent mutation. Callers that share one
// across goroutines must serialize lifecycle calls themselves; callers that
// need independence should create one Session each.
type Session struct {
	transport *Transport
	creds     Credentials
	id        string
	user      *User
}

// NewSession creates an anonymous session that sends through t.
func NewSession(t *Transport, creds Credentials) *Session {
	return &Session{
		transport: t,
		creds:     creds,
	}
}

// ID returns the session ID, or "" if no session has been started.
func (s *Session) ID() string {
	return s.id
}

// Credentials returns the client credentials.
func (s *Session) Credentials() Credentials {
	return s.creds
}

// State returns a snapshot suitable for Transport.Send.
func (s *Session) State() State {
	return State{Credentials: s.creds, ID: s.id}
}

// User returns the user recorded by the last successful authentication, or
// nil. It is informational; the client never enforces it.
func (s *Session) User() *User {
	return s.user
}

// Resume adopts a previously issued session ID, e.g. one saved by an
// earlier process.
func (s *Session) Resume(id string) {
	s.id = id
	s.user = nil
}

// Reset forgets the session ID and any authenticated user.
func (s *Session) Reset() {
	s.id = ""
	s.user = nil
}

// Start asks the server for a new session ID and stores it.
//
// On a response without a sessionID the session is left unchanged and a
// *ProtocolError is returned.
func (s *Session) Start(ctx context.Context) error {
	const method = "startSession"

	var result struct {
		SessionID string `json:"sessionID"`
	}
	_, err := s.transport.send(ctx, method, nil, s.State(), func(resp *Response) error {
		if err := resp.Decode(&result); err != nil {
			return &ProtocolError{Method: method, Err: err}
		}
		if result.SessionID == "" {
			return &ProtocolError{Method: method, Field: "sessionID"}
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.id = result.SessionID
	s.user = nil
	return nil
}

// AuthenticateCredentials logs a user into the session with a username (or
// email) and password.
//
// Example:
//
//	if err := client.Session().Start(ctx); err != nil {
//	    log.Fatal(err)
//	}
//	user, err := client.Session().AuthenticateCredentials(ctx, "user", "secret")
func (s *Session) AuthenticateCredentials(ctx context.Context, username, password string) (*User, error) {
	const method = "authenticateEx"

	if username == "" || password == "" {
		return nil, &ValidationError{Op: method, Message: "username and password are required"}
	}

	return s.authenticate(ctx, method, Params{
		"login":    username,
		"password": password,
	})
}

// AuthenticateToken logs a user into the session with an access token.
//
// Requires a valid session ID on the server side.
func (s *Session) AuthenticateToken(ctx context.Context, token string) (*User, error) {
	const method = "authenticateToken"

	if token == "" {
		return nil, &ValidationError{Op: method, Message: "token is required"}
	}

	return s.authenticate(ctx, method, Params{"token": token})
}

func (s *Session) authenticate(ctx context.Context, method string, params Params) (*User, error) {
	var user User
	_, err := s.transport.send(ctx, method, params, s.State(), func(resp *Response) error {
		if err := resp.Decode(&user); err != nil {
			return &ProtocolError{Method: method, Err: err}
		}
		if user.UserID == 0 {
			return &ProtocolError{Method: method, Field: "UserID"}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.user = &user
	return &user, nil
}

// Logout logs the authenticated user out of the current session.
//
// The session ID is kept: the server-side session stays valid and further
// anonymous calls may use it. Only User is cleared. Call Reset or Start to
// drop or replace the ID.
func (s *Session) Logout(ctx context.Context) (*Status, error) {
	const method = "logout"

	if s.id == "" {
		return nil, &ValidationError{Op: method, Message: "no active session", Err: ErrNoSession}
	}

	var status Status
	if _, err := s.transport.send(ctx, method, nil, s.State(), decodeInto(method, &status)); err != nil {
		return nil, err
	}

	s.user = nil
	return &status, nil
}
