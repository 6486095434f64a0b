package grooveshark

import (
	"errors"
	"fmt"
	"net"
)

// ValidationError is returned when caller-supplied arguments fail a
// precondition. It is always returned before any network I/O.
type ValidationError struct {
	Op      string // Operation that rejected the input, e.g. "authenticateEx"
	Message string // Human readable reason
	Err     error  // Optional sentinel, e.g. ErrNoSession
}

// Error returns the error message.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("grooveshark: %s: %s", e.Op, e.Message)
}

// Unwrap returns the wrapped sentinel, if any.
func (e *ValidationError) Unwrap() error {
	return e.Err
}

// TransportError is returned when the HTTP exchange itself failed: the
// request could not be sent, timed out, or the server answered with a
// status other than 200.
//
// StatusCode is zero when no response was received.
type TransportError struct {
	Method     string
	StatusCode int
	Err        error
}

// Error returns the error message.
func (e *TransportError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("grooveshark: %s: unexpected status code %d", e.Method, e.StatusCode)
	}
	return fmt.Sprintf("grooveshark: %s: request failed: %v", e.Method, e.Err)
}

// Unwrap returns the underlying network error, if any.
func (e *TransportError) Unwrap() error {
	return e.Err
}

// Timeout reports whether the failure was caused by a timeout.
func (e *TransportError) Timeout() bool {
	var netErr net.Error
	if errors.As(e.Err, &netErr) {
		return netErr.Timeout()
	}
	return false
}

// APIError represents an error payload returned by the Grooveshark API.
//
// The API reports failures as {"errors":[{"message":..., "code":...}]} with
// an HTTP 200 status. Only the first entry is surfaced.
type APIError struct {
	Code    int    // Grooveshark error code, 0 when the payload was malformed
	Message string // Error message from Grooveshark
}

// Error returns the error message.
func (e *APIError) Error() string {
	return fmt.Sprintf("grooveshark: error %d: %s", e.Code, e.Message)
}

// Is reports whether target is an *APIError with the same code.
//
// This allows errors.Is(err, &grooveshark.APIError{Code: 11}).
func (e *APIError) Is(target error) bool {
	t, ok := target.(*APIError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// ProtocolError is returned when the server answered 200 but the body
// violates the response contract: it is not JSON, or a required field such
// as sessionID or UserID is missing.
type ProtocolError struct {
	Method string
	Field  string // Missing field, empty when Err describes the problem
	Err    error
}

// Error returns the error message.
func (e *ProtocolError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("grooveshark: %s: bad response: missing %s", e.Method, e.Field)
	}
	return fmt.Sprintf("grooveshark: %s: bad response: %v", e.Method, e.Err)
}

// Unwrap returns the underlying decode error, if any.
func (e *ProtocolError) Unwrap() error {
	return e.Err
}

// unknownAPIErrorMessage is used when the errors payload lacks a message or code.
const unknownAPIErrorMessage = "Unknown Exception"

// Predefined errors for common cases.
var (
	// ErrNoSession is wrapped by the ValidationError returned when an
	// operation needs a session ID and none has been started.
	ErrNoSession = errors.New("grooveshark: no active session")

	// ErrInvalidConfig is returned when client configuration is invalid.
	ErrInvalidConfig = errors.New("grooveshark: invalid configuration")
)
