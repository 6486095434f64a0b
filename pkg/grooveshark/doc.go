// Package grooveshark provides a client library for the Grooveshark public
// API v3.
//
// # Overview
//
// Every call is a JSON envelope POSTed to a single endpoint:
//
//	{"method":"getCountry","parameters":{},"header":{"wsKey":"key","sessionID":"abc"}}
//
// The body is signed with HMAC-MD5 keyed by the client secret and the
// signature is sent as the sig query parameter. The exact bytes that are
// signed are the bytes sent.
//
// # Installation
//
//	go get github.com/jfmyers9/grooveshark/pkg/grooveshark
//
// # Quick Start
//
//	client, err := grooveshark.NewClient(grooveshark.Config{
//	    ClientKey:    "your-ws-key",
//	    ClientSecret: "your-secret",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	country, err := client.Country(ctx)
//
// # Sessions
//
// Calls that act on behalf of a user need a session:
//
//  1. Start a session to obtain a session ID
//  2. Authenticate with credentials or a token
//  3. Make user calls
//  4. Log out
//
// Example:
//
//	session := client.Session()
//	if err := session.Start(ctx); err != nil {
//	    log.Fatal(err)
//	}
//	if _, err := session.AuthenticateCredentials(ctx, "user", "password"); err != nil {
//	    log.Fatal(err)
//	}
//	playlists, err := client.Playlists().List(ctx, grooveshark.WithLimit(20))
//	_, err = session.Logout(ctx)
//
// Logout keeps the session ID: the server-side session remains usable for
// anonymous calls. Use Session.Reset or Session.Start to drop or replace it.
//
// A Session is a plain value with no locking. Share one across goroutines
// only if lifecycle calls are serialized; otherwise give each caller its own
// via Client.NewSession and Client.SetSession, or send through the Transport
// directly with a Session.State snapshot.
//
// # Optional Parameters
//
// Optional parameters are given as Options. An Option that is not passed is
// not sent at all:
//
//	songs, err := client.Search().Songs(ctx, "query", *country,
//	    grooveshark.WithLimit(10),
//	    grooveshark.WithOffset(20),
//	)
//
// # Error Handling
//
// Errors are typed:
//
//   - *ValidationError: bad arguments, returned before any network I/O
//   - *TransportError: network failure, timeout or non-200 status
//   - *APIError: the service answered with an errors payload
//   - *ProtocolError: a 200 response missing a required field
//
// Example:
//
//	_, err := client.Users().Info(ctx)
//	var apiErr *grooveshark.APIError
//	if errors.As(err, &apiErr) {
//	    log.Printf("grooveshark refused: %d %s", apiErr.Code, apiErr.Message)
//	}
//
// Nothing is retried.
//
// # Transport Security
//
// The default HTTP client verifies TLS certificates and applies a 2 second
// connect timeout and a 6 second total timeout. A custom *http.Client can be
// supplied through Config.HTTPClient.
package grooveshark
