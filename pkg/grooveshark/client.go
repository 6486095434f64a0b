package grooveshark

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

// Config holds client configuration.
type Config struct {
	ClientKey    string       // Required: Grooveshark wsKey
	ClientSecret string       // Required: Grooveshark shared secret
	SessionID    string       // Optional: previously issued session ID to resume
	HTTPClient   *http.Client // Optional: HTTP client (defaults to NewHTTPClient with the fixed timeouts)
	BaseURL      string       // Optional: API endpoint (defaults to DefaultBaseURL, used for testing)
	Logger       Logger       // Optional: Logger interface for debug logging
	Recorder     Recorder     // Optional: notified after every call
}

// Logger is an optional interface for logging.
type Logger interface {
	// Debugf logs a debug message with format and arguments.
	Debugf(format string, args ...interface{})
}

// Client is the main entry point for Grooveshark API operations.
//
// It owns a Transport and a current Session. Service methods send with a
// snapshot of whichever Session is current at call time.
type Client struct {
	transport *Transport
	session   *Session

	users     *UserService
	playlists *PlaylistService
	search    *SearchService
	library   *LibraryService
	favorites *FavoritesService
	songs     *SongService
	stream    *StreamService
}

// NewClient creates a new Grooveshark API client.
//
// Returns an error if required configuration (ClientKey, ClientSecret) is
// missing.
func NewClient(cfg Config) (*Client, error) {
	if cfg.ClientKey == "" {
		return nil, fmt.Errorf("%w: ClientKey is required", ErrInvalidConfig)
	}
	if cfg.ClientSecret == "" {
		return nil, fmt.Errorf("%w: ClientSecret is required", ErrInvalidConfig)
	}

	transport, err := NewTransport(TransportConfig{
		HTTPClient: cfg.HTTPClient,
		BaseURL:    cfg.BaseURL,
		Logger:     cfg.Logger,
		Recorder:   cfg.Recorder,
	})
	if err != nil {
		return nil, err
	}

	session := NewSession(transport, Credentials{Key: cfg.ClientKey, Secret: cfg.ClientSecret})
	if cfg.SessionID != "" {
		session.Resume(cfg.SessionID)
	}

	c := &Client{
		transport: transport,
		session:   session,
	}

	c.users = &UserService{client: c}
	c.playlists = &PlaylistService{client: c}
	c.search = &SearchService{client: c}
	c.library = &LibraryService{client: c}
	c.favorites = &FavoritesService{client: c}
	c.songs = &SongService{client: c}
	c.stream = &StreamService{client: c}

	return c, nil
}

// Session returns the current session.
func (c *Client) Session() *Session {
	return c.session
}

// SetSession replaces the current session. Not safe to call concurrently
// with other methods.
func (c *Client) SetSession(s *Session) {
	c.session = s
}

// NewSession returns a fresh anonymous session with the client's
// credentials, independent from the current one.
func (c *Client) NewSession() *Session {
	return NewSession(c.transport, c.session.Credentials())
}

// Transport returns the underlying transport.
func (c *Client) Transport() *Transport {
	return c.transport
}

// Users returns the user service.
func (c *Client) Users() *UserService { return c.users }

// Playlists returns the playlist service.
func (c *Client) Playlists() *PlaylistService { return c.playlists }

// Search returns the search service.
func (c *Client) Search() *SearchService { return c.search }

// Library returns the library service.
func (c *Client) Library() *LibraryService { return c.library }

// Favorites returns the favorites service.
func (c *Client) Favorites() *FavoritesService { return c.favorites }

// Songs returns the song service.
func (c *Client) Songs() *SongService { return c.songs }

// Stream returns the stream service.
func (c *Client) Stream() *StreamService { return c.stream }

// Country returns the country of the requesting IP address.
func (c *Client) Country(ctx context.Context) (*Country, error) {
	var country Country
	if err := c.call(ctx, "getCountry", Params{}, &country); err != nil {
		return nil, err
	}
	return &country, nil
}

// CountryForIP returns the country of the given IP address.
func (c *Client) CountryForIP(ctx context.Context, ip string) (*Country, error) {
	var country Country
	if err := c.call(ctx, "getCountry", Params{"ip": ip}, &country); err != nil {
		return nil, err
	}
	return &country, nil
}

// Ping checks that the service is reachable and the credentials are accepted.
func (c *Client) Ping(ctx context.Context) (string, error) {
	var pong string
	if err := c.call(ctx, "pingService", Params{}, &pong); err != nil {
		return "", err
	}
	return pong, nil
}

// call sends method with the current session and decodes the result into out.
func (c *Client) call(ctx context.Context, method string, params Params, out any) error {
	_, err := c.transport.send(ctx, method, params, c.session.State(), decodeInto(method, out))
	return err
}

// callField is like call but decodes only the named field of the result.
// A missing field leaves out untouched.
func (c *Client) callField(ctx context.Context, method string, params Params, field string, out any) error {
	_, err := c.transport.send(ctx, method, params, c.session.State(), func(resp *Response) error {
		raw, ok := resp.Field(field)
		if !ok {
			return nil
		}
		if err := json.Unmarshal(raw, out); err != nil {
			return &ProtocolError{Method: method, Err: err}
		}
		return nil
	})
	return err
}

// decodeInto returns a response check that decodes the result into out.
func decodeInto(method string, out any) func(*Response) error {
	return func(resp *Response) error {
		if err := resp.Decode(out); err != nil {
			return &ProtocolError{Method: method, Err: err}
		}
		return nil
	}
}
