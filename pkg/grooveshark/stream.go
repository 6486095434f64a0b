package grooveshark

import (
	"context"
)

// StreamService resolves stream locations and reports playback progress.
//
// The API expects MarkOver30Seconds once a stream has played for thirty
// seconds and MarkComplete when it finishes.
type StreamService struct {
	client *Client
}

// Server returns a stream key and URL for a song. Accepts WithLowBitrate.
func (s *StreamService) Server(ctx context.Context, songID ID, country Country, opts ...Option) (*StreamServer, error) {
	params := Params{
		"songID":  songID,
		"country": country,
	}.with(opts)

	var server StreamServer
	if err := s.client.call(ctx, "getStreamKeyStreamServer", params, &server); err != nil {
		return nil, err
	}
	return &server, nil
}

// MarkOver30Seconds reports that a stream passed thirty seconds.
func (s *StreamService) MarkOver30Seconds(ctx context.Context, streamKey string, streamServerID ID) (*Status, error) {
	return s.client.status(ctx, "markStreamKeyOver30Secs", Params{
		"streamKey":      streamKey,
		"streamServerID": streamServerID,
	})
}

// MarkComplete reports that a song finished playing.
func (s *StreamService) MarkComplete(ctx context.Context, songID ID, streamKey string, streamServerID ID) (*Status, error) {
	return s.client.status(ctx, "markSongComplete", Params{
		"songID":         songID,
		"streamKey":      streamKey,
		"streamServerID": streamServerID,
	})
}
