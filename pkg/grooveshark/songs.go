package grooveshark

import (
	"context"
)

// SongService provides song lookups outside of search.
type SongService struct {
	client *Client
}

// Info returns metadata for the given songs.
func (s *SongService) Info(ctx context.Context, songIDs []ID) ([]Song, error) {
	var songs []Song
	if err := s.client.callField(ctx, "getSongsInfo", Params{"songIDs": idList(songIDs)}, "songs", &songs); err != nil {
		return nil, err
	}
	return songs, nil
}

// PopularToday returns today's popular songs. Accepts WithLimit.
func (s *SongService) PopularToday(ctx context.Context, opts ...Option) ([]Song, error) {
	var songs []Song
	if err := s.client.callField(ctx, "getPopularSongsToday", Params{}.with(opts), "songs", &songs); err != nil {
		return nil, err
	}
	return songs, nil
}
