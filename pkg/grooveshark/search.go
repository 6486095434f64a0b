package grooveshark

import (
	"context"
)

// SearchService provides catalog search.
type SearchService struct {
	client *Client
}

// Songs performs a song search. The country is the value returned by
// Client.Country and is required by the API.
//
// Accepts WithLimit and WithOffset.
//
// Example:
//
//	country, err := client.Country(ctx)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	songs, err := client.Search().Songs(ctx, "daft punk", *country, grooveshark.WithLimit(10))
func (s *SearchService) Songs(ctx context.Context, query string, country Country, opts ...Option) ([]Song, error) {
	params := Params{
		"query":   query,
		"country": country,
	}.with(opts)

	var songs []Song
	if err := s.client.callField(ctx, "getSongSearchResults", params, "songs", &songs); err != nil {
		return nil, err
	}
	return songs, nil
}

// Artists performs an artist search. Accepts WithLimit.
func (s *SearchService) Artists(ctx context.Context, query string, opts ...Option) ([]Artist, error) {
	var artists []Artist
	if err := s.client.callField(ctx, "getArtistSearchResults", Params{"query": query}.with(opts), "artists", &artists); err != nil {
		return nil, err
	}
	return artists, nil
}

// Albums performs an album search. Accepts WithLimit.
func (s *SearchService) Albums(ctx context.Context, query string, opts ...Option) ([]Album, error) {
	var albums []Album
	if err := s.client.callField(ctx, "getAlbumSearchResults", Params{"query": query}.with(opts), "albums", &albums); err != nil {
		return nil, err
	}
	return albums, nil
}

// Playlists performs a playlist search. Accepts WithLimit.
func (s *SearchService) Playlists(ctx context.Context, query string, opts ...Option) ([]Playlist, error) {
	var playlists []Playlist
	if err := s.client.callField(ctx, "getPlaylistSearchResults", Params{"query": query}.with(opts), "playlists", &playlists); err != nil {
		return nil, err
	}
	return playlists, nil
}
