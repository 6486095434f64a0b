package grooveshark

import (
	"context"
)

// PlaylistService provides playlist operations.
type PlaylistService struct {
	client *Client
}

// Get returns playlist info and songs.
//
// Accepts WithLimit.
func (p *PlaylistService) Get(ctx context.Context, playlistID ID, opts ...Option) (*PlaylistDetails, error) {
	params := Params{"playlistID": playlistID}.with(opts)

	var details PlaylistDetails
	if err := p.client.call(ctx, "getPlaylist", params, &details); err != nil {
		return nil, err
	}
	return &details, nil
}

// Info returns playlist metadata without songs.
func (p *PlaylistService) Info(ctx context.Context, playlistID ID) (*PlaylistDetails, error) {
	var details PlaylistDetails
	if err := p.client.call(ctx, "getPlaylistInfo", Params{"playlistID": playlistID}, &details); err != nil {
		return nil, err
	}
	return &details, nil
}

// Songs returns the songs of a playlist. Accepts WithLimit.
func (p *PlaylistService) Songs(ctx context.Context, playlistID ID, opts ...Option) ([]Song, error) {
	params := Params{"playlistID": playlistID}.with(opts)

	var songs []Song
	if err := p.client.callField(ctx, "getPlaylistSongs", params, "songs", &songs); err != nil {
		return nil, err
	}
	return songs, nil
}

// List returns the playlists of the logged-in user. Accepts WithLimit.
func (p *PlaylistService) List(ctx context.Context, opts ...Option) ([]Playlist, error) {
	var playlists []Playlist
	if err := p.client.callField(ctx, "getUserPlaylists", Params{}.with(opts), "playlists", &playlists); err != nil {
		return nil, err
	}
	return playlists, nil
}

// ListByUserID returns the playlists of any user. Accepts WithLimit.
func (p *PlaylistService) ListByUserID(ctx context.Context, userID ID, opts ...Option) ([]Playlist, error) {
	params := Params{"userID": userID}.with(opts)

	var playlists []Playlist
	if err := p.client.callField(ctx, "getUserPlaylistsByUserID", params, "playlists", &playlists); err != nil {
		return nil, err
	}
	return playlists, nil
}

// Create creates a playlist owned by the logged-in user.
func (p *PlaylistService) Create(ctx context.Context, name string, songIDs []ID) (*CreatedPlaylist, error) {
	params := Params{
		"name":    name,
		"songIDs": idList(songIDs),
	}

	var created CreatedPlaylist
	if err := p.client.call(ctx, "createPlaylist", params, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// Rename renames a playlist.
func (p *PlaylistService) Rename(ctx context.Context, playlistID ID, name string) (*Status, error) {
	return p.client.status(ctx, "renamePlaylist", Params{
		"playlistID": playlistID,
		"name":       name,
	})
}

// Delete deletes a playlist.
func (p *PlaylistService) Delete(ctx context.Context, playlistID ID) (*Status, error) {
	return p.client.status(ctx, "deletePlaylist", Params{"playlistID": playlistID})
}

// SetSongs replaces the songs of a playlist, in order.
func (p *PlaylistService) SetSongs(ctx context.Context, playlistID ID, songIDs []ID) (*Status, error) {
	return p.client.status(ctx, "setPlaylistSongs", Params{
		"playlistID": playlistID,
		"songIDs":    idList(songIDs),
	})
}

// status sends a mutation whose result is a bare success flag.
func (c *Client) status(ctx context.Context, method string, params Params) (*Status, error) {
	var status Status
	if err := c.call(ctx, method, params, &status); err != nil {
		return nil, err
	}
	return &status, nil
}

// idList makes sure an empty list is sent as [] rather than null.
func idList(ids []ID) []ID {
	if ids == nil {
		return []ID{}
	}
	return ids
}
