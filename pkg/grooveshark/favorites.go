package grooveshark

import (
	"context"
)

// FavoritesService manages the logged-in user's favorite songs.
type FavoritesService struct {
	client *Client
}

// Songs returns the user's favorite songs. Accepts WithLimit.
func (f *FavoritesService) Songs(ctx context.Context, opts ...Option) ([]Song, error) {
	var songs []Song
	if err := f.client.callField(ctx, "getUserFavoriteSongs", Params{}.with(opts), "songs", &songs); err != nil {
		return nil, err
	}
	return songs, nil
}

// Add marks a song as favorite.
func (f *FavoritesService) Add(ctx context.Context, songID ID) (*Status, error) {
	return f.client.status(ctx, "addUserFavoriteSong", Params{"songID": songID})
}

// Remove unmarks songs as favorite.
func (f *FavoritesService) Remove(ctx context.Context, songIDs []ID) (*Status, error) {
	return f.client.status(ctx, "removeUserFavoriteSongs", Params{"songIDs": idList(songIDs)})
}
