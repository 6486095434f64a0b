package grooveshark

import (
	"context"
)

// LibraryService manages the logged-in user's library.
type LibraryService struct {
	client *Client
}

// Songs returns songs from the user's library. Accepts WithLimit and WithPage.
func (l *LibraryService) Songs(ctx context.Context, opts ...Option) ([]Song, error) {
	var songs []Song
	if err := l.client.callField(ctx, "getUserLibrarySongs", Params{}.with(opts), "songs", &songs); err != nil {
		return nil, err
	}
	return songs, nil
}

// Add adds songs to the library. albumIDs and artistIDs are parallel to
// songIDs, as the API requires.
func (l *LibraryService) Add(ctx context.Context, songIDs, albumIDs, artistIDs []ID) (*Status, error) {
	return l.client.status(ctx, "addUserLibrarySongs", libraryParams(songIDs, albumIDs, artistIDs))
}

// Remove removes songs from the library.
func (l *LibraryService) Remove(ctx context.Context, songIDs, albumIDs, artistIDs []ID) (*Status, error) {
	return l.client.status(ctx, "removeUserLibrarySongs", libraryParams(songIDs, albumIDs, artistIDs))
}

func libraryParams(songIDs, albumIDs, artistIDs []ID) Params {
	return Params{
		"songIDs":   idList(songIDs),
		"albumIDs":  idList(albumIDs),
		"artistIDs": idList(artistIDs),
	}
}
