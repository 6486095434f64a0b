package grooveshark

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// ID is a Grooveshark numeric identifier. The API is inconsistent about
// quoting IDs, so ID decodes from both JSON numbers and numeric strings.
type ID int64

// UnmarshalJSON implements json.Unmarshaler.
func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		if s == "" {
			*id = 0
			return nil
		}
		data = []byte(s)
	}
	n, err := strconv.ParseInt(string(data), 10, 64)
	if err != nil {
		return fmt.Errorf("grooveshark: invalid ID %q: %w", data, err)
	}
	*id = ID(n)
	return nil
}

// String returns the decimal form of the ID.
func (id ID) String() string {
	return strconv.FormatInt(int64(id), 10)
}

// User is the result of authenticateEx, authenticateToken and getUserInfo.
type User struct {
	UserID     ID     `json:"UserID"`
	Email      string `json:"Email,omitempty"`
	FName      string `json:"FName,omitempty"`
	LName      string `json:"LName,omitempty"`
	IsPlus     bool   `json:"IsPlus"`
	IsAnywhere bool   `json:"IsAnywhere"`
	IsPremium  bool   `json:"IsPremium"`
}

// Subscription is the result of getUserSubscriptionDetails. Either DateEnd
// or Recurring is meaningful depending on the subscription.
type Subscription struct {
	Type      string `json:"type"`
	DateEnd   string `json:"dateEnd,omitempty"`
	Recurring bool   `json:"recurring"`
}

// Status is the result of mutations that only report success.
type Status struct {
	Success bool `json:"success"`
}

// Country is the result of getCountry. It is passed back verbatim to calls
// that take a country, such as song search and stream lookup.
type Country struct {
	ID  int64 `json:"ID"`
	CC1 int64 `json:"CC1"`
	CC2 int64 `json:"CC2"`
	CC3 int64 `json:"CC3"`
	CC4 int64 `json:"CC4"`
	DMA int64 `json:"DMA"`
	IPR int64 `json:"IPR"`
}

// Song represents a track as returned by search, playlist and library calls.
type Song struct {
	SongID                ID     `json:"SongID"`
	SongName              string `json:"SongName"`
	ArtistID              ID     `json:"ArtistID"`
	ArtistName            string `json:"ArtistName"`
	AlbumID               ID     `json:"AlbumID"`
	AlbumName             string `json:"AlbumName"`
	CoverArtFilename      string `json:"CoverArtFilename,omitempty"`
	Popularity            int64  `json:"Popularity,omitempty"`
	IsLowBitrateAvailable bool   `json:"IsLowBitrateAvailable"`
	IsVerified            bool   `json:"IsVerified"`
	Flags                 int    `json:"Flags,omitempty"`
	Sort                  int    `json:"Sort,omitempty"` // Position within a playlist
}

// Artist is an artist search result.
type Artist struct {
	ArtistID   ID     `json:"ArtistID"`
	ArtistName string `json:"ArtistName"`
	IsVerified bool   `json:"IsVerified"`
}

// Album is an album search result.
type Album struct {
	AlbumID          ID     `json:"AlbumID"`
	AlbumName        string `json:"AlbumName"`
	ArtistID         ID     `json:"ArtistID"`
	ArtistName       string `json:"ArtistName"`
	CoverArtFilename string `json:"CoverArtFilename,omitempty"`
	IsVerified       bool   `json:"IsVerified"`
}

// Playlist is a playlist summary from listing and search calls.
type Playlist struct {
	PlaylistID   ID     `json:"PlaylistID"`
	PlaylistName string `json:"PlaylistName"`
	TSAdded      string `json:"TSAdded,omitempty"`
	UserID       ID     `json:"UserID,omitempty"`
	FName        string `json:"FName,omitempty"`
	LName        string `json:"LName,omitempty"`
}

// PlaylistDetails is the result of getPlaylist and getPlaylistInfo. Songs is
// only populated by getPlaylist.
type PlaylistDetails struct {
	PlaylistName        string `json:"PlaylistName"`
	PlaylistDescription string `json:"PlaylistDescription,omitempty"`
	TSModified          int64  `json:"TSModified,omitempty"`
	UserID              ID     `json:"UserID"`
	CoverArtFilename    string `json:"CoverArtFilename,omitempty"`
	Songs               []Song `json:"Songs,omitempty"`
}

// CreatedPlaylist is the result of createPlaylist.
type CreatedPlaylist struct {
	Success    bool `json:"success"`
	PlaylistID ID   `json:"playlistID"`
}

// StreamServer is the result of getStreamKeyStreamServer.
type StreamServer struct {
	StreamKey      string `json:"StreamKey"`
	URL            string `json:"url"`
	StreamServerID ID     `json:"StreamServerID"`
	USecs          int64  `json:"uSecs"`
}
