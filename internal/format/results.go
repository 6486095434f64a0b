package format

import (
	"io"

	"github.com/jfmyers9/grooveshark/pkg/grooveshark"
)

// Songs writes a song table.
func Songs(w io.Writer, songs []grooveshark.Song, maxWidth int) error {
	t := NewTable(maxWidth, "ID", "TITLE", "ARTIST", "ALBUM")
	for _, s := range songs {
		t.AddRow(s.SongID.String(), s.SongName, s.ArtistName, s.AlbumName)
	}
	return t.Write(w)
}

// Playlists writes a playlist table.
func Playlists(w io.Writer, playlists []grooveshark.Playlist, maxWidth int) error {
	t := NewTable(maxWidth, "ID", "NAME", "OWNER", "ADDED")
	for _, p := range playlists {
		owner := p.FName
		if p.LName != "" {
			owner += " " + p.LName
		}
		t.AddRow(p.PlaylistID.String(), p.PlaylistName, owner, p.TSAdded)
	}
	return t.Write(w)
}

// Artists writes an artist table.
func Artists(w io.Writer, artists []grooveshark.Artist, maxWidth int) error {
	t := NewTable(maxWidth, "ID", "ARTIST", "VERIFIED")
	for _, a := range artists {
		t.AddRow(a.ArtistID.String(), a.ArtistName, yesNo(a.IsVerified))
	}
	return t.Write(w)
}

// Albums writes an album table.
func Albums(w io.Writer, albums []grooveshark.Album, maxWidth int) error {
	t := NewTable(maxWidth, "ID", "ALBUM", "ARTIST")
	for _, a := range albums {
		t.AddRow(a.AlbumID.String(), a.AlbumName, a.ArtistName)
	}
	return t.Write(w)
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
