package format

import (
	"bytes"
	"strings"
	"testing"

	"github.com/jfmyers9/grooveshark/pkg/grooveshark"
	"github.com/mattn/go-runewidth"
	"github.com/stretchr/testify/require"
)

func TestPadToWidth(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		width int
		want  string
	}{
		{name: "disabled", text: "hello", width: 0, want: "hello"},
		{name: "exact", text: "hello", width: 5, want: "hello"},
		{name: "pad", text: "hi", width: 5, want: "hi   "},
		{name: "truncate", text: "hello world", width: 8, want: "hello..."},
		{name: "tiny width", text: "hello", width: 2, want: ".."},
		{name: "wide runes", text: "日本語の曲名", width: 7, want: "日本..."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := PadToWidth(tt.text, tt.width)
			require.Equal(t, tt.want, got)
			if tt.width > 0 {
				require.Equal(t, tt.width, runewidth.StringWidth(got))
			}
		})
	}
}

func TestTable(t *testing.T) {
	tbl := NewTable(6, "ID", "NAME")
	tbl.AddRow("1", "short")
	tbl.AddRow("22", "much longer name")
	tbl.AddRow("3")
	require.Equal(t, 3, tbl.Len())

	var buf bytes.Buffer
	require.NoError(t, tbl.Write(&buf))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Equal(t, []string{
		"ID  NAME",
		"1   short",
		"22  muc...",
		"3",
	}, lines)
}

func TestSongs(t *testing.T) {
	var buf bytes.Buffer
	err := Songs(&buf, []grooveshark.Song{
		{SongID: 101, SongName: "One More Time", ArtistName: "Daft Punk", AlbumName: "Discovery"},
	}, 0)
	require.NoError(t, err)
	require.Contains(t, buf.String(), "101  One More Time  Daft Punk  Discovery")
}
