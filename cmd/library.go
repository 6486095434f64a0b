package cmd

import (
	"fmt"

	"github.com/jfmyers9/grooveshark/internal/format"
	"github.com/jfmyers9/grooveshark/pkg/grooveshark"
	"github.com/spf13/cobra"
)

var libraryCmd = &cobra.Command{
	Use:   "library",
	Short: "Manage the songs in your library",
}

var libraryListCmd = &cobra.Command{
	Use:   "list",
	Short: "List songs in your library",
	Args:  cobra.NoArgs,
	RunE:  runLibraryList,
}

var libraryAddCmd = &cobra.Command{
	Use:   "add <song-id>...",
	Short: "Add songs to your library",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runLibraryAdd,
}

var libraryRemoveCmd = &cobra.Command{
	Use:   "remove <song-id>...",
	Short: "Remove songs from your library",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runLibraryRemove,
}

func init() {
	libraryListCmd.Flags().Int("limit", 0, "Maximum number of songs")
	libraryListCmd.Flags().Int("page", 0, "Result page")

	libraryCmd.AddCommand(libraryListCmd, libraryAddCmd, libraryRemoveCmd)
	rootCmd.AddCommand(libraryCmd)
}

func runLibraryList(cmd *cobra.Command, args []string) error {
	return withSession(cmd, func(a *app) error {
		songs, err := a.client.Library().Songs(cmd.Context(), listOptions(cmd)...)
		if err != nil {
			return err
		}
		return format.Songs(cmd.OutOrStdout(), songs, a.cfg.Output.Width)
	})
}

func runLibraryAdd(cmd *cobra.Command, args []string) error {
	songIDs, err := parseIDs(args)
	if err != nil {
		return err
	}

	return withSession(cmd, func(a *app) error {
		songIDs, albumIDs, artistIDs, err := librarySongs(cmd, a, songIDs)
		if err != nil {
			return err
		}

		status, err := a.client.Library().Add(cmd.Context(), songIDs, albumIDs, artistIDs)
		if err != nil {
			return err
		}
		printStatus(cmd.OutOrStdout(), status, fmt.Sprintf("Added %d songs to your library", len(songIDs)))
		return nil
	})
}

func runLibraryRemove(cmd *cobra.Command, args []string) error {
	songIDs, err := parseIDs(args)
	if err != nil {
		return err
	}

	return withSession(cmd, func(a *app) error {
		songIDs, albumIDs, artistIDs, err := librarySongs(cmd, a, songIDs)
		if err != nil {
			return err
		}

		status, err := a.client.Library().Remove(cmd.Context(), songIDs, albumIDs, artistIDs)
		if err != nil {
			return err
		}
		printStatus(cmd.OutOrStdout(), status, fmt.Sprintf("Removed %d songs from your library", len(songIDs)))
		return nil
	})
}

// librarySongs looks up the album and artist of each song, since the
// library calls take them as parallel lists
func librarySongs(cmd *cobra.Command, a *app, ids []grooveshark.ID) (songIDs, albumIDs, artistIDs []grooveshark.ID, err error) {
	songs, err := a.client.Songs().Info(cmd.Context(), ids)
	if err != nil {
		return nil, nil, nil, err
	}

	byID := make(map[grooveshark.ID]grooveshark.Song, len(songs))
	for _, song := range songs {
		byID[song.SongID] = song
	}

	for _, id := range ids {
		song, ok := byID[id]
		if !ok {
			return nil, nil, nil, fmt.Errorf("song %s not found", id)
		}
		songIDs = append(songIDs, song.SongID)
		albumIDs = append(albumIDs, song.AlbumID)
		artistIDs = append(artistIDs, song.ArtistID)
	}
	return songIDs, albumIDs, artistIDs, nil
}
