package cmd

import (
	"strings"

	"github.com/jfmyers9/grooveshark/internal/format"
	"github.com/spf13/cobra"
)

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Search the Grooveshark catalog",
}

var searchSongsCmd = &cobra.Command{
	Use:   "songs <query>",
	Short: "Search for songs",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runSearchSongs,
}

var searchArtistsCmd = &cobra.Command{
	Use:   "artists <query>",
	Short: "Search for artists",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runSearchArtists,
}

var searchAlbumsCmd = &cobra.Command{
	Use:   "albums <query>",
	Short: "Search for albums",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runSearchAlbums,
}

var searchPlaylistsCmd = &cobra.Command{
	Use:   "playlists <query>",
	Short: "Search for playlists",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runSearchPlaylists,
}

func init() {
	for _, c := range []*cobra.Command{searchSongsCmd, searchArtistsCmd, searchAlbumsCmd, searchPlaylistsCmd} {
		c.Flags().Int("limit", 0, "Maximum number of results")
		searchCmd.AddCommand(c)
	}
	searchSongsCmd.Flags().Int("offset", 0, "Number of results to skip")

	rootCmd.AddCommand(searchCmd)
}

func runSearchSongs(cmd *cobra.Command, args []string) error {
	return withSession(cmd, func(a *app) error {
		ctx := cmd.Context()

		country, err := a.client.Country(ctx)
		if err != nil {
			return err
		}

		songs, err := a.client.Search().Songs(ctx, strings.Join(args, " "), *country, listOptions(cmd)...)
		if err != nil {
			return err
		}
		return format.Songs(cmd.OutOrStdout(), songs, a.cfg.Output.Width)
	})
}

func runSearchArtists(cmd *cobra.Command, args []string) error {
	return withSession(cmd, func(a *app) error {
		artists, err := a.client.Search().Artists(cmd.Context(), strings.Join(args, " "), listOptions(cmd)...)
		if err != nil {
			return err
		}
		return format.Artists(cmd.OutOrStdout(), artists, a.cfg.Output.Width)
	})
}

func runSearchAlbums(cmd *cobra.Command, args []string) error {
	return withSession(cmd, func(a *app) error {
		albums, err := a.client.Search().Albums(cmd.Context(), strings.Join(args, " "), listOptions(cmd)...)
		if err != nil {
			return err
		}
		return format.Albums(cmd.OutOrStdout(), albums, a.cfg.Output.Width)
	})
}

func runSearchPlaylists(cmd *cobra.Command, args []string) error {
	return withSession(cmd, func(a *app) error {
		playlists, err := a.client.Search().Playlists(cmd.Context(), strings.Join(args, " "), listOptions(cmd)...)
		if err != nil {
			return err
		}
		return format.Playlists(cmd.OutOrStdout(), playlists, a.cfg.Output.Width)
	})
}
