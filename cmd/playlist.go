package cmd

import (
	"fmt"
	"strings"

	"github.com/jfmyers9/grooveshark/internal/format"
	"github.com/jfmyers9/grooveshark/pkg/grooveshark"
	"github.com/spf13/cobra"
)

var playlistCmd = &cobra.Command{
	Use:     "playlist",
	Aliases: []string{"playlists"},
	Short:   "Manage playlists",
}

var playlistListCmd = &cobra.Command{
	Use:   "list",
	Short: "List your playlists, or another user's with --user",
	Args:  cobra.NoArgs,
	RunE:  runPlaylistList,
}

var playlistShowCmd = &cobra.Command{
	Use:   "show <playlist-id>",
	Short: "Show a playlist and its songs",
	Args:  cobra.ExactArgs(1),
	RunE:  runPlaylistShow,
}

var playlistCreateCmd = &cobra.Command{
	Use:   "create <name> [song-id...]",
	Short: "Create a playlist",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runPlaylistCreate,
}

var playlistRenameCmd = &cobra.Command{
	Use:   "rename <playlist-id> <name>",
	Short: "Rename a playlist",
	Args:  cobra.MinimumNArgs(2),
	RunE:  runPlaylistRename,
}

var playlistDeleteCmd = &cobra.Command{
	Use:   "delete <playlist-id>",
	Short: "Delete a playlist",
	Args:  cobra.ExactArgs(1),
	RunE:  runPlaylistDelete,
}

var playlistSetSongsCmd = &cobra.Command{
	Use:   "set-songs <playlist-id> [song-id...]",
	Short: "Replace the songs of a playlist",
	Long: `Replace the songs of a playlist with the given songs, in order.

With no song IDs the playlist is emptied.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runPlaylistSetSongs,
}

var (
	playlistUser int64
	playlistInfo bool
)

func init() {
	playlistListCmd.Flags().Int64Var(&playlistUser, "user", 0, "List playlists of this user ID")
	playlistListCmd.Flags().Int("limit", 0, "Maximum number of playlists")

	playlistShowCmd.Flags().BoolVar(&playlistInfo, "info", false, "Show only playlist metadata")
	playlistShowCmd.Flags().Int("limit", 0, "Maximum number of songs")

	playlistCmd.AddCommand(
		playlistListCmd,
		playlistShowCmd,
		playlistCreateCmd,
		playlistRenameCmd,
		playlistDeleteCmd,
		playlistSetSongsCmd,
	)
	rootCmd.AddCommand(playlistCmd)
}

func runPlaylistList(cmd *cobra.Command, args []string) error {
	return withSession(cmd, func(a *app) error {
		var (
			playlists []grooveshark.Playlist
			err       error
		)
		if playlistUser != 0 {
			playlists, err = a.client.Playlists().ListByUserID(cmd.Context(), grooveshark.ID(playlistUser), listOptions(cmd)...)
		} else {
			playlists, err = a.client.Playlists().List(cmd.Context(), listOptions(cmd)...)
		}
		if err != nil {
			return err
		}
		return format.Playlists(cmd.OutOrStdout(), playlists, a.cfg.Output.Width)
	})
}

func runPlaylistShow(cmd *cobra.Command, args []string) error {
	ids, err := parseIDs(args)
	if err != nil {
		return err
	}

	return withSession(cmd, func(a *app) error {
		var details *grooveshark.PlaylistDetails
		if playlistInfo {
			details, err = a.client.Playlists().Info(cmd.Context(), ids[0])
		} else {
			details, err = a.client.Playlists().Get(cmd.Context(), ids[0], listOptions(cmd)...)
		}
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		_, _ = fmt.Fprintf(out, "%s (owner %s)\n", details.PlaylistName, details.UserID)
		if details.PlaylistDescription != "" {
			_, _ = fmt.Fprintln(out, details.PlaylistDescription)
		}
		if playlistInfo {
			return nil
		}
		_, _ = fmt.Fprintln(out)
		return format.Songs(out, details.Songs, a.cfg.Output.Width)
	})
}

func runPlaylistCreate(cmd *cobra.Command, args []string) error {
	songIDs, err := parseIDs(args[1:])
	if err != nil {
		return err
	}

	return withSession(cmd, func(a *app) error {
		created, err := a.client.Playlists().Create(cmd.Context(), args[0], songIDs)
		if err != nil {
			return err
		}
		if !created.Success {
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Grooveshark reported failure")
			return nil
		}
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "✓ Created playlist %s\n", created.PlaylistID)
		return nil
	})
}

func runPlaylistRename(cmd *cobra.Command, args []string) error {
	ids, err := parseIDs(args[:1])
	if err != nil {
		return err
	}
	name := strings.Join(args[1:], " ")

	return withSession(cmd, func(a *app) error {
		status, err := a.client.Playlists().Rename(cmd.Context(), ids[0], name)
		if err != nil {
			return err
		}
		printStatus(cmd.OutOrStdout(), status, fmt.Sprintf("Renamed playlist %s", ids[0]))
		return nil
	})
}

func runPlaylistDelete(cmd *cobra.Command, args []string) error {
	ids, err := parseIDs(args)
	if err != nil {
		return err
	}

	return withSession(cmd, func(a *app) error {
		status, err := a.client.Playlists().Delete(cmd.Context(), ids[0])
		if err != nil {
			return err
		}
		printStatus(cmd.OutOrStdout(), status, fmt.Sprintf("Deleted playlist %s", ids[0]))
		return nil
	})
}

func runPlaylistSetSongs(cmd *cobra.Command, args []string) error {
	ids, err := parseIDs(args)
	if err != nil {
		return err
	}

	return withSession(cmd, func(a *app) error {
		status, err := a.client.Playlists().SetSongs(cmd.Context(), ids[0], ids[1:])
		if err != nil {
			return err
		}
		printStatus(cmd.OutOrStdout(), status, fmt.Sprintf("Updated playlist %s (%d songs)", ids[0], len(ids)-1))
		return nil
	})
}
