package cmd

import (
	"fmt"

	"github.com/jfmyers9/grooveshark/internal/format"
	"github.com/spf13/cobra"
)

var favoritesCmd = &cobra.Command{
	Use:     "favorites",
	Aliases: []string{"fav"},
	Short:   "Manage favorite songs",
}

var favoritesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List favorite songs",
	Args:  cobra.NoArgs,
	RunE:  runFavoritesList,
}

var favoritesAddCmd = &cobra.Command{
	Use:   "add <song-id>",
	Short: "Add a song to favorites",
	Args:  cobra.ExactArgs(1),
	RunE:  runFavoritesAdd,
}

var favoritesRemoveCmd = &cobra.Command{
	Use:   "remove <song-id>...",
	Short: "Remove songs from favorites",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runFavoritesRemove,
}

func init() {
	favoritesListCmd.Flags().Int("limit", 0, "Maximum number of songs")

	favoritesCmd.AddCommand(favoritesListCmd, favoritesAddCmd, favoritesRemoveCmd)
	rootCmd.AddCommand(favoritesCmd)
}

func runFavoritesList(cmd *cobra.Command, args []string) error {
	return withSession(cmd, func(a *app) error {
		songs, err := a.client.Favorites().Songs(cmd.Context(), listOptions(cmd)...)
		if err != nil {
			return err
		}
		return format.Songs(cmd.OutOrStdout(), songs, a.cfg.Output.Width)
	})
}

func runFavoritesAdd(cmd *cobra.Command, args []string) error {
	ids, err := parseIDs(args)
	if err != nil {
		return err
	}

	return withSession(cmd, func(a *app) error {
		status, err := a.client.Favorites().Add(cmd.Context(), ids[0])
		if err != nil {
			return err
		}
		printStatus(cmd.OutOrStdout(), status, fmt.Sprintf("Added song %s to favorites", ids[0]))
		return nil
	})
}

func runFavoritesRemove(cmd *cobra.Command, args []string) error {
	ids, err := parseIDs(args)
	if err != nil {
		return err
	}

	return withSession(cmd, func(a *app) error {
		status, err := a.client.Favorites().Remove(cmd.Context(), ids)
		if err != nil {
			return err
		}
		printStatus(cmd.OutOrStdout(), status, fmt.Sprintf("Removed %d songs from favorites", len(ids)))
		return nil
	})
}
