package cmd

import (
	"fmt"
	"strconv"
	"time"

	"github.com/jfmyers9/grooveshark/internal/format"
	"github.com/spf13/cobra"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent API calls from the local journal",
	Long: `Show recent API calls recorded in the local journal.

Every call made by this tool is recorded with its outcome while the
journal is enabled (journal.enabled in config.yaml).`,
	Args: cobra.NoArgs,
	RunE: runHistory,
}

var historyPruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Delete journal entries older than --older-than",
	Args:  cobra.NoArgs,
	RunE:  runHistoryPrune,
}

var (
	historyLimit     int
	historyOlderThan time.Duration
)

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "Number of calls to show")
	historyPruneCmd.Flags().DurationVar(&historyOlderThan, "older-than", 7*24*time.Hour, "Age of entries to delete")

	historyCmd.AddCommand(historyPruneCmd)
	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	return withApp(cmd, func(a *app) error {
		entries, err := a.store.RecentCalls(cmd.Context(), historyLimit)
		if err != nil {
			return err
		}

		if len(entries) == 0 {
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "No calls recorded")
			return nil
		}

		table := format.NewTable(a.cfg.Output.Width, "TIME", "METHOD", "STATUS", "DURATION", "ERROR")
		for _, e := range entries {
			result := "ok"
			if e.Failed() {
				result = e.ErrorKind
				if e.ErrorCode != 0 {
					result += " " + strconv.Itoa(e.ErrorCode)
				}
			}
			table.AddRow(
				e.StartedAt.Format("2006-01-02 15:04:05"),
				e.Method,
				result,
				e.Duration.Round(time.Millisecond).String(),
				e.Error,
			)
		}
		return table.Write(cmd.OutOrStdout())
	})
}

func runHistoryPrune(cmd *cobra.Command, args []string) error {
	return withApp(cmd, func(a *app) error {
		deleted, err := a.store.PruneCalls(cmd.Context(), historyOlderThan)
		if err != nil {
			return err
		}
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "✓ Deleted %d journal entries\n", deleted)
		return nil
	})
}
