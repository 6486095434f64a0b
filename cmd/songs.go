package cmd

import (
	"fmt"
	"time"

	"github.com/jfmyers9/grooveshark/internal/format"
	"github.com/jfmyers9/grooveshark/internal/playback"
	"github.com/jfmyers9/grooveshark/pkg/grooveshark"
	"github.com/spf13/cobra"
)

var songCmd = &cobra.Command{
	Use:     "song",
	Aliases: []string{"songs"},
	Short:   "Look up songs and stream servers",
}

var songInfoCmd = &cobra.Command{
	Use:   "info <song-id>...",
	Short: "Show metadata for songs",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runSongInfo,
}

var songPopularCmd = &cobra.Command{
	Use:   "popular",
	Short: "List today's popular songs",
	Args:  cobra.NoArgs,
	RunE:  runSongPopular,
}

var songStreamCmd = &cobra.Command{
	Use:   "stream <song-id>",
	Short: "Show the stream server and key for a song",
	Args:  cobra.ExactArgs(1),
	RunE:  runSongStream,
}

var songReportCmd = &cobra.Command{
	Use:   "report <song-id>",
	Short: "Report stream progress from an external player",
	Long: `Report how long a stream has played.

The stream is marked as over 30 seconds once --played reaches 30s, and the
song is marked complete once --played reaches --length. Each report is sent
at most once per stream key, across runs. Use the stream key
and server ID printed by 'grooveshark song stream'.`,
	Args: cobra.ExactArgs(1),
	RunE: runSongReport,
}

var (
	streamLowBitrate bool

	reportStreamKey string
	reportServerID  int64
	reportPlayed    time.Duration
	reportLength    time.Duration
)

func init() {
	songPopularCmd.Flags().Int("limit", 0, "Maximum number of songs")
	songStreamCmd.Flags().BoolVar(&streamLowBitrate, "low-bitrate", false, "Request a low bitrate stream")

	songReportCmd.Flags().StringVar(&reportStreamKey, "stream-key", "", "Stream key")
	songReportCmd.Flags().Int64Var(&reportServerID, "server-id", 0, "Stream server ID")
	songReportCmd.Flags().DurationVar(&reportPlayed, "played", 0, "Time played so far")
	songReportCmd.Flags().DurationVar(&reportLength, "length", 0, "Song length (0 if unknown)")
	_ = songReportCmd.MarkFlagRequired("stream-key")
	_ = songReportCmd.MarkFlagRequired("server-id")

	songCmd.AddCommand(songInfoCmd, songPopularCmd, songStreamCmd, songReportCmd)
	rootCmd.AddCommand(songCmd)
}

func runSongInfo(cmd *cobra.Command, args []string) error {
	ids, err := parseIDs(args)
	if err != nil {
		return err
	}

	return withSession(cmd, func(a *app) error {
		songs, err := a.client.Songs().Info(cmd.Context(), ids)
		if err != nil {
			return err
		}
		return format.Songs(cmd.OutOrStdout(), songs, a.cfg.Output.Width)
	})
}

func runSongPopular(cmd *cobra.Command, args []string) error {
	return withSession(cmd, func(a *app) error {
		songs, err := a.client.Songs().PopularToday(cmd.Context(), listOptions(cmd)...)
		if err != nil {
			return err
		}
		return format.Songs(cmd.OutOrStdout(), songs, a.cfg.Output.Width)
	})
}

func runSongStream(cmd *cobra.Command, args []string) error {
	ids, err := parseIDs(args)
	if err != nil {
		return err
	}

	return withSession(cmd, func(a *app) error {
		ctx := cmd.Context()

		country, err := a.client.Country(ctx)
		if err != nil {
			return err
		}

		var opts []grooveshark.Option
		if streamLowBitrate {
			opts = append(opts, grooveshark.WithLowBitrate(true))
		}

		server, err := a.client.Stream().Server(ctx, ids[0], *country, opts...)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		_, _ = fmt.Fprintf(out, "URL:        %s\n", server.URL)
		_, _ = fmt.Fprintf(out, "Stream key: %s\n", server.StreamKey)
		_, _ = fmt.Fprintf(out, "Server ID:  %s\n", server.StreamServerID)
		_, _ = fmt.Fprintf(out, "Length:     %.0fs\n", float64(server.USecs)/1e6)
		return nil
	})
}

func runSongReport(cmd *cobra.Command, args []string) error {
	ids, err := parseIDs(args)
	if err != nil {
		return err
	}

	return withSession(cmd, func(a *app) error {
		reporter := playback.NewReporter(a.client.Stream(), a.store, playback.Stream{
			SongID:         ids[0],
			StreamKey:      reportStreamKey,
			StreamServerID: grooveshark.ID(reportServerID),
			Length:         reportLength,
		}, a.logger)

		if err := reporter.Update(cmd.Context(), reportPlayed); err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		sentOver30, sentComplete := reporter.Sent()
		if sentOver30 {
			_, _ = fmt.Fprintln(out, "✓ Marked stream over 30 seconds")
		}
		if sentComplete {
			_, _ = fmt.Fprintln(out, "✓ Marked song complete")
		}
		if !sentOver30 && !sentComplete {
			_, _ = fmt.Fprintln(out, "Nothing to report")
		}
		return nil
	})
}
