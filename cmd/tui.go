package cmd

import (
	"github.com/jfmyers9/grooveshark/internal/tui"
	"github.com/spf13/cobra"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Search songs interactively",
	Long: `Launch an interactive song browser.

Type a query and press Enter to search. In the results, press f to add
the selected song to your favorites and Esc or Tab to return to the
search box. Press q in the results to quit.

Use --log-file with this command; log output on stderr would draw over
the screen.`,
	Args: cobra.NoArgs,
	RunE: runTUI,
}

var tuiLimit int

func init() {
	tuiCmd.Flags().IntVar(&tuiLimit, "limit", 50, "Maximum number of results per search")
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, args []string) error {
	return withSession(cmd, func(a *app) error {
		browser := tui.New(tui.NewClientCatalog(a.client, tuiLimit), tui.DefaultConfig())
		return browser.Run(cmd.Context())
	})
}
