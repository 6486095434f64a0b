package cmd

import (
	"fmt"
	"io"

	"github.com/jfmyers9/grooveshark/pkg/grooveshark"
	"github.com/spf13/cobra"
)

var countryCmd = &cobra.Command{
	Use:   "country [ip]",
	Short: "Show the Grooveshark country for this host or an IP address",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runCountry,
}

var pingCmd = &cobra.Command{
	Use:   "ping",
	Short: "Check that the API is reachable and the credentials are accepted",
	RunE:  runPing,
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the logged-in user",
	RunE:  runWhoami,
}

var subscriptionCmd = &cobra.Command{
	Use:   "subscription",
	Short: "Show the logged-in user's subscription",
	RunE:  runSubscription,
}

func init() {
	rootCmd.AddCommand(countryCmd, pingCmd, whoamiCmd, subscriptionCmd)
}

func runCountry(cmd *cobra.Command, args []string) error {
	return withApp(cmd, func(a *app) error {
		var (
			country *grooveshark.Country
			err     error
		)
		if len(args) == 1 {
			country, err = a.client.CountryForIP(cmd.Context(), args[0])
		} else {
			country, err = a.client.Country(cmd.Context())
		}
		if err != nil {
			return err
		}

		printCountry(cmd.OutOrStdout(), country)
		return nil
	})
}

func printCountry(w io.Writer, c *grooveshark.Country) {
	_, _ = fmt.Fprintf(w, "ID:   %d\n", c.ID)
	_, _ = fmt.Fprintf(w, "CC:   %d %d %d %d\n", c.CC1, c.CC2, c.CC3, c.CC4)
	_, _ = fmt.Fprintf(w, "DMA:  %d\n", c.DMA)
	_, _ = fmt.Fprintf(w, "IPR:  %d\n", c.IPR)
}

func runPing(cmd *cobra.Command, args []string) error {
	return withApp(cmd, func(a *app) error {
		pong, err := a.client.Ping(cmd.Context())
		if err != nil {
			return err
		}
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), pong)
		return nil
	})
}

func runWhoami(cmd *cobra.Command, args []string) error {
	return withSession(cmd, func(a *app) error {
		user, err := a.client.Users().Info(cmd.Context())
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		_, _ = fmt.Fprintf(out, "User ID:  %s\n", user.UserID)
		if name := displayName(user.FName, user.LName); name != "" {
			_, _ = fmt.Fprintf(out, "Name:     %s\n", name)
		}
		if user.Email != "" {
			_, _ = fmt.Fprintf(out, "Email:    %s\n", user.Email)
		}
		_, _ = fmt.Fprintf(out, "Plus:     %s\n", yesNo(user.IsPlus))
		_, _ = fmt.Fprintf(out, "Anywhere: %s\n", yesNo(user.IsAnywhere))
		_, _ = fmt.Fprintf(out, "Premium:  %s\n", yesNo(user.IsPremium))
		return nil
	})
}

func runSubscription(cmd *cobra.Command, args []string) error {
	return withSession(cmd, func(a *app) error {
		sub, err := a.client.Users().SubscriptionDetails(cmd.Context())
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		_, _ = fmt.Fprintf(out, "Type:      %s\n", sub.Type)
		if sub.DateEnd != "" {
			_, _ = fmt.Fprintf(out, "Ends:      %s\n", sub.DateEnd)
		}
		_, _ = fmt.Fprintf(out, "Recurring: %s\n", yesNo(sub.Recurring))
		return nil
	})
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

// printStatus reports the outcome of a mutation
func printStatus(w io.Writer, status *grooveshark.Status, done string) {
	if status.Success {
		_, _ = fmt.Fprintf(w, "✓ %s\n", done)
		return
	}
	_, _ = fmt.Fprintln(w, "Grooveshark reported failure")
}
