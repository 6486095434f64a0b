package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/jfmyers9/grooveshark/internal/config"
	"github.com/jfmyers9/grooveshark/internal/store"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Manage Grooveshark credentials and sessions",
	Long: `Manage Grooveshark API credentials and the saved session.

Typical first run:
  grooveshark auth setup     # store your API key and secret
  grooveshark auth login     # log in with your Grooveshark account

The session ID is saved locally and reused by every other command.`,
}

var authSetupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Store your Grooveshark API key and secret",
	RunE:  runAuthSetup,
}

var authLoginCmd = &cobra.Command{
	Use:   "login [username]",
	Short: "Log in with a username and password",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runAuthLogin,
}

var authTokenCmd = &cobra.Command{
	Use:   "token <token>",
	Short: "Log in with an authentication token",
	Args:  cobra.ExactArgs(1),
	RunE:  runAuthToken,
}

var authLogoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Log out the current user",
	Long: `Log out the current user.

The session itself is kept and can still be used for anonymous calls.
Use 'grooveshark auth reset' to discard it.`,
	RunE: runAuthLogout,
}

var authStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the saved session",
	RunE:  runAuthStatus,
}

var authResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Discard the saved session",
	RunE:  runAuthReset,
}

var passwordStdin bool

func init() {
	authLoginCmd.Flags().BoolVar(&passwordStdin, "password-stdin", false, "Read the password from stdin")

	authCmd.AddCommand(authSetupCmd, authLoginCmd, authTokenCmd, authLogoutCmd, authStatusCmd, authResetCmd)
	rootCmd.AddCommand(authCmd)
}

func runAuthSetup(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	reader := bufio.NewReader(cmd.InOrStdin())

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	_, _ = fmt.Fprintln(out, "Grooveshark API Setup")
	_, _ = fmt.Fprintln(out, "=====================")
	_, _ = fmt.Fprintln(out)

	if cfg.API.ClientKey != "" && cfg.API.ClientSecret != "" {
		_, _ = fmt.Fprintf(out, "Found existing API credentials.\n")
		_, _ = fmt.Fprintf(out, "API Key: %s\n", cfg.API.ClientKey)
		_, _ = fmt.Fprint(out, "\nUse existing credentials? [Y/n]: ")
		if !confirm(reader, true) {
			cfg.API.ClientKey = ""
			cfg.API.ClientSecret = ""
		}
	}

	if cfg.API.ClientKey == "" {
		_, _ = fmt.Fprint(out, "Enter your Grooveshark API key: ")
		key, err := readLine(reader)
		if err != nil {
			return fmt.Errorf("failed to read API key: %w", err)
		}
		cfg.API.ClientKey = key
	}

	if cfg.API.ClientSecret == "" {
		_, _ = fmt.Fprint(out, "Enter your Grooveshark API secret: ")
		secret, err := readLine(reader)
		if err != nil {
			return fmt.Errorf("failed to read API secret: %w", err)
		}
		cfg.API.ClientSecret = secret
	}

	if cfg.API.ClientKey == "" || cfg.API.ClientSecret == "" {
		return fmt.Errorf("API key and secret are required")
	}

	if err := cfg.Save(); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	_, _ = fmt.Fprintf(out, "\n✓ Credentials saved to %s/config.yaml\n", config.GetConfigDir())
	_, _ = fmt.Fprintln(out, "\nRun 'grooveshark auth login' to log in.")
	return nil
}

func runAuthLogin(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	reader := bufio.NewReader(cmd.InOrStdin())

	var username string
	if len(args) == 1 {
		username = args[0]
	} else {
		_, _ = fmt.Fprint(out, "Username: ")
		name, err := readLine(reader)
		if err != nil {
			return fmt.Errorf("failed to read username: %w", err)
		}
		username = name
	}

	password, err := readPassword(cmd, reader)
	if err != nil {
		return err
	}
	if username == "" || password == "" {
		return fmt.Errorf("username and password are required")
	}

	return withSession(cmd, func(a *app) error {
		ctx := cmd.Context()

		user, err := a.client.Session().AuthenticateCredentials(ctx, username, password)
		if err != nil {
			return fmt.Errorf("login failed: %w", err)
		}

		if err := a.saveSession(ctx, user, username); err != nil {
			return err
		}

		_, _ = fmt.Fprintf(out, "✓ Logged in as %s (user %s)\n", username, user.UserID)
		return nil
	})
}

func runAuthToken(cmd *cobra.Command, args []string) error {
	return withSession(cmd, func(a *app) error {
		ctx := cmd.Context()

		user, err := a.client.Session().AuthenticateToken(ctx, args[0])
		if err != nil {
			return fmt.Errorf("token login failed: %w", err)
		}

		if err := a.saveSession(ctx, user, displayName(user.FName, user.LName)); err != nil {
			return err
		}

		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "✓ Logged in as user %s\n", user.UserID)
		return nil
	})
}

func runAuthLogout(cmd *cobra.Command, args []string) error {
	return withApp(cmd, func(a *app) error {
		ctx := cmd.Context()

		status, err := a.client.Session().Logout(ctx)
		if err != nil {
			return fmt.Errorf("logout failed: %w", err)
		}

		if err := a.store.ClearUser(ctx, a.cfg.API.ClientKey); err != nil {
			return err
		}

		if !status.Success {
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Grooveshark did not confirm the logout")
			return nil
		}
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), "✓ Logged out")
		return nil
	})
}

func runAuthStatus(cmd *cobra.Command, args []string) error {
	return withApp(cmd, func(a *app) error {
		out := cmd.OutOrStdout()

		saved, err := a.store.LoadSession(cmd.Context(), a.cfg.API.ClientKey)
		if errors.Is(err, store.ErrNoSavedSession) {
			_, _ = fmt.Fprintln(out, "No saved session")
			return nil
		}
		if err != nil {
			return err
		}

		_, _ = fmt.Fprintf(out, "Session:  %s\n", saved.SessionID)
		_, _ = fmt.Fprintf(out, "Started:  %s\n", saved.StartedAt.Format("2006-01-02 15:04:05"))
		if saved.Authenticated() {
			_, _ = fmt.Fprintf(out, "User:     %s (%d)\n", saved.Username, saved.UserID)
		} else {
			_, _ = fmt.Fprintln(out, "User:     not logged in")
		}
		return nil
	})
}

func runAuthReset(cmd *cobra.Command, args []string) error {
	return withApp(cmd, func(a *app) error {
		if err := a.store.DeleteSession(cmd.Context(), a.cfg.API.ClientKey); err != nil {
			return err
		}
		a.client.Session().Reset()

		_, _ = fmt.Fprintln(cmd.OutOrStdout(), "✓ Saved session discarded")
		return nil
	})
}

// readPassword reads from the terminal without echo, or a line from stdin
func readPassword(cmd *cobra.Command, reader *bufio.Reader) (string, error) {
	if !passwordStdin {
		if f, ok := cmd.InOrStdin().(*os.File); ok && term.IsTerminal(int(f.Fd())) {
			_, _ = fmt.Fprint(cmd.OutOrStdout(), "Password: ")
			b, err := term.ReadPassword(int(f.Fd()))
			_, _ = fmt.Fprintln(cmd.OutOrStdout())
			if err != nil {
				return "", fmt.Errorf("failed to read password: %w", err)
			}
			return string(b), nil
		}
	}

	password, err := reader.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	return strings.TrimRight(password, "\r\n"), nil
}

func readLine(reader *bufio.Reader) (string, error) {
	line, err := reader.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// confirm reads a yes/no answer, returning def on empty input
func confirm(reader *bufio.Reader, def bool) bool {
	answer, err := readLine(reader)
	if err != nil {
		return def
	}
	switch strings.ToLower(answer) {
	case "":
		return def
	case "y", "yes":
		return true
	default:
		return false
	}
}

func displayName(first, last string) string {
	return strings.TrimSpace(first + " " + last)
}
