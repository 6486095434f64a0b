package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/jfmyers9/grooveshark/internal/config"
	"github.com/jfmyers9/grooveshark/internal/store"
	"github.com/jfmyers9/grooveshark/pkg/grooveshark"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// app bundles what every API command needs
type app struct {
	cfg    *config.Config
	store  *store.Store
	client *grooveshark.Client
	logger zerolog.Logger
}

// zerologAdapter satisfies grooveshark.Logger
type zerologAdapter struct {
	logger zerolog.Logger
}

func (z zerologAdapter) Debugf(format string, args ...interface{}) {
	z.logger.Debug().Msgf(format, args...)
}

// openApp loads configuration, opens the local store and builds a client
// that resumes the saved session, if any.
func openApp(cmd *cobra.Command) (*app, error) {
	ctx := cmd.Context()

	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	if cfg.API.ClientKey == "" || cfg.API.ClientSecret == "" {
		return nil, fmt.Errorf("Grooveshark API credentials not configured. Run 'grooveshark auth setup' first")
	}

	logger := setupLogger(logFile, logLevel)

	dir := dataDir
	if dir == "" {
		dir = cfg.DataDir
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	st, err := store.Open(filepath.Join(dir, "grooveshark.db"), logger)
	if err != nil {
		return nil, fmt.Errorf("failed to open store: %w", err)
	}

	clientCfg := grooveshark.Config{
		ClientKey:    cfg.API.ClientKey,
		ClientSecret: cfg.API.ClientSecret,
		BaseURL:      cfg.API.BaseURL,
		Logger:       zerologAdapter{logger: logger.With().Str("component", "grooveshark").Logger()},
	}
	if cfg.API.Timeout > 0 {
		clientCfg.HTTPClient = grooveshark.NewHTTPClient(grooveshark.DefaultConnectTimeout, cfg.API.GetTimeout())
	}
	if cfg.Journal.Enabled {
		clientCfg.Recorder = st
	}

	saved, err := st.LoadSession(ctx, cfg.API.ClientKey)
	switch {
	case err == nil:
		clientCfg.SessionID = saved.SessionID
		logger.Debug().Str("session_id", saved.SessionID).Msg("Resuming saved session")
	case !errors.Is(err, store.ErrNoSavedSession):
		_ = st.Close()
		return nil, err
	}

	client, err := grooveshark.NewClient(clientCfg)
	if err != nil {
		_ = st.Close()
		return nil, fmt.Errorf("failed to create client: %w", err)
	}

	if cfg.Journal.Enabled && cfg.Journal.Retention > 0 {
		maxAge := time.Duration(cfg.Journal.Retention) * 24 * time.Hour
		if deleted, err := st.PruneCalls(ctx, maxAge); err != nil {
			logger.Warn().Err(err).Msg("Failed to prune call journal")
		} else if deleted > 0 {
			logger.Debug().Int64("deleted", deleted).Msg("Pruned call journal")
		}
	}

	return &app{
		cfg:    cfg,
		store:  st,
		client: client,
		logger: logger,
	}, nil
}

// Close releases the local store
func (a *app) Close() error {
	return a.store.Close()
}

// ensureSession starts and saves a session if none is active
func (a *app) ensureSession(ctx context.Context) error {
	if a.client.Session().ID() != "" {
		return nil
	}

	if err := a.client.Session().Start(ctx); err != nil {
		return fmt.Errorf("failed to start session: %w", err)
	}
	a.logger.Info().Str("session_id", a.client.Session().ID()).Msg("Started new session")

	return a.saveSession(ctx, nil, "")
}

// saveSession persists the current session ID and the logged-in user, if any
func (a *app) saveSession(ctx context.Context, user *grooveshark.User, username string) error {
	saved := store.SavedSession{
		ClientKey: a.cfg.API.ClientKey,
		SessionID: a.client.Session().ID(),
		Username:  username,
	}
	if user != nil {
		saved.UserID = int64(user.UserID)
	}

	if err := a.store.SaveSession(ctx, saved); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

// withApp opens the app, runs fn and closes the app
func withApp(cmd *cobra.Command, fn func(a *app) error) error {
	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer func() { _ = a.Close() }()

	return fn(a)
}

// withSession is withApp for commands that need a session
func withSession(cmd *cobra.Command, fn func(a *app) error) error {
	return withApp(cmd, func(a *app) error {
		if err := a.ensureSession(cmd.Context()); err != nil {
			return err
		}
		return fn(a)
	})
}

// parseIDs converts command arguments to Grooveshark IDs
func parseIDs(args []string) ([]grooveshark.ID, error) {
	ids := make([]grooveshark.ID, 0, len(args))
	for _, arg := range args {
		n, err := strconv.ParseInt(arg, 10, 64)
		if err != nil || n <= 0 {
			return nil, fmt.Errorf("invalid id %q", arg)
		}
		ids = append(ids, grooveshark.ID(n))
	}
	return ids, nil
}

// listOptions builds limit/offset/page options from flags that were set
func listOptions(cmd *cobra.Command) []grooveshark.Option {
	var opts []grooveshark.Option
	flags := cmd.Flags()

	if flags.Lookup("limit") != nil && flags.Changed("limit") {
		n, _ := flags.GetInt("limit")
		opts = append(opts, grooveshark.WithLimit(n))
	}
	if flags.Lookup("offset") != nil && flags.Changed("offset") {
		n, _ := flags.GetInt("offset")
		opts = append(opts, grooveshark.WithOffset(n))
	}
	if flags.Lookup("page") != nil && flags.Changed("page") {
		n, _ := flags.GetInt("page")
		opts = append(opts, grooveshark.WithPage(n))
	}

	return opts
}
