package app

import (
	"context"
	"fmt"
	"time"

	"github.com/librelib/librarian/internal/api"
	"github.com/librelib/librarian/internal/config"
	"github.com/librelib/librarian/internal/i18n"
	"github.com/librelib/librarian/internal/prefs"
	"github.com/librelib/librarian/internal/session"
	"github.com/librelib/librarian/internal/state"
	"github.com/librelib/librarian/internal/ui"
)

// Options configure the Librarian application.
type Options struct {
	ConfigPath string
	PrefsPath  string // empty uses default ~/.config/librarian/prefs.toml
	PollEvery  int    // seconds; zero uses default
}

const preflightTimeout = 5 * time.Second

// Run boots the Librarian TUI until the context is cancelled.
func Run(ctx context.Context, opts Options) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	userPrefs := prefs.Load(opts.PrefsPath)

	client, err := api.NewClient(cfg.APIURL, cfg.Token)
	if err != nil {
		return fmt.Errorf("init api client: %w", err)
	}

	// Pre-flight: verify the token before starting the UI so a dead server
	// or revoked credential fails fast instead of rendering an empty shell.
	preflightCtx, cancel := context.WithTimeout(ctx, preflightTimeout)
	sess, err := session.Establish(preflightCtx, client)
	cancel()
	if err != nil {
		return fmt.Errorf("establish session: %w", err)
	}

	store := &state.Store{}

	interval := defaultPollInterval
	if opts.PollEvery > 0 {
		interval = time.Duration(opts.PollEvery) * time.Second
	}

	StartPoller(ctx, store, client, interval)

	uiOpts := ui.Options{
		Context:     ctx,
		Client:      client,
		Store:       store,
		Session:     sess,
		Catalog:     i18n.New(userPrefs.Locale),
		DownloadDir: cfg.DownloadDir,
		PollTick:    interval,
		ThemeName:   userPrefs.Theme,
		BooksView:   userPrefs.BooksView,
		PrefsPath:   opts.PrefsPath,
	}
	return ui.Run(uiOpts)
}
