// ABOUTME: Root command for the paws CLI
// ABOUTME: Handles global flags and builds the store, API client and session per invocation

package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/uiopaws/pawsctl/internal/catalog"
	"github.com/uiopaws/pawsctl/internal/client"
	"github.com/uiopaws/pawsctl/internal/config"
	"github.com/uiopaws/pawsctl/internal/logger"
	"github.com/uiopaws/pawsctl/internal/session"
	"github.com/uiopaws/pawsctl/internal/store"
)

var (
	apiURL     string
	jsonOutput bool
	storeURL   string
	configDir  string
)

// rootCmd is the base command
var rootCmd = &cobra.Command{
	Use:   "paws",
	Short: "CLI for the UIO Paws adoption platform",
	Long: `paws is a command-line and terminal interface for the UIO Paws adoption platform.

Browse adoptable animals and donation needs, sign in, and manage the catalog
when your account has the Admin role.

Environment Variables:
  PAWS_API_URL     Backend API URL (default: https://uiopaws-api2.onrender.com)
  PAWS_STORE       Session store URL: file://, sqlite://, redis:// or memory://
  PAWS_CONFIG_DIR  Directory for config.yaml, the session and debug.log`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		d, err := setup()
		if err != nil {
			return err
		}
		cmd.SetContext(withDeps(cmd.Context(), d))
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if d, err := depsFrom(cmd.Context()); err == nil {
			d.Close()
		}
	},
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&apiURL, "api-url", "", "Backend API URL (overrides PAWS_API_URL)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output JSON instead of human-readable text")
	rootCmd.PersistentFlags().StringVar(&storeURL, "store", "", "Session store URL (overrides PAWS_STORE)")
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", "", "Config directory (overrides PAWS_CONFIG_DIR)")
}

// GetAPIURL returns the API URL from flag, env, or fallback (in priority order)
func GetAPIURL(fallback string) string {
	if apiURL != "" {
		return strings.TrimRight(apiURL, "/")
	}
	if envURL := os.Getenv("PAWS_API_URL"); envURL != "" {
		return strings.TrimRight(envURL, "/")
	}
	if fallback != "" {
		return fallback
	}
	return client.DefaultOrigin
}

// GetStoreURL returns the session store URL from flag, env, or fallback
func GetStoreURL(fallback string) string {
	if storeURL != "" {
		return storeURL
	}
	if env := os.Getenv("PAWS_STORE"); env != "" {
		return env
	}
	return fallback
}

// IsJSONOutput returns whether JSON output is requested
func IsJSONOutput() bool {
	return jsonOutput
}

// deps is everything a command needs, built once per invocation.
type deps struct {
	cfg      *config.Config
	store    store.Store
	api      *client.Client
	session  *session.Manager
	catalogs *catalog.Service
}

// Close releases the session store.
func (d *deps) Close() {
	if d.store != nil {
		if err := d.store.Close(); err != nil {
			slog.Debug("Closing session store failed", "error", err)
		}
	}
}

// setup loads config, opens the session store and hydrates the session.
func setup() (*deps, error) {
	cfg, err := config.Load(configDir)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	cfg.APIURL = GetAPIURL(cfg.APIURL)
	cfg.Store = GetStoreURL(cfg.Store)

	logger.Init(cfg.LogLevel, cfg.LogFormat, nil)

	st, err := store.Open(cfg.Store)
	if err != nil {
		return nil, fmt.Errorf("open session store: %w", err)
	}
	return newDeps(cfg, st), nil
}

// newDeps wires the client and session around an open store.
func newDeps(cfg *config.Config, st store.Store) *deps {
	api := client.New(cfg.APIURL, client.WithTimeout(cfg.Timeout))
	mgr := session.NewManager(st, api)
	mgr.Hydrate()
	api.UseCredentials(mgr)

	slog.Debug("Session hydrated", "state", mgr.State(), "api_url", cfg.APIURL)

	return &deps{
		cfg:      cfg,
		store:    st,
		api:      api,
		session:  mgr,
		catalogs: catalog.NewService(api, cfg.CatalogTTL),
	}
}

type depsKey struct{}

var errNoDeps = errors.New("command context not initialized")

func withDeps(ctx context.Context, d *deps) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx = context.WithValue(ctx, depsKey{}, d)
	return session.NewContext(ctx, d.session)
}

func depsFrom(ctx context.Context) (*deps, error) {
	if ctx == nil {
		return nil, errNoDeps
	}
	d, ok := ctx.Value(depsKey{}).(*deps)
	if !ok || d == nil {
		return nil, errNoDeps
	}
	return d, nil
}
