// Package cli implements the interwiki command-line interface.
//
// This package provides commands for synchronizing interlanguage links
// across a multilingual wiki, fixing category placement, rendering the
// localized category graph, and serving the derived data over HTTP.
// The CLI is built using cobra and supports verbose logging via the
// charmbracelet/log library.
//
// # Commands
//
// The main commands are:
//   - update: Recompute and write interlanguage links for all pages
//   - orphans: List translated pages with no interlanguage links
//   - families: Inspect the family grouping, optionally in a terminal UI
//   - toc: Render localized tables of contents from the category graph
//   - graph: Export the category graph as DOT or SVG
//   - categories: Fix category placement and create wanted categories
//   - serve: Serve family and graph data over HTTP
//   - cache: Manage the API response cache
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Loggers are
// passed through context.Context to allow structured progress tracking.
//
// # Example
//
//	import "github.com/jkral/interwiki/internal/cli"
//
//	func main() {
//	    c := cli.New(os.Stderr, cli.LogInfo)
//	    if err := c.RootCommand().Execute(); err != nil {
//	        os.Exit(1)
//	    }
//	}
package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/jkral/interwiki/pkg/buildinfo"
	"github.com/jkral/interwiki/pkg/cache"
	"github.com/jkral/interwiki/pkg/config"
	"github.com/jkral/interwiki/pkg/family"
	"github.com/jkral/interwiki/pkg/httputil"
	"github.com/jkral/interwiki/pkg/mediawiki"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = "interwiki"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	configPath string
	endpoint   string
	refresh    bool
	noCache    bool

	cfg *config.Config
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Interwiki keeps a multilingual wiki's cross-language structure consistent",
		Long:         `Interwiki synchronizes interlanguage links, localized categories, and tables of contents across the language variants of a wiki.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(c.configPath)
			if err != nil {
				return err
			}
			if c.endpoint != "" {
				cfg.Wiki.Endpoint = c.endpoint
			}
			c.cfg = cfg
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())

	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default ~/.config/interwiki/config.toml)")
	root.PersistentFlags().StringVar(&c.endpoint, "endpoint", "", "wiki api.php URL (overrides config)")
	root.PersistentFlags().BoolVar(&c.refresh, "refresh", false, "bypass cached listings and fetch fresh data")
	root.PersistentFlags().BoolVar(&c.noCache, "no-cache", false, "disable the response cache entirely")

	// Register all subcommands
	root.AddCommand(c.updateCommand())
	root.AddCommand(c.orphansCommand())
	root.AddCommand(c.familiesCommand())
	root.AddCommand(c.tocCommand())
	root.AddCommand(c.graphCommand())
	root.AddCommand(c.categoriesCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Client Factory
// =============================================================================

// newClient creates an API client from the loaded config and global flags.
func (c *CLI) newClient(ctx context.Context) (*mediawiki.Client, error) {
	opts := []mediawiki.Option{
		mediawiki.WithLogger(c.Logger),
		mediawiki.WithRefresh(c.refresh),
		mediawiki.WithMaxLag(c.cfg.Wiki.MaxLag),
	}

	ttl := c.cfg.Cache.TTL.Duration
	dir := c.cfg.Cache.Dir
	if c.noCache {
		ttl = time.Nanosecond // everything is instantly stale
	}
	responseCache, err := httputil.NewCache(dir, ttl)
	if err != nil {
		return nil, err
	}
	opts = append(opts, mediawiki.WithCache(responseCache))

	client, err := mediawiki.NewClient(c.cfg.Wiki.Endpoint, opts...)
	if err != nil {
		return nil, err
	}

	if c.cfg.Wiki.Username != "" {
		if err := client.Login(ctx, c.cfg.Wiki.Username, c.cfg.Wiki.Password); err != nil {
			return nil, err
		}
	}
	return client, nil
}

// newResolver fetches the page and redirect listings for the
// configured namespaces and builds a family resolver over them.
func (c *CLI) newResolver(ctx context.Context, client *mediawiki.Client) (*family.Resolver, []family.Page, error) {
	var pages []family.Page
	redirects := make(map[string]string)

	spin := newSpinnerWithContext(ctx, "Fetching page listings...")
	spin.Start()
	for _, ns := range c.cfg.Sync.Namespaces {
		nsPages, err := client.ListPages(ctx, ns)
		if err != nil {
			spin.StopWithError("Listing failed")
			return nil, nil, err
		}
		pages = append(pages, nsPages...)

		nsRedirects, err := client.ListRedirects(ctx, ns)
		if err != nil {
			spin.StopWithError("Listing failed")
			return nil, nil, err
		}
		for from, to := range nsRedirects {
			redirects[from] = to
		}
	}
	spin.Stop()

	resolver, err := family.NewResolver(pages,
		family.WithRedirects(redirects),
		family.WithLogger(c.Logger),
	)
	if err != nil {
		return nil, nil, err
	}
	return resolver, pages, nil
}

// newRenderCache creates the artifact cache for the serve command.
func (c *CLI) newRenderCache(ctx context.Context) (cache.Cache, error) {
	if c.noCache {
		return cache.NewNullCache(), nil
	}
	switch c.cfg.Cache.Backend {
	case "none":
		return cache.NewNullCache(), nil
	case "redis":
		return cache.NewRedisCache(ctx, c.cfg.Cache.RedisURL)
	default:
		dir, err := c.effectiveCacheDir()
		if err != nil {
			return cache.NewNullCache(), nil
		}
		return cache.NewFileCache(filepath.Join(dir, "render"))
	}
}

// =============================================================================
// Paths
// =============================================================================

// effectiveCacheDir resolves the cache directory: the configured
// cache.dir when set, otherwise the XDG default.
func (c *CLI) effectiveCacheDir() (string, error) {
	if c.cfg != nil && c.cfg.Cache.Dir != "" {
		return c.cfg.Cache.Dir, nil
	}
	return cacheDir()
}

// cacheDir returns the cache directory using XDG standard (~/.cache/interwiki/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}
