// Package cli implements the tikzgrid command-line interface.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/tikzgrid/internal/config"
	"github.com/matzehuels/tikzgrid/pkg/buildinfo"
	"github.com/matzehuels/tikzgrid/pkg/cache"
	"github.com/matzehuels/tikzgrid/pkg/palette"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "tikzgrid"

	// stdinArg reads the grid request from standard input.
	stdinArg = "-"

	// skipConfig marks commands that run without loading the config file.
	skipConfig = "tikzgrid/skip-config"
)

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
	backend    string
	palette    string
	cfg        config.Config
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		cfg:    config.Default(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "tikzgrid",
		Short: "tikzgrid turns drawn graphs into TikZ figure grids",
		Long: `tikzgrid composes graphs into a LaTeX figure of TikZ subfigures.

Run 'tikzgrid serve' for the browser editor, or feed a JSON/YAML grid
request to 'tikzgrid generate'. Named colors come from a palette stored
in a CSV file, SQLite, Redis or MongoDB.`,
		Version:           buildinfo.Version,
		SilenceUsage:      true,
		PersistentPreRunE: c.loadConfig,
	}

	root.SetVersionTemplate(buildinfo.Template())

	root.PersistentFlags().StringVarP(&c.configPath, "config", "c", "", "config file (default $XDG_CONFIG_HOME/tikzgrid/config.toml)")
	root.PersistentFlags().StringVar(&c.backend, "backend", "", "palette backend: file, sqlite, redis, mongo, memory")
	root.PersistentFlags().StringVar(&c.palette, "palette", "", "palette file or database path")

	root.AddCommand(c.serveCommand())
	root.AddCommand(c.generateCommand())
	root.AddCommand(c.previewCommand())
	root.AddCommand(c.paletteCommand())
	root.AddCommand(c.configCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// loadConfig reads the configuration and applies the persistent flags.
func (c *CLI) loadConfig(cmd *cobra.Command, _ []string) error {
	cmd.SetContext(withLogger(cmd.Context(), c.Logger))
	if _, ok := cmd.Annotations[skipConfig]; ok {
		return nil
	}

	cfg, err := config.Load(c.configPath)
	if err != nil {
		return err
	}
	if c.backend != "" {
		cfg.Palette.Backend = c.backend
	}
	if c.palette != "" {
		cfg.Palette.Path = c.palette
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	cfg.Palette.Logger = c.Logger
	c.cfg = cfg

	if cfg.Source != "" {
		c.Logger.Debug("loaded config", "path", cfg.Source)
	}
	return nil
}

// =============================================================================
// Factories
// =============================================================================

// openStore opens the configured palette store.
func (c *CLI) openStore(ctx context.Context) (palette.Store, error) {
	store, err := palette.Open(ctx, c.cfg.Palette)
	if err != nil {
		return nil, err
	}
	c.Logger.Debug("palette store", "backend", c.cfg.Palette.Backend, "location", palette.Location(c.cfg.Palette))
	return store, nil
}

// newCache returns the preview cache. Caching falls back to memory when
// the cache directory is unusable.
func (c *CLI) newCache(noCache bool) cache.Cache {
	if noCache || c.cfg.Preview.NoCache {
		return cache.NullCache{}
	}
	dir := c.cfg.Preview.CacheDir
	if dir == "" {
		return cache.NewMemoryCache(0)
	}
	fc, err := cache.NewFileCache(dir)
	if err != nil {
		c.Logger.Warn("preview cache unavailable, using memory", "dir", dir, "err", err)
		return cache.NewMemoryCache(0)
	}
	return fc
}

// =============================================================================
// I/O Helpers
// =============================================================================

// nopCloser wraps an io.Writer with a no-op Close method.
type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }

// openOutput returns a WriteCloser for path, or stdout when path is empty.
func openOutput(path string, stdout io.Writer) (io.WriteCloser, error) {
	if path == "" {
		return nopCloser{stdout}, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", path, err)
	}
	return f, nil
}

// openInput returns a reader for path, or stdin for "-" and "".
func openInput(path string, stdin io.Reader) (io.ReadCloser, error) {
	if path == "" || path == stdinArg {
		return io.NopCloser(stdin), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	return f, nil
}
