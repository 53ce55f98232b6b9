// Package config loads tikzgrid settings.
//
// Sources, lowest to highest precedence:
//
//  1. built-in defaults ([Default])
//  2. a TOML file: the explicit path, else $TIKZGRID_CONFIG, else
//     $XDG_CONFIG_HOME/tikzgrid/config.toml
//  3. a .env file in the working directory (never overrides variables
//     already set in the environment)
//  4. TIKZGRID_* environment variables
//
// Command-line flags are applied on top by the CLI.
package config

import (
	"errors"
	"fmt"
	"io"
	"net"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	perrors "github.com/matzehuels/tikzgrid/pkg/errors"
	"github.com/matzehuels/tikzgrid/pkg/palette"
	"github.com/matzehuels/tikzgrid/pkg/tikz"
)

const appName = "tikzgrid"

// EnvPrefix prefixes every environment variable read by Load.
const EnvPrefix = "TIKZGRID_"

// Config is the complete application configuration.
type Config struct {
	Server  Server         `toml:"server"`
	Palette palette.Config `toml:"palette"`
	Grid    tikz.Config    `toml:"grid"`
	Preview Preview        `toml:"preview"`

	// Source is the config file that was read, if any.
	Source string `toml:"-"`
}

// Server configures the HTTP server.
type Server struct {
	Host        string `toml:"host"`
	Port        int    `toml:"port"`
	OpenBrowser bool   `toml:"open_browser"`
}

// Preview configures SVG preview caching.
type Preview struct {
	CacheDir string `toml:"cache_dir"`
	NoCache  bool   `toml:"no_cache"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Server: Server{
			Host:        "127.0.0.1",
			Port:        5000,
			OpenBrowser: true,
		},
		Palette: palette.Config{
			Backend: palette.BackendFile,
			Key:     palette.DefaultKey,
		},
		Grid: tikz.DefaultConfig(),
		Preview: Preview{
			CacheDir: defaultCacheDir(),
		},
	}
}

// Addr returns the server listen address.
func (c Config) Addr() string {
	return net.JoinHostPort(c.Server.Host, strconv.Itoa(c.Server.Port))
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return perrors.New(perrors.ErrCodeInvalidInput, "port %d out of range 1-65535", c.Server.Port)
	}
	if c.Grid.Columns < 1 {
		return perrors.New(perrors.ErrCodeInvalidInput, "grid columns must be at least 1, got %d", c.Grid.Columns)
	}
	backend := strings.ToLower(c.Palette.Backend)
	if backend != "" && !slices.Contains(palette.Backends(), backend) {
		return perrors.New(perrors.ErrCodeInvalidBackend,
			"unknown palette backend %q (want one of %s)", c.Palette.Backend, strings.Join(palette.Backends(), ", "))
	}
	return nil
}

// Load builds the configuration from all sources. path may be empty.
func Load(path string) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		if env := os.Getenv(EnvPrefix + "CONFIG"); env != "" {
			path, explicit = env, true
		} else {
			path = DefaultPath()
		}
	}
	if path != "" {
		if err := cfg.readFile(path, explicit); err != nil {
			return cfg, err
		}
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return cfg, perrors.Wrap(perrors.ErrCodeInvalidInput, err, "failed to read .env")
	}
	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

func (c *Config) readFile(path string, required bool) error {
	md, err := toml.DecodeFile(path, c)
	if errors.Is(err, os.ErrNotExist) && !required {
		return nil
	}
	if err != nil {
		return perrors.Wrap(perrors.ErrCodeInvalidInput, err, "failed to read config %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return perrors.New(perrors.ErrCodeInvalidInput, "unknown keys in %s: %s", path, strings.Join(keys, ", "))
	}
	c.Source = path
	return nil
}

// applyEnv overrides settings from TIKZGRID_* variables.
func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	str := func(name string, dst *string) {
		if v, ok := lookup(EnvPrefix + name); ok && v != "" {
			*dst = v
		}
	}
	integer := func(name string, dst *int) error {
		v, ok := lookup(EnvPrefix + name)
		if !ok || v == "" {
			return nil
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return perrors.New(perrors.ErrCodeInvalidInput, "%s%s: %q is not a number", EnvPrefix, name, v)
		}
		*dst = n
		return nil
	}
	boolean := func(name string, dst *bool) error {
		v, ok := lookup(EnvPrefix + name)
		if !ok || v == "" {
			return nil
		}
		b, err := strconv.ParseBool(v)
		if err != nil {
			return perrors.New(perrors.ErrCodeInvalidInput, "%s%s: %q is not a boolean", EnvPrefix, name, v)
		}
		*dst = b
		return nil
	}

	str("HOST", &c.Server.Host)
	str("PALETTE_BACKEND", &c.Palette.Backend)
	str("PALETTE_PATH", &c.Palette.Path)
	str("PALETTE_KEY", &c.Palette.Key)
	str("REDIS_ADDR", &c.Palette.RedisAddr)
	str("MONGO_URI", &c.Palette.MongoURI)
	str("MONGO_DATABASE", &c.Palette.MongoDatabase)
	str("CACHE_DIR", &c.Preview.CacheDir)

	return errors.Join(
		integer("PORT", &c.Server.Port),
		integer("GRID_COLUMNS", &c.Grid.Columns),
		boolean("OPEN_BROWSER", &c.Server.OpenBrowser),
		boolean("DEDUPE_COLORS", &c.Grid.DedupeColors),
		boolean("NO_CACHE", &c.Preview.NoCache),
	)
}

// Write encodes c as TOML.
func (c Config) Write(w io.Writer) error {
	return toml.NewEncoder(w).Encode(c)
}

// DefaultPath returns the config file location following XDG
// (~/.config/tikzgrid/config.toml).
func DefaultPath() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, appName, "config.toml")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", appName, "config.toml")
}

// defaultCacheDir returns ~/.cache/tikzgrid/previews, or "" when no home
// directory is known.
func defaultCacheDir() string {
	if dir := os.Getenv("XDG_CACHE_HOME"); dir != "" {
		return filepath.Join(dir, appName, "previews")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".cache", appName, "previews")
}

// String renders c as TOML, for logging.
func (c Config) String() string {
	var b strings.Builder
	if err := c.Write(&b); err != nil {
		return fmt.Sprintf("config: %v", err)
	}
	return b.String()
}
