// Package config loads the tool configuration from a TOML file.
//
// The default location is ~/.config/interwiki/config.toml. Every
// setting has a working default except the wiki endpoint, which must
// be set either in the file or on the command line.
package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/jkral/interwiki/pkg/errors"
)

// Duration wraps time.Duration for TOML decoding from strings like "24h".
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = parsed
	return nil
}

// Wiki holds the connection settings for one wiki.
type Wiki struct {
	// Endpoint is the full URL of the wiki's api.php.
	Endpoint string `toml:"endpoint"`

	// Username and Password are bot password credentials. Leave empty
	// for anonymous read-only operation.
	Username string `toml:"username"`
	Password string `toml:"password"`

	// MaxLag makes the wiki reject queries while its replication lag
	// exceeds this many seconds. Zero disables the parameter.
	MaxLag int `toml:"max_lag"`
}

// CacheConfig selects and configures the response cache.
type CacheConfig struct {
	// Backend is one of "file", "redis" or "none".
	Backend string `toml:"backend"`

	// Dir is the file cache directory. Empty selects the default
	// (~/.cache/interwiki/).
	Dir string `toml:"dir"`

	// TTL is how long listings stay fresh.
	TTL Duration `toml:"ttl"`

	// RedisURL is the connection URL for the redis backend.
	RedisURL string `toml:"redis_url"`
}

// SyncConfig controls the update run.
type SyncConfig struct {
	// Namespaces are the content namespaces whose pages are updated.
	Namespaces []int `toml:"namespaces"`

	// Summary overrides the default edit summary.
	Summary string `toml:"summary"`
}

// ServerConfig configures the HTTP server.
type ServerConfig struct {
	// Addr is the listen address.
	Addr string `toml:"addr"`
}

// Config is the root of the configuration file.
type Config struct {
	Wiki   Wiki         `toml:"wiki"`
	Cache  CacheConfig  `toml:"cache"`
	Sync   SyncConfig   `toml:"sync"`
	Server ServerConfig `toml:"server"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Wiki: Wiki{
			MaxLag: 5,
		},
		Cache: CacheConfig{
			Backend: "file",
			TTL:     Duration{24 * time.Hour},
		},
		Sync: SyncConfig{
			Namespaces: []int{0},
		},
		Server: ServerConfig{
			Addr: ":8080",
		},
	}
}

// DefaultPath returns the default configuration file location.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "interwiki", "config.toml"), nil
}

// Load reads the configuration file at path on top of the defaults.
// A missing file at the default location is not an error; a missing
// file at an explicitly given path is.
func Load(path string) (*Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		var err error
		path, err = DefaultPath()
		if err != nil {
			return cfg, nil
		}
	}

	meta, err := toml.DecodeFile(path, cfg)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return cfg, nil
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "loading %s", path)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return nil, errors.New(errors.ErrCodeInvalidConfig, "unknown key %q in %s", undecoded[0].String(), path)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks settings that cannot be caught by decoding alone.
func (c *Config) Validate() error {
	if c.Wiki.Endpoint != "" {
		if err := errors.ValidateURL(c.Wiki.Endpoint); err != nil {
			return err
		}
	}
	switch c.Cache.Backend {
	case "file", "redis", "none", "":
	default:
		return errors.New(errors.ErrCodeInvalidConfig, "unknown cache backend %q", c.Cache.Backend)
	}
	if c.Cache.Backend == "redis" && c.Cache.RedisURL == "" {
		return errors.New(errors.ErrCodeInvalidConfig, "cache backend redis requires redis_url")
	}
	return nil
}
