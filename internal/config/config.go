// Package config loads the optional gpcdb configuration file. Flags
// always override file values; the file only supplies defaults for the
// feed URL, cache directory, and database connection.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// DefaultFeedURL is the published GS1 GPC XML feed.
const DefaultFeedURL = "https://gpc-api.gs1.org/api/browser/xml?languageCode=en"

// Config is the gpcdb configuration.
type Config struct {
	// FeedURL is the GPC feed to download.
	FeedURL string `toml:"feed_url"`

	// CacheDir holds downloaded feed files.
	CacheDir string `toml:"cache_dir"`

	Database Database `toml:"database"`
}

// Database selects the storage backend.
type Database struct {
	// Backend is "sqlite" or "postgres".
	Backend string `toml:"backend"`

	// DSN is a file path for sqlite, a connection string for postgres.
	DSN string `toml:"dsn"`
}

// Default returns the built-in configuration.
func Default() Config {
	cacheDir := "gpcdb-cache"
	if dir, err := os.UserCacheDir(); err == nil {
		cacheDir = filepath.Join(dir, "gpcdb")
	}
	return Config{
		FeedURL:  DefaultFeedURL,
		CacheDir: cacheDir,
		Database: Database{Backend: "sqlite", DSN: "gpc_data.db"},
	}
}

// DefaultPath returns the default config file location.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "gpcdb", "config.toml")
}

// Load reads the config file at path, filling unset fields from
// Default. An empty path means the default location; a missing file
// there is not an error, but an explicitly named file must exist.
func Load(path string) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = DefaultPath()
	}
	if path == "" {
		return cfg, nil
	}

	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		if os.IsNotExist(err) && !explicit {
			return Default(), nil
		}
		return cfg, fmt.Errorf("load config %s: %w", path, err)
	}

	// A partial file must not blank out the defaults.
	def := Default()
	if cfg.FeedURL == "" {
		cfg.FeedURL = def.FeedURL
	}
	if cfg.CacheDir == "" {
		cfg.CacheDir = def.CacheDir
	}
	if cfg.Database.Backend == "" {
		cfg.Database.Backend = def.Database.Backend
	}
	if cfg.Database.DSN == "" {
		cfg.Database.DSN = def.Database.DSN
	}
	return cfg, nil
}
