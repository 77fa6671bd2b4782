// Package config loads the persistent application configuration from
// ~/.bookreports/config.json, with environment variable overrides.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
)

// Config is the persistent application configuration.
type Config struct {
	// DatabaseURL is the realtime database to subscribe to.
	DatabaseURL string `json:"database_url" env:"BOOKREPORTS_DATABASE_URL"`

	// Path is the collection path within the database.
	Path string `json:"path" env:"BOOKREPORTS_PATH"`

	// CachePath is the local snapshot cache. Empty means the default
	// under ~/.bookreports.
	CachePath string `json:"cache_path" env:"BOOKREPORTS_CACHE"`

	// UI preferences
	UI UIConfig `json:"ui"`
}

// UIConfig holds UI preferences.
type UIConfig struct {
	ItemLimit int `json:"item_limit" env:"BOOKREPORTS_ITEM_LIMIT"`
}

// Default returns sensible defaults.
func Default() *Config {
	return &Config{
		DatabaseURL: "https://bookreports-default-rtdb.firebaseio.com",
		Path:        "/bookreviews",
		UI: UIConfig{
			ItemLimit: 500,
		},
	}
}

// ConfigPath returns the path to the config file.
func ConfigPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".bookreports", "config.json")
}

// Load reads config from disk, falls back to defaults when the file is
// missing or unparseable, then applies environment overrides.
func Load() (*Config, error) {
	cfg := Default()

	if data, err := os.ReadFile(ConfigPath()); err == nil {
		if err := json.Unmarshal(data, cfg); err != nil {
			cfg = Default()
		}
	} else if !os.IsNotExist(err) {
		return nil, err
	}

	if err := env.Parse(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Save writes the config to disk.
func (c *Config) Save() error {
	path := ConfigPath()

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}
