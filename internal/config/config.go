// Package config loads grit's settings from a TOML file, with environment
// overrides for scripting.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config holds user-tunable settings.
type Config struct {
	// DBPath is where the SQLite database lives.
	DBPath string `toml:"db_path"`
	// SwapSetCount is the advisory set count for exercises swapped into or
	// added to a session without a prescription.
	SwapSetCount int `toml:"swap_set_count"`
	// LogUseCases enables structured use-case logging to stderr.
	LogUseCases bool `toml:"log_use_cases"`
}

// Load reads the config file at ~/.config/grit/config.toml (or $GRIT_CONFIG)
// and applies defaults and environment overrides. A missing file is not an
// error; a malformed one is.
func Load() (*Config, error) {
	cfg := &Config{SwapSetCount: 3}

	path := os.Getenv("GRIT_CONFIG")
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("finding home directory: %w", err)
		}
		path = filepath.Join(home, ".config", "grit", "config.toml")
	}

	if _, err := toml.DecodeFile(path, cfg); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	if env := os.Getenv("GRIT_DB"); env != "" {
		cfg.DBPath = env
	}
	if cfg.DBPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("finding home directory: %w", err)
		}
		cfg.DBPath = filepath.Join(home, ".grit", "grit.db")
	}
	if cfg.SwapSetCount < 1 {
		cfg.SwapSetCount = 3
	}
	return cfg, nil
}
