package cli

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config holds user-tunable defaults, loaded from an optional TOML file at
// ~/.config/arbor/config.toml (or $XDG_CONFIG_HOME/arbor/config.toml).
// Command-line flags override these per invocation.
type Config struct {
	// SourceURL is the tree-data endpoint with a %s version placeholder.
	SourceURL string `toml:"source_url"`

	// DefaultVersion is used when --tree-version is not given.
	DefaultVersion string `toml:"default_version"`

	// FallbackVersion is tried once when the requested version is missing
	// upstream. Empty disables the fallback.
	FallbackVersion string `toml:"fallback_version"`

	// CacheDir overrides the XDG cache directory for raw tree data.
	CacheDir string `toml:"cache_dir"`

	// MinLife, MinResistance seed the optimizer's constraint defaults.
	MinLife       float64 `toml:"min_life"`
	MinResistance float64 `toml:"min_resistance"`
}

func defaultConfig() *Config {
	return &Config{
		SourceURL:       "https://raw.tree-data.exilemind.dev/%s.lua",
		DefaultVersion:  "3_26",
		FallbackVersion: "3_25",
	}
}

// LoadConfig reads the config file, falling back to defaults when the file
// is absent or unreadable. A malformed file is ignored rather than fatal:
// the CLI should stay usable with a broken config, and flags still work.
func LoadConfig() *Config {
	cfg := defaultConfig()
	path, err := configPath()
	if err != nil {
		return cfg
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg
	}
	loaded := defaultConfig()
	if err := toml.Unmarshal(data, loaded); err != nil {
		return cfg
	}
	if loaded.SourceURL == "" {
		loaded.SourceURL = cfg.SourceURL
	}
	if loaded.DefaultVersion == "" {
		loaded.DefaultVersion = cfg.DefaultVersion
	}
	return loaded
}

func configPath() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, "config.toml"), nil
}
