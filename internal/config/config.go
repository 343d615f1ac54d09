// Package config holds the diyfinder client configuration. Values come
// from three layers, weakest first: built-in defaults, the YAML config
// file, and DIYFINDER_* environment variables. Command-line flags
// override all three at the call site.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config is the full client configuration.
type Config struct {
	// ServerURL is the backend base URL.
	ServerURL string `yaml:"server_url"`

	// Theme selects the TUI color scheme: "auto", "light" or "dark".
	Theme string `yaml:"theme"`

	// WatchDir, when set, is a drop folder: image files appearing there
	// are automatically added to the inventory while the client runs.
	WatchDir string `yaml:"watch_dir,omitempty"`

	Log LogConfig `yaml:"log"`
}

// LogConfig controls file logging.
type LogConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
	File  string `yaml:"file"`  // empty means the default path
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		ServerURL: "http://localhost:8000",
		Theme:     "auto",
		Log:       LogConfig{Level: "info"},
	}
}

// DefaultPath is the config file location unless overridden by flag.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = "."
	}
	return filepath.Join(dir, "diyfinder", "config.yaml")
}

// DefaultLogPath is where logs go when log.file is unset.
func DefaultLogPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = "."
	}
	return filepath.Join(dir, "diyfinder", "diyfinder.log")
}

// Load reads the config at path, layering file values over defaults and
// environment overrides over both. A missing file is not an error.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
		// Defaults + env only.
	case err != nil:
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	default:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parsing config %s: %w", path, err)
		}
	}

	applyEnv(&cfg)
	return cfg, nil
}

// Save writes the config to path, creating parent directories.
func (c Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("writing config %s: %w", path, err)
	}
	return nil
}

// LogFile resolves the effective log file path.
func (c Config) LogFile() string {
	if c.Log.File != "" {
		return c.Log.File
	}
	return DefaultLogPath()
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("DIYFINDER_SERVER_URL"); v != "" {
		cfg.ServerURL = v
	}
	if v := os.Getenv("DIYFINDER_THEME"); v != "" {
		cfg.Theme = v
	}
	if v := os.Getenv("DIYFINDER_WATCH_DIR"); v != "" {
		cfg.WatchDir = v
	}
	if v := os.Getenv("DIYFINDER_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
}
