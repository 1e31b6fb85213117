// Package config loads the application configuration file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// FileName is the configuration file looked up in the user config dir.
const FileName = "config.toml"

// Config is the on-disk application configuration.
type Config struct {
	LogLevel           string  `toml:"log_level"`
	SettingsDir        string  `toml:"settings_dir"`
	EvalTimeoutSeconds float64 `toml:"eval_timeout_seconds"`
	DefaultPrintHours  float64 `toml:"default_print_hours"`
	LoadWorkers        int     `toml:"load_workers"`
	WatchSettings      bool    `toml:"watch_settings"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		LogLevel:           "info",
		SettingsDir:        defaultSettingsDir(),
		EvalTimeoutSeconds: 5,
		DefaultPrintHours:  1.0,
		LoadWorkers:        4,
		WatchSettings:      true,
	}
}

func defaultSettingsDir() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return filepath.Join(".", "printcost")
	}
	return filepath.Join(dir, "printcost", "settings")
}

// DefaultPath returns the configuration path inside the user config dir.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return FileName
	}
	return filepath.Join(dir, "printcost", FileName)
}

// EvalTimeout returns the script evaluation limit as a duration.
func (c Config) EvalTimeout() time.Duration {
	return time.Duration(c.EvalTimeoutSeconds * float64(time.Second))
}

// Load reads path. A missing file yields Default(); unset or invalid
// fields fall back to their defaults.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes TOML configuration text.
func Parse(data []byte) (Config, error) {
	c := Default()
	if err := toml.Unmarshal(data, &c); err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	c.fillDefaults()
	return c, nil
}

func (c *Config) fillDefaults() {
	d := Default()
	if c.LogLevel == "" {
		c.LogLevel = d.LogLevel
	}
	if c.SettingsDir == "" {
		c.SettingsDir = d.SettingsDir
	}
	if c.EvalTimeoutSeconds <= 0 {
		c.EvalTimeoutSeconds = d.EvalTimeoutSeconds
	}
	if c.DefaultPrintHours <= 0 {
		c.DefaultPrintHours = d.DefaultPrintHours
	}
	if c.LoadWorkers <= 0 {
		c.LoadWorkers = d.LoadWorkers
	}
}

// Save writes c to path as TOML, creating parent directories.
func Save(path string, c Config) error {
	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("config: encode: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}
