// Package config loads and validates compilelock configuration via
// viper, from a YAML config file, environment variables (COMPILELOCK_
// prefix), and command-line flags bound by the CLI layer.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/compilelock/compilelock/internal/logging"
)

// Config represents the complete compilelock configuration
type Config struct {
	Cache   CacheConfig   `mapstructure:"cache"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// CacheConfig controls which directory the lock protects
type CacheConfig struct {
	// Dir is the shared compilation cache directory. It is the default
	// lock target when a command or caller does not name one explicitly.
	Dir string `mapstructure:"dir"`
}

// LoggingConfig controls structured log output
type LoggingConfig struct {
	// Enabled turns structured logging on (default: false)
	Enabled bool `mapstructure:"enabled"`
	// Level is the minimum log level: DEBUG, INFO, WARN, or ERROR
	Level string `mapstructure:"level"`
	// File is the log file path; empty means stderr
	File string `mapstructure:"file"`
}

// Default returns the configuration used when no config file or
// environment overrides are present.
func Default() *Config {
	return &Config{
		Cache: CacheConfig{
			Dir: DefaultCacheDir(),
		},
		Logging: LoggingConfig{
			Enabled: false,
			Level:   logging.LevelInfo,
			File:    "",
		},
	}
}

// SetDefaults registers default values with viper
func SetDefaults() {
	defaults := Default()

	viper.SetDefault("cache.dir", defaults.Cache.Dir)

	viper.SetDefault("logging.enabled", defaults.Logging.Enabled)
	viper.SetDefault("logging.level", defaults.Logging.Level)
	viper.SetDefault("logging.file", defaults.Logging.File)
}

// Load reads the configuration from viper into a Config struct and
// validates it
func Load() (*Config, error) {
	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Get returns the current configuration, falling back to defaults if
// loading fails
func Get() *Config {
	cfg, err := Load()
	if err != nil {
		return Default()
	}
	return cfg
}

// Validate checks the configuration for invalid values
func (c *Config) Validate() error {
	var errs []error

	if c.Cache.Dir == "" {
		errs = append(errs, errors.New("cache.dir must not be empty"))
	}

	valid := false
	for _, level := range logging.ValidLevels() {
		if c.Logging.Level == level {
			valid = true
			break
		}
	}
	if !valid {
		errs = append(errs, fmt.Errorf("logging.level must be one of %v, got %q",
			logging.ValidLevels(), c.Logging.Level))
	}

	return errors.Join(errs...)
}

// DefaultCacheDir returns the default shared cache directory
func DefaultCacheDir() string {
	// Check XDG_CACHE_HOME first
	if xdg := os.Getenv("XDG_CACHE_HOME"); xdg != "" {
		return filepath.Join(xdg, "compilelock")
	}
	// Fall back to ~/.cache/compilelock
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), "compilelock")
	}
	return filepath.Join(home, ".cache", "compilelock")
}

// ConfigDir returns the path to the user's config directory
func ConfigDir() string {
	// Check XDG_CONFIG_HOME first
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "compilelock")
	}
	// Fall back to ~/.config/compilelock
	home, err := os.UserHomeDir()
	if err != nil {
		return ".compilelock"
	}
	return filepath.Join(home, ".config", "compilelock")
}

// ConfigFile returns the path to the config file
func ConfigFile() string {
	return filepath.Join(ConfigDir(), "config.yaml")
}
