package config

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/viper"

	"github.com/compilelock/compilelock/internal/logging"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg == nil {
		t.Fatal("Default() returned nil")
	}

	if cfg.Cache.Dir == "" {
		t.Error("Cache.Dir should have a default")
	}
	if cfg.Logging.Enabled {
		t.Error("Logging.Enabled should be false by default")
	}
	if cfg.Logging.Level != logging.LevelInfo {
		t.Errorf("Logging.Level = %q, want %q", cfg.Logging.Level, logging.LevelInfo)
	}
	if cfg.Logging.File != "" {
		t.Errorf("Logging.File = %q, want empty", cfg.Logging.File)
	}
}

func TestLoadWithDefaults(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	SetDefaults()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Cache.Dir != DefaultCacheDir() {
		t.Errorf("Cache.Dir = %q, want %q", cfg.Cache.Dir, DefaultCacheDir())
	}
	if cfg.Logging.Level != logging.LevelInfo {
		t.Errorf("Logging.Level = %q, want %q", cfg.Logging.Level, logging.LevelInfo)
	}
}

func TestLoadWithOverrides(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	SetDefaults()
	viper.Set("cache.dir", "/srv/compile-cache")
	viper.Set("logging.level", logging.LevelDebug)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Cache.Dir != "/srv/compile-cache" {
		t.Errorf("Cache.Dir = %q, want /srv/compile-cache", cfg.Cache.Dir)
	}
	if cfg.Logging.Level != logging.LevelDebug {
		t.Errorf("Logging.Level = %q, want %q", cfg.Logging.Level, logging.LevelDebug)
	}
}

func TestValidate(t *testing.T) {
	t.Run("rejects empty cache dir", func(t *testing.T) {
		cfg := Default()
		cfg.Cache.Dir = ""

		err := cfg.Validate()
		if err == nil || !strings.Contains(err.Error(), "cache.dir") {
			t.Errorf("Validate = %v, want cache.dir error", err)
		}
	})

	t.Run("rejects unknown log level", func(t *testing.T) {
		cfg := Default()
		cfg.Logging.Level = "LOUD"

		err := cfg.Validate()
		if err == nil || !strings.Contains(err.Error(), "logging.level") {
			t.Errorf("Validate = %v, want logging.level error", err)
		}
	})

	t.Run("accepts defaults", func(t *testing.T) {
		if err := Default().Validate(); err != nil {
			t.Errorf("Validate on defaults: %v", err)
		}
	})
}

func TestDefaultCacheDir(t *testing.T) {
	xdg := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", xdg)

	want := filepath.Join(xdg, "compilelock")
	if got := DefaultCacheDir(); got != want {
		t.Errorf("DefaultCacheDir() = %q, want %q", got, want)
	}
}

func TestConfigDir(t *testing.T) {
	xdg := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", xdg)

	want := filepath.Join(xdg, "compilelock")
	if got := ConfigDir(); got != want {
		t.Errorf("ConfigDir() = %q, want %q", got, want)
	}

	if got := ConfigFile(); got != filepath.Join(want, "config.yaml") {
		t.Errorf("ConfigFile() = %q", got)
	}
}
