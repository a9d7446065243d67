package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/compilelock/compilelock/internal/config"
	"github.com/compilelock/compilelock/internal/dirlock"
	"github.com/compilelock/compilelock/internal/logging"
)

var rootCmd = &cobra.Command{
	Use:   "compilelock",
	Short: "Cross-process locking for shared compile caches",
	Long: `Compilelock serializes access to a shared compilation cache
directory across processes, using an exclusive advisory lock on a
.lockfile sentinel inside the directory. The lock only excludes other
cooperating compilelock users, not arbitrary writers.`,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringP("config", "c", "", "config file (default is $HOME/.config/compilelock/config.yaml)")
	_ = viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))

	rootCmd.PersistentFlags().StringP("dir", "d", "", "cache directory to lock (default from config)")
	_ = viper.BindPFlag("cache.dir", rootCmd.PersistentFlags().Lookup("dir"))
}

func initConfig() {
	// Set defaults first so they're available even without a config file
	config.SetDefaults()

	if cfgFile := viper.GetString("config"); cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(config.ConfigDir())
		viper.AddConfigPath("$HOME/.config/compilelock")
		viper.AddConfigPath(".")
	}

	viper.AutomaticEnv()
	viper.SetEnvPrefix("COMPILELOCK")
	// Replace dots with underscores for nested keys in env vars
	// e.g., COMPILELOCK_CACHE_DIR for cache.dir
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Read config file if it exists (ignore error if not found)
	_ = viper.ReadInConfig()

	// The lock package falls back to this directory when a caller
	// passes none.
	dirlock.SetDefaultDir(viper.GetString("cache.dir"))
}

// lockDir resolves the directory subcommands operate on.
func lockDir() (string, error) {
	dir := viper.GetString("cache.dir")
	if dir == "" {
		return "", fmt.Errorf("no cache directory configured (set cache.dir or pass --dir)")
	}
	return dir, nil
}

// newLogger builds a logger from the loaded configuration. Commands
// get a NopLogger unless logging is enabled.
func newLogger() *logging.Logger {
	cfg := config.Get()
	if !cfg.Logging.Enabled {
		return logging.NopLogger()
	}
	logger, err := logging.NewLogger(cfg.Logging.File, cfg.Logging.Level)
	if err != nil {
		return logging.NopLogger()
	}
	return logger
}
