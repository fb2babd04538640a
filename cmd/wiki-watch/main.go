// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the wiki-watch CLI.
// Implements: the search server (serve), one-shot searches (search), and
// watch-list maintenance (watchlist).
// See DESIGN.md § CLI.
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/adrg/xdg"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/wiki-watch/internal/search"
	"github.com/pdiddy/wiki-watch/internal/secrets"
	"github.com/pdiddy/wiki-watch/pkg/types"
)

const appName = "wiki-watch"

// version is set at build time via ldflags.
var version = "dev"

// loadedSecrets holds values loaded from .secrets/ at startup.
var loadedSecrets = secrets.Secrets{}

// logger is configured in PersistentPreRunE from --verbose.
var logger = slog.New(slog.NewTextHandler(os.Stderr, nil))

// rootCmd is the base command for the wiki-watch CLI.
var rootCmd = &cobra.Command{
	Use:   appName,
	Short: "Search an encyclopedia from any page and keep a watch list of articles",
	Long: `wiki-watch injects a search box into host pages, runs encyclopedia searches
for selected text or typed queries, and bookmarks chosen results into a
persistent watch list.

Run "wiki-watch serve" to host tabs for a browser extension's background
process, "wiki-watch search" for one-shot searches, and "wiki-watch watchlist"
to inspect or export saved articles.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		verbose, _ := cmd.Flags().GetBool("verbose")
		logger = newLogger(os.Stderr, verbose)
		slog.SetDefault(logger)

		s, err := secrets.Load(".secrets/", logger)
		if err != nil {
			return err
		}
		loadedSecrets = s
		if len(s) > 0 {
			keys := s.Keys()
			sort.Strings(keys)
			logger.Debug("loaded secrets", "keys", keys)
		}
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./wiki-watch.yaml or ~/.config/wiki-watch/config.yaml)")
	rootCmd.PersistentFlags().Bool("verbose", false, "enable debug logging")
	rootCmd.PersistentFlags().String("data-dir", "", "directory holding the watch-list database (default: XDG data home)")
	rootCmd.PersistentFlags().String("host", search.DefaultHost, "encyclopedia base URL")

	_ = viper.BindPFlag("storage.data_dir", rootCmd.PersistentFlags().Lookup("data-dir"))
	_ = viper.BindPFlag("search.host", rootCmd.PersistentFlags().Lookup("host"))

	setDefaults()
}

func setDefaults() {
	viper.SetDefault("search.host", search.DefaultHost)
	viper.SetDefault("search.result_limit", search.DefaultResultLimit)
	viper.SetDefault("search.max_retries", 0)
	viper.SetDefault("search.timeout", time.Duration(0))
	viper.SetDefault("search.user_agent", appName+"/"+version)
	viper.SetDefault("storage.data_dir", filepath.Join(xdg.DataHome, appName))
	viper.SetDefault("server.addr", ":8990")
	viper.SetDefault("server.shutdown_timeout", 10*time.Second)
}

func initConfig() {
	_ = godotenv.Load()

	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName(appName)
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
		viper.AddConfigPath(filepath.Join(xdg.ConfigHome, appName))
	}

	viper.SetEnvPrefix("WIKI_WATCH")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// loadConfig assembles the effective configuration from defaults, the
// config file, the environment, bound flags, and secrets.
func loadConfig() (types.Config, error) {
	var cfg types.Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("decoding configuration: %w", err)
	}
	if cfg.Search.Contact == "" {
		cfg.Search.Contact = loadedSecrets.Get(secrets.ContactKey)
	}
	return cfg, nil
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
