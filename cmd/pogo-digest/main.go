// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the pogo-digest CLI. Each
// pipeline stage is a subcommand: scrape, build, index, query, export,
// and store. Stages communicate only through the library directory, so
// any stage can be re-run in isolation.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/pogo-digest/internal/library"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the pogo-digest CLI.
var rootCmd = &cobra.Command{
	Use:   "pogo-digest",
	Short: "Pokemon GO content aggregation pipeline",
	Long: `pogo-digest aggregates Pokemon GO content (events, features, balance
changes, guides, rankings, research, eggs, items, shinies) from public
sources into a canonical library, then serves it through lexical search,
digest exports, and a SQLite store.

Each pipeline stage is a subcommand: scrape fetches raw records, build
normalizes and merges them into the canonical library, index fits the
lexical search artifacts, query searches them, export renders digest
files, and store mirrors the library into SQLite.`,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./pogo-digest.yaml or ~/.config/pogo-digest/config.yaml)")
	rootCmd.PersistentFlags().String("library-dir", "", "library base directory (default: ./library)")
	rootCmd.PersistentFlags().Bool("verbose", false, "enable debug logging")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("pogo-digest")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "pogo-digest"))
		}
	}

	viper.SetEnvPrefix("POGO_DIGEST")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// openLibrary resolves the library directory: flag, then config, then
// the ./library default.
func openLibrary(cmd *cobra.Command) *library.Library {
	dir, _ := cmd.Flags().GetString("library-dir")
	if dir == "" {
		dir = viper.GetString("library_dir")
	}
	if dir == "" {
		dir = "library"
	}
	return library.New(dir)
}

// newLogger builds the stage logger writing human-readable lines to
// stderr; stdout stays reserved for results and summaries.
func newLogger(cmd *cobra.Command) zerolog.Logger {
	level := zerolog.InfoLevel
	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		level = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).Level(level).With().Timestamp().Logger()
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
