// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the signal-triage CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/signal-triage/internal/logging"
)

// version is set at build time via ldflags.
var version = "dev"

// log is the process logger, configured in PersistentPreRun once the config
// and flags have been resolved.
var log zerolog.Logger

// rootCmd is the base command for the signal-triage CLI.
var rootCmd = &cobra.Command{
	Use:   "signal-triage",
	Short: "Score, classify, and triage news feed items against watch themes",
	Long: `signal-triage polls RSS feeds, scores each item against a set of additive
signal rules and configured watch themes, and renders a triage dashboard
that splits the batch into Read and Skip.

Each stage is a subcommand: triage (fetch, score, render), serve (local
review server and analysis form), memo (weekly synthesis of the analysis
log), and themes (inspect the active theme configuration).`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := viper.GetString("log_level")
		if flag, _ := cmd.Flags().GetString("log-level"); flag != "" {
			level = flag
		}
		log = logging.Default(level)
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./signal-triage.yaml or ~/.config/signal-triage/config.yaml)")
	rootCmd.PersistentFlags().String("log-level", "", "log level: trace, debug, info, warn, error")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("signal-triage")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "signal-triage"))
		}
	}

	viper.SetEnvPrefix("SIGNAL_TRIAGE")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
