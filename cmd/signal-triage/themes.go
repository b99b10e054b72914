// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/signal-triage/internal/themes"
)

var themesCmd = &cobra.Command{
	Use:   "themes",
	Short: "Show the active watch themes",
	Long: `Themes prints the active theme configuration: each theme's thesis, its
watch trigger phrases, and its keyword set. Useful as a quick check that a
config edit parsed the way you meant it.`,
	RunE: runThemes,
}

func init() {
	rootCmd.AddCommand(themesCmd)
}

func runThemes(cmd *cobra.Command, args []string) error {
	cfg, _, err := loadConfig()
	if err != nil {
		return err
	}

	ts, err := themes.Load(cfg.Paths.ThemesFile)
	if err != nil {
		return err
	}
	if len(ts) == 0 {
		fmt.Printf("No active themes (%s missing or empty)\n", cfg.Paths.ThemesFile)
		return nil
	}

	fmt.Printf("%d active theme(s) from %s\n\n", len(ts), cfg.Paths.ThemesFile)
	for _, t := range ts {
		fmt.Printf("%s\n", t.Name)
		if t.Thesis != "" {
			fmt.Printf("  thesis:   %s\n", t.Thesis)
		}
		if len(t.WatchTriggers) > 0 {
			fmt.Printf("  triggers: %s\n", strings.Join(t.WatchTriggers, "; "))
		}
		if len(t.KeywordsAny) > 0 {
			fmt.Printf("  keywords: %s\n", strings.Join(t.KeywordsAny, ", "))
		}
		fmt.Println()
	}
	return nil
}
