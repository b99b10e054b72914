// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/pdiddy/signal-triage/internal/analysis"
	"github.com/pdiddy/signal-triage/internal/memo"
	"github.com/pdiddy/signal-triage/internal/themes"
)

var memoCmd = &cobra.Command{
	Use:   "memo",
	Short: "Synthesize the analysis log into the weekly memo",
	Long: `Memo aggregates the manually authored analysis entries from the last N
days into a Markdown memo: Act items first, then theme reinforcement,
stance changes, confidence updates, and tag frequency. The memo is written
to the output directory in both Markdown and HTML.`,
	RunE: runMemo,
}

func init() {
	memoCmd.Flags().Int("days", 0, "synthesis window in days (default from config, 7)")

	rootCmd.AddCommand(memoCmd)
}

func runMemo(cmd *cobra.Command, args []string) error {
	cfg, _, err := loadConfig()
	if err != nil {
		return err
	}
	paths := pathsFor(cfg)

	days := cfg.Memo.WindowDays
	if flag, _ := cmd.Flags().GetInt("days"); flag > 0 {
		days = flag
	}

	entries, err := analysis.Read(paths.analysis)
	if err != nil {
		return err
	}
	activeThemes, err := themes.Load(cfg.Paths.ThemesFile)
	if err != nil {
		return err
	}

	s := memo.Build(entries, days, time.Now().UTC())
	md := memo.Markdown(s, activeThemes)

	if err := os.MkdirAll(filepath.Dir(paths.memoMD), 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}
	if err := os.WriteFile(paths.memoMD, []byte(md), 0o644); err != nil {
		return fmt.Errorf("writing memo: %w", err)
	}
	if err := os.WriteFile(paths.memoHTML, []byte(memo.BasicHTML(md)), 0o644); err != nil {
		return fmt.Errorf("writing memo html: %w", err)
	}

	log.Info().
		Int("entries", s.Parsed).
		Int("act_items", len(s.ActItems)).
		Str("markdown", paths.memoMD).
		Str("html", paths.memoHTML).
		Msg("weekly memo written")
	return nil
}
