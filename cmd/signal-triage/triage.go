// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/pdiddy/signal-triage/internal/dashboard"
	"github.com/pdiddy/signal-triage/internal/feed"
	"github.com/pdiddy/signal-triage/internal/memory"
	"github.com/pdiddy/signal-triage/internal/themes"
	"github.com/pdiddy/signal-triage/internal/triage"
	"github.com/pdiddy/signal-triage/pkg/types"
)

var triageCmd = &cobra.Command{
	Use:   "triage",
	Short: "Fetch feeds, score items, and render the triage dashboard",
	Long: `Triage runs one full pass: fetch the configured feeds, score every item
against the signal rules and active themes, classify into High/Medium/Low,
and write the dashboard. First-seen history and run state are persisted at
the end of the pass, so a failed run never half-updates them.`,
	RunE: runTriage,
}

func init() {
	rootCmd.AddCommand(triageCmd)
}

func runTriage(cmd *cobra.Command, args []string) error {
	cfg, scoringWarn, err := loadConfig()
	if err != nil {
		return err
	}
	paths := pathsFor(cfg)
	now := time.Now().UTC()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	activeThemes, err := themes.Load(cfg.Paths.ThemesFile)
	if err != nil {
		return err
	}
	if len(activeThemes) > 0 {
		log.Info().Str("themes", themes.Summary(activeThemes)).Msg("active themes loaded")
	}

	fetcher := feed.NewFetcher(cfg.Feeds)
	items, fetchErrs := fetcher.FetchAll(ctx, now)
	for _, ferr := range fetchErrs {
		log.Warn().Err(ferr).Msg("feed fetch problem")
	}
	log.Info().Int("items", len(items)).Msg("feeds fetched")

	runState := memory.LoadRunState(paths.runState)
	for i := range items {
		items[i].NewSinceLastRun = !runState.Contains(items[i].ID)
	}

	store := memory.Load(paths.firstSeen)
	eng := &triage.Engine{
		Scoring: cfg.Scoring,
		Themes:  activeThemes,
		Memory:  store,
	}
	res := eng.Run(items, now)
	for _, derr := range res.DropErrors {
		log.Warn().Err(derr).Msg("item dropped")
	}

	if pruned := store.Prune(now); pruned > 0 {
		log.Info().Int("pruned", pruned).Msg("expired entries removed from first-seen history")
	}
	if err := store.Persist(); err != nil {
		return err
	}

	ids := make([]string, 0, len(res.Scored))
	for _, s := range res.Scored {
		ids = append(ids, s.Item.ID)
	}
	if err := memory.SaveRunState(paths.runState, memory.RunState{
		LastRunAt:  now,
		LastRunIDs: ids,
	}); err != nil {
		return err
	}

	cal := res.Calibration
	log.Info().
		Int("total", cal.Total).
		Str("high", bandStat(cal.High, cal)).
		Str("medium", bandStat(cal.Medium, cal)).
		Str("low", bandStat(cal.Low, cal)).
		Msg("signal bands")
	log.Info().
		Str("read", bandStat(cal.Read, cal)).
		Str("skip", bandStat(cal.Skip, cal)).
		Int("dropped", cal.Dropped).
		Msg("triage decisions")

	if err := dashboard.WriteFile(paths.dashboard, dashboard.Data{
		Generated:      now,
		Items:          res.Scored,
		ThemesSummary:  themes.Summary(activeThemes),
		ScoringWarning: scoringWarn,
		Scoring:        cfg.Scoring,
	}); err != nil {
		return err
	}
	log.Info().Str("path", paths.dashboard).Msg("dashboard written")
	return nil
}

func bandStat(n int, cal types.RunCalibration) string {
	return fmt.Sprintf("%d (%.0f%%)", n, cal.Percent(n))
}
