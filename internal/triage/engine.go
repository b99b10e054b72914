// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package triage

import (
	"time"

	"github.com/pdiddy/signal-triage/internal/themes"
	"github.com/pdiddy/signal-triage/pkg/types"
)

// evergreenDays is the first-seen age at which a resurfaced item gets the
// evergreen badge.
const evergreenDays = 90

// Memory is the first-seen history the engine consults and updates. The
// durable implementation lives in internal/memory; tests use an in-memory
// fake.
type Memory interface {
	// FirstSeen returns the recorded first-seen time for id, if any.
	FirstSeen(id string) (time.Time, bool)

	// RecordSeen records id at ts. Idempotent: recording an already-seen id
	// does not move its first-seen time.
	RecordSeen(id string, ts time.Time)
}

// Engine is the triage pass over one run's item batch. Items are processed
// sequentially; no item's result depends on any other item, so processing
// order does not affect scores.
type Engine struct {
	Scoring types.ScoringConfig
	Themes  []types.Theme
	Memory  Memory
}

// Result is the engine's output for one run.
type Result struct {
	Scored      []types.ScoredItem
	Calibration types.RunCalibration
	DropErrors  []error
}

// Run scores and classifies the batch. runStart is the run's timestamp: an
// item whose id was recorded before runStart is evergreen, anything else is
// new. Invalid items are excluded and reported, both as errors and in the
// calibration's dropped count. Run mutates only the Memory; persisting it
// is the caller's job, once, after the run completes.
func (e *Engine) Run(items []types.Item, runStart time.Time) Result {
	scored := make([]types.ScoredItem, 0, len(items))
	var dropErrs []error

	for _, item := range items {
		if err := ValidateItem(item); err != nil {
			dropErrs = append(dropErrs, err)
			continue
		}

		matches := themes.Match(item.Title, item.Summary, e.Themes)
		score, reasons, matchedThemes := Score(item, matches, e.Scoring)

		band := Band(score, e.Scoring)

		firstSeen, known := e.Memory.FirstSeen(item.ID)
		isNew := !known || !firstSeen.Before(runStart)
		e.Memory.RecordSeen(item.ID, runStart)

		ageDays := 0
		if known {
			ageDays = int(runStart.Sub(firstSeen).Hours() / 24)
			if ageDays < 0 {
				ageDays = 0
			}
		}
		scored = append(scored, types.ScoredItem{
			Item:                item,
			Score:               score,
			SignalStrength:      band,
			TriageDecision:      Decide(band),
			TimeHorizon:         Horizon(item.Category, item.Text()),
			Confidence:          Confidence(score, e.Scoring),
			IsNew:               isNew,
			EvergreenResurfaced: ageDays >= evergreenDays,
			URLAgeDays:          ageDays,
			MatchedThemes:       matchedThemes,
			Reasons:             reasons,
		})
	}

	return Result{
		Scored:      scored,
		Calibration: Summarize(scored, len(dropErrs)),
		DropErrors:  dropErrs,
	}
}
