// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package triage

import (
	"github.com/pdiddy/signal-triage/pkg/types"
)

// Summarize aggregates band and decision counts for one run. Purely
// descriptive; it decides nothing. A zero-item run reports zero counts and
// RunCalibration.Percent answers 0 for every band without dividing.
func Summarize(items []types.ScoredItem, dropped int) types.RunCalibration {
	cal := types.RunCalibration{Total: len(items), Dropped: dropped}

	for _, it := range items {
		switch it.SignalStrength {
		case types.SignalHigh:
			cal.High++
		case types.SignalMedium:
			cal.Medium++
		case types.SignalLow:
			cal.Low++
		}
		switch it.TriageDecision {
		case types.DecisionRead:
			cal.Read++
		case types.DecisionSkip:
			cal.Skip++
		}
	}
	return cal
}
