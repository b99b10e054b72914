// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package triage

import (
	"github.com/pdiddy/signal-triage/pkg/types"
)

// Band maps a score to its signal-strength band. Monotonic in the score:
// a higher score never lands in a lower band.
func Band(score int, cfg types.ScoringConfig) types.SignalStrength {
	switch {
	case score >= cfg.HighThreshold:
		return types.SignalHigh
	case score >= cfg.MediumThreshold:
		return types.SignalMedium
	default:
		return types.SignalLow
	}
}

// Decide maps a band to the binary triage outcome. This is the only place
// the Read/Skip boundary is drawn, and it is a pure function of the band;
// no other signal overrides it. Triage never emits "Act".
func Decide(band types.SignalStrength) types.TriageDecision {
	if band == types.SignalLow {
		return types.DecisionSkip
	}
	return types.DecisionRead
}

// confidenceStep is the score distance worth one confidence point.
const confidenceStep = 15

// Confidence maps a score to a 1-5 value on a linear scale anchored to the
// medium threshold: 1 + (score - (medium - 20)) / 15, clamped to [1, 5].
// With default thresholds the steps land at 40, 55, 70 and 85. Mechanical,
// not a judgment call.
func Confidence(score int, cfg types.ScoringConfig) int {
	steps := (score - (cfg.MediumThreshold - 20)) / confidenceStep
	if steps < 0 {
		steps = 0
	}
	if steps > 4 {
		steps = 4
	}
	return 1 + steps
}

// Horizon derives the time-horizon label. Strong text cues win over the
// category default; the first matching cue class decides.
func Horizon(category types.Category, text string) types.TimeHorizon {
	if text != "" {
		if immediateCues.MatchString(text) {
			return types.HorizonImmediate
		}
		if structuralCues.MatchString(text) {
			return types.HorizonStructural
		}
	}

	switch category {
	case types.CategoryEarnings, types.CategoryMarkets, types.CategoryPolicy:
		return types.HorizonImmediate
	case types.CategoryStructural:
		return types.HorizonStructural
	}
	return types.HorizonNearTerm
}
