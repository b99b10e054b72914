// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// SignalStrength is the band a score falls into under the configured thresholds.
type SignalStrength string

const (
	SignalHigh   SignalStrength = "High"
	SignalMedium SignalStrength = "Medium"
	SignalLow    SignalStrength = "Low"
)

// TriageDecision is the binary outcome of triage. Triage never emits anything
// beyond Read or Skip; in particular it never emits "Act", which belongs to
// the manually authored analysis stage.
type TriageDecision string

const (
	DecisionRead TriageDecision = "Read"
	DecisionSkip TriageDecision = "Skip"
)

// TimeHorizon estimates how soon an item's information matters.
type TimeHorizon string

const (
	HorizonImmediate  TimeHorizon = "Immediate"
	HorizonNearTerm   TimeHorizon = "Near-term"
	HorizonStructural TimeHorizon = "Structural"
)

// Reason is one entry in the scoring audit trail: which rule fired and by
// how much it moved the score. Reasons are appended in rule evaluation order.
type Reason struct {
	Label string `json:"label" yaml:"label"`
	Delta int    `json:"delta" yaml:"delta"`
}

// ScoredItem is the triage output for one item. It is produced once per item
// per run and handed to the renderer; the core never persists it.
type ScoredItem struct {
	Item Item `json:"item" yaml:"item"`

	// Score is the raw additive score. It is deliberately unclamped and may
	// be negative or exceed 100; the thresholds, not the scorer, define
	// which values are meaningful.
	Score int `json:"score" yaml:"score"`

	SignalStrength SignalStrength `json:"signal_strength" yaml:"signal_strength"`
	TriageDecision TriageDecision `json:"triage_decision" yaml:"triage_decision"`
	TimeHorizon    TimeHorizon    `json:"time_horizon" yaml:"time_horizon"`

	// Confidence is a 1-5 value derived mechanically from the score's
	// distance above the medium threshold.
	Confidence int `json:"confidence" yaml:"confidence"`

	// IsNew is true when the URL memory had no record of the item before
	// this run.
	IsNew bool `json:"is_new" yaml:"is_new"`

	// EvergreenResurfaced is true when the item was first seen long enough
	// ago to count as resurfaced evergreen content.
	EvergreenResurfaced bool `json:"evergreen_resurfaced,omitempty" yaml:"evergreen_resurfaced,omitempty"`

	// URLAgeDays is the whole days since the item was first seen;
	// 0 when it was first seen this run.
	URLAgeDays int `json:"url_age_days" yaml:"url_age_days"`

	// MatchedThemes lists matching theme names in theme order.
	MatchedThemes []string `json:"matched_themes,omitempty" yaml:"matched_themes,omitempty"`

	// Reasons is the ordered audit trail of fired scoring rules.
	Reasons []Reason `json:"reasons" yaml:"reasons"`

	// Mechanism is always empty at triage time. It is populated only by the
	// manual analysis workflow.
	Mechanism string `json:"mechanism" yaml:"mechanism"`
}

// RunCalibration aggregates one run's band and decision distribution so the
// operator can judge whether the thresholds need retuning. Ephemeral; one
// per run.
type RunCalibration struct {
	Total   int `json:"total" yaml:"total"`
	High    int `json:"high" yaml:"high"`
	Medium  int `json:"medium" yaml:"medium"`
	Low     int `json:"low" yaml:"low"`
	Read    int `json:"read" yaml:"read"`
	Skip    int `json:"skip" yaml:"skip"`
	Dropped int `json:"dropped" yaml:"dropped"`
}

// Percent returns n as a percentage of the scored total, or 0 for an empty run.
func (c RunCalibration) Percent(n int) float64 {
	if c.Total == 0 {
		return 0
	}
	return 100 * float64(n) / float64(c.Total)
}
