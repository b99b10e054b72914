// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package triage

import (
	"github.com/pdiddy/signal-triage/pkg/types"
)

// rule is one additive scoring rule: a label for the audit trail, a signed
// delta, and a predicate. Rules are independent, not mutually exclusive;
// every applicable delta is summed.
type rule struct {
	label string
	delta int
	fires func() bool
}

// always is the predicate for rules whose condition was established while
// building the rule list (theme boosts).
func always() bool { return true }

// Score computes the additive score for one item given its theme matches.
// It starts from the configured baseline and walks an ordered rule list;
// reasons are appended in evaluation order, so re-scoring identical input
// yields an identical score and an identical ordered reasons slice.
//
// The returned score is unclamped: negative values and values above 100 are
// legitimate, and only the classifier's thresholds give them meaning.
//
// The third return value lists matched theme names: trigger matches first,
// then keyword matches, each in theme order.
func Score(item types.Item, matches []types.ThemeMatch, cfg types.ScoringConfig) (int, []types.Reason, []string) {
	text := item.Text()
	d := cfg.Deltas

	rules := make([]rule, 0, 8+len(matches))
	var matchedThemes []string

	rules = append(rules,
		rule{"Includes quantitative data", d.Quantitative,
			func() bool { return numericPattern.MatchString(text) }},
		rule{"Concrete category: " + string(item.Category), d.ConcreteCategory,
			func() bool { return concreteCategory(item.Category) }},
	)

	// Theme boosts apply once per matching theme. A trigger phrase is high
	// precision (+8); the keyword fallback is weaker (+5) and mutually
	// exclusive with the trigger boost for the same theme.
	for _, m := range matches {
		if m.MatchedTrigger {
			rules = append(rules, rule{"Theme match (phrase): " + m.ThemeName, d.ThemeTrigger, always})
			matchedThemes = append(matchedThemes, m.ThemeName)
		}
	}
	for _, m := range matches {
		if m.MatchedKeyword {
			rules = append(rules, rule{"Theme match (keyword): " + m.ThemeName, d.ThemeKeyword, always})
			matchedThemes = append(matchedThemes, m.ThemeName)
		}
	}

	rules = append(rules,
		rule{"Market-move headline", d.MarketMove,
			func() bool { return marketMoveHeadline.MatchString(text) }},
		rule{"Framing/explainer language", d.Framing,
			func() bool { return framingTerms.MatchString(text) }},
		rule{"Opinion source", d.OpinionSource,
			func() bool { return item.IsOpinionSource }},
		rule{"Hedging/modality language", d.Hedging,
			func() bool { return modalTerms.MatchString(text) }},
	)

	score := cfg.Baseline
	var reasons []types.Reason
	for _, r := range rules {
		if r.fires() {
			score += r.delta
			reasons = append(reasons, types.Reason{Label: r.label, Delta: r.delta})
		}
	}

	return score, reasons, matchedThemes
}

// concreteCategory reports whether the category carries hard information by
// itself (filings, rules, capacity) rather than narration around it.
func concreteCategory(c types.Category) bool {
	switch c {
	case types.CategoryPolicy, types.CategoryEarnings, types.CategoryStructural:
		return true
	}
	return false
}
