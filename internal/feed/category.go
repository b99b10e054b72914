// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package feed

import (
	"regexp"

	"github.com/pdiddy/signal-triage/pkg/types"
)

// categoryRule pairs a category with its headline/summary pattern. Rules are
// evaluated in order; the first hit becomes the primary category and further
// hits become secondary categories.
type categoryRule struct {
	category types.Category
	pattern  *regexp.Regexp
}

var categoryRules = []categoryRule{
	{types.CategoryPolicy, regexp.MustCompile(`(?i)\b(Fed|FOMC|Treasury|SEC|DOJ|FTC|regulation|regulator|regulatory|rule|ban|tariff|sanction|bill|law|court|ruling|order)\b`)},
	{types.CategoryEarnings, regexp.MustCompile(`(?i)\b(earnings|guidance|EPS|revenue|profit|margin|10-?K|10-?Q|filing)\b`)},
	{types.CategoryGeopolitics, regexp.MustCompile(`(?i)\b(Iran|China|Russia|Ukraine|Israel|Gaza|Taiwan|NATO|war|conflict)\b`)},
	{types.CategoryMarkets, regexp.MustCompile(`(?i)\b(yield|bond|rates|credit spread|dollar|FX|oil|WTI|Brent|copper|gold|equities|S&P|Nasdaq)\b`)},
	{types.CategoryStructural, regexp.MustCompile(`(?i)\b(capacity|supply chain|shortage|grid|electricity|data center|chip|semiconductor|copper|memory|HBM)\b`)},
}

var framingFallback = regexp.MustCompile(`(?i)\b(opinion|column|what it means|explainer|why|how to|guide)\b`)

// DeriveCategories returns all matching categories for the text, primary
// first. Always at least one: with no rule hit, framing language marks the
// item Narrative/Opinion and everything else defaults to Cyclical.
func DeriveCategories(title, summary string) []types.Category {
	text := title
	if summary != "" {
		text += " " + summary
	}

	var matched []types.Category
	for _, r := range categoryRules {
		if r.pattern.MatchString(text) {
			matched = append(matched, r.category)
		}
	}
	if len(matched) > 0 {
		return matched
	}
	if framingFallback.MatchString(text) {
		return []types.Category{types.CategoryNarrative}
	}
	return []types.Category{types.CategoryCyclical}
}

// defaultWindowHours is the recency cutoff for categories without a
// specific window.
const defaultWindowHours = 48

// categoryWindowHours gives slower-moving categories a longer shelf life:
// a policy ruling matters for a week, a market-move headline for two days.
var categoryWindowHours = map[types.Category]int{
	types.CategoryMarkets:     48,
	types.CategoryEarnings:    72,
	types.CategoryPolicy:      168,
	types.CategoryGeopolitics: 72,
	types.CategoryStructural:  336,
	types.CategoryCyclical:    48,
	types.CategoryNarrative:   48,
	types.CategoryNoise:       48,
}

// WindowHours returns the recency window for a category.
func WindowHours(c types.Category) int {
	if h, ok := categoryWindowHours[c]; ok {
		return h
	}
	return defaultWindowHours
}
