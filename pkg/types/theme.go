// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// Theme is one user-defined watch thesis. Themes are loaded once per run
// and are immutable during scoring.
type Theme struct {
	// Name identifies the theme in dashboards and memos.
	Name string `json:"name" yaml:"name"`

	// Thesis is the free-text statement of the theme. Display only;
	// it takes no part in matching or scoring.
	Thesis string `json:"thesis,omitempty" yaml:"thesis,omitempty"`

	// WatchTriggers are exact phrases matched case-insensitively against
	// the full item text. A single hit is enough.
	WatchTriggers []string `json:"watch_triggers,omitempty" yaml:"watch_triggers,omitempty"`

	// KeywordsAny are fallback keywords. They only count as a match under
	// the two-distinct-hits-or-headline-hit rule.
	KeywordsAny []string `json:"keywords_any,omitempty" yaml:"keywords_any,omitempty"`
}

// ThemeMatch records how one theme matched one item. Matches are independent
// across themes; several themes may match the same item.
type ThemeMatch struct {
	ThemeName string `json:"theme_name" yaml:"theme_name"`

	// MatchedTrigger is true when any watch trigger phrase appeared in the text.
	MatchedTrigger bool `json:"matched_trigger" yaml:"matched_trigger"`

	// MatchedKeyword is true only when the keyword fallback rule fired:
	// at least two distinct keywords anywhere in the text, or at least one
	// keyword in the headline. The fallback is only evaluated when no
	// trigger phrase matched.
	MatchedKeyword bool `json:"matched_keyword" yaml:"matched_keyword"`
}

// Matched reports whether the theme matched at all.
func (m ThemeMatch) Matched() bool {
	return m.MatchedTrigger || m.MatchedKeyword
}
