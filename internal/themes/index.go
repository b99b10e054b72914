// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package themes

import (
	"strings"

	"github.com/pdiddy/signal-triage/pkg/types"
)

// Match evaluates every theme against one item's title and body snippet and
// returns a ThemeMatch per theme, in theme order. Deterministic and free of
// side effects.
//
// Trigger phrases match as case-insensitive substrings of the combined text;
// a single hit is enough, and repeats do not count again. The keyword
// fallback is only evaluated for themes with no trigger hit, and fires only
// when at least two distinct keywords appear anywhere in the text, or at
// least one keyword appears in the headline. A single generic keyword in the
// body alone never counts.
func Match(title, body string, ts []types.Theme) []types.ThemeMatch {
	titleLower := strings.ToLower(title)
	textLower := titleLower
	if body != "" {
		textLower += " " + strings.ToLower(body)
	}

	out := make([]types.ThemeMatch, 0, len(ts))
	for _, th := range ts {
		m := types.ThemeMatch{ThemeName: th.Name}

		for _, trig := range th.WatchTriggers {
			if trig == "" {
				continue
			}
			if strings.Contains(textLower, strings.ToLower(trig)) {
				m.MatchedTrigger = true
				break
			}
		}

		if !m.MatchedTrigger {
			m.MatchedKeyword = keywordRule(titleLower, textLower, th.KeywordsAny)
		}

		out = append(out, m)
	}
	return out
}

// keywordRule applies the two-distinct-hits-or-headline-hit rule.
func keywordRule(titleLower, textLower string, keywords []string) bool {
	distinct := 0
	inHeadline := false
	seen := make(map[string]bool, len(keywords))

	for _, kw := range keywords {
		k := strings.ToLower(kw)
		if k == "" || seen[k] {
			continue
		}
		seen[k] = true

		if !strings.Contains(textLower, k) {
			continue
		}
		distinct++
		if strings.Contains(titleLower, k) {
			inHeadline = true
		}
	}

	return distinct >= 2 || (inHeadline && distinct >= 1)
}
