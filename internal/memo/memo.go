// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package memo aggregates saved analyses into a periodic synthesis: which
// themes are being reinforced or contradicted, where stances changed, and
// which Act calls are outstanding.
package memo

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/pdiddy/signal-triage/internal/analysis"
	"github.com/pdiddy/signal-triage/pkg/types"
)

// StanceChange records an action flip for one theme or tag key.
type StanceChange struct {
	At    time.Time
	Key   string
	From  string
	To    string
	Title string
}

// ConfidenceChange records an explicit confidence revision.
type ConfidenceChange struct {
	At    time.Time
	Delta string
	Title string
}

// Summary is the aggregated view over one synthesis window.
type Summary struct {
	WindowDays int
	Generated  time.Time
	Parsed     int

	ActItems          []analysis.Entry
	Reinforce         map[string]int
	Contradict        map[string]int
	Tags              map[string]int
	StanceChanges     []StanceChange
	ConfidenceChanges []ConfidenceChange
}

// Build aggregates the entries falling inside the window ending at now.
// Entries without a parseable timestamp are excluded: an undatable analysis
// cannot be placed in a window.
func Build(entries []analysis.Entry, days int, now time.Time) Summary {
	if days <= 0 {
		days = 7
	}
	cutoff := now.AddDate(0, 0, -days)

	type timed struct {
		at time.Time
		e  analysis.Entry
	}
	var recent []timed
	for _, e := range entries {
		at := e.EventTime()
		if at.IsZero() || at.Before(cutoff) {
			continue
		}
		recent = append(recent, timed{at, e})
	}
	sort.SliceStable(recent, func(i, j int) bool { return recent[i].at.Before(recent[j].at) })

	s := Summary{
		WindowDays: days,
		Generated:  now,
		Parsed:     len(recent),
		Reinforce:  make(map[string]int),
		Contradict: make(map[string]int),
		Tags:       make(map[string]int),
	}

	// Stance changes: monotonic escalation means a thesis is developing,
	// back-and-forth means reassess. The memo only records the flips; the
	// reader interprets.
	lastAction := make(map[string]string)

	type actTimed struct {
		at time.Time
		e  analysis.Entry
	}
	var acts []actTimed

	for _, r := range recent {
		e := r.e
		for _, tag := range e.Tags {
			if tag != "" {
				s.Tags[tag]++
			}
		}
		for _, th := range e.Reinforces {
			if th != "" {
				s.Reinforce[th]++
			}
		}
		for _, th := range e.Contradicts {
			if th != "" {
				s.Contradict[th]++
			}
		}

		var keys []string
		keys = append(keys, e.Reinforces...)
		keys = append(keys, e.Tags...)
		for _, key := range keys {
			if key == "" {
				continue
			}
			if prev, ok := lastAction[key]; ok && e.Action != "" && prev != e.Action {
				s.StanceChanges = append(s.StanceChanges, StanceChange{
					At: r.at, Key: key, From: prev, To: e.Action, Title: e.Title,
				})
			}
			if e.Action != "" {
				lastAction[key] = e.Action
			}
		}

		if e.UpdatesConfidence != "" {
			s.ConfidenceChanges = append(s.ConfidenceChanges, ConfidenceChange{
				At: r.at, Delta: e.UpdatesConfidence, Title: e.Title,
			})
		}

		if e.Action == "Act" {
			acts = append(acts, actTimed{r.at, e})
		}
	}

	// Act items: most recent first, highest confidence within the same
	// timestamp.
	sort.SliceStable(acts, func(i, j int) bool {
		if !acts[i].at.Equal(acts[j].at) {
			return acts[i].at.After(acts[j].at)
		}
		return acts[i].e.Confidence > acts[j].e.Confidence
	})
	for _, a := range acts {
		s.ActItems = append(s.ActItems, a.e)
	}

	return s
}

const (
	maxRankedThemes   = 10
	maxStanceChanges  = 30
	maxRankedTags     = 15
)

// rankedCounts returns the map's keys ordered by descending count, ties
// alphabetical, capped at limit.
func rankedCounts(m map[string]int, limit int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if m[keys[i]] != m[keys[j]] {
			return m[keys[i]] > m[keys[j]]
		}
		return keys[i] < keys[j]
	})
	if len(keys) > limit {
		keys = keys[:limit]
	}
	return keys
}

// Markdown renders the summary as the weekly memo.
func Markdown(s Summary, ts []types.Theme) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Weekly Signal Memo\n\n")
	fmt.Fprintf(&b, "- Window: last %d days (generated %s)\n", s.WindowDays, s.Generated.UTC().Format(time.RFC3339))
	fmt.Fprintf(&b, "- Parsed entries (last %dd): %d\n\n", s.WindowDays, s.Parsed)

	// Act items first; they are the reason to open the memo.
	b.WriteString("## Act items\n\n")
	if len(s.ActItems) > 0 {
		for _, e := range s.ActItems {
			fmt.Fprintf(&b, "- %s — **%s** (%s)\n", e.EventTime().UTC().Format(time.RFC3339), e.Title, e.Category)
			for _, trigger := range e.ActionTriggers {
				fmt.Fprintf(&b, "  - Trigger: %s\n", trigger)
			}
		}
	} else {
		fmt.Fprintf(&b, "- No 'Act' items in the last %d days.\n", s.WindowDays)
	}

	b.WriteString("\n## Theme reinforcement\n\n")
	if len(s.Reinforce) > 0 {
		for _, name := range rankedCounts(s.Reinforce, maxRankedThemes) {
			fmt.Fprintf(&b, "- **%s**: +%d reinforcements, %d contradictions\n",
				name, s.Reinforce[name], s.Contradict[name])
		}
	} else {
		b.WriteString("- No reinforcements recorded.\n")
	}

	b.WriteString("\n## Active theme checklist\n\n")
	if len(ts) > 0 {
		for _, t := range ts {
			name := t.Name
			if name == "" {
				name = "(unnamed)"
			}
			fmt.Fprintf(&b, "- **%s** — %s\n", name, t.Thesis)
			if len(t.WatchTriggers) > 0 {
				fmt.Fprintf(&b, "  - Triggers: %s\n", strings.Join(t.WatchTriggers, ", "))
			}
		}
	} else {
		b.WriteString("- No active themes configured.\n")
	}

	b.WriteString("\n## Stance changes\n\n")
	b.WriteString("_(monotonic escalation = thesis developing; back-and-forth = reassess the thesis)_\n\n")
	if len(s.StanceChanges) > 0 {
		changes := s.StanceChanges
		if len(changes) > maxStanceChanges {
			changes = changes[:maxStanceChanges]
		}
		for _, c := range changes {
			fmt.Fprintf(&b, "- %s — **%s**: %s -> %s (%s)\n",
				c.At.UTC().Format(time.RFC3339), c.Key, c.From, c.To, c.Title)
		}
	} else {
		fmt.Fprintf(&b, "- No stance changes detected in the last %d days.\n", s.WindowDays)
	}

	b.WriteString("\n## Confidence updates\n\n")
	if len(s.ConfidenceChanges) > 0 {
		for _, c := range s.ConfidenceChanges {
			fmt.Fprintf(&b, "- %s — %s (%s)\n", c.At.UTC().Format(time.RFC3339), c.Delta, c.Title)
		}
	} else {
		b.WriteString("- No explicit confidence updates recorded.\n")
	}

	b.WriteString("\n## Tag frequency\n\n")
	if len(s.Tags) > 0 {
		for _, tag := range rankedCounts(s.Tags, maxRankedTags) {
			fmt.Fprintf(&b, "- %s: %d\n", tag, s.Tags[tag])
		}
	} else {
		b.WriteString("- No tags recorded.\n")
	}

	return b.String()
}
