// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package dashboard renders the triage output as a single self-contained HTML
// page. Filtering and sorting happen client-side over an embedded JSON copy of
// the run, so the page works without the server for everything except the
// Analyze links.
package dashboard

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"html/template"
	"io"
	"os"
	"path/filepath"
	"time"
	"unicode/utf8"

	"github.com/pdiddy/signal-triage/pkg/types"
)

//go:embed dashboard.html.tmpl
var pageTmpl string

const snippetLen = 280

// card is the flat per-item record embedded in the page for the client-side
// filter and sort controls.
type card struct {
	Title               string   `json:"title"`
	URL                 string   `json:"url"`
	Source              string   `json:"source"`
	PublishedAt         string   `json:"published_at"`
	Feed                string   `json:"feed"`
	Category            string   `json:"category"`
	SecondaryCategories []string `json:"secondary_categories"`
	SignalStrength      string   `json:"signal_strength"`
	TimeHorizon         string   `json:"time_horizon"`
	TriageDecision      string   `json:"triage_decision"`
	SignalBullets       []string `json:"signal_bullets"`
	Mechanism           string   `json:"mechanism"`
	Confidence          int      `json:"confidence"`
	RawScore            int      `json:"raw_score"`
	Snippet             string   `json:"snippet"`
	NewSinceLastRun     bool     `json:"new_since_last_run"`
	URLAgeDays          int      `json:"url_age_days"`
	EvergreenResurfaced bool     `json:"evergreen_resurfaced"`
	MatchedThemes       []string `json:"matched_themes"`
}

func toCard(s types.ScoredItem) card {
	bullets := make([]string, 0, len(s.Reasons))
	for _, r := range s.Reasons {
		bullets = append(bullets, fmt.Sprintf("%s (%+d)", r.Label, r.Delta))
	}

	snippet := truncateRunes(s.Item.Summary, snippetLen)

	secondary := make([]string, 0, len(s.Item.SecondaryCategories))
	for _, c := range s.Item.SecondaryCategories {
		secondary = append(secondary, string(c))
	}

	published := ""
	if !s.Item.PublishedAt.IsZero() {
		published = s.Item.PublishedAt.UTC().Format(time.RFC3339)
	}

	return card{
		Title:               s.Item.Title,
		URL:                 s.Item.URL,
		Source:              s.Item.Source,
		PublishedAt:         published,
		Feed:                s.Item.Feed,
		Category:            string(s.Item.Category),
		SecondaryCategories: secondary,
		SignalStrength:      string(s.SignalStrength),
		TimeHorizon:         string(s.TimeHorizon),
		TriageDecision:      string(s.TriageDecision),
		SignalBullets:       bullets,
		Mechanism:           s.Mechanism,
		Confidence:          s.Confidence,
		RawScore:            s.Score,
		Snippet:             snippet,
		// The NEW badge covers both notions of new: never seen before
		// (URL memory) and absent from the previous run's dashboard.
		NewSinceLastRun:     s.IsNew || s.Item.NewSinceLastRun,
		URLAgeDays:          s.URLAgeDays,
		EvergreenResurfaced: s.EvergreenResurfaced,
		MatchedThemes:       s.MatchedThemes,
	}
}

// truncateRunes caps s at n runes. Cutting on a byte index could split a
// multi-byte character and embed invalid UTF-8 in the page.
func truncateRunes(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}

// Data is everything the page template needs for one run.
type Data struct {
	Generated time.Time
	Items     []types.ScoredItem

	// ThemesSummary is the comma-joined active theme names, empty when no
	// themes are configured.
	ThemesSummary string

	// ScoringWarning is set when the scoring config was missing or invalid
	// and the run fell back to defaults. The banner repeats the thresholds
	// so the operator can see what the fallback actually is.
	ScoringWarning bool
	Scoring        types.ScoringConfig
}

var page = template.Must(template.New("dashboard").Parse(pageTmpl))

// Render writes the dashboard page to w.
func Render(w io.Writer, d Data) error {
	cards := make([]card, 0, len(d.Items))
	for _, s := range d.Items {
		cards = append(cards, toCard(s))
	}

	payload, err := json.Marshal(cards)
	if err != nil {
		return fmt.Errorf("marshaling dashboard items: %w", err)
	}

	return page.Execute(w, struct {
		Generated      string
		ThemesSummary  string
		ScoringWarning bool
		Scoring        types.ScoringConfig
		Data           template.JS
	}{
		Generated:      d.Generated.Format("2006-01-02 15:04"),
		ThemesSummary:  d.ThemesSummary,
		ScoringWarning: d.ScoringWarning,
		Scoring:        d.Scoring,
		Data:           template.JS(payload),
	})
}

// WriteFile renders the dashboard to path, creating parent directories.
func WriteFile(path string, d Data) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating %s: %w", dir, err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating dashboard file: %w", err)
	}
	defer f.Close()

	if err := Render(f, d); err != nil {
		return err
	}
	return f.Close()
}
