// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package dashboard

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/signal-triage/pkg/types"
)

func sampleItems() []types.ScoredItem {
	return []types.ScoredItem{
		{
			Item: types.Item{
				ID:          "abc123",
				Title:       "Fed raises rates 0.25%",
				URL:         "https://example.com/fed",
				Source:      "Example Wire",
				Feed:        "Example Wire Markets",
				Category:    types.CategoryPolicy,
				Summary:     "The central bank moved again.",
				PublishedAt: time.Date(2026, 3, 9, 12, 0, 0, 0, time.UTC),
			},
			Score:          59,
			SignalStrength: types.SignalMedium,
			TriageDecision: types.DecisionRead,
			TimeHorizon:    types.HorizonImmediate,
			Confidence:     3,
			IsNew:          true,
			MatchedThemes:  []string{"Rate path"},
			Reasons: []types.Reason{
				{Label: "Includes quantitative data", Delta: 12},
				{Label: "Concrete category: Policy/Regulatory", Delta: 12},
			},
		},
		{
			Item: types.Item{
				ID:       "def456",
				Title:    "Opinion: why it all matters",
				URL:      "https://example.com/opinion",
				Source:   "Example Wire",
				Feed:     "Example Wire Opinion",
				Category: types.CategoryNarrative,
				Summary:  strings.Repeat("x", 400),
			},
			Score:               -17,
			SignalStrength:      types.SignalLow,
			TriageDecision:      types.DecisionSkip,
			TimeHorizon:         types.HorizonNearTerm,
			Confidence:          1,
			URLAgeDays:          120,
			EvergreenResurfaced: true,
		},
	}
}

func extractData(t *testing.T, page string) []card {
	t.Helper()
	m := regexp.MustCompile(`const DATA = (\[.*?\]);`).FindStringSubmatch(page)
	require.NotNil(t, m, "embedded DATA array not found")
	var cards []card
	require.NoError(t, json.Unmarshal([]byte(m[1]), &cards))
	return cards
}

func TestRenderEmbedsItems(t *testing.T) {
	var buf bytes.Buffer
	err := Render(&buf, Data{
		Generated:     time.Date(2026, 3, 10, 8, 30, 0, 0, time.UTC),
		Items:         sampleItems(),
		ThemesSummary: "Rate path",
	})
	require.NoError(t, err)
	page := buf.String()

	assert.Contains(t, page, "Signal Triage Dashboard")
	assert.Contains(t, page, "Generated 2026-03-10 08:30")
	assert.Contains(t, page, "Active themes loaded")
	assert.NotContains(t, page, "scoring-warn")

	cards := extractData(t, page)
	require.Len(t, cards, 2)

	first := cards[0]
	assert.Equal(t, "Fed raises rates 0.25%", first.Title)
	assert.Equal(t, "Policy/Regulatory", first.Category)
	assert.Equal(t, 59, first.RawScore)
	assert.Equal(t, "Read", first.TriageDecision)
	assert.True(t, first.NewSinceLastRun)
	assert.Equal(t, []string{"Rate path"}, first.MatchedThemes)
	assert.Equal(t, "2026-03-09T12:00:00Z", first.PublishedAt)
	require.Len(t, first.SignalBullets, 2)
	assert.Equal(t, "Includes quantitative data (+12)", first.SignalBullets[0])
	assert.Empty(t, first.Mechanism)

	second := cards[1]
	assert.Equal(t, -17, second.RawScore)
	assert.True(t, second.EvergreenResurfaced)
	assert.Equal(t, 120, second.URLAgeDays)
	assert.Len(t, second.Snippet, snippetLen)
	assert.Empty(t, second.PublishedAt)
}

func TestSnippetTruncatesOnRuneBoundary(t *testing.T) {
	items := sampleItems()[:1]
	items[0].Item.Summary = strings.Repeat("é", 400)

	c := toCard(items[0])
	assert.True(t, utf8.ValidString(c.Snippet))
	assert.Equal(t, snippetLen, utf8.RuneCountInString(c.Snippet))
}

func TestRenderScoringWarningBanner(t *testing.T) {
	var buf bytes.Buffer
	err := Render(&buf, Data{
		Generated:      time.Now(),
		ScoringWarning: true,
		Scoring:        types.DefaultScoring(),
	})
	require.NoError(t, err)

	page := buf.String()
	assert.Contains(t, page, "scoring config missing or invalid")
	assert.Contains(t, page, "baseline=35")
}

func TestRenderEscapesTitles(t *testing.T) {
	items := sampleItems()[:1]
	items[0].Item.Title = `<script>alert("title")</script>`

	var buf bytes.Buffer
	require.NoError(t, Render(&buf, Data{Generated: time.Now(), Items: items}))
	assert.NotContains(t, buf.String(), `<script>alert("title")</script>`)
}

func TestWriteFileCreatesDirectories(t *testing.T) {
	path := filepath.Join(t.TempDir(), "output", "triage.html")
	require.NoError(t, WriteFile(path, Data{Generated: time.Now(), Items: sampleItems()}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Signal Triage Dashboard")
}
