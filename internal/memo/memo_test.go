// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package memo

import (
	"strings"
	"testing"
	"time"

	"github.com/pdiddy/signal-triage/internal/analysis"
	"github.com/pdiddy/signal-triage/pkg/types"
)

func entryAt(ts, title, action string, opts func(*analysis.Entry)) analysis.Entry {
	e := analysis.Entry{
		Title:     title,
		Action:    action,
		CreatedAt: ts,
	}
	if opts != nil {
		opts(&e)
	}
	return e
}

func TestBuildWindowFilter(t *testing.T) {
	now := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)

	entries := []analysis.Entry{
		entryAt("2026-03-09T10:00:00Z", "inside", "Prepare/Monitor", nil),
		entryAt("2026-02-01T10:00:00Z", "outside", "Prepare/Monitor", nil),
		{Title: "undatable", Action: "Prepare/Monitor"},
	}

	s := Build(entries, 7, now)
	if s.Parsed != 1 {
		t.Errorf("parsed = %d, want 1", s.Parsed)
	}
}

func TestBuildCountsAndActs(t *testing.T) {
	now := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)

	entries := []analysis.Entry{
		entryAt("2026-03-08T10:00:00Z", "first", "Prepare/Monitor", func(e *analysis.Entry) {
			e.Reinforces = []string{"Grid buildout"}
			e.Tags = []string{"power"}
		}),
		entryAt("2026-03-09T10:00:00Z", "second", "Act", func(e *analysis.Entry) {
			e.Reinforces = []string{"Grid buildout"}
			e.Contradicts = []string{"Soft landing"}
			e.Tags = []string{"power", "copper"}
			e.ActionTriggers = []string{"Spot price above $12k"}
			e.Confidence = 4
		}),
		entryAt("2026-03-09T11:00:00Z", "third", "Act", func(e *analysis.Entry) {
			e.Confidence = 2
			e.UpdatesConfidence = "3 -> 2"
		}),
	}

	s := Build(entries, 7, now)

	if s.Reinforce["Grid buildout"] != 2 {
		t.Errorf("reinforce count = %d, want 2", s.Reinforce["Grid buildout"])
	}
	if s.Contradict["Soft landing"] != 1 {
		t.Errorf("contradict count = %d", s.Contradict["Soft landing"])
	}
	if s.Tags["power"] != 2 || s.Tags["copper"] != 1 {
		t.Errorf("tag counts = %v", s.Tags)
	}

	// Act items most recent first.
	if len(s.ActItems) != 2 || s.ActItems[0].Title != "third" || s.ActItems[1].Title != "second" {
		t.Errorf("act items = %+v", s.ActItems)
	}

	if len(s.ConfidenceChanges) != 1 || s.ConfidenceChanges[0].Delta != "3 -> 2" {
		t.Errorf("confidence changes = %+v", s.ConfidenceChanges)
	}
}

func TestBuildStanceChanges(t *testing.T) {
	now := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)

	entries := []analysis.Entry{
		entryAt("2026-03-07T10:00:00Z", "watch it", "Prepare/Monitor", func(e *analysis.Entry) {
			e.Reinforces = []string{"Grid buildout"}
		}),
		entryAt("2026-03-08T10:00:00Z", "time to move", "Act", func(e *analysis.Entry) {
			e.Reinforces = []string{"Grid buildout"}
		}),
		entryAt("2026-03-09T10:00:00Z", "still moving", "Act", func(e *analysis.Entry) {
			e.Reinforces = []string{"Grid buildout"}
		}),
	}

	s := Build(entries, 7, now)
	if len(s.StanceChanges) != 1 {
		t.Fatalf("stance changes = %d, want 1 (repeat action is not a change)", len(s.StanceChanges))
	}
	c := s.StanceChanges[0]
	if c.Key != "Grid buildout" || c.From != "Prepare/Monitor" || c.To != "Act" || c.Title != "time to move" {
		t.Errorf("stance change = %+v", c)
	}
}

func TestMarkdownSections(t *testing.T) {
	now := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	s := Build(nil, 7, now)

	md := Markdown(s, []types.Theme{{
		Name:          "Grid buildout",
		Thesis:        "Power is the bottleneck.",
		WatchTriggers: []string{"grid interconnection constraints"},
	}})

	for _, want := range []string{
		"# Weekly Signal Memo",
		"## Act items",
		"- No 'Act' items in the last 7 days.",
		"## Theme reinforcement",
		"## Active theme checklist",
		"**Grid buildout** — Power is the bottleneck.",
		"Triggers: grid interconnection constraints",
		"## Stance changes",
		"## Confidence updates",
		"## Tag frequency",
	} {
		if !strings.Contains(md, want) {
			t.Errorf("memo missing %q", want)
		}
	}
}

func TestBasicHTML(t *testing.T) {
	md := "# Title\n\n## Section\n\n- bullet one\n- bullet <two>\n\nplain paragraph\n"
	out := BasicHTML(md)

	for _, want := range []string{
		"<h1>Title</h1>",
		"<h2>Section</h2>",
		"<li>bullet one</li>",
		"<li>bullet &lt;two&gt;</li>",
		"<p>plain paragraph</p>",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("html missing %q", want)
		}
	}
	if strings.Count(out, "<ul>") != 1 || strings.Count(out, "</ul>") != 1 {
		t.Error("list not opened/closed exactly once")
	}
}
