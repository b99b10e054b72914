// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package feed

import (
	"crypto/sha256"
	"fmt"
	"html"
	"regexp"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"

	"github.com/pdiddy/signal-triage/pkg/types"
)

var tagPattern = regexp.MustCompile(`<[^>]*>`)

// StripHTML removes markup tags and decodes HTML entities. Feed summaries
// routinely arrive as HTML fragments.
func StripHTML(s string) string {
	return strings.TrimSpace(html.UnescapeString(tagPattern.ReplaceAllString(s, "")))
}

// ItemID derives a stable identifier from the item URL.
func ItemID(url string) string {
	sum := sha256.Sum256([]byte(url))
	return fmt.Sprintf("%x", sum)[:16]
}

// publishedTime picks the best available timestamp from a feed entry.
// Zero when the feed reports none.
func publishedTime(e *gofeed.Item) time.Time {
	if e.PublishedParsed != nil {
		return *e.PublishedParsed
	}
	if e.UpdatedParsed != nil {
		return *e.UpdatedParsed
	}
	return time.Time{}
}

// isOpinionFeed flags opinion sections by their feed or source title.
func isOpinionFeed(feedTitle string) bool {
	return strings.Contains(strings.ToLower(feedTitle), "opinion")
}

// Normalize converts one parsed feed into triage items. Entries without a
// title or link are skipped outright (they cannot be identified, let alone
// scored) and entries older than their primary category's recency window are
// dropped. maxEntries caps how deep into the feed we read.
func Normalize(f *gofeed.Feed, maxEntries int, now time.Time) []types.Item {
	if maxEntries <= 0 {
		maxEntries = 200
	}

	feedTitle := strings.TrimSpace(f.Title)
	opinion := isOpinionFeed(feedTitle)

	entries := f.Items
	if len(entries) > maxEntries {
		entries = entries[:maxEntries]
	}

	items := make([]types.Item, 0, len(entries))
	for _, e := range entries {
		title := strings.TrimSpace(e.Title)
		link := strings.TrimSpace(e.Link)
		if title == "" || link == "" {
			continue
		}

		summary := StripHTML(e.Description)
		published := publishedTime(e)

		cats := DeriveCategories(title, summary)
		primary := cats[0]

		if !withinWindow(published, WindowHours(primary), now) {
			continue
		}

		items = append(items, types.Item{
			ID:                  ItemID(link),
			Title:               title,
			URL:                 link,
			Source:              feedTitle,
			Feed:                feedTitle,
			Category:            primary,
			SecondaryCategories: cats[1:],
			Summary:             summary,
			PublishedAt:         published,
			IsOpinionSource:     opinion,
		})
	}
	return items
}

// withinWindow reports whether published falls inside the recency window.
// Items with no timestamp are excluded: an undatable item cannot be called
// recent.
func withinWindow(published time.Time, hours int, now time.Time) bool {
	if published.IsZero() {
		return false
	}
	cutoff := now.Add(-time.Duration(hours) * time.Hour)
	return !published.Before(cutoff)
}

// Dedupe collapses items sharing a URL across feeds; the last occurrence
// wins. Input order is otherwise preserved.
func Dedupe(items []types.Item) []types.Item {
	last := make(map[string]int, len(items))
	for i, it := range items {
		last[it.ID] = i
	}

	out := make([]types.Item, 0, len(last))
	for i, it := range items {
		if last[it.ID] == i {
			out = append(out, it)
		}
	}
	return out
}
