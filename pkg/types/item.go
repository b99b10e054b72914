// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines the shared data model for the signal-triage pipeline:
// normalized feed items, theme definitions, scored triage records, and the
// per-stage configuration structs.
package types

import "time"

// Category classifies an item by the kind of information it carries.
// The set is closed; the feed stage derives one or more categories per item
// and the scoring stage rejects anything outside this set.
type Category string

const (
	CategoryEarnings    Category = "Earnings"
	CategoryPolicy      Category = "Policy/Regulatory"
	CategoryStructural  Category = "Structural"
	CategoryMarkets     Category = "Markets"
	CategoryGeopolitics Category = "Geopolitics"
	CategoryCyclical    Category = "Cyclical"
	CategoryNarrative   Category = "Narrative/Opinion"
	CategoryNoise       Category = "Noise"
)

// Categories lists every valid category value.
var Categories = []Category{
	CategoryEarnings,
	CategoryPolicy,
	CategoryStructural,
	CategoryMarkets,
	CategoryGeopolitics,
	CategoryCyclical,
	CategoryNarrative,
	CategoryNoise,
}

// Valid reports whether c is one of the closed category set.
func (c Category) Valid() bool {
	for _, v := range Categories {
		if c == v {
			return true
		}
	}
	return false
}

// Item is one normalized feed entry, immutable for the duration of a run.
type Item struct {
	// ID is a stable identifier derived from the item URL.
	ID string `json:"id" yaml:"id"`

	// Title is the headline text. Required; an empty title fails validation.
	Title string `json:"title" yaml:"title"`

	// URL is the canonical article link.
	URL string `json:"url" yaml:"url"`

	// Source is the publication or feed title the item came from.
	Source string `json:"source" yaml:"source"`

	// Feed is the display name of the feed that produced the item.
	Feed string `json:"feed,omitempty" yaml:"feed,omitempty"`

	// Category is the primary category. Required and must be a member of
	// the closed set; scoring rejects unknown values rather than guessing.
	Category Category `json:"category" yaml:"category"`

	// SecondaryCategories lists any further matching categories, in rule order.
	SecondaryCategories []Category `json:"secondary_categories,omitempty" yaml:"secondary_categories,omitempty"`

	// Summary is the body snippet. May be empty.
	Summary string `json:"summary,omitempty" yaml:"summary,omitempty"`

	// PublishedAt is the feed-reported publication time. May be zero.
	PublishedAt time.Time `json:"published_at,omitempty" yaml:"published_at,omitempty"`

	// IsOpinionSource marks items from opinion feeds or columns.
	IsOpinionSource bool `json:"is_opinion_source,omitempty" yaml:"is_opinion_source,omitempty"`

	// NewSinceLastRun is true when the item was absent from the previous run.
	NewSinceLastRun bool `json:"new_since_last_run,omitempty" yaml:"new_since_last_run,omitempty"`
}

// Text returns the combined title and summary used by matching and scoring.
func (i Item) Text() string {
	if i.Summary == "" {
		return i.Title
	}
	return i.Title + " " + i.Summary
}
