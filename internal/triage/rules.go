// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package triage converts normalized items plus theme matches into scored,
// classified triage records and aggregates run-level calibration counts.
// All decision logic is additive and inspectable: every fired rule leaves a
// (label, delta) entry in the item's audit trail.
package triage

import "regexp"

// Light heuristics only. These patterns are deliberately narrow; a miss
// costs a few score points, a false positive pollutes the audit trail.
var (
	numericPattern = regexp.MustCompile(`(?i)\b(\d+(\.\d+)?%?|\$\d+|\d{4}|Q[1-4])\b`)

	framingTerms = regexp.MustCompile(`(?i)\b(opinion|column|what it means|explainer|why|how to|guide)\b`)

	modalTerms = regexp.MustCompile(`(?i)\b(could|might|may|risk|risks|fears|worries)\b`)

	marketMoveHeadline = regexp.MustCompile(`(?i)\b(stocks (rose|fell)|shares (rose|fell)|market (rallied|slid))\b`)
)

// Time-horizon cues override the category default only when a strong signal
// phrase is present. "long-term" alone or "over the next year" are too common
// to be reliable.
var (
	immediateCues = regexp.MustCompile(`(?i)\b(this quarter|Q[1-4] results|missed estimates|beat estimates|earnings beat|` +
		`earnings miss|guidance cut|guidance raised|EPS cut|raised guidance|lowered guidance|` +
		`reported (earnings|results))\b`)

	structuralCues = regexp.MustCompile(`(?i)\b(multi.year|secular trend|secular shift|long.term trend|structural shift|` +
		`permanent change|irreversible|decade.long|generational (shift|change))\b`)
)
