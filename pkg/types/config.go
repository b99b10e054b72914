// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"fmt"
	"time"
)

// HTTPConfig holds shared HTTP settings used by stages that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "signal-triage/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// FeedConfig holds settings for the feed fetch stage.
type FeedConfig struct {
	HTTPConfig `yaml:",inline"`

	// URLs lists the RSS/Atom feeds to poll.
	URLs []string `json:"urls" yaml:"urls"`

	// MaxEntriesPerFeed caps how many entries are read from one feed (default 200).
	MaxEntriesPerFeed int `json:"max_entries_per_feed" yaml:"max_entries_per_feed"`

	// FetchesPerSecond limits the feed fetch rate (default 1).
	FetchesPerSecond float64 `json:"fetches_per_second" yaml:"fetches_per_second"`
}

// ScoringConfig holds the scoring baseline, the rule deltas, and the band
// thresholds. Everything is tunable from the config file so the operator can
// recalibrate without a code change; the zero value is unusable, use
// DefaultScoring.
type ScoringConfig struct {
	// Baseline is the score every item starts from (default 35).
	Baseline int `json:"baseline" yaml:"baseline"`

	// HighThreshold is the minimum score for the High band (default 62).
	HighThreshold int `json:"high_threshold" yaml:"high_threshold"`

	// MediumThreshold is the minimum score for the Medium band (default 45).
	// Must be strictly below HighThreshold.
	MediumThreshold int `json:"medium_threshold" yaml:"medium_threshold"`

	// Deltas holds the per-rule score adjustments.
	Deltas RuleDeltas `json:"deltas" yaml:"deltas"`
}

// RuleDeltas is the signed contribution of each scoring rule.
type RuleDeltas struct {
	Quantitative     int `json:"quantitative" yaml:"quantitative"`
	ConcreteCategory int `json:"concrete_category" yaml:"concrete_category"`
	ThemeTrigger     int `json:"theme_trigger" yaml:"theme_trigger"`
	ThemeKeyword     int `json:"theme_keyword" yaml:"theme_keyword"`
	MarketMove       int `json:"market_move" yaml:"market_move"`
	Framing          int `json:"framing" yaml:"framing"`
	OpinionSource    int `json:"opinion_source" yaml:"opinion_source"`
	Hedging          int `json:"hedging" yaml:"hedging"`
}

// DefaultScoring returns the standard scoring configuration.
func DefaultScoring() ScoringConfig {
	return ScoringConfig{
		Baseline:        35,
		HighThreshold:   62,
		MediumThreshold: 45,
		Deltas: RuleDeltas{
			Quantitative:     12,
			ConcreteCategory: 12,
			ThemeTrigger:     8,
			ThemeKeyword:     5,
			MarketMove:       -18,
			Framing:          -14,
			OpinionSource:    -20,
			Hedging:          -4,
		},
	}
}

// Validate rejects threshold orderings the band logic cannot support.
// Called at configuration-load time so a bad file fails the run up front.
func (c ScoringConfig) Validate() error {
	if c.MediumThreshold >= c.HighThreshold {
		return &ConfigError{Msg: fmt.Sprintf(
			"medium_threshold (%d) must be below high_threshold (%d)",
			c.MediumThreshold, c.HighThreshold)}
	}
	return nil
}

// ServerConfig holds settings for the local review server.
type ServerConfig struct {
	// Addr is the listen address (default "127.0.0.1:5050"). Local only.
	Addr string `json:"addr" yaml:"addr"`
}

// MemoConfig holds settings for the weekly memo stage.
type MemoConfig struct {
	// WindowDays is the synthesis window (default 7).
	WindowDays int `json:"window_days" yaml:"window_days"`
}

// PathsConfig holds the flat-file locations the pipeline reads and writes.
type PathsConfig struct {
	// DataDir holds persisted state: url_first_seen.json, run_state.json,
	// analysis_log.jsonl.
	DataDir string `json:"data_dir" yaml:"data_dir"`

	// OutputDir holds rendered artifacts: triage.html, weekly_memo.md/.html.
	OutputDir string `json:"output_dir" yaml:"output_dir"`

	// ThemesFile is the YAML theme configuration (default "config/themes.yaml").
	ThemesFile string `json:"themes_file" yaml:"themes_file"`
}

// PipelineConfig groups all stage configurations.
type PipelineConfig struct {
	Feeds   FeedConfig    `json:"feeds" yaml:"feeds"`
	Scoring ScoringConfig `json:"scoring" yaml:"scoring"`
	Server  ServerConfig  `json:"server" yaml:"server"`
	Memo    MemoConfig    `json:"memo" yaml:"memo"`
	Paths   PathsConfig   `json:"paths" yaml:"paths"`

	// LogLevel selects the zerolog level (default "info").
	LogLevel string `json:"log_level" yaml:"log_level"`
}
