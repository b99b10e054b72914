// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"path/filepath"
	"time"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"

	"github.com/pdiddy/signal-triage/pkg/types"
)

// defaultFeeds is the out-of-the-box feed list; override via the feeds.urls
// config key.
var defaultFeeds = []string{
	"https://feeds.content.dowjones.io/public/rss/RSSWorldNews",
	"https://feeds.content.dowjones.io/public/rss/WSJcomUSBusiness",
	"https://feeds.content.dowjones.io/public/rss/RSSMarketsMain",
	"https://feeds.content.dowjones.io/public/rss/socialeconomyfeed",
	"https://feeds.content.dowjones.io/public/rss/socialpoliticsfeed",
}

func defaultConfig() types.PipelineConfig {
	return types.PipelineConfig{
		Feeds: types.FeedConfig{
			HTTPConfig: types.HTTPConfig{
				Timeout:   15 * time.Second,
				UserAgent: "signal-triage/" + version,
			},
			URLs:              defaultFeeds,
			MaxEntriesPerFeed: 200,
			FetchesPerSecond:  1,
		},
		Scoring: types.DefaultScoring(),
		Server:  types.ServerConfig{Addr: "127.0.0.1:5050"},
		Memo:    types.MemoConfig{WindowDays: 7},
		Paths: types.PathsConfig{
			DataDir:    "data",
			OutputDir:  "output",
			ThemesFile: filepath.Join("config", "themes.yaml"),
		},
		LogLevel: "info",
	}
}

// loadConfig resolves the pipeline configuration: defaults, overlaid with
// whatever viper picked up from the config file and environment. The second
// return is true when the scoring section was missing or unusable and the
// run fell back to defaults; callers surface that loudly, since silently
// mis-tuned thresholds are the easiest way to ruin a calibration. A scoring
// section that is present but self-contradictory (medium >= high) is not
// something defaults can paper over, so that aborts the run instead.
func loadConfig() (types.PipelineConfig, bool, error) {
	cfg := defaultConfig()

	if err := viper.Unmarshal(&cfg, func(dc *mapstructure.DecoderConfig) {
		dc.TagName = "yaml"
		dc.Squash = true
	}); err != nil {
		log.Warn().Err(err).Msg("config file unusable, running with defaults")
		return defaultConfig(), true, nil
	}

	if err := cfg.Scoring.Validate(); err != nil {
		return types.PipelineConfig{}, false, err
	}
	return cfg, !viper.IsSet("scoring"), nil
}

// statePaths centralizes the flat-file locations under the data directory.
type statePaths struct {
	firstSeen string
	runState  string
	analysis  string
	dashboard string
	memoMD    string
	memoHTML  string
}

func pathsFor(cfg types.PipelineConfig) statePaths {
	return statePaths{
		firstSeen: filepath.Join(cfg.Paths.DataDir, "url_first_seen.json"),
		runState:  filepath.Join(cfg.Paths.DataDir, "run_state.json"),
		analysis:  filepath.Join(cfg.Paths.DataDir, "analysis_log.jsonl"),
		dashboard: filepath.Join(cfg.Paths.OutputDir, "triage.html"),
		memoMD:    filepath.Join(cfg.Paths.OutputDir, "weekly_memo.md"),
		memoHTML:  filepath.Join(cfg.Paths.OutputDir, "weekly_memo.html"),
	}
}
