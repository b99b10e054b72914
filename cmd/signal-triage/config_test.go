// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/signal-triage/pkg/types"
)

func resetConfig(t *testing.T) {
	t.Helper()
	log = zerolog.Nop()
	viper.Reset()
	t.Cleanup(viper.Reset)
}

func TestLoadConfigDefaults(t *testing.T) {
	resetConfig(t)

	cfg, scoringWarn, err := loadConfig()
	require.NoError(t, err)
	assert.True(t, scoringWarn, "missing scoring section should flag the default fallback")
	assert.Equal(t, types.DefaultScoring(), cfg.Scoring)
	assert.Equal(t, 15*time.Second, cfg.Feeds.Timeout)
}

func TestLoadConfigDecodesEmbeddedHTTPKeys(t *testing.T) {
	resetConfig(t)
	viper.Set("feeds.timeout", "30s")
	viper.Set("feeds.user_agent", "custom-agent/1.0")

	cfg, _, err := loadConfig()
	require.NoError(t, err)
	assert.Equal(t, 30*time.Second, cfg.Feeds.Timeout)
	assert.Equal(t, "custom-agent/1.0", cfg.Feeds.UserAgent)
}

func TestLoadConfigScoringOverrides(t *testing.T) {
	resetConfig(t)
	viper.Set("scoring.high_threshold", 70)
	viper.Set("scoring.medium_threshold", 50)

	cfg, scoringWarn, err := loadConfig()
	require.NoError(t, err)
	assert.False(t, scoringWarn)
	assert.Equal(t, 70, cfg.Scoring.HighThreshold)
	assert.Equal(t, 50, cfg.Scoring.MediumThreshold)
}

func TestLoadConfigRejectsInvertedThresholds(t *testing.T) {
	resetConfig(t)
	viper.Set("scoring.medium_threshold", 70)
	viper.Set("scoring.high_threshold", 62)

	_, _, err := loadConfig()
	require.Error(t, err)
	var cerr *types.ConfigError
	assert.True(t, errors.As(err, &cerr), "want *types.ConfigError, got %T", err)
}
