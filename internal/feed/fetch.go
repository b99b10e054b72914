// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package feed fetches RSS/Atom feeds and normalizes their entries into
// triage items: stable ids, stripped summaries, derived categories, and
// per-category recency filtering.
package feed

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/mmcdole/gofeed"
	"golang.org/x/time/rate"

	"github.com/pdiddy/signal-triage/internal/httputil"
	"github.com/pdiddy/signal-triage/pkg/types"
)

const defaultTimeout = 15 * time.Second

// Fetcher retrieves and parses feeds, pacing requests with a rate limiter
// so a multi-feed run stays polite to the host.
type Fetcher struct {
	client  *http.Client
	parser  *gofeed.Parser
	limiter *rate.Limiter
	cfg     types.FeedConfig
}

// NewFetcher builds a Fetcher from the feed configuration.
func NewFetcher(cfg types.FeedConfig) *Fetcher {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	perSecond := cfg.FetchesPerSecond
	if perSecond <= 0 {
		perSecond = 1
	}

	return &Fetcher{
		client:  &http.Client{Timeout: timeout},
		parser:  gofeed.NewParser(),
		limiter: rate.NewLimiter(rate.Limit(perSecond), 1),
		cfg:     cfg,
	}
}

// Fetch retrieves and parses one feed URL.
func (f *Fetcher) Fetch(ctx context.Context, url string) (*gofeed.Feed, error) {
	if err := f.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("building request for %s: %w", url, err)
	}
	if f.cfg.UserAgent != "" {
		req.Header.Set("User-Agent", f.cfg.UserAgent)
	}

	resp, err := httputil.DoWithRetry(ctx, f.client, req, 0)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetching %s: status %d", url, resp.StatusCode)
	}

	parsed, err := f.parser.Parse(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", url, err)
	}
	return parsed, nil
}

// FetchAll retrieves every configured feed and returns the normalized,
// deduplicated item batch. Individual feed failures are collected, not
// fatal: a dead feed should never sink the run.
func (f *Fetcher) FetchAll(ctx context.Context, now time.Time) ([]types.Item, []error) {
	var items []types.Item
	var errs []error

	for _, url := range f.cfg.URLs {
		parsed, err := f.Fetch(ctx, url)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		items = append(items, Normalize(parsed, f.cfg.MaxEntriesPerFeed, now)...)
	}

	return Dedupe(items), errs
}
