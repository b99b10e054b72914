// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package analysis persists manually authored follow-up analyses as JSON
// Lines. Triage only recommends Read or Skip; an analysis entry is where a
// human records mechanism, stance, and an Act call if one is warranted.
package analysis

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Entry is one saved analysis. The schema is deliberately wider than the
// triage record: action may be "Act" here, and mechanism is expected to be
// filled in by the author.
type Entry struct {
	Title          string   `json:"title" validate:"required"`
	URL            string   `json:"url,omitempty"`
	Source         string   `json:"source" validate:"required"`
	Category       string   `json:"category" validate:"required,oneof=Earnings Policy/Regulatory Structural Markets Geopolitics Cyclical Narrative/Opinion Noise"`
	SignalStrength string   `json:"signal_strength" validate:"required,oneof=High Medium Low"`
	TimeHorizon    string   `json:"time_horizon" validate:"required,oneof=Immediate Near-term Structural"`
	Action         string   `json:"action" validate:"required,oneof=Act Prepare/Monitor Ignore"`
	Confidence     int      `json:"confidence" validate:"required,min=1,max=5"`
	Mechanism      string   `json:"mechanism,omitempty"`
	Tags           []string `json:"tags,omitempty"`
	Reinforces     []string `json:"reinforces,omitempty"`
	Contradicts    []string `json:"contradicts,omitempty"`
	ActionTriggers []string `json:"action_triggers,omitempty"`

	// UpdatesConfidence records an explicit confidence revision,
	// e.g. "3 -> 4".
	UpdatesConfidence string `json:"updates_confidence,omitempty"`

	PublishedAt      string `json:"published_at,omitempty"`
	CreatedAt        string `json:"created_at,omitempty"`
	ServerReceivedAt string `json:"server_received_at,omitempty"`
}

// EventTime returns the best timestamp for windowing: the article's
// published time, else the entry's creation time. Zero when neither parses.
func (e Entry) EventTime() time.Time {
	for _, s := range []string{e.PublishedAt, e.CreatedAt, e.ServerReceivedAt} {
		if s == "" {
			continue
		}
		if t, err := time.Parse(time.RFC3339, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

// Append writes one entry as a compact JSON line at the end of path,
// creating the file and its directory as needed.
func Append(path string, e Entry) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating %s: %w", dir, err)
		}
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("opening analysis log: %w", err)
	}
	defer f.Close()

	data, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("marshaling analysis entry: %w", err)
	}
	if _, err := f.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("appending analysis entry: %w", err)
	}
	return nil
}

// Read loads every parseable entry from path. Blank lines and lines that
// are not JSON objects (stray narrative text, partial writes) are skipped,
// not errors. A missing file reads as an empty log.
func Read(path string) ([]Entry, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("opening analysis log: %w", err)
	}
	defer f.Close()

	var entries []Entry
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var e Entry
		if err := json.Unmarshal(line, &e); err != nil {
			continue
		}
		entries = append(entries, e)
	}
	if err := scanner.Err(); err != nil {
		return entries, fmt.Errorf("reading analysis log: %w", err)
	}
	return entries, nil
}
