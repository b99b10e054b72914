// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package memory persists the URL first-seen history and the previous run's
// state as flat JSON files. This is the only state that outlives a run; the
// triage engine consults it through a narrow interface and the store touches
// disk exactly twice per run, one load at the start and one persist at the
// end.
package memory

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// pruneDays is the first-seen age past which entries are dropped at persist
// time, keeping the store from growing without bound.
const pruneDays = 180

// Store maps item id to first-seen timestamp.
type Store struct {
	path      string
	firstSeen map[string]time.Time
}

// Load restores the store from path. A missing or corrupt file is treated as
// empty history, not an error: first-seen durability is best effort and must
// never block a run.
func Load(path string) *Store {
	s := &Store{path: path, firstSeen: make(map[string]time.Time)}

	data, err := os.ReadFile(path)
	if err != nil {
		return s
	}

	var raw map[string]string
	if err := json.Unmarshal(data, &raw); err != nil {
		return s
	}

	for id, stamp := range raw {
		ts, err := time.Parse(time.RFC3339, stamp)
		if err != nil {
			continue
		}
		s.firstSeen[id] = ts
	}
	return s
}

// FirstSeen returns the recorded first-seen time for id, if any.
func (s *Store) FirstSeen(id string) (time.Time, bool) {
	ts, ok := s.firstSeen[id]
	return ts, ok
}

// RecordSeen records id at ts. Idempotent: an already-seen id keeps its
// original first-seen time.
func (s *Store) RecordSeen(id string, ts time.Time) {
	if _, ok := s.firstSeen[id]; !ok {
		s.firstSeen[id] = ts
	}
}

// Len returns the number of recorded ids.
func (s *Store) Len() int {
	return len(s.firstSeen)
}

// Prune drops entries first seen more than pruneDays before now and returns
// how many were removed.
func (s *Store) Prune(now time.Time) int {
	cutoff := now.AddDate(0, 0, -pruneDays)
	pruned := 0
	for id, ts := range s.firstSeen {
		if ts.Before(cutoff) {
			delete(s.firstSeen, id)
			pruned++
		}
	}
	return pruned
}

// Persist writes the store to its path with atomic replace semantics: the
// new state lands in a temp file first and is renamed over the old one, so a
// failed write leaves the previous state intact. Called once, after all
// items in the run have been classified.
func (s *Store) Persist() error {
	raw := make(map[string]string, len(s.firstSeen))
	for id, ts := range s.firstSeen {
		raw[id] = ts.UTC().Format(time.RFC3339)
	}

	data, err := json.MarshalIndent(raw, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling url memory: %w", err)
	}

	return atomicWrite(s.path, data)
}

// atomicWrite writes data to path via a temp file and rename.
func atomicWrite(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating %s: %w", dir, err)
		}
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("replacing %s: %w", path, err)
	}
	return nil
}
