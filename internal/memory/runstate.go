// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package memory

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// RunState records what the previous run saw, so the dashboard can badge
// items that appeared since. Separate from the first-seen store: run state
// is overwritten wholesale each run, the first-seen map only grows.
type RunState struct {
	LastRunAt time.Time `json:"last_run_at"`

	// LastRunIDs lists the item ids that made the previous run's dashboard.
	LastRunIDs []string `json:"last_run_ids"`
}

// LoadRunState restores the previous run's state from path. Missing or
// corrupt files mean "no previous run": every item counts as new since last
// run.
func LoadRunState(path string) RunState {
	data, err := os.ReadFile(path)
	if err != nil {
		return RunState{}
	}
	var rs RunState
	if err := json.Unmarshal(data, &rs); err != nil {
		return RunState{}
	}
	return rs
}

// Contains reports whether id was present in the previous run.
func (rs RunState) Contains(id string) bool {
	for _, v := range rs.LastRunIDs {
		if v == id {
			return true
		}
	}
	return false
}

// SaveRunState writes the state atomically to path.
func SaveRunState(path string, rs RunState) error {
	data, err := json.MarshalIndent(rs, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling run state: %w", err)
	}
	return atomicWrite(path, data)
}
