// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package analysis

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sample() Entry {
	return Entry{
		Title:          "Fed raises rates 0.25%",
		Source:         "WSJ Markets",
		Category:       "Policy/Regulatory",
		SignalStrength: "Medium",
		TimeHorizon:    "Immediate",
		Action:         "Monitor",
		Confidence:     3,
		Tags:           []string{"rates"},
		CreatedAt:      "2026-03-02T12:00:00Z",
	}
}

func TestAppendAndRead(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data", "analysis_log.jsonl")

	require.NoError(t, Append(path, sample()))

	second := sample()
	second.Title = "Copper shortage deepens"
	second.Action = "Act"
	second.Mechanism = "Inventory draw forces spot buying"
	require.NoError(t, Append(path, second))

	entries, err := Read(path)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "Fed raises rates 0.25%", entries[0].Title)
	assert.Equal(t, "Act", entries[1].Action)
	assert.Equal(t, "Inventory draw forces spot buying", entries[1].Mechanism)
}

func TestReadMissingFile(t *testing.T) {
	entries, err := Read(filepath.Join(t.TempDir(), "nope.jsonl"))
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestReadSkipsGarbageLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "log.jsonl")
	content := `{"title":"Valid one","action":"Monitor"}

this line is narrative text, not JSON
{"title":"Valid two","action":"Act"}
{"broken json
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	entries, err := Read(path)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "Valid one", entries[0].Title)
	assert.Equal(t, "Valid two", entries[1].Title)
}

func TestEventTime(t *testing.T) {
	e := Entry{
		PublishedAt: "2026-03-01T09:00:00Z",
		CreatedAt:   "2026-03-02T12:00:00Z",
	}
	want := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	assert.True(t, e.EventTime().Equal(want), "published_at should win")

	e.PublishedAt = "not a timestamp"
	want = time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC)
	assert.True(t, e.EventTime().Equal(want), "falls back to created_at")

	assert.True(t, Entry{}.EventTime().IsZero())
}
