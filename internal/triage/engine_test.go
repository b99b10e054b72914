// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package triage

import (
	"errors"
	"math/rand"
	"reflect"
	"testing"
	"time"

	"github.com/pdiddy/signal-triage/pkg/types"
)

// fakeMemory is an in-memory Memory for engine tests.
type fakeMemory struct {
	firstSeen map[string]time.Time
}

func newFakeMemory() *fakeMemory {
	return &fakeMemory{firstSeen: make(map[string]time.Time)}
}

func (m *fakeMemory) FirstSeen(id string) (time.Time, bool) {
	ts, ok := m.firstSeen[id]
	return ts, ok
}

func (m *fakeMemory) RecordSeen(id string, ts time.Time) {
	if _, ok := m.firstSeen[id]; !ok {
		m.firstSeen[id] = ts
	}
}

func testItems() []types.Item {
	return []types.Item{
		{ID: "1", Title: "Fed raises rates 0.25%", Category: types.CategoryPolicy},
		{
			ID:              "2",
			Title:           "Opinion: why tech stocks rose today",
			Category:        types.CategoryNarrative,
			IsOpinionSource: true,
		},
		{ID: "3", Title: "Copper inventories fell 12% this quarter", Category: types.CategoryStructural},
	}
}

func TestEngineRun(t *testing.T) {
	now := time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC)
	e := &Engine{Scoring: types.DefaultScoring(), Memory: newFakeMemory()}

	res := e.Run(testItems(), now)
	if len(res.Scored) != 3 {
		t.Fatalf("len(scored) = %d, want 3", len(res.Scored))
	}

	fed := res.Scored[0]
	if fed.Score != 59 || fed.SignalStrength != types.SignalMedium || fed.TriageDecision != types.DecisionRead {
		t.Errorf("fed item = score %d, band %s, decision %s; want 59/Medium/Read",
			fed.Score, fed.SignalStrength, fed.TriageDecision)
	}

	op := res.Scored[1]
	if op.Score != -17 || op.SignalStrength != types.SignalLow || op.TriageDecision != types.DecisionSkip {
		t.Errorf("opinion item = score %d, band %s, decision %s; want -17/Low/Skip",
			op.Score, op.SignalStrength, op.TriageDecision)
	}

	for _, s := range res.Scored {
		if !s.IsNew {
			t.Errorf("item %s IsNew = false on first run", s.Item.ID)
		}
		if s.Mechanism != "" {
			t.Errorf("item %s has mechanism populated at triage", s.Item.ID)
		}
		if s.TriageDecision != types.DecisionRead && s.TriageDecision != types.DecisionSkip {
			t.Errorf("item %s decision = %q", s.Item.ID, s.TriageDecision)
		}
	}

	cal := res.Calibration
	if cal.Total != 3 || cal.Read != 2 || cal.Skip != 1 {
		t.Errorf("calibration = %+v", cal)
	}
}

func TestEngineEvergreenAcrossRuns(t *testing.T) {
	mem := newFakeMemory()
	e := &Engine{Scoring: types.DefaultScoring(), Memory: mem}

	run1 := time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC)
	res1 := e.Run(testItems(), run1)
	for _, s := range res1.Scored {
		if !s.IsNew {
			t.Errorf("run 1: item %s not new", s.Item.ID)
		}
	}

	// Same batch the next day: same ids, so nothing is new.
	run2 := run1.Add(24 * time.Hour)
	res2 := e.Run(testItems(), run2)
	for _, s := range res2.Scored {
		if s.IsNew {
			t.Errorf("run 2: item %s still new", s.Item.ID)
		}
		if s.URLAgeDays != 1 {
			t.Errorf("run 2: item %s age = %d days, want 1", s.Item.ID, s.URLAgeDays)
		}
		if s.EvergreenResurfaced {
			t.Errorf("run 2: item %s evergreen after one day", s.Item.ID)
		}
	}

	// First-seen timestamps must not move on re-recording.
	if ts := mem.firstSeen["1"]; !ts.Equal(run1) {
		t.Errorf("first seen moved to %v", ts)
	}

	run3 := run1.Add(91 * 24 * time.Hour)
	res3 := e.Run(testItems(), run3)
	for _, s := range res3.Scored {
		if !s.EvergreenResurfaced {
			t.Errorf("run 3: item %s not evergreen at %d days", s.Item.ID, s.URLAgeDays)
		}
	}
}

func TestEngineIdempotent(t *testing.T) {
	now := time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC)
	mem := newFakeMemory()
	e := &Engine{Scoring: types.DefaultScoring(), Memory: mem}

	// Prime the memory, then run twice against unchanged state.
	e.Run(testItems(), now.Add(-48*time.Hour))

	first := e.Run(testItems(), now)
	second := e.Run(testItems(), now)

	if !reflect.DeepEqual(first, second) {
		t.Error("engine output differs across identical runs")
	}
}

func TestEngineOrderIndependent(t *testing.T) {
	now := time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC)
	th := []types.Theme{{Name: "Rates", WatchTriggers: []string{"rates"}}}

	byID := func(items []types.Item) map[string]types.ScoredItem {
		e := &Engine{Scoring: types.DefaultScoring(), Themes: th, Memory: newFakeMemory()}
		out := make(map[string]types.ScoredItem)
		for _, s := range e.Run(items, now).Scored {
			out[s.Item.ID] = s
		}
		return out
	}

	items := testItems()
	want := byID(items)

	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 10; i++ {
		shuffled := append([]types.Item(nil), items...)
		rng.Shuffle(len(shuffled), func(a, b int) {
			shuffled[a], shuffled[b] = shuffled[b], shuffled[a]
		})
		got := byID(shuffled)
		if !reflect.DeepEqual(got, want) {
			t.Fatalf("per-item results depend on processing order (permutation %d)", i)
		}
	}
}

func TestEngineDropsInvalidItems(t *testing.T) {
	now := time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC)
	e := &Engine{Scoring: types.DefaultScoring(), Memory: newFakeMemory()}

	items := []types.Item{
		{ID: "ok", Title: "Fed raises rates 0.25%", Category: types.CategoryPolicy},
		{ID: "notitle", Title: "   ", Category: types.CategoryMarkets},
		{ID: "badcat", Title: "Something happened", Category: types.Category("Sports")},
		{Title: "No id", Category: types.CategoryMarkets},
	}

	res := e.Run(items, now)
	if len(res.Scored) != 1 {
		t.Fatalf("len(scored) = %d, want 1", len(res.Scored))
	}
	if len(res.DropErrors) != 3 {
		t.Fatalf("len(dropErrors) = %d, want 3", len(res.DropErrors))
	}
	if res.Calibration.Dropped != 3 {
		t.Errorf("calibration.Dropped = %d, want 3", res.Calibration.Dropped)
	}

	var verr *types.ValidationError
	for _, err := range res.DropErrors {
		if !errors.As(err, &verr) {
			t.Errorf("drop error %v is not a ValidationError", err)
		}
	}
}
