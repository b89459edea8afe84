package achievements

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/wortlab/wortschatz/internal/store"
)

func testEngine(t *testing.T) *Engine {
	t.Helper()
	s, err := store.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return NewEngine(s.Profiles())
}

func TestEvaluateUnlocksInOrder(t *testing.T) {
	e := testEngine(t)
	ctx := context.Background()
	now := time.Date(2026, 5, 4, 12, 0, 0, 0, time.UTC)

	agg := Aggregate{MasteredCount: 60, LongestStreak: 8, SessionCount: 3}
	fresh, err := e.Evaluate(ctx, "learner-1", agg, now)
	if err != nil {
		t.Fatalf("evaluate: %v", err)
	}

	want := []string{"first-word", "mastered-50", "streak-7"}
	if len(fresh) != len(want) {
		t.Fatalf("unlocked %d achievements, want %d: %+v", len(fresh), len(want), fresh)
	}
	for i, id := range want {
		if fresh[i].ID != id {
			t.Errorf("fresh[%d] = %s, want %s", i, fresh[i].ID, id)
		}
	}
}

func TestEvaluateNeverRepeats(t *testing.T) {
	e := testEngine(t)
	ctx := context.Background()
	now := time.Now()

	agg := Aggregate{MasteredCount: 1}
	if _, err := e.Evaluate(ctx, "learner-1", agg, now); err != nil {
		t.Fatalf("first evaluate: %v", err)
	}

	// Same aggregate again: nothing new.
	fresh, err := e.Evaluate(ctx, "learner-1", agg, now)
	if err != nil {
		t.Fatalf("second evaluate: %v", err)
	}
	if len(fresh) != 0 {
		t.Errorf("re-evaluation unlocked %+v, want nothing", fresh)
	}

	// Progress grows: only the new milestone fires.
	fresh, err = e.Evaluate(ctx, "learner-1", Aggregate{MasteredCount: 55}, now)
	if err != nil {
		t.Fatalf("third evaluate: %v", err)
	}
	if len(fresh) != 1 || fresh[0].ID != "mastered-50" {
		t.Errorf("unlocked %+v, want just mastered-50", fresh)
	}
}

func TestEvaluateScopedPerOwner(t *testing.T) {
	e := testEngine(t)
	ctx := context.Background()
	now := time.Now()

	if _, err := e.Evaluate(ctx, "anna", Aggregate{MasteredCount: 1}, now); err != nil {
		t.Fatalf("evaluate anna: %v", err)
	}

	fresh, err := e.Evaluate(ctx, "ben", Aggregate{MasteredCount: 1}, now)
	if err != nil {
		t.Fatalf("evaluate ben: %v", err)
	}
	if len(fresh) != 1 || fresh[0].ID != "first-word" {
		t.Errorf("ben's unlocks = %+v, want first-word", fresh)
	}
}

func TestReportProgress(t *testing.T) {
	e := testEngine(t)
	ctx := context.Background()
	now := time.Date(2026, 5, 4, 12, 0, 0, 0, time.UTC)

	if _, err := e.Evaluate(ctx, "learner-1", Aggregate{MasteredCount: 1}, now); err != nil {
		t.Fatalf("evaluate: %v", err)
	}

	report, err := e.Report(ctx, "learner-1", Aggregate{MasteredCount: 37, TotalMinutes: 90})
	if err != nil {
		t.Fatalf("report: %v", err)
	}
	if len(report) != len(Catalog()) {
		t.Fatalf("report covers %d entries, want %d", len(report), len(Catalog()))
	}

	byID := make(map[string]Status)
	for _, st := range report {
		byID[st.ID] = st
	}

	first := byID["first-word"]
	if !first.Unlocked || first.UnlockedAt == nil || !first.UnlockedAt.Equal(now) {
		t.Errorf("first-word status = %+v, want unlocked at %v", first, now)
	}

	fifty := byID["mastered-50"]
	if fifty.Unlocked || fifty.Current != 37 || fifty.Target != 50 {
		t.Errorf("mastered-50 status = %+v, want locked 37/50", fifty)
	}

	hours := byID["hours-24"]
	if hours.Unlocked || hours.Current != 90 {
		t.Errorf("hours-24 status = %+v, want locked at 90 minutes", hours)
	}
}

func TestEvaluateCountsTopics(t *testing.T) {
	e := testEngine(t)
	ctx := context.Background()
	now := time.Now()

	fresh, err := e.Evaluate(ctx, "learner-1", Aggregate{TopicsCount: 9}, now)
	if err != nil {
		t.Fatalf("evaluate: %v", err)
	}
	if len(fresh) != 0 {
		t.Fatalf("unlocked %+v at 9 topics, want nothing", fresh)
	}

	fresh, err = e.Evaluate(ctx, "learner-1", Aggregate{TopicsCount: 10}, now)
	if err != nil {
		t.Fatalf("evaluate: %v", err)
	}
	if len(fresh) != 1 || fresh[0].ID != "topics-10" {
		t.Errorf("unlocked %+v, want topics-10", fresh)
	}
}

func TestCatalogIDsUnique(t *testing.T) {
	seen := make(map[string]bool)
	for _, a := range Catalog() {
		if seen[a.ID] {
			t.Errorf("duplicate achievement id %q", a.ID)
		}
		seen[a.ID] = true
		if a.Target <= 0 {
			t.Errorf("%s has non-positive target %d", a.ID, a.Target)
		}
		if a.Progress == nil {
			t.Errorf("%s has no progress function", a.ID)
		}
	}
}
