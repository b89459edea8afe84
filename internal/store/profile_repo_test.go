package store

import (
	"context"
	"testing"
	"time"
)

func TestProfileDefaultsWhenAbsent(t *testing.T) {
	s := openTestStore(t)
	repo := s.Profiles()

	p, err := repo.Get(context.Background(), "learner-1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if p.Owner != "learner-1" || p.CurrentStreak != 0 || p.TotalMinutes != 0 {
		t.Errorf("unexpected default profile: %+v", p)
	}
}

func TestProfileSaveRoundTrip(t *testing.T) {
	s := openTestStore(t)
	repo := s.Profiles()
	ctx := context.Background()

	p := &Profile{
		Owner:         "learner-1",
		CurrentStreak: 4,
		LongestStreak: 9,
		LastStudyDay:  "2026-05-04",
		TotalMinutes:  180,
	}
	p.Skills.Vocabulary = 42
	p.Skills.Speaking = 7

	if err := repo.Save(ctx, p); err != nil {
		t.Fatalf("save: %v", err)
	}

	// Upsert path.
	p.CurrentStreak = 5
	if err := repo.Save(ctx, p); err != nil {
		t.Fatalf("save again: %v", err)
	}

	got, err := repo.Get(ctx, "learner-1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.CurrentStreak != 5 || got.LongestStreak != 9 || got.LastStudyDay != "2026-05-04" {
		t.Errorf("round trip mismatch: %+v", got)
	}
	if got.Skills.Vocabulary != 42 || got.Skills.Speaking != 7 {
		t.Errorf("skills mismatch: %+v", got.Skills)
	}
}

func TestSkillLevelsBumpClamps(t *testing.T) {
	var sk SkillLevels
	sk.Bump("grammar", 150)
	if sk.Grammar != 100 {
		t.Errorf("Grammar = %d, want 100", sk.Grammar)
	}
	sk.Bump("grammar", -500)
	if sk.Grammar != 0 {
		t.Errorf("Grammar = %d, want 0", sk.Grammar)
	}
	sk.Bump("unknown", 10) // no-op
	for _, name := range SkillNames {
		if name != "grammar" && sk.Get(name) != 0 {
			t.Errorf("%s = %d, want 0", name, sk.Get(name))
		}
	}
}

func TestUnlockIdempotent(t *testing.T) {
	s := openTestStore(t)
	repo := s.Profiles()
	ctx := context.Background()
	at := time.Date(2026, 5, 4, 12, 0, 0, 0, time.UTC)

	first, err := repo.Unlock(ctx, "learner-1", "first-word", at)
	if err != nil {
		t.Fatalf("unlock: %v", err)
	}
	if !first {
		t.Error("first unlock must report true")
	}

	again, err := repo.Unlock(ctx, "learner-1", "first-word", at.AddDate(0, 0, 1))
	if err != nil {
		t.Fatalf("unlock again: %v", err)
	}
	if again {
		t.Error("repeat unlock must report false")
	}

	unlocked, err := repo.Unlocked(ctx, "learner-1")
	if err != nil {
		t.Fatalf("unlocked: %v", err)
	}
	if len(unlocked) != 1 {
		t.Fatalf("unlocked set size = %d, want 1", len(unlocked))
	}
	if !unlocked["first-word"].Equal(at) {
		t.Errorf("unlock timestamp = %v, want original %v", unlocked["first-word"], at)
	}
}
