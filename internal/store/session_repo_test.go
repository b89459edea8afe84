package store

import (
	"context"
	"errors"
	"testing"
	"time"
)

func logSession(t *testing.T, repo *SessionRepo, id, owner string, start time.Time, minutes int) {
	t.Helper()
	err := repo.Log(context.Background(), StudySession{
		ID:                 id,
		Owner:              owner,
		StartedAt:          start,
		EndedAt:            start.Add(time.Duration(minutes) * time.Minute),
		ItemsStudied:       10,
		ExercisesCompleted: 5,
		TopicsReviewed:     1,
		Minutes:            minutes,
		Skills:             []string{"vocabulary", "listening"},
	})
	if err != nil {
		t.Fatalf("log session %s: %v", id, err)
	}
}

func TestSessionLogAndQuery(t *testing.T) {
	s := openTestStore(t)
	repo := s.Sessions()
	ctx := context.Background()

	weekStart := time.Date(2026, 5, 4, 0, 0, 0, 0, time.UTC) // a Monday
	logSession(t, repo, "s1", "learner-1", weekStart.Add(9*time.Hour), 20)
	logSession(t, repo, "s2", "learner-1", weekStart.AddDate(0, 0, 1), 30)
	logSession(t, repo, "s3", "learner-1", weekStart.AddDate(0, 0, 1).Add(12*time.Hour), 10)
	logSession(t, repo, "s4", "learner-1", weekStart.AddDate(0, 0, 9), 15) // next week
	logSession(t, repo, "s5", "learner-2", weekStart, 45)                  // other owner

	sessions, err := repo.InRange(ctx, "learner-1", weekStart, weekStart.AddDate(0, 0, 7))
	if err != nil {
		t.Fatalf("in range: %v", err)
	}
	if len(sessions) != 3 {
		t.Fatalf("sessions in week = %d, want 3", len(sessions))
	}
	if sessions[0].ID != "s1" {
		t.Errorf("sessions not ordered by start: first = %s", sessions[0].ID)
	}
	if got := sessions[0].Skills; len(got) != 2 || got[0] != "vocabulary" {
		t.Errorf("skills round trip = %v", got)
	}

	days, err := repo.DistinctDays(ctx, "learner-1", weekStart, weekStart.AddDate(0, 0, 7))
	if err != nil {
		t.Fatalf("distinct days: %v", err)
	}
	if days != 2 {
		t.Errorf("distinct days = %d, want 2", days)
	}
}

func TestSessionImmutable(t *testing.T) {
	s := openTestStore(t)
	repo := s.Sessions()

	start := time.Date(2026, 5, 4, 10, 0, 0, 0, time.UTC)
	logSession(t, repo, "dup", "", start, 20)

	err := repo.Log(context.Background(), StudySession{ID: "dup", StartedAt: start, EndedAt: start})
	if !errors.Is(err, ErrDuplicateKey) {
		t.Errorf("re-logging the same session id: err = %v, want ErrDuplicateKey", err)
	}
}

func TestSessionTotals(t *testing.T) {
	s := openTestStore(t)
	repo := s.Sessions()
	ctx := context.Background()

	start := time.Date(2026, 5, 4, 10, 0, 0, 0, time.UTC)
	logSession(t, repo, "a", "learner-1", start, 20)
	logSession(t, repo, "b", "learner-1", start.AddDate(0, 0, 1), 25)

	count, err := repo.Count(ctx, "learner-1")
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 2 {
		t.Errorf("count = %d, want 2", count)
	}

	minutes, err := repo.TotalMinutes(ctx, "learner-1")
	if err != nil {
		t.Fatalf("total minutes: %v", err)
	}
	if minutes != 45 {
		t.Errorf("total minutes = %d, want 45", minutes)
	}

	topics, err := repo.TotalTopics(ctx, "learner-1")
	if err != nil {
		t.Fatalf("total topics: %v", err)
	}
	if topics != 2 {
		t.Errorf("total topics = %d, want 2", topics)
	}
}
