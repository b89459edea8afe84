package session

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wortlab/wortschatz/internal/review"
	"github.com/wortlab/wortschatz/internal/store"
	"github.com/wortlab/wortschatz/internal/vocab"
)

func testTracker(t *testing.T) (*Tracker, *store.Store) {
	t.Helper()
	s, err := store.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return NewTracker(s), s
}

func TestEndLogsSessionAndUpdatesProfile(t *testing.T) {
	tr, s := testTracker(t)
	ctx := context.Background()

	start := time.Date(2026, 5, 4, 9, 0, 0, 0, time.UTC)
	clock := start
	tr.now = func() time.Time { return clock }

	active := tr.Start("learner-1")
	active.RecordItem()
	active.RecordItem()
	active.RecordExercise()
	active.RecordTopic("dativ")
	active.RecordTopic("dativ") // repeat counts once
	active.RecordSkill("vocabulary")
	active.RecordSkill("listening")

	clock = start.Add(25 * time.Minute)
	sum, err := tr.End(ctx, active)
	require.NoError(t, err)

	assert.Equal(t, 2, sum.Session.ItemsStudied)
	assert.Equal(t, 1, sum.Session.ExercisesCompleted)
	assert.Equal(t, 1, sum.Session.TopicsReviewed)
	assert.Equal(t, 25, sum.Session.Minutes)
	assert.Equal(t, []string{"vocabulary", "listening"}, sum.Session.Skills)
	assert.Equal(t, 1, sum.CurrentStreak)

	profile, err := s.Profiles().Get(ctx, "learner-1")
	require.NoError(t, err)
	assert.Equal(t, 25, profile.TotalMinutes)
	assert.Equal(t, "2026-05-04", profile.LastStudyDay)
	assert.Equal(t, 1, profile.Skills.Vocabulary)
	assert.Equal(t, 1, profile.Skills.Listening)
	assert.Equal(t, 0, profile.Skills.Grammar)

	count, err := s.Sessions().Count(ctx, "learner-1")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestEndExtendsStreakAcrossDays(t *testing.T) {
	tr, _ := testTracker(t)
	ctx := context.Background()

	clock := time.Date(2026, 5, 4, 20, 0, 0, 0, time.UTC)
	tr.now = func() time.Time { return clock }

	_, err := tr.End(ctx, tr.Start("learner-1"))
	require.NoError(t, err)

	clock = clock.AddDate(0, 0, 1)
	sum, err := tr.End(ctx, tr.Start("learner-1"))
	require.NoError(t, err)
	assert.Equal(t, 2, sum.CurrentStreak)

	// A three-day gap resets the current streak but not the record.
	clock = clock.AddDate(0, 0, 3)
	sum, err = tr.End(ctx, tr.Start("learner-1"))
	require.NoError(t, err)
	assert.Equal(t, 1, sum.CurrentStreak)
	assert.Equal(t, 2, sum.LongestStreak)
}

func TestEndUnlocksAchievements(t *testing.T) {
	tr, s := testTracker(t)
	ctx := context.Background()

	tr.now = func() time.Time { return time.Date(2026, 5, 4, 12, 0, 0, 0, time.UTC) }

	// Master one item before the session ends.
	ok, err := s.Items().Add(ctx, vocab.Item{Key: "das Haus", Translation: "the house"}, vocab.OriginSeed, "learner-1")
	require.NoError(t, err)
	require.True(t, ok)
	_, err = s.Items().MarkReviewed(ctx, "das Haus", "learner-1", true, tr.now(), review.DefaultConfig())
	require.NoError(t, err)

	sum, err := tr.End(ctx, tr.Start("learner-1"))
	require.NoError(t, err)

	require.Len(t, sum.NewlyUnlocked, 1)
	assert.Equal(t, "first-word", sum.NewlyUnlocked[0].ID)

	// A second session unlocks nothing new.
	sum, err = tr.End(ctx, tr.Start("learner-1"))
	require.NoError(t, err)
	assert.Empty(t, sum.NewlyUnlocked)
}

func TestEndMinimumOneMinute(t *testing.T) {
	tr, _ := testTracker(t)

	fixed := time.Date(2026, 5, 4, 12, 0, 0, 0, time.UTC)
	tr.now = func() time.Time { return fixed }

	sum, err := tr.End(context.Background(), tr.Start("learner-1"))
	require.NoError(t, err)
	assert.Equal(t, 1, sum.Session.Minutes)
}
