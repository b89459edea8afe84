// Package analytics derives progress statistics from the item store and
// the session log. Every figure is a pure function of current store state;
// nothing here keeps memory of its own.
package analytics

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/wortlab/wortschatz/internal/store"
)

// velocityWindowDays is the trailing window used for learning velocity.
const velocityWindowDays = 30

// ItemStats is the slice of the item store the aggregator reads.
type ItemStats interface {
	TotalCount(ctx context.Context, scope string) (int, error)
	MasteredCount(ctx context.Context, scope string) (int, error)
	TotalReviews(ctx context.Context, scope string) (int, error)
	MasteredSince(ctx context.Context, scope string, since time.Time) (int, error)
}

// SessionLog is the slice of the session log the aggregator reads.
type SessionLog interface {
	InRange(ctx context.Context, owner string, from, to time.Time) ([]store.StudySession, error)
	DistinctDays(ctx context.Context, owner string, from, to time.Time) (int, error)
}

// Service computes derived statistics for one owner scope at a time.
type Service struct {
	items    ItemStats
	sessions SessionLog
}

// NewService creates an analytics service over the two source stores.
func NewService(items ItemStats, sessions SessionLog) *Service {
	return &Service{items: items, sessions: sessions}
}

// RetentionRate returns mastered / total reviews as a rounded percentage,
// 0 when nothing has been reviewed yet.
func (s *Service) RetentionRate(ctx context.Context, owner string) (int, error) {
	mastered, err := s.items.MasteredCount(ctx, owner)
	if err != nil {
		return 0, fmt.Errorf("retention rate: %w", err)
	}
	reviews, err := s.items.TotalReviews(ctx, owner)
	if err != nil {
		return 0, fmt.Errorf("retention rate: %w", err)
	}
	if reviews == 0 {
		return 0, nil
	}
	return int(math.Round(float64(mastered) / float64(reviews) * 100)), nil
}

// LearningVelocity returns words mastered per week, measured over the
// trailing 30 days.
func (s *Service) LearningVelocity(ctx context.Context, owner string, now time.Time) (float64, error) {
	recent, err := s.items.MasteredSince(ctx, owner, now.AddDate(0, 0, -velocityWindowDays))
	if err != nil {
		return 0, fmt.Errorf("learning velocity: %w", err)
	}
	return float64(recent) / velocityWindowDays * 7, nil
}

// CurrentLevel estimates the learner's CEFR tier from the mastered count.
func (s *Service) CurrentLevel(ctx context.Context, owner string) (LevelEstimate, error) {
	mastered, err := s.items.MasteredCount(ctx, owner)
	if err != nil {
		return LevelEstimate{}, fmt.Errorf("current level: %w", err)
	}
	return EstimateLevel(mastered), nil
}

// ProjectedFluencyDate estimates when the learner reaches the target
// mastered count at the current velocity. Returns nil when velocity is
// zero: with no recent progress there is no defensible projection, and
// surfacing "unknown" beats surfacing infinity.
func (s *Service) ProjectedFluencyDate(ctx context.Context, owner string, now time.Time) (*time.Time, error) {
	mastered, err := s.items.MasteredCount(ctx, owner)
	if err != nil {
		return nil, fmt.Errorf("projected fluency: %w", err)
	}
	velocity, err := s.LearningVelocity(ctx, owner, now)
	if err != nil {
		return nil, err
	}
	if velocity == 0 {
		return nil, nil
	}

	remaining := TargetMasteredCount - mastered
	if remaining < 0 {
		remaining = 0
	}
	weeks := int(math.Ceil(float64(remaining) / velocity))
	date := now.AddDate(0, 0, weeks*7)
	return &date, nil
}

// WeeklyStats sums the owner's sessions in [weekStart, weekStart+7d).
type WeeklyStats struct {
	Sessions            int
	TotalMinutes        int
	ItemsStudied        int
	ExercisesCompleted  int
	DaysActive          int
	AverageDailyMinutes int
}

// WeeklyStats aggregates one calendar week of the session log. The daily
// average divides by days that actually had a session, not by seven.
func (s *Service) WeeklyStats(ctx context.Context, owner string, weekStart time.Time) (WeeklyStats, error) {
	weekEnd := weekStart.AddDate(0, 0, 7)
	sessions, err := s.sessions.InRange(ctx, owner, weekStart, weekEnd)
	if err != nil {
		return WeeklyStats{}, fmt.Errorf("weekly stats: %w", err)
	}
	days, err := s.sessions.DistinctDays(ctx, owner, weekStart, weekEnd)
	if err != nil {
		return WeeklyStats{}, fmt.Errorf("weekly stats: %w", err)
	}

	stats := WeeklyStats{Sessions: len(sessions), DaysActive: days}
	for _, sess := range sessions {
		stats.TotalMinutes += sess.Minutes
		stats.ItemsStudied += sess.ItemsStudied
		stats.ExercisesCompleted += sess.ExercisesCompleted
	}
	if days > 0 {
		stats.AverageDailyMinutes = stats.TotalMinutes / days
	}
	return stats, nil
}

// SkillScore pairs a skill name with its level for ranking output.
type SkillScore struct {
	Name  string
	Level int
}

// RankSkills returns the two strongest and two weakest of the six tracked
// skills. Ties keep the stable store.SkillNames order.
func RankSkills(levels store.SkillLevels) (strongest, weakest []SkillScore) {
	scores := make([]SkillScore, len(store.SkillNames))
	for i, name := range store.SkillNames {
		scores[i] = SkillScore{Name: name, Level: levels.Get(name)}
	}

	desc := make([]SkillScore, len(scores))
	copy(desc, scores)
	sort.SliceStable(desc, func(i, j int) bool { return desc[i].Level > desc[j].Level })

	asc := make([]SkillScore, len(scores))
	copy(asc, scores)
	sort.SliceStable(asc, func(i, j int) bool { return asc[i].Level < asc[j].Level })

	return desc[:2], asc[:2]
}

// ApplyStudyDay folds one study day (YYYY-MM-DD) into the profile's streak
// counters: a repeat of the last study day is a no-op, the following
// calendar day extends the streak, anything else restarts it at 1.
func ApplyStudyDay(p *store.Profile, day string) {
	if day == p.LastStudyDay {
		return
	}
	if isNextDay(p.LastStudyDay, day) {
		p.CurrentStreak++
	} else {
		p.CurrentStreak = 1
	}
	p.LastStudyDay = day
	if p.CurrentStreak > p.LongestStreak {
		p.LongestStreak = p.CurrentStreak
	}
}

func isNextDay(prev, next string) bool {
	if prev == "" {
		return false
	}
	t, err := time.Parse("2006-01-02", prev)
	if err != nil {
		return false
	}
	return t.AddDate(0, 0, 1).Format("2006-01-02") == next
}
