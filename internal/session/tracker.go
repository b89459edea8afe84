// Package session tracks one study sitting from start to finish and, on
// completion, fans the results out to the session log, the learner
// profile, and the achievement engine.
package session

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/wortlab/wortschatz/internal/achievements"
	"github.com/wortlab/wortschatz/internal/analytics"
	"github.com/wortlab/wortschatz/internal/store"
)

// skillBump is the per-session level gain for each practiced skill.
const skillBump = 1

// Tracker creates and closes study sessions.
type Tracker struct {
	items    *store.ItemRepo
	sessions *store.SessionRepo
	profiles *store.ProfileRepo
	engine   *achievements.Engine

	// now is swappable for tests.
	now func() time.Time
}

// NewTracker wires a Tracker to the three stores it updates.
func NewTracker(s *store.Store) *Tracker {
	return &Tracker{
		items:    s.Items(),
		sessions: s.Sessions(),
		profiles: s.Profiles(),
		engine:   achievements.NewEngine(s.Profiles()),
		now:      time.Now,
	}
}

// Active is an in-progress session. It lives in memory only; nothing is
// persisted until End.
type Active struct {
	ID        string
	Owner     string
	StartedAt time.Time

	itemsStudied       int
	exercisesCompleted int
	topics             map[string]bool
	skills             map[string]bool
}

// Start opens a new session for the owner.
func (t *Tracker) Start(owner string) *Active {
	return &Active{
		ID:        uuid.NewString(),
		Owner:     owner,
		StartedAt: t.now().UTC(),
		topics:    make(map[string]bool),
		skills:    make(map[string]bool),
	}
}

// RecordItem counts one vocabulary item studied.
func (a *Active) RecordItem() { a.itemsStudied++ }

// RecordExercise counts one completed exercise.
func (a *Active) RecordExercise() { a.exercisesCompleted++ }

// RecordTopic notes a topic touched this session. Repeats are free.
func (a *Active) RecordTopic(topic string) {
	if topic != "" {
		a.topics[topic] = true
	}
}

// RecordSkill notes a skill practiced this session. Only names from
// store.SkillNames count toward profile bumps.
func (a *Active) RecordSkill(name string) {
	if name != "" {
		a.skills[name] = true
	}
}

// Summary is what End hands back for display.
type Summary struct {
	Session       store.StudySession
	CurrentStreak int
	LongestStreak int
	NewlyUnlocked []achievements.Achievement
}

// End closes the session: it logs the StudySession, folds the study day
// into the profile's streak, adds minutes and skill bumps, and runs the
// achievement evaluation against the updated totals. Sessions shorter
// than a minute still count as one minute so streaks and totals move.
func (t *Tracker) End(ctx context.Context, a *Active) (*Summary, error) {
	endedAt := t.now().UTC()
	minutes := int(endedAt.Sub(a.StartedAt).Minutes())
	if minutes < 1 {
		minutes = 1
	}

	sess := store.StudySession{
		ID:                 a.ID,
		Owner:              a.Owner,
		StartedAt:          a.StartedAt,
		EndedAt:            endedAt,
		ItemsStudied:       a.itemsStudied,
		ExercisesCompleted: a.exercisesCompleted,
		TopicsReviewed:     len(a.topics),
		Minutes:            minutes,
		Skills:             sortedKeys(a.skills),
	}
	if err := t.sessions.Log(ctx, sess); err != nil {
		return nil, fmt.Errorf("end session: %w", err)
	}

	profile, err := t.profiles.Get(ctx, a.Owner)
	if err != nil {
		return nil, fmt.Errorf("end session: %w", err)
	}
	analytics.ApplyStudyDay(profile, endedAt.Format("2006-01-02"))
	profile.TotalMinutes += minutes
	for skill := range a.skills {
		profile.Skills.Bump(skill, skillBump)
	}
	if err := t.profiles.Save(ctx, profile); err != nil {
		return nil, fmt.Errorf("end session: %w", err)
	}

	agg, err := t.aggregate(ctx, a.Owner, profile)
	if err != nil {
		return nil, fmt.Errorf("end session: %w", err)
	}
	unlocked, err := t.engine.Evaluate(ctx, a.Owner, agg, endedAt)
	if err != nil {
		return nil, fmt.Errorf("end session: %w", err)
	}

	return &Summary{
		Session:       sess,
		CurrentStreak: profile.CurrentStreak,
		LongestStreak: profile.LongestStreak,
		NewlyUnlocked: unlocked,
	}, nil
}

// aggregate assembles the achievement snapshot from the freshly updated
// profile plus store counts.
func (t *Tracker) aggregate(ctx context.Context, owner string, p *store.Profile) (achievements.Aggregate, error) {
	mastered, err := t.items.MasteredCount(ctx, owner)
	if err != nil {
		return achievements.Aggregate{}, err
	}
	sessionCount, err := t.sessions.Count(ctx, owner)
	if err != nil {
		return achievements.Aggregate{}, err
	}
	topics, err := t.sessions.TotalTopics(ctx, owner)
	if err != nil {
		return achievements.Aggregate{}, err
	}
	return achievements.Aggregate{
		MasteredCount: mastered,
		CurrentStreak: p.CurrentStreak,
		LongestStreak: p.LongestStreak,
		SessionCount:  sessionCount,
		TopicsCount:   topics,
		TotalMinutes:  p.TotalMinutes,
	}, nil
}

// sortedKeys returns map keys in store.SkillNames order, with unknown
// names appended as-is for the log.
func sortedKeys(set map[string]bool) []string {
	if len(set) == 0 {
		return nil
	}
	out := make([]string, 0, len(set))
	seen := make(map[string]bool, len(set))
	for _, name := range store.SkillNames {
		if set[name] {
			out = append(out, name)
			seen[name] = true
		}
	}
	for name := range set {
		if !seen[name] {
			out = append(out, name)
		}
	}
	return out
}
