package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
)

// SkillNames lists the six tracked skills in stable display order. Tie
// breaking in strongest/weakest extraction relies on this order.
var SkillNames = []string{
	"vocabulary", "grammar", "listening", "reading", "writing", "speaking",
}

// SkillLevels holds the per-skill levels (0-100).
type SkillLevels struct {
	Vocabulary int `db:"skill_vocabulary"`
	Grammar    int `db:"skill_grammar"`
	Listening  int `db:"skill_listening"`
	Reading    int `db:"skill_reading"`
	Writing    int `db:"skill_writing"`
	Speaking   int `db:"skill_speaking"`
}

// Get returns the level for a named skill, 0 for unknown names.
func (s *SkillLevels) Get(name string) int {
	switch name {
	case "vocabulary":
		return s.Vocabulary
	case "grammar":
		return s.Grammar
	case "listening":
		return s.Listening
	case "reading":
		return s.Reading
	case "writing":
		return s.Writing
	case "speaking":
		return s.Speaking
	}
	return 0
}

// Bump raises a named skill by delta, clamped to [0, 100].
func (s *SkillLevels) Bump(name string, delta int) {
	set := func(v int) int {
		v += delta
		if v < 0 {
			return 0
		}
		if v > 100 {
			return 100
		}
		return v
	}
	switch name {
	case "vocabulary":
		s.Vocabulary = set(s.Vocabulary)
	case "grammar":
		s.Grammar = set(s.Grammar)
	case "listening":
		s.Listening = set(s.Listening)
	case "reading":
		s.Reading = set(s.Reading)
	case "writing":
		s.Writing = set(s.Writing)
	case "speaking":
		s.Speaking = set(s.Speaking)
	}
}

// Profile is the per-learner aggregate mutated only by the analytics and
// achievement layers in response to completed sessions.
type Profile struct {
	Owner         string `db:"owner"`
	CurrentStreak int    `db:"current_streak"`
	LongestStreak int    `db:"longest_streak"`
	LastStudyDay  string `db:"last_study_day"` // YYYY-MM-DD, empty if never
	TotalMinutes  int    `db:"total_minutes"`
	Skills        SkillLevels
}

// ProfileRepo reads and writes learner profiles and achievement unlocks.
type ProfileRepo struct {
	db *sqlx.DB
}

// Get loads the profile for an owner, returning a zero-valued profile when
// none has been saved yet.
func (r *ProfileRepo) Get(ctx context.Context, owner string) (*Profile, error) {
	var row profileRow
	err := r.db.GetContext(ctx, &row,
		`SELECT * FROM profiles WHERE owner = ?`, owner)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return &Profile{Owner: owner}, nil
		}
		return nil, fmt.Errorf("get profile: %w", err)
	}
	p := row.toProfile()
	return &p, nil
}

// Save upserts the profile.
func (r *ProfileRepo) Save(ctx context.Context, p *Profile) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO profiles
			(owner, current_streak, longest_streak, last_study_day, total_minutes,
			 skill_vocabulary, skill_grammar, skill_listening, skill_reading, skill_writing, skill_speaking)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (owner) DO UPDATE SET
			current_streak = excluded.current_streak,
			longest_streak = excluded.longest_streak,
			last_study_day = excluded.last_study_day,
			total_minutes = excluded.total_minutes,
			skill_vocabulary = excluded.skill_vocabulary,
			skill_grammar = excluded.skill_grammar,
			skill_listening = excluded.skill_listening,
			skill_reading = excluded.skill_reading,
			skill_writing = excluded.skill_writing,
			skill_speaking = excluded.skill_speaking`,
		p.Owner, p.CurrentStreak, p.LongestStreak, p.LastStudyDay, p.TotalMinutes,
		p.Skills.Vocabulary, p.Skills.Grammar, p.Skills.Listening,
		p.Skills.Reading, p.Skills.Writing, p.Skills.Speaking,
	)
	if err != nil {
		return fmt.Errorf("save profile: %w", err)
	}
	return nil
}

// Unlocked returns the owner's unlocked achievement ids with their unlock
// timestamps.
func (r *ProfileRepo) Unlocked(ctx context.Context, owner string) (map[string]time.Time, error) {
	var rows []struct {
		ID         string `db:"achievement_id"`
		UnlockedAt string `db:"unlocked_at"`
	}
	err := r.db.SelectContext(ctx, &rows,
		`SELECT achievement_id, unlocked_at FROM achievements WHERE owner = ?`, owner)
	if err != nil {
		return nil, fmt.Errorf("query unlocked achievements: %w", err)
	}
	unlocked := make(map[string]time.Time, len(rows))
	for _, row := range rows {
		unlocked[row.ID] = parseTime(row.UnlockedAt)
	}
	return unlocked, nil
}

// Unlock records an achievement unlock. It is idempotent: the first call
// inserts and returns true, later calls return false. Unlocks are never
// deleted, which keeps the unlocked set monotonic.
func (r *ProfileRepo) Unlock(ctx context.Context, owner, id string, at time.Time) (bool, error) {
	res, err := r.db.ExecContext(ctx, `
		INSERT OR IGNORE INTO achievements (owner, achievement_id, unlocked_at)
		VALUES (?, ?, ?)`,
		owner, id, at.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return false, fmt.Errorf("unlock achievement %s: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected: %w", err)
	}
	return n > 0, nil
}

type profileRow struct {
	Owner         string `db:"owner"`
	CurrentStreak int    `db:"current_streak"`
	LongestStreak int    `db:"longest_streak"`
	LastStudyDay  string `db:"last_study_day"`
	TotalMinutes  int    `db:"total_minutes"`
	SkillLevels
}

func (row profileRow) toProfile() Profile {
	return Profile{
		Owner:         row.Owner,
		CurrentStreak: row.CurrentStreak,
		LongestStreak: row.LongestStreak,
		LastStudyDay:  row.LastStudyDay,
		TotalMinutes:  row.TotalMinutes,
		Skills:        row.SkillLevels,
	}
}
