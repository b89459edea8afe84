package store

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
)

// StudySession is a closed interval of study activity. Sessions are logged
// once, at session end, and are immutable afterwards.
type StudySession struct {
	ID                 string
	Owner              string
	StartedAt          time.Time
	EndedAt            time.Time
	ItemsStudied       int
	ExercisesCompleted int
	TopicsReviewed     int
	Minutes            int
	Skills             []string
}

// SessionRepo handles the append-only study session log.
type SessionRepo struct {
	db *sqlx.DB
}

// Log appends a completed session. Logging the same session ID twice is an
// error: the log is append-only and entries are immutable.
func (r *SessionRepo) Log(ctx context.Context, s StudySession) error {
	if s.ID == "" {
		return fmt.Errorf("log session: empty id")
	}
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO sessions
			(id, owner, started_at, ended_at, items_studied, exercises_completed, topics_reviewed, minutes, skills)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		s.ID, s.Owner,
		s.StartedAt.UTC().Format(time.RFC3339), s.EndedAt.UTC().Format(time.RFC3339),
		s.ItemsStudied, s.ExercisesCompleted, s.TopicsReviewed, s.Minutes,
		strings.Join(s.Skills, ","),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: session %s", ErrDuplicateKey, s.ID)
		}
		return fmt.Errorf("log session %s: %w", s.ID, err)
	}
	return nil
}

// InRange returns the owner's sessions whose start falls in [from, to),
// ordered by start time.
func (r *SessionRepo) InRange(ctx context.Context, owner string, from, to time.Time) ([]StudySession, error) {
	var rows []sessionRow
	err := r.db.SelectContext(ctx, &rows, `
		SELECT * FROM sessions
		WHERE owner = ? AND started_at >= ? AND started_at < ?
		ORDER BY started_at`,
		owner, from.UTC().Format(time.RFC3339), to.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return nil, fmt.Errorf("query sessions: %w", err)
	}
	sessions := make([]StudySession, len(rows))
	for i, row := range rows {
		sessions[i] = row.toSession()
	}
	return sessions, nil
}

// DistinctDays counts the distinct calendar days with at least one session
// starting in [from, to). RFC3339 text sorts lexicographically, so the
// first ten characters are the UTC date.
func (r *SessionRepo) DistinctDays(ctx context.Context, owner string, from, to time.Time) (int, error) {
	var n int
	err := r.db.GetContext(ctx, &n, `
		SELECT COUNT(DISTINCT substr(started_at, 1, 10)) FROM sessions
		WHERE owner = ? AND started_at >= ? AND started_at < ?`,
		owner, from.UTC().Format(time.RFC3339), to.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return 0, fmt.Errorf("count distinct days: %w", err)
	}
	return n, nil
}

// Count returns the total number of sessions logged for the owner.
func (r *SessionRepo) Count(ctx context.Context, owner string) (int, error) {
	var n int
	err := r.db.GetContext(ctx, &n,
		`SELECT COUNT(*) FROM sessions WHERE owner = ?`, owner)
	if err != nil {
		return 0, fmt.Errorf("count sessions: %w", err)
	}
	return n, nil
}

// TotalMinutes returns the sum of study minutes across all sessions.
func (r *SessionRepo) TotalMinutes(ctx context.Context, owner string) (int, error) {
	var n int
	err := r.db.GetContext(ctx, &n,
		`SELECT COALESCE(SUM(minutes), 0) FROM sessions WHERE owner = ?`, owner)
	if err != nil {
		return 0, fmt.Errorf("sum session minutes: %w", err)
	}
	return n, nil
}

// TotalTopics returns the sum of topics reviewed across all sessions.
func (r *SessionRepo) TotalTopics(ctx context.Context, owner string) (int, error) {
	var n int
	err := r.db.GetContext(ctx, &n,
		`SELECT COALESCE(SUM(topics_reviewed), 0) FROM sessions WHERE owner = ?`, owner)
	if err != nil {
		return 0, fmt.Errorf("sum session topics: %w", err)
	}
	return n, nil
}

type sessionRow struct {
	ID                 string `db:"id"`
	Owner              string `db:"owner"`
	StartedAt          string `db:"started_at"`
	EndedAt            string `db:"ended_at"`
	ItemsStudied       int    `db:"items_studied"`
	ExercisesCompleted int    `db:"exercises_completed"`
	TopicsReviewed     int    `db:"topics_reviewed"`
	Minutes            int    `db:"minutes"`
	Skills             string `db:"skills"`
}

func (row sessionRow) toSession() StudySession {
	var skills []string
	if row.Skills != "" {
		skills = strings.Split(row.Skills, ",")
	}
	return StudySession{
		ID:                 row.ID,
		Owner:              row.Owner,
		StartedAt:          parseTime(row.StartedAt),
		EndedAt:            parseTime(row.EndedAt),
		ItemsStudied:       row.ItemsStudied,
		ExercisesCompleted: row.ExercisesCompleted,
		TopicsReviewed:     row.TopicsReviewed,
		Minutes:            row.Minutes,
		Skills:             skills,
	}
}
