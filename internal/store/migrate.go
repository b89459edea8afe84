package store

import (
	"fmt"

	"github.com/jmoiron/sqlx"
)

// Timestamps are stored as RFC3339 TEXT throughout; day-granular fields
// (profiles.last_study_day) as YYYY-MM-DD.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS items (
		id               INTEGER PRIMARY KEY AUTOINCREMENT,
		key              TEXT NOT NULL COLLATE NOCASE,
		translation      TEXT NOT NULL,
		example          TEXT NOT NULL DEFAULT '',
		origin           TEXT NOT NULL,
		owner            TEXT NOT NULL DEFAULT '',
		level            INTEGER NOT NULL DEFAULT 0,
		mastered         INTEGER NOT NULL DEFAULT 0,
		mastered_at      TEXT,
		times_reviewed   INTEGER NOT NULL DEFAULT 0,
		last_reviewed_at TEXT,
		interval_days    INTEGER NOT NULL DEFAULT 1,
		next_review_at   TEXT,
		created_at       TEXT NOT NULL,
		UNIQUE (key, owner)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_items_owner ON items (owner)`,
	`CREATE INDEX IF NOT EXISTS idx_items_mastered ON items (owner, mastered)`,
	`CREATE TABLE IF NOT EXISTS sessions (
		id                  TEXT PRIMARY KEY,
		owner               TEXT NOT NULL DEFAULT '',
		started_at          TEXT NOT NULL,
		ended_at            TEXT NOT NULL,
		items_studied       INTEGER NOT NULL DEFAULT 0,
		exercises_completed INTEGER NOT NULL DEFAULT 0,
		topics_reviewed     INTEGER NOT NULL DEFAULT 0,
		minutes             INTEGER NOT NULL DEFAULT 0,
		skills              TEXT NOT NULL DEFAULT ''
	)`,
	`CREATE INDEX IF NOT EXISTS idx_sessions_owner_start ON sessions (owner, started_at)`,
	`CREATE TABLE IF NOT EXISTS profiles (
		owner            TEXT PRIMARY KEY,
		current_streak   INTEGER NOT NULL DEFAULT 0,
		longest_streak   INTEGER NOT NULL DEFAULT 0,
		last_study_day   TEXT NOT NULL DEFAULT '',
		total_minutes    INTEGER NOT NULL DEFAULT 0,
		skill_vocabulary INTEGER NOT NULL DEFAULT 0,
		skill_grammar    INTEGER NOT NULL DEFAULT 0,
		skill_listening  INTEGER NOT NULL DEFAULT 0,
		skill_reading    INTEGER NOT NULL DEFAULT 0,
		skill_writing    INTEGER NOT NULL DEFAULT 0,
		skill_speaking   INTEGER NOT NULL DEFAULT 0
	)`,
	`CREATE TABLE IF NOT EXISTS achievements (
		owner          TEXT NOT NULL,
		achievement_id TEXT NOT NULL,
		unlocked_at    TEXT NOT NULL,
		PRIMARY KEY (owner, achievement_id)
	)`,
}

func migrate(db *sqlx.DB) error {
	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("apply schema: %w", err)
		}
	}
	return nil
}
