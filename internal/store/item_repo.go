package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/wortlab/wortschatz/internal/review"
	"github.com/wortlab/wortschatz/internal/vocab"
)

// ItemRepo handles database operations for vocabulary items.
//
// Every method takes an owner scope: the visible set for a scope is the
// union of global items (owner = '') and items owned by that scope. The
// empty scope sees only global items.
type ItemRepo struct {
	db *sqlx.DB
}

// visibleClause matches items visible to the given scope.
const visibleClause = `(owner = '' OR owner = ?)`

// Add inserts a new item. It returns false without error when an item with
// the same key already exists in the visible scope; a rejected insert is an
// expected outcome on batch paths, not a failure. Defaults are assigned
// here: unmastered, zero reviews, the minimum interval, and an inferred
// CEFR level when none was provided.
func (r *ItemRepo) Add(ctx context.Context, it vocab.Item, origin vocab.Origin, scope string) (bool, error) {
	it.Key = strings.TrimSpace(it.Key)
	if it.Key == "" {
		return false, fmt.Errorf("add item: empty key")
	}

	exists, err := r.Exists(ctx, it.Key, scope)
	if err != nil {
		return false, err
	}
	if exists {
		return false, nil
	}

	it.Origin = origin
	it.Owner = scope
	it.Mastered = false
	it.MasteredAt = nil
	it.TimesReviewed = 0
	it.LastReviewedAt = nil
	it.IntervalDays = 1
	it.NextReviewAt = nil
	if it.Level == 0 {
		it.Level = vocab.InferLevel(it.Key)
	}
	if it.CreatedAt.IsZero() {
		it.CreatedAt = time.Now().UTC()
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO items (key, translation, example, origin, owner, level, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		it.Key, it.Translation, it.Example, string(it.Origin), it.Owner,
		int(it.Level), it.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		// The UNIQUE (key, owner) constraint backstops the visibility
		// check against racing writers.
		if isUniqueViolation(err) {
			return false, nil
		}
		return false, fmt.Errorf("insert item %q: %w", it.Key, err)
	}
	return true, nil
}

// AddBatch applies Add per item. Duplicates are silently skipped; the
// returned count is the number actually inserted. A canceled context stops
// the batch but leaves already-inserted items intact.
func (r *ItemRepo) AddBatch(ctx context.Context, items []vocab.Item, origin vocab.Origin, scope string) (int, error) {
	inserted := 0
	for _, it := range items {
		if err := ctx.Err(); err != nil {
			return inserted, err
		}
		ok, err := r.Add(ctx, it, origin, scope)
		if err != nil {
			return inserted, err
		}
		if ok {
			inserted++
		}
	}
	return inserted, nil
}

// Restore inserts an item preserving its full review state. Backup import
// uses this instead of Add so mastery and intervals survive a round trip.
// Returns false without error when the key is already visible in scope.
func (r *ItemRepo) Restore(ctx context.Context, it vocab.Item, scope string) (bool, error) {
	it.Key = strings.TrimSpace(it.Key)
	if it.Key == "" {
		return false, fmt.Errorf("restore item: empty key")
	}

	exists, err := r.Exists(ctx, it.Key, scope)
	if err != nil {
		return false, err
	}
	if exists {
		return false, nil
	}

	if it.IntervalDays < 1 {
		it.IntervalDays = 1
	}
	if it.CreatedAt.IsZero() {
		it.CreatedAt = time.Now().UTC()
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO items (key, translation, example, origin, owner, level,
			mastered, mastered_at, times_reviewed, last_reviewed_at,
			interval_days, next_review_at, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		it.Key, it.Translation, it.Example, string(it.Origin), scope,
		int(it.Level), it.Mastered, fmtTimePtr(it.MasteredAt),
		it.TimesReviewed, fmtTimePtr(it.LastReviewedAt),
		it.IntervalDays, fmtTimePtr(it.NextReviewAt),
		it.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return false, nil
		}
		return false, fmt.Errorf("restore item %q: %w", it.Key, err)
	}
	return true, nil
}

// Exists reports whether a key is present in the visible scope.
func (r *ItemRepo) Exists(ctx context.Context, key, scope string) (bool, error) {
	var n int
	err := r.db.GetContext(ctx, &n,
		`SELECT COUNT(*) FROM items WHERE key = ? AND `+visibleClause,
		strings.TrimSpace(key), scope,
	)
	if err != nil {
		return false, fmt.Errorf("check existence of %q: %w", key, err)
	}
	return n > 0, nil
}

// Get returns the item for key in the visible scope, preferring a scoped
// item over a global one with the same key. Returns ErrNotFound if absent.
func (r *ItemRepo) Get(ctx context.Context, key, scope string) (*vocab.Item, error) {
	var row itemRow
	err := r.db.GetContext(ctx, &row, `
		SELECT * FROM items
		WHERE key = ? AND `+visibleClause+`
		ORDER BY (owner = ?) DESC LIMIT 1`,
		strings.TrimSpace(key), scope, scope,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: %q", ErrNotFound, key)
		}
		return nil, fmt.Errorf("get item %q: %w", key, err)
	}
	it := row.toItem()
	return &it, nil
}

// GetAll returns every item visible to the scope, ordered by key.
func (r *ItemRepo) GetAll(ctx context.Context, scope string) ([]vocab.Item, error) {
	var rows []itemRow
	err := r.db.SelectContext(ctx, &rows,
		`SELECT * FROM items WHERE `+visibleClause+` ORDER BY key`, scope,
	)
	if err != nil {
		return nil, fmt.Errorf("get all items: %w", err)
	}
	return rowsToItems(rows), nil
}

// Search returns visible items whose key or translation contains the query,
// case-insensitively. Folding happens in Go so that umlauts compare
// correctly; SQLite's LIKE only folds ASCII.
func (r *ItemRepo) Search(ctx context.Context, query, scope string) ([]vocab.Item, error) {
	all, err := r.GetAll(ctx, scope)
	if err != nil {
		return nil, err
	}
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return all, nil
	}
	var matched []vocab.Item
	for _, it := range all {
		if strings.Contains(strings.ToLower(it.Key), q) ||
			strings.Contains(strings.ToLower(it.Translation), q) {
			matched = append(matched, it)
		}
	}
	return matched, nil
}

// MarkReviewed records one review outcome for the item under key. The
// read-modify-write runs in a single transaction so the interval update is
// atomic with respect to other operations on the same item. Returns the
// updated item, or ErrNotFound if the key is absent in scope.
func (r *ItemRepo) MarkReviewed(ctx context.Context, key, scope string, correct bool, now time.Time, cfg review.Config) (*vocab.Item, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: begin: %v", ErrStorageUnavailable, err)
	}
	defer tx.Rollback()

	var row itemRow
	err = tx.GetContext(ctx, &row, `
		SELECT * FROM items
		WHERE key = ? AND `+visibleClause+`
		ORDER BY (owner = ?) DESC LIMIT 1`,
		strings.TrimSpace(key), scope, scope,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: %q", ErrNotFound, key)
		}
		return nil, fmt.Errorf("load item %q: %w", key, err)
	}

	it := row.toItem()
	review.Apply(&it, correct, now, cfg)

	_, err = tx.ExecContext(ctx, `
		UPDATE items SET
			mastered = ?, mastered_at = ?,
			times_reviewed = ?, last_reviewed_at = ?,
			interval_days = ?, next_review_at = ?
		WHERE id = ?`,
		it.Mastered, fmtTimePtr(it.MasteredAt),
		it.TimesReviewed, fmtTimePtr(it.LastReviewedAt),
		it.IntervalDays, fmtTimePtr(it.NextReviewAt),
		it.ID,
	)
	if err != nil {
		return nil, fmt.Errorf("update review state for %q: %w", key, err)
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("%w: commit: %v", ErrStorageUnavailable, err)
	}
	return &it, nil
}

// Unmaster explicitly demotes a mastered item back to learning. The
// mastered date is preserved. This is the only demotion path; failed
// reviews never demote implicitly.
func (r *ItemRepo) Unmaster(ctx context.Context, key, scope string) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE items SET mastered = 0
		WHERE id = (
			SELECT id FROM items WHERE key = ? AND `+visibleClause+`
			ORDER BY (owner = ?) DESC LIMIT 1
		)`,
		strings.TrimSpace(key), scope, scope,
	)
	if err != nil {
		return fmt.Errorf("unmaster %q: %w", key, err)
	}
	return requireAffected(res, key)
}

// UpdateContent replaces the translation and example without touching
// review state. Returns ErrNotFound if the key is absent in scope.
func (r *ItemRepo) UpdateContent(ctx context.Context, key, scope, translation, example string) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE items SET translation = ?, example = ?
		WHERE id = (
			SELECT id FROM items WHERE key = ? AND `+visibleClause+`
			ORDER BY (owner = ?) DESC LIMIT 1
		)`,
		translation, example, strings.TrimSpace(key), scope, scope,
	)
	if err != nil {
		return fmt.Errorf("update content for %q: %w", key, err)
	}
	return requireAffected(res, key)
}

// TotalCount returns the number of items visible to the scope.
func (r *ItemRepo) TotalCount(ctx context.Context, scope string) (int, error) {
	var n int
	err := r.db.GetContext(ctx, &n,
		`SELECT COUNT(*) FROM items WHERE `+visibleClause, scope)
	if err != nil {
		return 0, fmt.Errorf("count items: %w", err)
	}
	return n, nil
}

// MasteredCount returns the number of mastered items visible to the scope.
func (r *ItemRepo) MasteredCount(ctx context.Context, scope string) (int, error) {
	var n int
	err := r.db.GetContext(ctx, &n,
		`SELECT COUNT(*) FROM items WHERE mastered = 1 AND `+visibleClause, scope)
	if err != nil {
		return 0, fmt.Errorf("count mastered items: %w", err)
	}
	return n, nil
}

// TotalReviews returns the sum of review counts across the visible scope.
func (r *ItemRepo) TotalReviews(ctx context.Context, scope string) (int, error) {
	var n int
	err := r.db.GetContext(ctx, &n,
		`SELECT COALESCE(SUM(times_reviewed), 0) FROM items WHERE `+visibleClause, scope)
	if err != nil {
		return 0, fmt.Errorf("sum reviews: %w", err)
	}
	return n, nil
}

// MasteredSince counts items whose mastered date falls at or after the
// given instant. Feeds the learning-velocity window.
func (r *ItemRepo) MasteredSince(ctx context.Context, scope string, since time.Time) (int, error) {
	var n int
	err := r.db.GetContext(ctx, &n, `
		SELECT COUNT(*) FROM items
		WHERE mastered = 1 AND mastered_at >= ? AND `+visibleClause,
		since.UTC().Format(time.RFC3339), scope)
	if err != nil {
		return 0, fmt.Errorf("count recently mastered: %w", err)
	}
	return n, nil
}

// itemRow is the sqlx scan target; timestamps live as RFC3339 text.
type itemRow struct {
	ID             int64          `db:"id"`
	Key            string         `db:"key"`
	Translation    string         `db:"translation"`
	Example        string         `db:"example"`
	Origin         string         `db:"origin"`
	Owner          string         `db:"owner"`
	Level          int            `db:"level"`
	Mastered       bool           `db:"mastered"`
	MasteredAt     sql.NullString `db:"mastered_at"`
	TimesReviewed  int            `db:"times_reviewed"`
	LastReviewedAt sql.NullString `db:"last_reviewed_at"`
	IntervalDays   int            `db:"interval_days"`
	NextReviewAt   sql.NullString `db:"next_review_at"`
	CreatedAt      string         `db:"created_at"`
}

func (row itemRow) toItem() vocab.Item {
	return vocab.Item{
		ID:             row.ID,
		Key:            row.Key,
		Translation:    row.Translation,
		Example:        row.Example,
		Origin:         vocab.Origin(row.Origin),
		Owner:          row.Owner,
		Level:          vocab.Level(row.Level),
		Mastered:       row.Mastered,
		MasteredAt:     parseTimePtr(row.MasteredAt),
		TimesReviewed:  row.TimesReviewed,
		LastReviewedAt: parseTimePtr(row.LastReviewedAt),
		IntervalDays:   row.IntervalDays,
		NextReviewAt:   parseTimePtr(row.NextReviewAt),
		CreatedAt:      parseTime(row.CreatedAt),
	}
}

func rowsToItems(rows []itemRow) []vocab.Item {
	items := make([]vocab.Item, len(rows))
	for i, row := range rows {
		items[i] = row.toItem()
	}
	return items
}

func parseTime(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}
	}
	return t
}

func parseTimePtr(ns sql.NullString) *time.Time {
	if !ns.Valid || ns.String == "" {
		return nil
	}
	t, err := time.Parse(time.RFC3339, ns.String)
	if err != nil {
		return nil
	}
	return &t
}

func fmtTimePtr(t *time.Time) any {
	if t == nil {
		return nil
	}
	return t.UTC().Format(time.RFC3339)
}

func requireAffected(res sql.Result, key string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %q", ErrNotFound, key)
	}
	return nil
}

func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
