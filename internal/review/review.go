package review

import (
	"time"

	"github.com/wortlab/wortschatz/internal/vocab"
)

// Stage describes where an item sits in the mastery lifecycle.
type Stage string

const (
	StageNew      Stage = "new"      // never reviewed
	StageLearning Stage = "learning" // reviewed at least once, not mastered
	StageMastered Stage = "mastered"
)

// StageOf derives the lifecycle stage from item state.
func StageOf(it *vocab.Item) Stage {
	switch {
	case it.Mastered:
		return StageMastered
	case it.TimesReviewed > 0:
		return StageLearning
	default:
		return StageNew
	}
}

// Apply records one review outcome on an item.
//
// A correct review marks the item mastered (MasteredAt is written only on
// the first such transition) and grows the interval; an incorrect review
// shrinks the interval and leaves mastery untouched. Mastery is never
// revoked here; demotion happens only through an explicit Unmaster.
// Interval bounds are re-clamped on every call, so repeated application
// can never push an item outside [min, max].
func Apply(it *vocab.Item, correct bool, now time.Time, cfg Config) {
	it.TimesReviewed++
	it.LastReviewedAt = &now

	if correct {
		if !it.Mastered {
			it.Mastered = true
			if it.MasteredAt == nil {
				at := now
				it.MasteredAt = &at
			}
		}
		it.IntervalDays = cfg.clampInterval(it.IntervalDays * cfg.GrowthFactor)
	} else {
		it.IntervalDays = cfg.clampInterval(it.IntervalDays / cfg.GrowthFactor)
	}

	next := now.AddDate(0, 0, it.IntervalDays)
	it.NextReviewAt = &next
}

// Unmaster explicitly demotes a mastered item back to learning.
// MasteredAt is preserved: demotion does not erase history.
func Unmaster(it *vocab.Item) {
	it.Mastered = false
}

// IsDue reports whether the item should be shown for review. Items that
// have never been reviewed are always due.
func IsDue(it *vocab.Item, now time.Time) bool {
	if it.NextReviewAt == nil {
		return true
	}
	return !now.Before(*it.NextReviewAt)
}

// OverdueDays returns how far past due the item is, or 0 when not yet due.
func OverdueDays(it *vocab.Item, now time.Time) float64 {
	if it.NextReviewAt == nil || now.Before(*it.NextReviewAt) {
		return 0
	}
	return now.Sub(*it.NextReviewAt).Hours() / 24.0
}
