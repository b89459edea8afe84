package vocab

import "time"

// Origin tags where a vocabulary item came from.
type Origin string

const (
	// OriginSeed marks items from the bundled starter corpus.
	OriginSeed Origin = "seed"
	// OriginGenerated marks items produced by the text-generation collaborator.
	OriginGenerated Origin = "generated"
	// OriginExtracted marks items the learner pulled out of reading material.
	OriginExtracted Origin = "extracted"
)

// Item is a single learnable vocabulary unit. The (Key, Owner) pair is the
// item's identity: Owner is empty for globally shared items and carries the
// learner's scope identifier for private ones.
type Item struct {
	ID          int64  `db:"id" json:"-"`
	Key         string `db:"key" json:"key"`
	Translation string `db:"translation" json:"translation"`
	Example     string `db:"example" json:"example,omitempty"`
	Origin      Origin `db:"origin" json:"origin"`
	Owner       string `db:"owner" json:"-"`
	Level       Level  `db:"level" json:"level"`

	Mastered   bool       `db:"mastered" json:"mastered"`
	MasteredAt *time.Time `db:"mastered_at" json:"masteredAt,omitempty"`

	TimesReviewed  int        `db:"times_reviewed" json:"timesReviewed"`
	LastReviewedAt *time.Time `db:"last_reviewed_at" json:"lastReviewedAt,omitempty"`
	IntervalDays   int        `db:"interval_days" json:"intervalDays"`
	NextReviewAt   *time.Time `db:"next_review_at" json:"nextReviewAt,omitempty"`

	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}
