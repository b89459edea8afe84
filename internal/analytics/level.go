package analytics

import "github.com/wortlab/wortschatz/internal/vocab"

// levelThresholds maps mastered-word counts onto CEFR tiers: the entry at
// index i is the count required to leave tier i.
var levelThresholds = []int{50, 150, 300, 500, 750}

// TargetMasteredCount is the mastered-word count treated as functional
// fluency for projection purposes (the C2 threshold).
const TargetMasteredCount = 750

// LevelEstimate places a mastered count on the six-tier CEFR scale.
type LevelEstimate struct {
	Level vocab.Level
	// NextLevelProgress is the percent of the way from the current
	// tier's lower threshold to the next, clamped to [0, 100]. 100 at
	// the top tier.
	NextLevelProgress int
}

// EstimateLevel buckets masteredCount through the fixed thresholds.
func EstimateLevel(masteredCount int) LevelEstimate {
	lower := 0
	for i, upper := range levelThresholds {
		if masteredCount < upper {
			span := upper - lower
			progress := (masteredCount - lower) * 100 / span
			if progress < 0 {
				progress = 0
			}
			if progress > 100 {
				progress = 100
			}
			return LevelEstimate{Level: vocab.Level(i), NextLevelProgress: progress}
		}
		lower = upper
	}
	return LevelEstimate{Level: vocab.LevelC2, NextLevelProgress: 100}
}
