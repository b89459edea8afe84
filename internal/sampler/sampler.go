// Package sampler selects a bounded working set of vocabulary items for a
// study session, mixing a small share of already-mastered material into a
// majority of new and unmastered items.
package sampler

import (
	"math"
	"math/rand/v2"
	"time"

	"github.com/wortlab/wortschatz/internal/vocab"
)

// Sampler draws session working sets. The random source is injectable so
// tests can fix the permutation.
type Sampler struct {
	rnd *rand.Rand
}

// New creates a Sampler over the given source.
func New(src rand.Source) *Sampler {
	return &Sampler{rnd: rand.New(src)}
}

// NewSeeded creates a time-seeded Sampler for production use.
func NewSeeded() *Sampler {
	now := uint64(time.Now().UnixNano())
	return New(rand.NewPCG(now, now>>32))
}

// Sample returns at most n items drawn without replacement.
//
// The visible set is split into mastered and unmastered partitions;
// floor(n*masteredFraction) slots go to mastered items and the rest to
// unmastered ones. Each partition is shuffled uniformly (no weighting by
// recency or difficulty), truncated to its quota, and the
// concatenation is shuffled again so mastered items don't cluster at the
// end. A partition smaller than its quota contributes everything it has,
// so the result may be shorter than n. An empty input yields an empty,
// non-nil slice.
func (s *Sampler) Sample(items []vocab.Item, n int, masteredFraction float64) []vocab.Item {
	if n <= 0 || len(items) == 0 {
		return []vocab.Item{}
	}
	if masteredFraction < 0 {
		masteredFraction = 0
	}
	if masteredFraction > 1 {
		masteredFraction = 1
	}

	var mastered, unmastered []vocab.Item
	for _, it := range items {
		if it.Mastered {
			mastered = append(mastered, it)
		} else {
			unmastered = append(unmastered, it)
		}
	}

	masteredTake := int(math.Floor(float64(n) * masteredFraction))
	unmasteredTake := n - masteredTake

	picked := append(
		s.takeRandom(mastered, masteredTake),
		s.takeRandom(unmastered, unmasteredTake)...,
	)

	s.rnd.Shuffle(len(picked), func(i, j int) {
		picked[i], picked[j] = picked[j], picked[i]
	})
	return picked
}

// takeRandom shuffles a copy of part and returns its first take elements.
func (s *Sampler) takeRandom(part []vocab.Item, take int) []vocab.Item {
	if take <= 0 || len(part) == 0 {
		return []vocab.Item{}
	}
	shuffled := make([]vocab.Item, len(part))
	copy(shuffled, part)
	s.rnd.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})
	if take > len(shuffled) {
		take = len(shuffled)
	}
	return shuffled[:take]
}
