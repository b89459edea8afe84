package achievements

import (
	"context"
	"fmt"
	"time"
)

// UnlockStore persists which achievements an owner has earned. Satisfied
// by store.ProfileRepo.
type UnlockStore interface {
	Unlocked(ctx context.Context, owner string) (map[string]time.Time, error)
	Unlock(ctx context.Context, owner, achievementID string, at time.Time) (bool, error)
}

// Engine evaluates the catalog against progress snapshots and records
// unlocks.
type Engine struct {
	unlocks UnlockStore
	catalog []Achievement
}

// NewEngine creates an engine over the given unlock store.
func NewEngine(unlocks UnlockStore) *Engine {
	return &Engine{unlocks: unlocks, catalog: Catalog()}
}

// Evaluate checks every catalog entry against agg and returns the entries
// unlocked by this call, in catalog order. Already-unlocked entries are
// never returned again, even if the aggregate still meets their target;
// the persisted unlock row is the source of truth, so two concurrent
// evaluations award each badge at most once.
func (e *Engine) Evaluate(ctx context.Context, owner string, agg Aggregate, now time.Time) ([]Achievement, error) {
	unlocked, err := e.unlocks.Unlocked(ctx, owner)
	if err != nil {
		return nil, fmt.Errorf("evaluate achievements: %w", err)
	}

	var fresh []Achievement
	for _, a := range e.catalog {
		if _, done := unlocked[a.ID]; done || !a.Achieved(agg) {
			continue
		}
		first, err := e.unlocks.Unlock(ctx, owner, a.ID, now)
		if err != nil {
			return fresh, fmt.Errorf("unlock %s: %w", a.ID, err)
		}
		if first {
			fresh = append(fresh, a)
		}
	}
	return fresh, nil
}

// Status is one catalog entry plus the owner's standing on it.
type Status struct {
	Achievement
	Unlocked   bool
	UnlockedAt *time.Time
	// Current is the progress counter, clamped to Target once reached.
	Current int
}

// Report returns the standing of every catalog entry for display. Locked
// entries carry their live progress so the caller can render "37/50".
func (e *Engine) Report(ctx context.Context, owner string, agg Aggregate) ([]Status, error) {
	unlocked, err := e.unlocks.Unlocked(ctx, owner)
	if err != nil {
		return nil, fmt.Errorf("achievement report: %w", err)
	}

	out := make([]Status, 0, len(e.catalog))
	for _, a := range e.catalog {
		st := Status{Achievement: a, Current: a.Progress(agg)}
		if st.Current > a.Target {
			st.Current = a.Target
		}
		if at, ok := unlocked[a.ID]; ok {
			st.Unlocked = true
			t := at
			st.UnlockedAt = &t
			st.Current = a.Target
		}
		out = append(out, st)
	}
	return out, nil
}
