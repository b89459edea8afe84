package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/wortlab/wortschatz/internal/review"
	"github.com/wortlab/wortschatz/internal/vocab"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func mustAdd(t *testing.T, repo *ItemRepo, key, translation, scope string) {
	t.Helper()
	ok, err := repo.Add(context.Background(), vocab.Item{Key: key, Translation: translation}, vocab.OriginSeed, scope)
	if err != nil {
		t.Fatalf("add %q: %v", key, err)
	}
	if !ok {
		t.Fatalf("add %q: unexpectedly rejected", key)
	}
}

func TestAddAssignsDefaults(t *testing.T) {
	s := openTestStore(t)
	repo := s.Items()
	ctx := context.Background()

	mustAdd(t, repo, "Wohnung", "apartment", "")

	it, err := repo.Get(ctx, "Wohnung", "")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if it.Mastered {
		t.Error("new item must not be mastered")
	}
	if it.TimesReviewed != 0 {
		t.Errorf("TimesReviewed = %d, want 0", it.TimesReviewed)
	}
	if it.IntervalDays != 1 {
		t.Errorf("IntervalDays = %d, want 1", it.IntervalDays)
	}
	if it.Level != vocab.InferLevel("Wohnung") {
		t.Errorf("Level = %v, want inferred %v", it.Level, vocab.InferLevel("Wohnung"))
	}
	if it.CreatedAt.IsZero() {
		t.Error("CreatedAt not set")
	}
}

func TestAddRejectsDuplicate(t *testing.T) {
	s := openTestStore(t)
	repo := s.Items()
	ctx := context.Background()

	mustAdd(t, repo, "Haus", "house", "")

	ok, err := repo.Add(ctx, vocab.Item{Key: "Haus", Translation: "other"}, vocab.OriginSeed, "")
	if err != nil {
		t.Fatalf("add duplicate: %v", err)
	}
	if ok {
		t.Error("duplicate insert must be rejected")
	}

	// Original content is untouched; duplicates are never overwritten.
	it, err := repo.Get(ctx, "Haus", "")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if it.Translation != "house" {
		t.Errorf("Translation = %q, want original", it.Translation)
	}
}

func TestAddGlobalShadowsScopedInsert(t *testing.T) {
	s := openTestStore(t)
	repo := s.Items()
	ctx := context.Background()

	// A global item blocks the same key in any learner scope.
	mustAdd(t, repo, "Brot", "bread", "")
	ok, err := repo.Add(ctx, vocab.Item{Key: "Brot", Translation: "bread"}, vocab.OriginSeed, "learner-1")
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if ok {
		t.Error("scoped insert must be rejected when a global item exists")
	}

	// Two different learner scopes can hold the same key.
	mustAdd(t, repo, "Apfel", "apple", "learner-1")
	ok, err = repo.Add(ctx, vocab.Item{Key: "Apfel", Translation: "apple"}, vocab.OriginSeed, "learner-2")
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if !ok {
		t.Error("same key in a different scope must be accepted")
	}
}

func TestScopeVisibility(t *testing.T) {
	s := openTestStore(t)
	repo := s.Items()
	ctx := context.Background()

	mustAdd(t, repo, "Wasser", "water", "")
	mustAdd(t, repo, "Katze", "cat", "learner-1")
	mustAdd(t, repo, "Hund", "dog", "learner-2")

	all, err := repo.GetAll(ctx, "learner-1")
	if err != nil {
		t.Fatalf("get all: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("learner-1 sees %d items, want 2 (global + own)", len(all))
	}

	if ok, _ := repo.Exists(ctx, "Hund", "learner-1"); ok {
		t.Error("learner-1 must not see learner-2's items")
	}
	if ok, _ := repo.Exists(ctx, "Wasser", "learner-1"); !ok {
		t.Error("learner-1 must see global items")
	}
}

func TestAddBatchSkipsDuplicates(t *testing.T) {
	s := openTestStore(t)
	repo := s.Items()
	ctx := context.Background()

	mustAdd(t, repo, "eins", "one", "")

	batch := []vocab.Item{
		{Key: "eins", Translation: "one"},
		{Key: "zwei", Translation: "two"},
		{Key: "drei", Translation: "three"},
		{Key: "zwei", Translation: "two again"},
	}
	inserted, err := repo.AddBatch(ctx, batch, vocab.OriginSeed, "")
	if err != nil {
		t.Fatalf("add batch: %v", err)
	}
	if inserted != 2 {
		t.Errorf("inserted = %d, want 2", inserted)
	}

	total, err := repo.TotalCount(ctx, "")
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if total != 3 {
		t.Errorf("total = %d, want 3", total)
	}
}

func TestAddBatchCancellationKeepsCommitted(t *testing.T) {
	s := openTestStore(t)
	repo := s.Items()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	batch := []vocab.Item{{Key: "vier", Translation: "four"}}
	inserted, err := repo.AddBatch(ctx, batch, vocab.OriginSeed, "")
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
	if inserted != 0 {
		t.Errorf("inserted = %d, want 0", inserted)
	}

	// Items committed before cancellation stay put.
	mustAdd(t, repo, "fünf", "five", "")
	ctx2, cancel2 := context.WithCancel(context.Background())
	defer cancel2()
	total, err := repo.TotalCount(ctx2, "")
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if total != 1 {
		t.Errorf("total = %d, want 1", total)
	}
}

func TestSearchCaseInsensitive(t *testing.T) {
	s := openTestStore(t)
	repo := s.Items()
	ctx := context.Background()

	mustAdd(t, repo, "Bibliothek", "library", "")
	mustAdd(t, repo, "Buch", "book", "")
	mustAdd(t, repo, "Zeitung", "newspaper", "")

	hits, err := repo.Search(ctx, "BIBLIO", "")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(hits) != 1 || hits[0].Key != "Bibliothek" {
		t.Errorf("search(BIBLIO) = %v, want [Bibliothek]", keysOf(hits))
	}

	// Matches on translation too.
	hits, err = repo.Search(ctx, "book", "")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(hits) != 1 || hits[0].Key != "Buch" {
		t.Errorf("search(book) = %v, want [Buch]", keysOf(hits))
	}
}

func TestMarkReviewedScenario(t *testing.T) {
	// Three correct reviews on one item: 1→2→4→8, mastered after the
	// first, masteredCount == 1.
	s := openTestStore(t)
	repo := s.Items()
	ctx := context.Background()
	cfg := review.DefaultConfig()

	for i := 0; i < 50; i++ {
		mustAdd(t, repo, "wort-"+string(rune('a'+i%26))+string(rune('a'+i/26)), "x", "")
	}

	now := time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC)
	var last *vocab.Item
	for i := 0; i < 3; i++ {
		var err error
		last, err = repo.MarkReviewed(ctx, "wort-aa", "", true, now.Add(time.Duration(i)*time.Hour), cfg)
		if err != nil {
			t.Fatalf("mark reviewed %d: %v", i, err)
		}
	}

	if last.TimesReviewed != 3 {
		t.Errorf("TimesReviewed = %d, want 3", last.TimesReviewed)
	}
	if last.IntervalDays != 8 {
		t.Errorf("IntervalDays = %d, want 8", last.IntervalDays)
	}
	if !last.Mastered {
		t.Error("expected mastered")
	}

	mastered, err := repo.MasteredCount(ctx, "")
	if err != nil {
		t.Fatalf("mastered count: %v", err)
	}
	if mastered != 1 {
		t.Errorf("MasteredCount = %d, want 1", mastered)
	}
	reviews, err := repo.TotalReviews(ctx, "")
	if err != nil {
		t.Fatalf("total reviews: %v", err)
	}
	if reviews != 3 {
		t.Errorf("TotalReviews = %d, want 3", reviews)
	}
}

func TestMarkReviewedNotFound(t *testing.T) {
	s := openTestStore(t)
	repo := s.Items()

	_, err := repo.MarkReviewed(context.Background(), "fehlt", "", true, time.Now(), review.DefaultConfig())
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestMarkReviewedPersists(t *testing.T) {
	s := openTestStore(t)
	repo := s.Items()
	ctx := context.Background()
	now := time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC)

	mustAdd(t, repo, "lernen", "to learn", "")
	if _, err := repo.MarkReviewed(ctx, "lernen", "", true, now, review.DefaultConfig()); err != nil {
		t.Fatalf("mark reviewed: %v", err)
	}

	it, err := repo.Get(ctx, "lernen", "")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if it.LastReviewedAt == nil || !it.LastReviewedAt.Equal(now) {
		t.Errorf("LastReviewedAt = %v, want %v", it.LastReviewedAt, now)
	}
	wantNext := now.AddDate(0, 0, it.IntervalDays)
	if it.NextReviewAt == nil || !it.NextReviewAt.Equal(wantNext) {
		t.Errorf("NextReviewAt = %v, want %v", it.NextReviewAt, wantNext)
	}
	if it.MasteredAt == nil {
		t.Error("MasteredAt not persisted")
	}
}

func TestUnmasterKeepsMasteredAt(t *testing.T) {
	s := openTestStore(t)
	repo := s.Items()
	ctx := context.Background()

	mustAdd(t, repo, "Tisch", "table", "")
	if _, err := repo.MarkReviewed(ctx, "Tisch", "", true, time.Now(), review.DefaultConfig()); err != nil {
		t.Fatalf("mark reviewed: %v", err)
	}
	if err := repo.Unmaster(ctx, "Tisch", ""); err != nil {
		t.Fatalf("unmaster: %v", err)
	}

	it, err := repo.Get(ctx, "Tisch", "")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if it.Mastered {
		t.Error("expected unmastered")
	}
	if it.MasteredAt == nil {
		t.Error("MasteredAt must survive demotion")
	}
}

func TestUpdateContentLeavesReviewState(t *testing.T) {
	s := openTestStore(t)
	repo := s.Items()
	ctx := context.Background()

	mustAdd(t, repo, "Stuhl", "chair", "")
	if _, err := repo.MarkReviewed(ctx, "Stuhl", "", true, time.Now(), review.DefaultConfig()); err != nil {
		t.Fatalf("mark reviewed: %v", err)
	}

	if err := repo.UpdateContent(ctx, "Stuhl", "", "chair (furniture)", "Der Stuhl ist neu."); err != nil {
		t.Fatalf("update content: %v", err)
	}

	it, err := repo.Get(ctx, "Stuhl", "")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if it.Translation != "chair (furniture)" || it.Example != "Der Stuhl ist neu." {
		t.Errorf("content not updated: %+v", it)
	}
	if it.TimesReviewed != 1 || !it.Mastered {
		t.Error("review state must be untouched by content update")
	}

	if err := repo.UpdateContent(ctx, "fehlt", "", "x", ""); !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestMasteredSince(t *testing.T) {
	s := openTestStore(t)
	repo := s.Items()
	ctx := context.Background()
	cfg := review.DefaultConfig()

	mustAdd(t, repo, "alt", "old", "")
	mustAdd(t, repo, "neu", "new", "")

	longAgo := time.Now().AddDate(0, 0, -60)
	if _, err := repo.MarkReviewed(ctx, "alt", "", true, longAgo, cfg); err != nil {
		t.Fatalf("mark reviewed: %v", err)
	}
	if _, err := repo.MarkReviewed(ctx, "neu", "", true, time.Now(), cfg); err != nil {
		t.Fatalf("mark reviewed: %v", err)
	}

	n, err := repo.MasteredSince(ctx, "", time.Now().AddDate(0, 0, -30))
	if err != nil {
		t.Fatalf("mastered since: %v", err)
	}
	if n != 1 {
		t.Errorf("MasteredSince = %d, want 1", n)
	}
}

func keysOf(items []vocab.Item) []string {
	keys := make([]string, len(items))
	for i, it := range items {
		keys[i] = it.Key
	}
	return keys
}
