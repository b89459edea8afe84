// Package achievements awards one-time badges for learning milestones.
// The catalog is static; unlock state lives in the profile store and only
// ever grows.
package achievements

// Aggregate is the snapshot of learner progress achievements are judged
// against. Callers assemble it once per evaluation from the stores.
type Aggregate struct {
	MasteredCount int
	CurrentStreak int
	LongestStreak int
	SessionCount  int
	TopicsCount   int
	TotalMinutes  int
}

// Achievement is one catalog entry. Progress maps an Aggregate onto the
// counter the Target is measured in.
type Achievement struct {
	ID          string
	Title       string
	Description string
	Target      int
	Progress    func(Aggregate) int
}

// Achieved reports whether the aggregate meets this entry's target.
func (a Achievement) Achieved(agg Aggregate) bool {
	return a.Progress(agg) >= a.Target
}

func masteredProgress(agg Aggregate) int { return agg.MasteredCount }
func streakProgress(agg Aggregate) int   { return agg.LongestStreak }
func sessionProgress(agg Aggregate) int  { return agg.SessionCount }
func topicsProgress(agg Aggregate) int   { return agg.TopicsCount }
func minutesProgress(agg Aggregate) int  { return agg.TotalMinutes }

// Catalog returns the full achievement list in display order. The slice is
// rebuilt per call so callers can't mutate shared state.
func Catalog() []Achievement {
	return []Achievement{
		{
			ID:          "first-word",
			Title:       "Erstes Wort",
			Description: "Master your first word",
			Target:      1,
			Progress:    masteredProgress,
		},
		{
			ID:          "mastered-50",
			Title:       "Anfänger",
			Description: "Master 50 words",
			Target:      50,
			Progress:    masteredProgress,
		},
		{
			ID:          "mastered-150",
			Title:       "Grundstein",
			Description: "Master 150 words",
			Target:      150,
			Progress:    masteredProgress,
		},
		{
			ID:          "mastered-300",
			Title:       "Wortschatzsammler",
			Description: "Master 300 words",
			Target:      300,
			Progress:    masteredProgress,
		},
		{
			ID:          "mastered-500",
			Title:       "Fortgeschritten",
			Description: "Master 500 words",
			Target:      500,
			Progress:    masteredProgress,
		},
		{
			ID:          "mastered-750",
			Title:       "Sprachmeister",
			Description: "Master 750 words",
			Target:      750,
			Progress:    masteredProgress,
		},
		{
			ID:          "streak-7",
			Title:       "Eine Woche",
			Description: "Study 7 days in a row",
			Target:      7,
			Progress:    streakProgress,
		},
		{
			ID:          "streak-30",
			Title:       "Ein Monat",
			Description: "Study 30 days in a row",
			Target:      30,
			Progress:    streakProgress,
		},
		{
			ID:          "sessions-10",
			Title:       "Stammgast",
			Description: "Complete 10 study sessions",
			Target:      10,
			Progress:    sessionProgress,
		},
		{
			ID:          "sessions-100",
			Title:       "Eiserner Wille",
			Description: "Complete 100 study sessions",
			Target:      100,
			Progress:    sessionProgress,
		},
		{
			ID:          "topics-10",
			Title:       "Themenforscher",
			Description: "Review 10 grammar topics",
			Target:      10,
			Progress:    topicsProgress,
		},
		{
			ID:          "hours-24",
			Title:       "Ein ganzer Tag",
			Description: "Study for 24 hours in total",
			Target:      24 * 60,
			Progress:    minutesProgress,
		},
	}
}
