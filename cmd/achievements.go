package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wortlab/wortschatz/internal/achievements"
)

var achievementsCmd = &cobra.Command{
	Use:   "achievements",
	Short: "Show earned badges and progress toward the rest",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		ctx := cmd.Context()
		scope := learnerScope(cmd)

		mastered, err := s.Items().MasteredCount(ctx, scope)
		if err != nil {
			return err
		}
		sessionCount, err := s.Sessions().Count(ctx, scope)
		if err != nil {
			return err
		}
		topics, err := s.Sessions().TotalTopics(ctx, scope)
		if err != nil {
			return err
		}
		profile, err := s.Profiles().Get(ctx, scope)
		if err != nil {
			return err
		}

		agg := achievements.Aggregate{
			MasteredCount: mastered,
			CurrentStreak: profile.CurrentStreak,
			LongestStreak: profile.LongestStreak,
			SessionCount:  sessionCount,
			TopicsCount:   topics,
			TotalMinutes:  profile.TotalMinutes,
		}

		report, err := achievements.NewEngine(s.Profiles()).Report(ctx, scope, agg)
		if err != nil {
			return err
		}

		for _, st := range report {
			if st.Unlocked {
				fmt.Printf("[x] %-20s %s (unlocked %s)\n",
					st.Title, st.Description, st.UnlockedAt.Format("2006-01-02"))
			} else {
				fmt.Printf("[ ] %-20s %s (%d/%d)\n",
					st.Title, st.Description, st.Current, st.Target)
			}
		}
		return nil
	},
}
