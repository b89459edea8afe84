package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/wortlab/wortschatz/internal/analytics"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show learning statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		ctx := cmd.Context()
		scope := learnerScope(cmd)
		now := time.Now()
		svc := analytics.NewService(s.Items(), s.Sessions())

		total, err := s.Items().TotalCount(ctx, scope)
		if err != nil {
			return err
		}
		mastered, err := s.Items().MasteredCount(ctx, scope)
		if err != nil {
			return err
		}
		retention, err := svc.RetentionRate(ctx, scope)
		if err != nil {
			return err
		}
		velocity, err := svc.LearningVelocity(ctx, scope, now)
		if err != nil {
			return err
		}
		level, err := svc.CurrentLevel(ctx, scope)
		if err != nil {
			return err
		}
		projected, err := svc.ProjectedFluencyDate(ctx, scope, now)
		if err != nil {
			return err
		}
		weekStart := now.AddDate(0, 0, -7)
		week, err := svc.WeeklyStats(ctx, scope, weekStart)
		if err != nil {
			return err
		}
		profile, err := s.Profiles().Get(ctx, scope)
		if err != nil {
			return err
		}

		fmt.Printf("vocabulary: %d words, %d mastered\n", total, mastered)
		fmt.Printf("level: %s (%d%% to next)\n", level.Level, level.NextLevelProgress)
		fmt.Printf("retention: %d%%   velocity: %.1f words/week\n", retention, velocity)
		if projected != nil {
			fmt.Printf("projected fluency: %s\n", projected.Format("2006-01-02"))
		} else {
			fmt.Println("projected fluency: unknown (no recent progress)")
		}
		fmt.Printf("streak: %d day(s), longest %d\n", profile.CurrentStreak, profile.LongestStreak)
		fmt.Printf("last 7 days: %d session(s) on %d day(s), %d min total, %d min/active day\n",
			week.Sessions, week.DaysActive, week.TotalMinutes, week.AverageDailyMinutes)

		strongest, weakest := analytics.RankSkills(profile.Skills)
		fmt.Printf("strongest skills: %s (%d), %s (%d)\n",
			strongest[0].Name, strongest[0].Level, strongest[1].Name, strongest[1].Level)
		fmt.Printf("weakest skills:   %s (%d), %s (%d)\n",
			weakest[0].Name, weakest[0].Level, weakest[1].Name, weakest[1].Level)
		return nil
	},
}
