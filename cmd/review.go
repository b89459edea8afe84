package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/wortlab/wortschatz/internal/review"
	"github.com/wortlab/wortschatz/internal/store"
)

var reviewCmd = &cobra.Command{
	Use:   "review [term]",
	Short: "Record a review outcome, or list due words",
	Long: "With a term, records one review outcome and reschedules the word\n" +
		"(interval doubles on success, halves on failure). Without arguments,\n" +
		"lists everything currently due.",
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		ctx := cmd.Context()
		scope := learnerScope(cmd)
		now := time.Now()

		if len(args) == 0 {
			return listDue(cmd, s, now)
		}

		term := args[0]
		if unmaster, _ := cmd.Flags().GetBool("unmaster"); unmaster {
			if err := s.Items().Unmaster(ctx, term, scope); err != nil {
				return err
			}
			fmt.Printf("%q moved back to learning\n", term)
			return nil
		}

		wrong, _ := cmd.Flags().GetBool("wrong")
		it, err := s.Items().MarkReviewed(ctx, term, scope, !wrong, now, review.DefaultConfig())
		if err != nil {
			return err
		}

		state := "learning"
		if it.Mastered {
			state = "mastered"
		}
		fmt.Printf("%q: %s, next review in %d day(s)\n", it.Key, state, it.IntervalDays)
		return nil
	},
}

func listDue(cmd *cobra.Command, s *store.Store, now time.Time) error {
	all, err := s.Items().GetAll(cmd.Context(), learnerScope(cmd))
	if err != nil {
		return err
	}

	due := 0
	for _, it := range all {
		if !review.IsDue(&it, now) {
			continue
		}
		due++
		if overdue := int(review.OverdueDays(&it, now)); overdue > 0 {
			fmt.Printf("%-24s %s (overdue %d day(s))\n", it.Key, it.Translation, overdue)
		} else {
			fmt.Printf("%-24s %s\n", it.Key, it.Translation)
		}
	}
	if due == 0 {
		fmt.Println("nothing due right now")
	}
	return nil
}

func init() {
	reviewCmd.Flags().Bool("wrong", false, "Record the review as incorrect")
	reviewCmd.Flags().Bool("unmaster", false, "Explicitly demote a mastered word back to learning")
}
