package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/wortlab/wortschatz/internal/review"
	"github.com/wortlab/wortschatz/internal/sampler"
	"github.com/wortlab/wortschatz/internal/session"
	"github.com/wortlab/wortschatz/internal/speech"
)

var practiceCmd = &cobra.Command{
	Use:   "practice",
	Short: "Run a practice session over a sampled working set",
	Long: "Draws a working set (mostly unmastered words with a small refresher\n" +
		"share of mastered ones), quizzes each term, and records the outcomes.",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		ctx := cmd.Context()
		scope := learnerScope(cmd)
		count, _ := cmd.Flags().GetInt("count")
		speak, _ := cmd.Flags().GetBool("speak")

		all, err := s.Items().GetAll(ctx, scope)
		if err != nil {
			return err
		}
		cfg := review.DefaultConfig()
		set := sampler.NewSeeded().Sample(all, count, cfg.MasteredShare)
		if len(set) == 0 {
			fmt.Println("nothing to practice; add some words first")
			return nil
		}

		var speaker speech.Speaker
		if speak {
			speaker = &speech.LogSpeaker{}
		}

		tracker := session.NewTracker(s)
		active := tracker.Start(scope)
		reader := bufio.NewReader(os.Stdin)
		correct := 0

		for i, it := range set {
			fmt.Printf("\n[%d/%d] %s\n", i+1, len(set), it.Key)
			if speaker != nil {
				// Best effort; a speech failure never stops the loop.
				_ = speaker.Speak(ctx, it.Key, speech.Options{})
			}
			fmt.Print("translation? ")

			answer, err := reader.ReadString('\n')
			if err != nil {
				break
			}
			answer = strings.TrimSpace(answer)
			if answer == "q" {
				break
			}

			got := strings.EqualFold(answer, strings.TrimSpace(it.Translation))
			if got {
				fmt.Println("correct!")
				correct++
			} else {
				fmt.Printf("it means %q\n", it.Translation)
				if it.Example != "" {
					fmt.Printf("  e.g. %s\n", it.Example)
				}
			}

			if _, err := s.Items().MarkReviewed(ctx, it.Key, scope, got, time.Now(), cfg); err != nil {
				return err
			}
			active.RecordItem()
			active.RecordExercise()
		}
		active.RecordSkill("vocabulary")

		sum, err := tracker.End(ctx, active)
		if err != nil {
			return err
		}

		fmt.Printf("\nsession done: %d/%d correct, %d minute(s), streak %d day(s)\n",
			correct, sum.Session.ItemsStudied, sum.Session.Minutes, sum.CurrentStreak)
		for _, a := range sum.NewlyUnlocked {
			fmt.Printf("achievement unlocked: %s (%s)\n", a.Title, a.Description)
		}
		return nil
	},
}

func init() {
	practiceCmd.Flags().Int("count", 10, "Working set size")
	practiceCmd.Flags().Bool("speak", false, "Voice each term through the speech collaborator")
}
