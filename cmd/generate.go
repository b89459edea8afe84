package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wortlab/wortschatz/internal/textgen"
	"github.com/wortlab/wortschatz/internal/vocab"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate new vocabulary with a language model",
	RunE: func(cmd *cobra.Command, args []string) error {
		count, _ := cmd.Flags().GetInt("count")
		levelStr, _ := cmd.Flags().GetString("level")
		themes, _ := cmd.Flags().GetStringSlice("theme")

		cfg := textgen.ConfigFromEnv()
		if err := cfg.Validate(); err != nil {
			if discovered, ok := textgen.DiscoverConfig(); ok {
				cfg = discovered
			} else {
				return err
			}
		}

		ctx := cmd.Context()
		provider, err := textgen.NewProvider(ctx, cfg)
		if err != nil {
			return err
		}

		level := vocab.ParseLevel(levelStr)
		generated, err := textgen.NewService(provider, cfg.Timeout).GenerateItems(ctx, count, level, themes)
		if err != nil {
			return err
		}

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		items := make([]vocab.Item, len(generated))
		for i, g := range generated {
			items[i] = vocab.Item{
				Key:         g.Term,
				Translation: g.Translation,
				Example:     g.Example,
				Level:       level,
			}
		}
		inserted, err := s.Items().AddBatch(ctx, items, vocab.OriginGenerated, learnerScope(cmd))
		if err != nil {
			return err
		}

		fmt.Printf("generated %d entries, added %d new (%d already known)\n",
			len(generated), inserted, len(generated)-inserted)
		return nil
	},
}

func init() {
	generateCmd.Flags().Int("count", 10, "Number of entries to generate")
	generateCmd.Flags().String("level", "A1", "CEFR level of the generated words")
	generateCmd.Flags().StringSlice("theme", nil, "Themes to focus on (repeatable)")
}
