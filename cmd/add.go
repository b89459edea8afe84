package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wortlab/wortschatz/internal/textgen"
	"github.com/wortlab/wortschatz/internal/vocab"
)

var addCmd = &cobra.Command{
	Use:   "add <term> [translation]",
	Short: "Add a word to the vocabulary store",
	Long: "Add a German term. When the translation is omitted, a configured\n" +
		"text generation provider fills in the translation and an example sentence.",
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		ctx := cmd.Context()
		term := args[0]

		it := vocab.Item{Key: term}
		it.Example, _ = cmd.Flags().GetString("example")
		if lvl, _ := cmd.Flags().GetString("level"); lvl != "" {
			it.Level = vocab.ParseLevel(lvl)
		}

		if len(args) == 2 {
			it.Translation = args[1]
		} else {
			cfg, ok := textgen.DiscoverConfig()
			if !ok {
				return fmt.Errorf("no translation given and no provider API key found (set ANTHROPIC_API_KEY, OPENAI_API_KEY, or GEMINI_API_KEY)")
			}
			provider, err := textgen.NewProvider(ctx, cfg)
			if err != nil {
				return err
			}
			tr, err := textgen.NewService(provider, cfg.Timeout).Translate(ctx, term)
			if err != nil {
				return err
			}
			it.Translation = tr.Meaning
			if it.Example == "" {
				it.Example = tr.Example
			}
		}

		ok, err := s.Items().Add(ctx, it, vocab.OriginExtracted, learnerScope(cmd))
		if err != nil {
			return err
		}
		if !ok {
			fmt.Printf("%q is already in your vocabulary\n", term)
			return nil
		}
		fmt.Printf("added %q = %s\n", term, it.Translation)
		return nil
	},
}

func init() {
	addCmd.Flags().String("example", "", "Example sentence")
	addCmd.Flags().String("level", "", "CEFR level (A1..C2); inferred when omitted")
}
