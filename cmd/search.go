package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search vocabulary by term or translation",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		matches, err := s.Items().Search(cmd.Context(), args[0], learnerScope(cmd))
		if err != nil {
			return err
		}
		if len(matches) == 0 {
			fmt.Println("no matches")
			return nil
		}

		for _, it := range matches {
			marker := " "
			if it.Mastered {
				marker = "*"
			}
			fmt.Printf("%s %-24s %-24s %s\n", marker, it.Key, it.Translation, it.Level)
		}
		return nil
	},
}
