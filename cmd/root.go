package cmd

import (
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/wortlab/wortschatz/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "wortschatz",
	Short: "Personal German vocabulary trainer",
	Long: "Wortschatz — a spaced-repetition vocabulary store for German learners:\n" +
		"collect words, practice them on a doubling/halving schedule, and track\n" +
		"progress toward functional fluency.",
}

func Execute() error {
	// A missing .env is fine; explicit env vars win either way.
	_ = godotenv.Load()
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides WORTSCHATZ_DB env var)")
	rootCmd.PersistentFlags().String("learner", "", "Learner scope; empty works on the shared global set")

	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(practiceCmd)
	rootCmd.AddCommand(reviewCmd)
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(achievementsCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveDBPath returns the database path using the --db flag (highest
// priority), then WORTSCHATZ_DB, then the default XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	return store.DefaultDBPath()
}

func openStore(cmd *cobra.Command) (*store.Store, error) {
	path, err := resolveDBPath(cmd)
	if err != nil {
		return nil, err
	}
	return store.Open(path)
}

func learnerScope(cmd *cobra.Command) string {
	scope, _ := cmd.Flags().GetString("learner")
	return scope
}
