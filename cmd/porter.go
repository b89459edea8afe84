package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/wortlab/wortschatz/internal/porter"
)

var exportCmd = &cobra.Command{
	Use:   "export [file]",
	Short: "Export the vocabulary as a JSON document",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		out := os.Stdout
		if len(args) == 1 {
			f, err := os.Create(args[0])
			if err != nil {
				return fmt.Errorf("create export file: %w", err)
			}
			defer f.Close()
			out = f
		}

		n, err := porter.New(s.Items()).ExportJSON(cmd.Context(), out, learnerScope(cmd))
		if err != nil {
			return err
		}
		if len(args) == 1 {
			fmt.Printf("exported %d items to %s\n", n, args[0])
		}
		return nil
	},
}

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import vocabulary from a JSON export, xlsx workbook, or csv file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		p := porter.New(s.Items())
		scope := learnerScope(cmd)
		path := args[0]

		var res *porter.Result
		if strings.ToLower(filepath.Ext(path)) == ".json" {
			f, err := os.Open(path)
			if err != nil {
				return fmt.Errorf("open import file: %w", err)
			}
			defer f.Close()
			res, err = p.ImportJSON(cmd.Context(), f, scope)
			if err != nil {
				return err
			}
		} else {
			cfg := porter.DefaultWorkbookConfig()
			if sheet, _ := cmd.Flags().GetString("sheet"); sheet != "" {
				cfg.SheetName = sheet
			}
			res, err = p.ImportWorkbook(cmd.Context(), path, scope, cfg)
			if err != nil {
				return err
			}
		}

		fmt.Printf("imported %d, skipped %d duplicates\n", res.ImportedCount, res.SkippedCount)
		for _, msg := range res.Errors {
			fmt.Fprintln(os.Stderr, "warning:", msg)
		}
		return nil
	},
}

func init() {
	importCmd.Flags().String("sheet", "", "Workbook sheet name (default Sheet1)")
}
