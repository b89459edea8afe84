package porter

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/wortlab/wortschatz/internal/vocab"
)

// WorkbookConfig maps spreadsheet columns onto item fields.
type WorkbookConfig struct {
	TermColumn        string
	TranslationColumn string
	ExampleColumn     string
	LevelColumn       string
	SheetName         string
	// StartRow is 1-based; rows above it are treated as headers.
	StartRow int
}

// DefaultWorkbookConfig covers the common term/translation/example/level
// layout with one header row.
func DefaultWorkbookConfig() WorkbookConfig {
	return WorkbookConfig{
		TermColumn:        "A",
		TranslationColumn: "B",
		ExampleColumn:     "C",
		LevelColumn:       "D",
		SheetName:         "Sheet1",
		StartRow:          2,
	}
}

// ImportWorkbook ingests a word list from an xlsx or csv file, picked by
// extension. Rows with an empty term or translation are reported and
// skipped; keys already visible in scope are skipped silently.
func (p *Porter) ImportWorkbook(ctx context.Context, path, scope string, cfg WorkbookConfig) (*Result, error) {
	if strings.ToLower(filepath.Ext(path)) == ".csv" {
		return p.importCSV(ctx, path, scope, cfg)
	}
	return p.importXLSX(ctx, path, scope, cfg)
}

func (p *Porter) importXLSX(ctx context.Context, path, scope string, cfg WorkbookConfig) (*Result, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	rows, err := f.GetRows(cfg.SheetName)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", cfg.SheetName, err)
	}

	res := &Result{}
	for i, row := range rows {
		if i < cfg.StartRow-1 {
			continue
		}
		if err := ctx.Err(); err != nil {
			return res, err
		}
		p.importRow(ctx, row, scope, cfg, i+1, res)
	}
	return res, nil
}

func (p *Porter) importCSV(ctx context.Context, path, scope string, cfg WorkbookConfig) (*Result, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open csv: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	res := &Result{}
	rowNum := 0
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return res, fmt.Errorf("read csv: %w", err)
		}
		rowNum++
		if rowNum < cfg.StartRow {
			continue
		}
		if err := ctx.Err(); err != nil {
			return res, err
		}
		p.importRow(ctx, row, scope, cfg, rowNum, res)
	}
	return res, nil
}

// importRow converts one spreadsheet row into an item and adds it. Repo
// errors abort via res.Errors rather than failing the whole file; a bad
// row should not cost the learner the rest of the import.
func (p *Porter) importRow(ctx context.Context, row []string, scope string, cfg WorkbookConfig, rowNum int, res *Result) {
	term := cell(row, cfg.TermColumn)
	translation := cell(row, cfg.TranslationColumn)

	if term == "" {
		res.Errors = append(res.Errors, fmt.Sprintf("row %d: empty term", rowNum))
		return
	}
	if translation == "" {
		res.Errors = append(res.Errors, fmt.Sprintf("row %d: empty translation", rowNum))
		return
	}

	it := vocab.Item{
		Key:         term,
		Translation: translation,
		Example:     cell(row, cfg.ExampleColumn),
	}
	if lvl := cell(row, cfg.LevelColumn); lvl != "" {
		it.Level = vocab.ParseLevel(lvl)
	}

	ok, err := p.items.Add(ctx, it, vocab.OriginSeed, scope)
	if err != nil {
		res.Errors = append(res.Errors, fmt.Sprintf("row %d: %v", rowNum, err))
		return
	}
	if ok {
		res.ImportedCount++
	} else {
		res.SkippedCount++
	}
}

// cell returns the trimmed value at the given spreadsheet column, or ""
// when the row is too short.
func cell(row []string, column string) string {
	idx := columnIndex(column)
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// columnIndex converts a spreadsheet column letter ("A", "AB") to a
// zero-based index.
func columnIndex(column string) int {
	column = strings.ToUpper(strings.TrimSpace(column))
	if column == "" {
		return -1
	}
	idx := 0
	for i := 0; i < len(column); i++ {
		idx = idx*26 + int(column[i]-'A'+1)
	}
	return idx - 1
}
