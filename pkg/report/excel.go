/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: excel.go
Description: XLSX workbook report. One pattern sheet per input, plus a FieldsPerLine
sheet and a Summary sheet covering every input.
*/

package report

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/kleascm/bytefreq/pkg/profile"
	"github.com/xuri/excelize/v2"
)

const (
	fieldsSheet  = "FieldsPerLine"
	summarySheet = "Summary"
	// maxSheetName is the Excel limit on sheet name length
	maxSheetName = 31
)

// ExcelRenderer renders results as an xlsx workbook
type ExcelRenderer struct{}

// Render writes the workbook to w
func (r *ExcelRenderer) Render(w io.Writer, results []*profile.Result) error {
	f := excelize.NewFile()
	defer f.Close()

	used := map[string]bool{strings.ToLower(fieldsSheet): true, strings.ToLower(summarySheet): true}
	for i, res := range results {
		name := SheetName(res.Source, used)
		used[strings.ToLower(name)] = true

		if i == 0 {
			if err := f.SetSheetName(f.GetSheetName(0), name); err != nil {
				return fmt.Errorf("failed to rename sheet: %w", err)
			}
		} else if _, err := f.NewSheet(name); err != nil {
			return fmt.Errorf("failed to create sheet %s: %w", name, err)
		}

		if err := writePatternSheet(f, name, res); err != nil {
			return err
		}
	}

	if len(results) == 0 {
		if err := f.SetSheetName(f.GetSheetName(0), summarySheet); err != nil {
			return fmt.Errorf("failed to rename sheet: %w", err)
		}
	} else if _, err := f.NewSheet(summarySheet); err != nil {
		return fmt.Errorf("failed to create sheet %s: %w", summarySheet, err)
	}
	if err := writeSummarySheet(f, results); err != nil {
		return err
	}

	if _, err := f.NewSheet(fieldsSheet); err != nil {
		return fmt.Errorf("failed to create sheet %s: %w", fieldsSheet, err)
	}
	if err := writeFieldsSheet(f, results); err != nil {
		return err
	}

	f.SetActiveSheet(0)
	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

func setRow(f *excelize.File, sheet string, row int, values ...interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("failed to write %s row %d: %w", sheet, row, err)
	}
	return nil
}

func writePatternSheet(f *excelize.File, sheet string, res *profile.Result) error {
	if err := setRow(f, sheet, 1, "column_index", "column_name", "count", "pattern", "example"); err != nil {
		return err
	}
	row := 2
	for _, col := range res.Columns {
		for _, p := range col.Patterns {
			if err := setRow(f, sheet, row, col.Index, col.Name, p.Count, p.Pattern, p.Example); err != nil {
				return err
			}
			row++
		}
	}
	return nil
}

func writeSummarySheet(f *excelize.File, results []*profile.Result) error {
	if err := setRow(f, summarySheet, 1, "source", "run_id", "grain", "format", "records",
		"columns", "patterns", "mean_patterns", "median_patterns", "max_patterns", "skipped_lines"); err != nil {
		return err
	}
	for i, res := range results {
		s := Summarize(res)
		if err := setRow(f, summarySheet, i+2, res.Source, res.RunID, string(res.Grain), string(res.Format),
			res.RecordCount, s.Columns, s.Patterns, s.MeanPatterns, s.MedianPatterns, s.MaxPatterns,
			res.Stats.SkippedLines); err != nil {
			return err
		}
	}
	return nil
}

func writeFieldsSheet(f *excelize.File, results []*profile.Result) error {
	if err := setRow(f, fieldsSheet, 1, "source", "fields", "rows"); err != nil {
		return err
	}
	row := 2
	for _, res := range results {
		for _, k := range res.FieldCountKeys() {
			if err := setRow(f, fieldsSheet, row, res.Source, k, res.FieldCounts[k]); err != nil {
				return err
			}
			row++
		}
	}
	return nil
}

// SheetName derives a valid Excel sheet name from an input source.
// used holds lower-cased names already taken; Excel compares them case-insensitively.
func SheetName(source string, used map[string]bool) string {
	base := filepath.Base(source)
	if base == "." || base == string(filepath.Separator) || base == "" {
		base = "input"
	}
	base = strings.Map(func(r rune) rune {
		switch r {
		case ':', '\\', '/', '?', '*', '[', ']':
			return '_'
		}
		return r
	}, base)
	base = strings.Trim(base, "'")
	if base == "" {
		base = "input"
	}
	base = truncateRunes(base, maxSheetName)

	name := base
	for n := 2; used[strings.ToLower(name)]; n++ {
		suffix := fmt.Sprintf("~%d", n)
		name = truncateRunes(base, maxSheetName-len(suffix)) + suffix
	}
	return name
}

func truncateRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
