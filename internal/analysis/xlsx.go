package analysis

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

type excelLoader struct{}

func (excelLoader) CanLoad(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".xlsx" || ext == ".xls"
}

// Load reads one worksheet. The first row is the header; cells are read raw so
// date-formatted cells arrive as Excel serial numbers.
func (excelLoader) Load(path string, opt LoadOptions) (*Table, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheet, err := resolveSheet(f, opt.SheetName)
	if err != nil {
		return nil, err
	}

	rows, err := f.Rows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}
	defer rows.Close()

	var t *Table
	for rows.Next() {
		vals, err := rows.Columns(excelize.Options{RawCellValue: true})
		if err != nil {
			return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
		}
		if t == nil {
			if isBlankRow(vals) {
				return nil, fmt.Errorf("sheet %q: empty header row", sheet)
			}
			t = NewTable(filepath.Base(path), normalizeHeader(vals))
			continue
		}
		row := make([]Cell, len(vals))
		for i, v := range vals {
			row[i] = ParseCell(v)
		}
		t.AppendRow(row)
	}
	if err := rows.Error(); err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}
	if t == nil {
		return nil, fmt.Errorf("sheet %q: no header row", sheet)
	}
	return t, nil
}

func resolveSheet(f *excelize.File, name string) (string, error) {
	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return "", errors.New("workbook has no sheets")
	}
	if name == "" {
		return sheets[0], nil
	}
	for _, s := range sheets {
		if s == name {
			return s, nil
		}
	}
	return "", fmt.Errorf("sheet %q not found (available: %s)", name, strings.Join(sheets, ", "))
}

func isBlankRow(vals []string) bool {
	for _, v := range vals {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
