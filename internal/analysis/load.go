package analysis

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// LoadOptions controls how source files are read.
type LoadOptions struct {
	// Delimiter for CSV. If 0, ',' is used.
	Delimiter rune
	// SheetName selects an Excel worksheet. Empty means the first sheet.
	SheetName string
}

// DefaultLoadOptions returns comma-delimited CSV and first-sheet Excel reads.
func DefaultLoadOptions() LoadOptions {
	return LoadOptions{Delimiter: ','}
}

// Loader reads one family of tabular files into a Table.
type Loader interface {
	CanLoad(path string) bool
	Load(path string, opt LoadOptions) (*Table, error)
}

var loaders []Loader

// RegisterLoader adds a loader implementation to the registry.
func RegisterLoader(l Loader) {
	loaders = append(loaders, l)
}

func init() {
	RegisterLoader(csvLoader{})
	RegisterLoader(excelLoader{})
}

// SupportedExtension reports whether path has one of the accepted extensions.
func SupportedExtension(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv", ".xlsx", ".xls":
		return true
	}
	return false
}

// LoadTable reads a CSV, XLSX or XLS file into a raw table. Column names are
// kept exactly as found in the header row.
func LoadTable(path string, opt LoadOptions) (*Table, error) {
	if !SupportedExtension(path) {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
	}
	for _, l := range loaders {
		if !l.CanLoad(path) {
			continue
		}
		t, err := l.Load(path, opt)
		if err != nil {
			var le *LoadError
			if errors.As(err, &le) {
				return nil, err
			}
			return nil, &LoadError{Path: path, Err: err}
		}
		return t, nil
	}
	return nil, fmt.Errorf("%w: no loader for %q", ErrUnsupportedFormat, filepath.Ext(path))
}

type csvLoader struct{}

func (csvLoader) CanLoad(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".csv")
}

func (csvLoader) Load(path string, opt LoadOptions) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open csv: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	r.LazyQuotes = true
	if opt.Delimiter != 0 {
		r.Comma = opt.Delimiter
	}

	header, err := r.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("empty file: no header row")
		}
		return nil, fmt.Errorf("read header: %w", err)
	}
	t := NewTable(filepath.Base(path), normalizeHeader(header))

	for {
		rec, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row %d: %w", t.Len()+2, err)
		}
		row := make([]Cell, len(rec))
		for i, v := range rec {
			row[i] = ParseCell(v)
		}
		t.AppendRow(row)
	}
	return t, nil
}

// normalizeHeader strips a UTF-8 BOM and names blank headers "Unnamed: N".
func normalizeHeader(h []string) []string {
	out := make([]string, len(h))
	for i, name := range h {
		if i == 0 {
			name = strings.TrimPrefix(name, "\ufeff")
		}
		if strings.TrimSpace(name) == "" {
			name = fmt.Sprintf("Unnamed: %d", i)
		}
		out[i] = name
	}
	return out
}
