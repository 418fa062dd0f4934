package outwriter

import (
	"bytes"
	"io"

	"github.com/Earthpatel/Business-Operations-Bot/internal/analysis"
)

// WriteRows outputs table rows as text, JSON or CSV. Parquet needs a fixed
// schema and is only offered for rankings.
func WriteRows(t *analysis.Table, opt Options) error {
	switch opt.Format {
	case JSONOut:
		return writeWithFile(opt.OutputFile, func(w io.Writer) error {
			return writeJSON(w, rowObjects(t))
		}, "Wrote JSON")
	case CSVOut:
		return writeWithFile(opt.OutputFile, func(w io.Writer) error {
			return writeCSVWithHeader(w, t.Columns, rowStrings(t))
		}, "Wrote CSV")
	case ParquetOut:
		return errParquetRows
	default:
		return writeWithFile(opt.OutputFile, func(w io.Writer) error {
			return renderTable(w, t.Columns, rowStrings(t), false)
		}, "Wrote table")
	}
}

// FormatTableText renders a table as a plain text table.
func FormatTableText(t *analysis.Table) string {
	var buf bytes.Buffer
	if err := renderTable(&buf, t.Columns, rowStrings(t), false); err != nil {
		return ""
	}
	return buf.String()
}

func rowStrings(t *analysis.Table) [][]string {
	out := make([][]string, 0, t.Len())
	for _, r := range t.Rows {
		vals := make([]string, len(r))
		for i, c := range r {
			vals[i] = c.String()
		}
		out = append(out, vals)
	}
	return out
}

func rowObjects(t *analysis.Table) []map[string]any {
	out := make([]map[string]any, 0, t.Len())
	for _, r := range t.Rows {
		obj := make(map[string]any, len(t.Columns))
		for i, name := range t.Columns {
			if r[i].IsMissing() {
				obj[name] = nil
			} else {
				obj[name] = r[i].String()
			}
		}
		out = append(out, obj)
	}
	return out
}
