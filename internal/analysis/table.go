package analysis

import (
	"regexp"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Column names of the weekly KPI report.
const (
	ColShop              = "Shop"
	ColWeekEnding        = "WeekEndingCY"
	ColSalesPerDay       = "Sales / Day"
	ColCPDPriorYear      = "CPD - PY"
	ColCustomerRepeatPct = "Customers Repeat % - CY"
	ColBayTime           = "BayTime"
	ColCPD               = "CPD"
	ColNetSalesYoYPct    = "Net Sales - YoY %"
)

// CellKind identifies what a Cell holds.
type CellKind int

const (
	CellMissing CellKind = iota
	CellText
	CellNumber
	CellDate
)

// Cell is a single value of a Table. The zero value is a missing cell.
type Cell struct {
	Kind CellKind
	Text string
	Num  decimal.Decimal
	Date time.Time
}

// MissingCell returns the missing-value marker.
func MissingCell() Cell { return Cell{} }

// TextCell wraps raw text.
func TextCell(s string) Cell { return Cell{Kind: CellText, Text: s} }

// NumberCell wraps a numeric value.
func NumberCell(d decimal.Decimal) Cell { return Cell{Kind: CellNumber, Num: d} }

// DateCell wraps a parsed date.
func DateCell(t time.Time) Cell { return Cell{Kind: CellDate, Date: t} }

// ParseCell infers a raw cell from source text: blank is missing, a plain
// number is numeric, anything else is kept as text.
func ParseCell(raw string) Cell {
	s := strings.TrimSpace(raw)
	if s == "" {
		return MissingCell()
	}
	if d, err := decimal.NewFromString(s); err == nil {
		return NumberCell(d)
	}
	return TextCell(raw)
}

// IsMissing reports whether the cell holds no value.
func (c Cell) IsMissing() bool { return c.Kind == CellMissing }

// IsZero reports whether the cell is a present numeric zero.
func (c Cell) IsZero() bool { return c.Kind == CellNumber && c.Num.IsZero() }

var lenientStrip = regexp.MustCompile(`[$,%\s]`)

// Decimal returns the numeric value of the cell. Text cells are parsed after
// stripping currency, percent, thousands separators and whitespace.
func (c Cell) Decimal() (decimal.Decimal, bool) {
	switch c.Kind {
	case CellNumber:
		return c.Num, true
	case CellText:
		d, err := decimal.NewFromString(lenientStrip.ReplaceAllString(c.Text, ""))
		if err != nil {
			return decimal.Zero, false
		}
		return d, true
	default:
		return decimal.Zero, false
	}
}

// NullDecimal is Decimal in nullable form.
func (c Cell) NullDecimal() decimal.NullDecimal {
	d, ok := c.Decimal()
	return decimal.NullDecimal{Decimal: d, Valid: ok}
}

// String renders the cell for display.
func (c Cell) String() string {
	switch c.Kind {
	case CellText:
		return c.Text
	case CellNumber:
		return c.Num.String()
	case CellDate:
		if c.Date.Hour() == 0 && c.Date.Minute() == 0 && c.Date.Second() == 0 {
			return c.Date.Format("2006-01-02")
		}
		return c.Date.Format("2006-01-02 15:04:05")
	default:
		return ""
	}
}

// Equal compares kind and value. Numbers compare by value, so 12.50 equals 12.5.
func (c Cell) Equal(o Cell) bool {
	if c.Kind != o.Kind {
		return false
	}
	switch c.Kind {
	case CellText:
		return c.Text == o.Text
	case CellNumber:
		return c.Num.Equal(o.Num)
	case CellDate:
		return c.Date.Equal(o.Date)
	default:
		return true
	}
}

// Table is an in-memory dataset with column names exactly as found in the source.
type Table struct {
	Name    string
	Columns []string
	Rows    [][]Cell
}

// NewTable creates an empty table with the given columns.
func NewTable(name string, columns []string) *Table {
	cols := make([]string, len(columns))
	copy(cols, columns)
	return &Table{Name: name, Columns: cols}
}

// AppendRow adds a row, padding or truncating it to the column count.
func (t *Table) AppendRow(row []Cell) {
	r := make([]Cell, len(t.Columns))
	copy(r, row)
	t.Rows = append(t.Rows, r)
}

// Len returns the number of rows.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Rows)
}

// ColumnIndex returns the index of the named column or -1.
func (t *Table) ColumnIndex(name string) int {
	for i, c := range t.Columns {
		if c == name {
			return i
		}
	}
	return -1
}

// HasColumn reports whether the named column exists.
func (t *Table) HasColumn(name string) bool { return t.ColumnIndex(name) >= 0 }

// Value returns the cell at row i of the named column; missing if the column is absent.
func (t *Table) Value(i int, column string) Cell {
	j := t.ColumnIndex(column)
	if j < 0 || i < 0 || i >= len(t.Rows) {
		return MissingCell()
	}
	return t.Rows[i][j]
}

// Clone returns a deep copy of the table.
func (t *Table) Clone() *Table {
	out := NewTable(t.Name, t.Columns)
	out.Rows = make([][]Cell, len(t.Rows))
	for i, r := range t.Rows {
		cp := make([]Cell, len(r))
		copy(cp, r)
		out.Rows[i] = cp
	}
	return out
}

// Head returns a copy holding at most the first n rows.
func (t *Table) Head(n int) *Table {
	out := NewTable(t.Name, t.Columns)
	if n > len(t.Rows) {
		n = len(t.Rows)
	}
	for i := 0; i < n; i++ {
		out.AppendRow(t.Rows[i])
	}
	return out
}

// DropColumns returns a copy without the named columns. Unknown names are ignored.
func (t *Table) DropColumns(names ...string) *Table {
	drop := make(map[string]bool, len(names))
	for _, n := range names {
		drop[n] = true
	}
	var keep []int
	var cols []string
	for i, c := range t.Columns {
		if !drop[c] {
			keep = append(keep, i)
			cols = append(cols, c)
		}
	}
	out := NewTable(t.Name, cols)
	for _, r := range t.Rows {
		nr := make([]Cell, len(keep))
		for k, idx := range keep {
			nr[k] = r[idx]
		}
		out.Rows = append(out.Rows, nr)
	}
	return out
}

// Equal compares columns and every cell.
func (t *Table) Equal(o *Table) bool {
	if t == nil || o == nil {
		return t == o
	}
	if len(t.Columns) != len(o.Columns) || len(t.Rows) != len(o.Rows) {
		return false
	}
	for i := range t.Columns {
		if t.Columns[i] != o.Columns[i] {
			return false
		}
	}
	for i := range t.Rows {
		for j := range t.Rows[i] {
			if !t.Rows[i][j].Equal(o.Rows[i][j]) {
				return false
			}
		}
	}
	return true
}

// Record is a typed view of one cleaned row.
type Record struct {
	Shop              string              `json:"shop"`
	WeekEnding        *time.Time          `json:"week_ending,omitempty"`
	SalesPerDay       decimal.NullDecimal `json:"sales_per_day"`
	CPDPriorYear      decimal.NullDecimal `json:"cpd_py"`
	CustomerRepeatPct decimal.NullDecimal `json:"customer_repeat_pct"`
	BayTime           decimal.NullDecimal `json:"bay_time"`
	CPD               decimal.NullDecimal `json:"cpd"`
	NetSalesYoYPct    decimal.NullDecimal `json:"net_sales_yoy_pct"`
}

// Records returns the typed view of every row. Absent optional columns yield null fields.
func (t *Table) Records() []Record {
	out := make([]Record, 0, len(t.Rows))
	for i := range t.Rows {
		rec := Record{
			Shop:              shopKey(t.Value(i, ColShop)),
			SalesPerDay:       t.Value(i, ColSalesPerDay).NullDecimal(),
			CPDPriorYear:      t.Value(i, ColCPDPriorYear).NullDecimal(),
			CustomerRepeatPct: t.Value(i, ColCustomerRepeatPct).NullDecimal(),
			BayTime:           t.Value(i, ColBayTime).NullDecimal(),
			CPD:               t.Value(i, ColCPD).NullDecimal(),
			NetSalesYoYPct:    t.Value(i, ColNetSalesYoYPct).NullDecimal(),
		}
		if c := t.Value(i, ColWeekEnding); c.Kind == CellDate {
			d := c.Date
			rec.WeekEnding = &d
		}
		out = append(out, rec)
	}
	return out
}

// shopKey renders the grouping key of a shop cell; missing shops yield "".
func shopKey(c Cell) string {
	if c.Kind == CellText {
		return strings.TrimSpace(c.Text)
	}
	return c.String()
}
