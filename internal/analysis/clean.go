package analysis

import (
	"regexp"
	"strings"
	"time"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

// RequiredColumns must all be present for cleaning to proceed.
var RequiredColumns = []string{
	ColShop,
	ColWeekEnding,
	ColSalesPerDay,
	ColCPDPriorYear,
	ColCustomerRepeatPct,
}

// IrrelevantColumns are dropped from the cleaned table when present.
var IrrelevantColumns = []string{
	"High.Mileage.Opportunity...CY",
	"Emission.Tickets...CY",
	"Emission.Gross.ARO...CY",
	"Emissions.Penetration..",
	"Emissions.with.Big.5.....CY",
}

var (
	salesStrip  = regexp.MustCompile(`[$,\s]`)
	growthStrip = regexp.MustCompile(`[\s,%]`)
)

var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02",
	"2006/01/02",
	"01/02/2006",
	"1/2/2006",
	"2006-01-02 15:04:05",
}

// CleanAndProcessKPI normalizes a raw KPI table. The input is left untouched;
// a new table is returned. Per-value parse failures become missing cells, and
// only absent required columns produce an error.
func CleanAndProcessKPI(t *Table) (*Table, error) {
	missing := lo.Filter(RequiredColumns, func(c string, _ int) bool { return !t.HasColumn(c) })
	if len(missing) > 0 {
		return nil, &CleaningError{Missing: missing}
	}
	out := t.Clone()

	week := out.ColumnIndex(ColWeekEnding)
	for _, r := range out.Rows {
		r[week] = parseDateCell(r[week])
	}

	sales := out.ColumnIndex(ColSalesPerDay)
	out.Rows = lo.Reject(out.Rows, func(r []Cell, _ int) bool { return blankOrZero(r[sales]) })
	for _, r := range out.Rows {
		r[sales] = coerceNumber(r[sales], salesStrip)
	}
	out.Rows = lo.Reject(out.Rows, func(r []Cell, _ int) bool { return blankOrZero(r[sales]) })

	cpdPY := out.ColumnIndex(ColCPDPriorYear)
	repeat := out.ColumnIndex(ColCustomerRepeatPct)
	out.Rows = lo.Reject(out.Rows, func(r []Cell, _ int) bool {
		return presentZero(r[cpdPY]) || presentZero(r[repeat])
	})

	out = out.DropColumns(IrrelevantColumns...)

	if growth := out.ColumnIndex(ColNetSalesYoYPct); growth >= 0 {
		for _, r := range out.Rows {
			r[growth] = coerceNumber(r[growth], growthStrip)
		}
	}
	return out, nil
}

// blankOrZero matches missing cells, empty strings and numeric zeros.
func blankOrZero(c Cell) bool {
	switch c.Kind {
	case CellMissing:
		return true
	case CellText:
		return strings.TrimSpace(c.Text) == ""
	case CellNumber:
		return c.Num.IsZero()
	}
	return false
}

func presentZero(c Cell) bool {
	d, ok := c.Decimal()
	return ok && d.IsZero()
}

// coerceNumber strips formatting characters from text and parses the rest.
func coerceNumber(c Cell, strip *regexp.Regexp) Cell {
	switch c.Kind {
	case CellNumber, CellMissing:
		return c
	case CellText:
		d, err := decimal.NewFromString(strip.ReplaceAllString(c.Text, ""))
		if err != nil {
			return MissingCell()
		}
		return NumberCell(d)
	}
	return MissingCell()
}

func parseDateCell(c Cell) Cell {
	switch c.Kind {
	case CellDate:
		return c
	case CellNumber:
		serial, _ := c.Num.Float64()
		if serial <= 0 {
			return MissingCell()
		}
		d, err := excelize.ExcelDateToTime(serial, false)
		if err != nil {
			return MissingCell()
		}
		return DateCell(d)
	case CellText:
		if d, ok := parseTimeMaybe(strings.TrimSpace(c.Text)); ok {
			return DateCell(d)
		}
	}
	return MissingCell()
}

func parseTimeMaybe(s string) (time.Time, bool) {
	for _, l := range dateLayouts {
		if t, err := time.Parse(l, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
