package analysis

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
)

var kpiHeader = []string{ColShop, ColWeekEnding, ColSalesPerDay, ColCPDPriorYear, ColCustomerRepeatPct}

// rawTable builds a raw table the way the CSV loader would.
func rawTable(cols []string, rows ...[]string) *Table {
	t := NewTable("test", cols)
	for _, r := range rows {
		cells := make([]Cell, len(r))
		for i, v := range r {
			cells[i] = ParseCell(v)
		}
		t.AppendRow(cells)
	}
	return t
}

func writeFile(t *testing.T, name string, lines ...string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(p, []byte(strings.Join(lines, "\n")+"\n"), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	return p
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func ranked(entries ...RankedEntry) MetricResult {
	return MetricResult{Available: true, Entries: entries}
}

func entry(shop, v string) RankedEntry {
	return RankedEntry{Shop: shop, Value: decimal.NullDecimal{Decimal: dec(v), Valid: true}}
}
