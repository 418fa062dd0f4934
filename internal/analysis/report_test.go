package analysis

import (
	"strings"
	"testing"
)

func TestReportMarkdown(t *testing.T) {
	cols := append(append([]string{}, kpiHeader...), ColNetSalesYoYPct)
	raw := rawTable(cols,
		[]string{"A", "2024-01-06", "100", "30", "0.4", "12.5%"},
		[]string{"B", "2024-01-06", "50", "30", "0.4", "3%"},
		[]string{"C", "2024-01-06", "0", "30", "0.4", "3%"},
	)
	cleaned, err := CleanAndProcessKPI(raw)
	if err != nil {
		t.Fatalf("clean: %v", err)
	}
	md := BuildReport(cleaned, raw.Len(), 2, 5).Markdown()

	for _, want := range []string{
		"[DATASET SUMMARY]",
		"Rows: 2 (of 3 loaded)",
		"[SCHEMA]",
		"[HIGHEST SALES]",
		"1. A: 100.0",
		"[HIGHEST YEARLY SALES GROWTH]",
		"1. A: 12.5%",
		"[LEADERBOARD]",
		"| A | 2 | 2 | 2 |",
		"[HEAD ROWS]",
		"[NOTES]",
		"1 of 3 rows removed",
		"baytime unavailable",
	} {
		if !strings.Contains(md, want) {
			t.Fatalf("markdown missing %q:\n%s", want, md)
		}
	}
	if strings.Contains(md, "[LOWEST BAYTIME]") {
		t.Fatalf("unavailable metric should not get a section:\n%s", md)
	}
}
