package analysis

import (
	"fmt"
	"strings"
)

// Summary holds every ranking computed from one cleaned table.
type Summary struct {
	Revenue     MetricResult `json:"revenue"`
	BayTime     MetricResult `json:"baytime"`
	CPD         MetricResult `json:"cpd"`
	Growth      MetricResult `json:"growth"`
	Leaderboard Leaderboard  `json:"leaderboard"`
}

// Summarize runs the four aggregators and fuses them into a leaderboard.
func Summarize(t *Table) Summary {
	s := Summary{
		Revenue: AnalyzeHighestRevenue(t),
		BayTime: AnalyzeLowestBayTime(t),
		CPD:     AnalyzeHighestCPD(t),
		Growth:  AnalyzeHighestGrowth(t),
	}
	s.Leaderboard = BuildLeaderboard(s.Revenue, s.BayTime, s.CPD, s.Growth)
	return s
}

// Results returns the four metric results in leaderboard order.
func (s Summary) Results() []MetricResult {
	return []MetricResult{s.Revenue, s.BayTime, s.CPD, s.Growth}
}

// ColumnSummary counts present and missing cells of one cleaned column.
type ColumnSummary struct {
	Name    string
	NonNull int
	Missing int
}

// Report is a markdown-friendly account of a KPI dataset and its rankings.
type Report struct {
	Name     string
	RawRows  int
	Rows     int
	Cols     []ColumnSummary
	Samples  [][]string
	Summary  Summary
	TopN     int
	Warnings []string
}

// BuildReport summarizes a cleaned table. rawRows is the row count before
// cleaning; sampleRows and topN bound the sample and ranking sections.
func BuildReport(cleaned *Table, rawRows, sampleRows, topN int) *Report {
	rep := &Report{
		Name:    cleaned.Name,
		RawRows: rawRows,
		Rows:    cleaned.Len(),
		Summary: Summarize(cleaned),
		TopN:    topN,
	}
	for j, name := range cleaned.Columns {
		cs := ColumnSummary{Name: name}
		for _, r := range cleaned.Rows {
			if r[j].IsMissing() {
				cs.Missing++
			} else {
				cs.NonNull++
			}
		}
		rep.Cols = append(rep.Cols, cs)
	}
	for _, r := range cleaned.Head(sampleRows).Rows {
		vals := make([]string, len(r))
		for i, c := range r {
			vals[i] = c.String()
		}
		rep.Samples = append(rep.Samples, vals)
	}
	if dropped := rawRows - rep.Rows; dropped > 0 {
		rep.Warnings = append(rep.Warnings, fmt.Sprintf("%d of %d rows removed by data quality filters", dropped, rawRows))
	}
	for _, res := range rep.Summary.Results() {
		if !res.Available {
			rep.Warnings = append(rep.Warnings, fmt.Sprintf("%s unavailable: column %q not present", res.Metric.Key, res.Metric.Column))
		}
	}
	return rep
}

// Markdown renders the report as plain sections.
func (r *Report) Markdown() string {
	var b strings.Builder
	b.WriteString("[DATASET SUMMARY]\n")
	if r.Name != "" {
		b.WriteString(fmt.Sprintf("File: %s\n", r.Name))
	}
	if r.RawRows > r.Rows {
		b.WriteString(fmt.Sprintf("Rows: %d (of %d loaded)\n", r.Rows, r.RawRows))
	} else {
		b.WriteString(fmt.Sprintf("Rows: %d\n", r.Rows))
	}
	b.WriteString(fmt.Sprintf("Columns: %d\n\n", len(r.Cols)))

	b.WriteString("[SCHEMA]\n")
	for _, c := range r.Cols {
		missPct := 0.0
		if total := c.NonNull + c.Missing; total > 0 {
			missPct = float64(c.Missing) * 100.0 / float64(total)
		}
		b.WriteString(fmt.Sprintf("- %s (non-null %d, missing %.1f%%)\n", safeName(c.Name), c.NonNull, missPct))
	}

	for _, res := range r.Summary.Results() {
		if !res.Available {
			continue
		}
		b.WriteString(fmt.Sprintf("\n[%s]\n", strings.ToUpper(res.Metric.ValueLabel)))
		top := res.Top(r.TopN)
		if len(top) == 0 {
			b.WriteString("- no shops met the data quality filters\n")
		}
		for i, e := range top {
			val := FormatFloat(e.Value)
			if e.Label != "" {
				val = e.Label
			}
			b.WriteString(fmt.Sprintf("%d. %s: %s\n", i+1, safeVal(e.Shop), val))
		}
	}

	if rows := r.Summary.Leaderboard.Head(r.TopN); len(rows) > 0 {
		b.WriteString("\n[LEADERBOARD]\n")
		b.WriteString("| Shop | Top1 | Top3 | Top5 |\n")
		b.WriteString("| --- | --- | --- | --- |\n")
		for _, row := range rows {
			b.WriteString(fmt.Sprintf("| %s | %d | %d | %d |\n", safeVal(row.Shop), row.Top1, row.Top3, row.Top5))
		}
	}

	if len(r.Samples) > 0 {
		b.WriteString("\n[HEAD ROWS]\n")
		b.WriteString("| ")
		for i, c := range r.Cols {
			if i > 0 {
				b.WriteString(" | ")
			}
			b.WriteString(safeName(c.Name))
		}
		b.WriteString(" |\n| ")
		for i := range r.Cols {
			if i > 0 {
				b.WriteString(" | ")
			}
			b.WriteString("---")
		}
		b.WriteString(" |\n")
		for _, row := range r.Samples {
			b.WriteString("| ")
			for i, val := range row {
				if i > 0 {
					b.WriteString(" | ")
				}
				if len(val) > 80 {
					val = val[:77] + "..."
				}
				b.WriteString(safeVal(val))
			}
			b.WriteString(" |\n")
		}
	}

	if len(r.Warnings) > 0 {
		b.WriteString("\n[NOTES]\n")
		for _, w := range r.Warnings {
			b.WriteString("- ")
			b.WriteString(w)
			b.WriteString("\n")
		}
	}
	return b.String()
}

func safeName(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return "(unnamed)"
	}
	return s
}

func safeVal(s string) string { return strings.ReplaceAll(strings.ReplaceAll(s, "\n", " "), "|", "/") }
