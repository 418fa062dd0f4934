package analysis

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"
)

// SortOrder is the ranking direction of a metric.
type SortOrder int

const (
	Descending SortOrder = iota
	Ascending
)

// MetricSpec parametrizes the single group-mean-round-sort primitive.
type MetricSpec struct {
	Key        string
	Column     string
	Label      string
	ValueLabel string
	Order      SortOrder
	// Guarded metrics are unavailable when Column is absent from the table.
	Guarded bool
	// Suffix, when set, produces a display label for each entry.
	Suffix string
}

var (
	Revenue = MetricSpec{Key: "revenue", Column: ColSalesPerDay, Label: "Highest Sales", ValueLabel: "Highest Sales", Order: Descending}
	BayTime = MetricSpec{Key: "baytime", Column: ColBayTime, Label: "Lowest BayTime", ValueLabel: "Lowest BayTime", Order: Ascending, Guarded: true}
	CPD     = MetricSpec{Key: "cpd", Column: ColCPD, Label: "Highest Number of CPD", ValueLabel: "Highest Number of CPD", Order: Descending, Guarded: true}
	Growth  = MetricSpec{Key: "growth", Column: ColNetSalesYoYPct, Label: "Growth.Label", ValueLabel: "Highest Yearly Sales Growth", Order: Descending, Guarded: true, Suffix: "%"}
)

// Metrics returns the four metrics in leaderboard order.
func Metrics() []MetricSpec { return []MetricSpec{Revenue, BayTime, CPD, Growth} }

// MetricByKey looks up a metric by its key (revenue, baytime, cpd, growth).
func MetricByKey(key string) (MetricSpec, bool) {
	k := strings.ToLower(strings.TrimSpace(key))
	for _, m := range Metrics() {
		if m.Key == k {
			return m, true
		}
	}
	return MetricSpec{}, false
}

// RankedEntry is one shop's aggregated value. Value is null when every
// source value for the shop was missing.
type RankedEntry struct {
	Shop  string              `json:"shop"`
	Value decimal.NullDecimal `json:"value"`
	Label string              `json:"label,omitempty"`
}

// MetricResult is either Unavailable (Available == false) or a ranking,
// possibly empty when no shops survived cleaning.
type MetricResult struct {
	Metric    MetricSpec    `json:"-"`
	Available bool          `json:"available"`
	Entries   []RankedEntry `json:"entries"`
}

// Unavailable returns the result for a metric whose column is absent.
func Unavailable(spec MetricSpec) MetricResult {
	return MetricResult{Metric: spec}
}

// Top returns at most the first n entries.
func (r MetricResult) Top(n int) []RankedEntry {
	if !r.Available || n <= 0 {
		return nil
	}
	if n > len(r.Entries) {
		n = len(r.Entries)
	}
	return r.Entries[:n]
}

// Leader returns the first entry, if any.
func (r MetricResult) Leader() (RankedEntry, bool) {
	top := r.Top(1)
	if len(top) == 0 {
		return RankedEntry{}, false
	}
	return top[0], true
}

type shopAcc struct {
	shop  string
	sum   decimal.Decimal
	count int64
}

// Aggregate groups rows by shop, averages spec.Column, rounds to two decimals
// and sorts in spec.Order. Ties keep shop-key order.
func Aggregate(t *Table, spec MetricSpec) MetricResult {
	col := t.ColumnIndex(spec.Column)
	shop := t.ColumnIndex(ColShop)
	if col < 0 || shop < 0 {
		return Unavailable(spec)
	}

	var groups []*shopAcc
	index := map[string]*shopAcc{}
	for _, r := range t.Rows {
		key := shopKey(r[shop])
		if key == "" {
			continue
		}
		acc, ok := index[key]
		if !ok {
			acc = &shopAcc{shop: key}
			index[key] = acc
			groups = append(groups, acc)
		}
		if d, ok := r[col].Decimal(); ok {
			acc.sum = acc.sum.Add(d)
			acc.count++
		}
	}

	sort.Slice(groups, func(i, j int) bool { return groups[i].shop < groups[j].shop })

	entries := make([]RankedEntry, 0, len(groups))
	for _, g := range groups {
		e := RankedEntry{Shop: g.shop}
		if g.count > 0 {
			mean := g.sum.Div(decimal.NewFromInt(g.count)).RoundBank(2)
			e.Value = decimal.NullDecimal{Decimal: mean, Valid: true}
		}
		if spec.Suffix != "" {
			e.Label = FormatFloat(e.Value) + spec.Suffix
		}
		entries = append(entries, e)
	}

	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i].Value, entries[j].Value
		if !a.Valid || !b.Valid {
			return a.Valid && !b.Valid
		}
		if spec.Order == Ascending {
			return a.Decimal.LessThan(b.Decimal)
		}
		return a.Decimal.GreaterThan(b.Decimal)
	})
	return MetricResult{Metric: spec, Available: true, Entries: entries}
}

// FormatFloat renders a value the way a float prints: 110 as "110.0", 12.5 as "12.5".
// Null renders as "nan".
func FormatFloat(v decimal.NullDecimal) string {
	if !v.Valid {
		return "nan"
	}
	s := v.Decimal.String()
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

// AnalyzeHighestRevenue ranks shops by mean sales per day, highest first.
func AnalyzeHighestRevenue(t *Table) MetricResult { return Aggregate(t, Revenue) }

// AnalyzeLowestBayTime ranks shops by mean bay time, lowest first.
func AnalyzeLowestBayTime(t *Table) MetricResult { return Aggregate(t, BayTime) }

// AnalyzeHighestCPD ranks shops by mean cars per day, highest first.
func AnalyzeHighestCPD(t *Table) MetricResult { return Aggregate(t, CPD) }

// AnalyzeHighestGrowth ranks shops by mean year-over-year net sales growth.
// Entries carry a percent display label.
func AnalyzeHighestGrowth(t *Table) MetricResult { return Aggregate(t, Growth) }
