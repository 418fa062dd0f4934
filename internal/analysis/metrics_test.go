package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func cleanedTable(t *testing.T, cols []string, rows ...[]string) *Table {
	t.Helper()
	cleaned, err := CleanAndProcessKPI(rawTable(cols, rows...))
	require.NoError(t, err)
	return cleaned
}

func TestAnalyzeHighestRevenue(t *testing.T) {
	tbl := cleanedTable(t, kpiHeader,
		[]string{"B", "2024-01-06", "50", "30", "0.4"},
		[]string{"A", "2024-01-06", "100", "30", "0.4"},
		[]string{"A", "2024-01-13", "120", "30", "0.4"},
	)
	res := AnalyzeHighestRevenue(tbl)
	require.True(t, res.Available)
	require.Len(t, res.Entries, 2)
	assert.Equal(t, "A", res.Entries[0].Shop)
	assert.True(t, res.Entries[0].Value.Decimal.Equal(dec("110.00")))
	assert.Equal(t, "B", res.Entries[1].Shop)
	assert.True(t, res.Entries[1].Value.Decimal.Equal(dec("50.00")))
	assert.Empty(t, res.Entries[0].Label)
	assert.Equal(t, "Highest Sales", res.Metric.Label)
}

func TestAnalyzeLowestBayTime_Unavailable(t *testing.T) {
	tbl := cleanedTable(t, kpiHeader, []string{"A", "2024-01-06", "100", "30", "0.4"})
	for _, res := range []MetricResult{AnalyzeLowestBayTime(tbl), AnalyzeHighestCPD(tbl), AnalyzeHighestGrowth(tbl)} {
		assert.False(t, res.Available, res.Metric.Key)
		assert.Empty(t, res.Entries)
		assert.Empty(t, res.Top(5))
	}
}

func TestAnalyzeLowestBayTime_Ascending(t *testing.T) {
	cols := append(append([]string{}, kpiHeader...), ColBayTime)
	tbl := cleanedTable(t, cols,
		[]string{"A", "2024-01-06", "100", "30", "0.4", "40"},
		[]string{"B", "2024-01-06", "100", "30", "0.4", "25"},
		[]string{"C", "2024-01-06", "100", "30", "0.4", ""},
		[]string{"D", "2024-01-06", "100", "30", "0.4", "31"},
	)
	res := AnalyzeLowestBayTime(tbl)
	require.True(t, res.Available)
	var shops []string
	for _, e := range res.Entries {
		shops = append(shops, e.Shop)
	}
	// shops with no values sort last
	assert.Equal(t, []string{"B", "D", "A", "C"}, shops)
	assert.False(t, res.Entries[3].Value.Valid)
}

func TestAggregate_RoundingAndTies(t *testing.T) {
	cols := append(append([]string{}, kpiHeader...), ColCPD)
	tbl := cleanedTable(t, cols,
		[]string{"Z", "2024-01-06", "100", "30", "0.4", "1"},
		[]string{"Z", "2024-01-06", "100", "30", "0.4", "2"},
		[]string{"Z", "2024-01-06", "100", "30", "0.4", "2"},
		[]string{"Y", "2024-01-06", "100", "30", "0.4", "5"},
		[]string{"X", "2024-01-06", "100", "30", "0.4", "5"},
		[]string{"W", "2024-01-06", "100", "30", "0.4", "0.125"},
	)
	res := AnalyzeHighestCPD(tbl)
	require.Len(t, res.Entries, 4)
	// X and Y tie; shop-key order decides
	assert.Equal(t, "X", res.Entries[0].Shop)
	assert.Equal(t, "Y", res.Entries[1].Shop)
	assert.Equal(t, "Z", res.Entries[2].Shop)
	assert.True(t, res.Entries[2].Value.Decimal.Equal(dec("1.67")))
	// halves round to even
	assert.True(t, res.Entries[3].Value.Decimal.Equal(dec("0.12")))
}

func TestAnalyzeHighestGrowth_Labels(t *testing.T) {
	cols := append(append([]string{}, kpiHeader...), ColNetSalesYoYPct)
	tbl := cleanedTable(t, cols,
		[]string{"A", "2024-01-06", "100", "30", "0.4", "12.5 %"},
		[]string{"B", "2024-01-06", "100", "30", "0.4", "20%"},
		[]string{"C", "2024-01-06", "100", "30", "0.4", "bad"},
	)
	res := AnalyzeHighestGrowth(tbl)
	require.True(t, res.Available)
	require.Len(t, res.Entries, 3)
	assert.Equal(t, "20.0%", res.Entries[0].Label)
	assert.Equal(t, "12.5%", res.Entries[1].Label)
	assert.Equal(t, "nan%", res.Entries[2].Label)
	assert.Equal(t, "Growth.Label", res.Metric.Label)
}

func TestAggregate_SkipsEmptyShop(t *testing.T) {
	tbl := cleanedTable(t, kpiHeader,
		[]string{"", "2024-01-06", "100", "30", "0.4"},
		[]string{"A", "2024-01-06", "10", "30", "0.4"},
	)
	res := AnalyzeHighestRevenue(tbl)
	require.Len(t, res.Entries, 1)
	assert.Equal(t, "A", res.Entries[0].Shop)
}

func TestAggregate_EmptyButAvailable(t *testing.T) {
	tbl := cleanedTable(t, kpiHeader, []string{"A", "2024-01-06", "0", "30", "0.4"})
	res := AnalyzeHighestRevenue(tbl)
	assert.True(t, res.Available)
	assert.Empty(t, res.Entries)
	_, ok := res.Leader()
	assert.False(t, ok)
}

func TestMetricByKey(t *testing.T) {
	m, ok := MetricByKey(" BayTime ")
	require.True(t, ok)
	assert.Equal(t, ColBayTime, m.Column)
	_, ok = MetricByKey("profit")
	assert.False(t, ok)
}
