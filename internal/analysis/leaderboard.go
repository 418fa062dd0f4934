package analysis

import (
	"sort"

	"github.com/samber/lo"
)

// Tiers are the cumulative ranking windows scored by the leaderboard.
var Tiers = []int{1, 3, 5}

// LeaderboardRow counts how many metric windows a shop appears in.
type LeaderboardRow struct {
	Shop string `json:"shop"`
	Top1 int    `json:"top1_count"`
	Top3 int    `json:"top3_count"`
	Top5 int    `json:"top5_count"`
}

// Leaderboard is sorted by Top1, Top3, Top5, all descending.
type Leaderboard struct {
	Rows []LeaderboardRow `json:"rows"`
}

// Head returns at most the first n rows.
func (l Leaderboard) Head(n int) []LeaderboardRow {
	if n <= 0 {
		return nil
	}
	if n > len(l.Rows) {
		n = len(l.Rows)
	}
	return l.Rows[:n]
}

// Row returns the row for a shop.
func (l Leaderboard) Row(shop string) (LeaderboardRow, bool) {
	return lo.Find(l.Rows, func(r LeaderboardRow) bool { return r.Shop == shop })
}

// BuildLeaderboard awards one point per tier for each shop in the first N
// entries of each available ranking. Windows are cumulative: a #1 shop also
// scores in that metric's top-3 and top-5. Unavailable results contribute
// nothing.
func BuildLeaderboard(revenue, baytime, cpd, growth MetricResult) Leaderboard {
	counts := map[string]*LeaderboardRow{}
	for _, res := range []MetricResult{revenue, baytime, cpd, growth} {
		for _, n := range Tiers {
			for _, e := range res.Top(n) {
				row, ok := counts[e.Shop]
				if !ok {
					row = &LeaderboardRow{Shop: e.Shop}
					counts[e.Shop] = row
				}
				switch n {
				case 1:
					row.Top1++
				case 3:
					row.Top3++
				case 5:
					row.Top5++
				}
			}
		}
	}

	shops := lo.Keys(counts)
	sort.Strings(shops)
	rows := lo.Map(shops, func(s string, _ int) LeaderboardRow { return *counts[s] })
	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		if a.Top1 != b.Top1 {
			return a.Top1 > b.Top1
		}
		if a.Top3 != b.Top3 {
			return a.Top3 > b.Top3
		}
		return a.Top5 > b.Top5
	})
	return Leaderboard{Rows: rows}
}
