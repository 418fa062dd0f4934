package outwriter

import (
	"bytes"
	"io"
	"strconv"

	"github.com/Earthpatel/Business-Operations-Bot/internal/analysis"
)

// LeaderboardRow is the flat, file-friendly form of one leaderboard row.
type LeaderboardRow struct {
	Rank int32  `json:"rank" parquet:"rank,snappy"`
	Shop string `json:"shop" parquet:"shop,snappy"`
	Top1 int32  `json:"top1_count" parquet:"top1_count,snappy"`
	Top3 int32  `json:"top3_count" parquet:"top3_count,snappy"`
	Top5 int32  `json:"top5_count" parquet:"top5_count,snappy"`
}

// LeaderboardRows flattens the first n rows (all when n is 0).
func LeaderboardRows(lb analysis.Leaderboard, n int) []LeaderboardRow {
	src := limit(lb.Rows, n)
	rows := make([]LeaderboardRow, 0, len(src))
	for i, r := range src {
		rows = append(rows, LeaderboardRow{
			Rank: int32(i + 1),
			Shop: r.Shop,
			Top1: int32(r.Top1),
			Top3: int32(r.Top3),
			Top5: int32(r.Top5),
		})
	}
	return rows
}

// WriteLeaderboard outputs the leaderboard in the configured format.
func WriteLeaderboard(lb analysis.Leaderboard, opt Options) error {
	rows := LeaderboardRows(lb, opt.Limit)
	switch opt.Format {
	case JSONOut:
		return writeWithFile(opt.OutputFile, func(w io.Writer) error {
			return writeJSON(w, rows)
		}, "Wrote JSON")
	case CSVOut:
		return writeWithFile(opt.OutputFile, func(w io.Writer) error {
			data := make([][]string, 0, len(rows))
			for _, r := range rows {
				data = append(data, []string{
					strconv.Itoa(int(r.Rank)), r.Shop,
					strconv.Itoa(int(r.Top1)), strconv.Itoa(int(r.Top3)), strconv.Itoa(int(r.Top5)),
				})
			}
			return writeCSVWithHeader(w, []string{"rank", "shop", "top1_count", "top3_count", "top5_count"}, data)
		}, "Wrote CSV")
	case ParquetOut:
		return writeParquet(rows, opt.OutputFile)
	default:
		return writeWithFile(opt.OutputFile, func(w io.Writer) error {
			return writeLeaderboardTable(w, rows)
		}, "Wrote table")
	}
}

func writeLeaderboardTable(w io.Writer, rows []LeaderboardRow) error {
	data := make([][]string, 0, len(rows))
	for i, r := range rows {
		shop := r.Shop
		if i == 0 {
			shop = LeaderColor.Sprint(shop)
		}
		data = append(data, []string{
			strconv.Itoa(int(r.Rank)), shop,
			strconv.Itoa(int(r.Top1)), strconv.Itoa(int(r.Top3)), strconv.Itoa(int(r.Top5)),
		})
	}
	return renderTable(w, []string{"Rank", "Shop", "Top1", "Top3", "Top5"}, data, true)
}

// FormatLeaderboardText renders leaderboard rows as a plain text table.
func FormatLeaderboardText(rows []analysis.LeaderboardRow) string {
	var buf bytes.Buffer
	flat := LeaderboardRows(analysis.Leaderboard{Rows: rows}, 0)
	data := make([][]string, 0, len(flat))
	for _, r := range flat {
		data = append(data, []string{r.Shop, strconv.Itoa(int(r.Top1)), strconv.Itoa(int(r.Top3)), strconv.Itoa(int(r.Top5))})
	}
	if err := renderTable(&buf, []string{"Shop", "Top1", "Top3", "Top5"}, data, false); err != nil {
		return ""
	}
	return buf.String()
}
