package outwriter

import (
	"fmt"
	"io"
	"strconv"

	"github.com/Earthpatel/Business-Operations-Bot/internal/analysis"
	"github.com/shopspring/decimal"
)

// MetricRow is the flat, file-friendly form of one ranked entry.
type MetricRow struct {
	Rank   int32    `json:"rank" parquet:"rank,snappy"`
	Metric string   `json:"metric" parquet:"metric,snappy"`
	Shop   string   `json:"shop" parquet:"shop,snappy"`
	Value  *float64 `json:"value" parquet:"value,optional,snappy"`
	Label  *string  `json:"label,omitempty" parquet:"label,optional,snappy"`
}

// MetricDocument is the JSON shape of one ranking.
type MetricDocument struct {
	Metric    string      `json:"metric"`
	Label     string      `json:"label"`
	Available bool        `json:"available"`
	Entries   []MetricRow `json:"entries"`
}

// NewMetricDocument wraps the first n entries of res (all when n is 0).
func NewMetricDocument(res analysis.MetricResult, n int) MetricDocument {
	return MetricDocument{
		Metric:    res.Metric.Key,
		Label:     res.Metric.ValueLabel,
		Available: res.Available,
		Entries:   MetricRows(res, n),
	}
}

// MetricRows flattens the first n entries of res (all when n is 0).
func MetricRows(res analysis.MetricResult, n int) []MetricRow {
	if !res.Available {
		return []MetricRow{}
	}
	entries := limit(res.Entries, n)
	rows := make([]MetricRow, 0, len(entries))
	for i, e := range entries {
		row := MetricRow{Rank: int32(i + 1), Metric: res.Metric.Key, Shop: e.Shop, Value: floatPtr(e.Value)}
		if e.Label != "" {
			label := e.Label
			row.Label = &label
		}
		rows = append(rows, row)
	}
	return rows
}

func floatPtr(v decimal.NullDecimal) *float64 {
	if !v.Valid {
		return nil
	}
	f := v.Decimal.InexactFloat64()
	return &f
}

// WriteMetric outputs one ranking in the configured format.
func WriteMetric(res analysis.MetricResult, opt Options) error {
	rows := MetricRows(res, opt.Limit)
	switch opt.Format {
	case JSONOut:
		return writeWithFile(opt.OutputFile, func(w io.Writer) error {
			return writeJSON(w, NewMetricDocument(res, opt.Limit))
		}, "Wrote JSON")
	case CSVOut:
		return writeWithFile(opt.OutputFile, func(w io.Writer) error {
			return writeMetricCSV(w, rows)
		}, "Wrote CSV")
	case ParquetOut:
		return writeParquet(rows, opt.OutputFile)
	default:
		return writeWithFile(opt.OutputFile, func(w io.Writer) error {
			return writeMetricTable(w, res, rows)
		}, "Wrote table")
	}
}

func writeMetricCSV(w io.Writer, rows []MetricRow) error {
	data := make([][]string, 0, len(rows))
	for _, r := range rows {
		value, label := "", ""
		if r.Value != nil {
			value = strconv.FormatFloat(*r.Value, 'f', 2, 64)
		}
		if r.Label != nil {
			label = *r.Label
		}
		data = append(data, []string{strconv.Itoa(int(r.Rank)), r.Metric, r.Shop, value, label})
	}
	return writeCSVWithHeader(w, []string{"rank", "metric", "shop", "value", "label"}, data)
}

func writeMetricTable(w io.Writer, res analysis.MetricResult, rows []MetricRow) error {
	if !res.Available {
		_, err := fmt.Fprintf(w, "%s\n", UnavailableMessage(res.Metric))
		return err
	}
	if len(rows) == 0 {
		_, err := fmt.Fprintf(w, "No shops met the data quality filters for %s.\n", res.Metric.Key)
		return err
	}
	data := make([][]string, 0, len(rows))
	for i, r := range rows {
		shop := r.Shop
		if i == 0 {
			shop = LeaderColor.Sprint(shop)
		}
		value := analysis.FormatFloat(res.Entries[i].Value)
		if r.Label != nil {
			value = *r.Label
		}
		data = append(data, []string{strconv.Itoa(int(r.Rank)), shop, value})
	}
	if err := renderTable(w, []string{"Rank", "Shop", res.Metric.ValueLabel}, data, true); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "Showing top %d of %d shops\n", len(rows), len(res.Entries))
	return err
}

// UnavailableMessage is the user-facing note for a metric whose column is absent.
func UnavailableMessage(m analysis.MetricSpec) string {
	switch m.Key {
	case analysis.BayTime.Key:
		return "BayTime data is not available."
	case analysis.CPD.Key:
		return "CPD data is not available."
	case analysis.Growth.Key:
		return "Sales growth data is not available."
	default:
		return fmt.Sprintf("%s data is not available.", m.Column)
	}
}
