package cmd

import (
	"fmt"
	"strings"

	"github.com/Earthpatel/Business-Operations-Bot/internal/analysis"
	"github.com/Earthpatel/Business-Operations-Bot/internal/outwriter"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

var (
	metricLimit      int
	metricOutput     string
	metricOutputFile string

	lbLimit      int
	lbOutput     string
	lbOutputFile string

	headRows       int
	headOutput     string
	headOutputFile string
)

var metricCmd = &cobra.Command{
	Use:   "metric <revenue|baytime|cpd|growth>",
	Short: "Rank shops by one KPI",
	Long: `Rank every shop by the mean of one KPI over the cleaned report.

  revenue  highest Sales / Day first
  baytime  lowest BayTime first
  cpd      highest CPD first
  growth   highest Net Sales - YoY % first`,
	Args: cobra.ExactArgs(1),
	ValidArgs: lo.Map(analysis.Metrics(), func(m analysis.MetricSpec, _ int) string {
		return m.Key
	}),
	RunE: func(cmd *cobra.Command, args []string) error {
		spec, ok := analysis.MetricByKey(args[0])
		if !ok {
			keys := lo.Map(analysis.Metrics(), func(m analysis.MetricSpec, _ int) string { return m.Key })
			return fmt.Errorf("unknown metric %q (use %s)", args[0], strings.Join(keys, ", "))
		}
		opt, err := outputOptions(metricOutput, metricOutputFile, metricLimit)
		if err != nil {
			return err
		}
		t, _, err := loadKPI()
		if err != nil {
			return err
		}
		return outwriter.WriteMetric(analysis.Aggregate(t, spec), opt)
	},
}

var leaderboardCmd = &cobra.Command{
	Use:   "leaderboard",
	Short: "Count top-1, top-3 and top-5 placements across all metrics",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		n := lbLimit
		if !cmd.Flags().Changed("limit") {
			n = cfg.LeaderboardRows
		}
		opt, err := outputOptions(lbOutput, lbOutputFile, n)
		if err != nil {
			return err
		}
		t, _, err := loadKPI()
		if err != nil {
			return err
		}
		return outwriter.WriteLeaderboard(analysis.Summarize(t).Leaderboard, opt)
	},
}

var headCmd = &cobra.Command{
	Use:   "head",
	Short: "Print the first rows of the cleaned report",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		n := headRows
		if !cmd.Flags().Changed("rows") {
			n = cfg.HeadRows
		}
		if n < 0 {
			return fmt.Errorf("--rows must not be negative")
		}
		opt, err := outputOptions(headOutput, headOutputFile, 0)
		if err != nil {
			return err
		}
		t, _, err := loadKPI()
		if err != nil {
			return err
		}
		return outwriter.WriteRows(t.Head(n), opt)
	},
}

func init() {
	rootCmd.AddCommand(metricCmd)
	rootCmd.AddCommand(leaderboardCmd)
	rootCmd.AddCommand(headCmd)

	metricCmd.Flags().IntVarP(&metricLimit, "limit", "n", 5, "number of shops to show (0 for all)")
	metricCmd.Flags().StringVarP(&metricOutput, "output", "o", "text", "output format: text, json, csv, parquet")
	metricCmd.Flags().StringVar(&metricOutputFile, "output-file", "", "write to this file instead of stdout")

	leaderboardCmd.Flags().IntVarP(&lbLimit, "limit", "n", 5, "number of shops to show (0 for all; default from leaderboard_rows)")
	leaderboardCmd.Flags().StringVarP(&lbOutput, "output", "o", "text", "output format: text, json, csv, parquet")
	leaderboardCmd.Flags().StringVar(&lbOutputFile, "output-file", "", "write to this file instead of stdout")

	headCmd.Flags().IntVarP(&headRows, "rows", "n", 5, "number of rows to show (default from head_rows)")
	headCmd.Flags().StringVarP(&headOutput, "output", "o", "text", "output format: text, json, csv")
	headCmd.Flags().StringVar(&headOutputFile, "output-file", "", "write to this file instead of stdout")
}
