package cmd

import (
	"fmt"

	"github.com/Earthpatel/Business-Operations-Bot/internal/analysis"
	"github.com/Earthpatel/Business-Operations-Bot/internal/utils"
	"github.com/spf13/cobra"
)

var (
	repOutputPath string
	repSampleRows int
	repTopN       int
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Write a markdown summary of the KPI report and every ranking",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if repSampleRows < 0 {
			return fmt.Errorf("--sample-rows must not be negative")
		}
		if repTopN < 1 {
			return fmt.Errorf("--top must be at least 1")
		}
		t, raw, err := loadKPI()
		if err != nil {
			return err
		}
		md := analysis.BuildReport(t, raw, repSampleRows, repTopN).Markdown()

		if repOutputPath == "" {
			fmt.Fprint(cmd.OutOrStdout(), md)
			return nil
		}
		if err := utils.SafeWriteFile(repOutputPath, []byte(md)); err != nil {
			return fmt.Errorf("write output: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Wrote report to %s\n", repOutputPath)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(reportCmd)
	reportCmd.Flags().StringVarP(&repOutputPath, "output", "o", "", "write the report to this file instead of stdout")
	reportCmd.Flags().IntVar(&repSampleRows, "sample-rows", 5, "number of cleaned rows to include")
	reportCmd.Flags().IntVar(&repTopN, "top", 5, "number of shops per ranking")
}
