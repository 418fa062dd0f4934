package cmd

import (
	"fmt"
	"log/slog"
	"os"

	cfgpkg "github.com/Earthpatel/Business-Operations-Bot/internal/config"
	"github.com/Earthpatel/Business-Operations-Bot/internal/outwriter"
	"github.com/spf13/cobra"
)

// version is set by the linker at build time.
var version = "dev"

var (
	cfgFile       string
	debug         bool
	flagData      string
	flagSheet     string
	flagDelimiter string

	// Loaded configuration
	cfg *cfgpkg.Global

	logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
)

var rootCmd = &cobra.Command{
	Use:     "opsbot",
	Short:   "Business Operations Bot: answer questions about weekly shop KPIs",
	Long:    `opsbot loads a weekly shop KPI report (CSV or Excel), cleans it, and answers questions about daily sales, bay time, cars per day and year-over-year growth, including a cross-metric leaderboard.`,
	Version: version,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		setupLogger()
	},
	SilenceUsage: true,
}

// Execute is the entry point called by main.main()
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "✗ Error:", err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(loadConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ~/.opsbot/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&flagData, "data", "", "KPI report file (.csv, .xlsx, .xls); overrides data_dir/data_file")
	rootCmd.PersistentFlags().StringVar(&flagSheet, "sheet", "", "Excel worksheet name (default: first sheet)")
	rootCmd.PersistentFlags().StringVar(&flagDelimiter, "delimiter", "", "CSV delimiter: ',', ';', '|', or 'tab'")
}

func loadConfig() {
	c, err := cfgpkg.Load(cfgFile)
	if err != nil {
		// Non-fatal: fall back to defaults
		fmt.Fprintf(os.Stderr, "⚠ Warning: failed to load config: %v\n", err)
		c = &cfgpkg.Global{
			DataDir: "data", DataFile: "KPI_Report.xlsx", CSVDelimiter: ",",
			LogsDir: "logs", HistoryFile: "chat_history.json", HistoryBackend: "json",
			LeaderboardRows: 5, HeadRows: 5, Color: "auto",
		}
	}
	cfg = c

	if flagSheet != "" {
		cfg.SheetName = flagSheet
	}
	if flagDelimiter != "" {
		cfg.CSVDelimiter = flagDelimiter
	}
	outwriter.ConfigureColor(cfg.Color)
}

func setupLogger() {
	level := slog.LevelWarn
	if debug {
		level = slog.LevelDebug
	}
	logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
}
