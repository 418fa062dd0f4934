package cmd

import (
	"fmt"

	"github.com/Earthpatel/Business-Operations-Bot/internal/analysis"
	"github.com/Earthpatel/Business-Operations-Bot/internal/bot"
	"github.com/Earthpatel/Business-Operations-Bot/internal/history"
	"github.com/Earthpatel/Business-Operations-Bot/internal/outwriter"
	"github.com/Earthpatel/Business-Operations-Bot/internal/utils"
)

func loadOptions() analysis.LoadOptions {
	return analysis.LoadOptions{Delimiter: cfg.Delimiter(), SheetName: cfg.SheetName}
}

// dataPath is the KPI file the bot reads; existence is checked at load time.
func dataPath() string {
	if flagData != "" {
		return flagData
	}
	return cfg.DataPath()
}

// loadKPI resolves, loads and cleans the configured KPI file. It returns the
// cleaned table and the raw row count.
func loadKPI() (*analysis.Table, int, error) {
	path, err := utils.ResolveDataFile(flagData, cfg.DataDir, cfg.DataFile)
	if err != nil {
		return nil, 0, &analysis.LoadError{Path: dataPath(), Err: err}
	}
	logger.Debug("loading KPI report", "path", path, "sheet", cfg.SheetName)
	raw, err := analysis.LoadTable(path, loadOptions())
	if err != nil {
		return nil, 0, err
	}
	cleaned, err := analysis.CleanAndProcessKPI(raw)
	if err != nil {
		return nil, 0, fmt.Errorf("clean %s: %w", path, err)
	}
	logger.Debug("cleaned KPI report", "raw_rows", raw.Len(), "rows", cleaned.Len())
	return cleaned, raw.Len(), nil
}

func openHistory() (history.Store, error) {
	return history.Open(history.Backend(cfg.HistoryBackend), cfg.HistoryPath())
}

func newBot(store history.Store) *bot.Bot {
	b := bot.New(bot.FileSource(dataPath(), loadOptions()), store, logger)
	b.HeadRows = cfg.HeadRows
	b.LeaderboardRows = cfg.LeaderboardRows
	return b
}

// outputOptions validates the shared --output/--output-file/--limit flags.
func outputOptions(format, file string, limit int) (outwriter.Options, error) {
	f, err := outwriter.ParseFormat(format)
	if err != nil {
		return outwriter.Options{}, err
	}
	if limit < 0 {
		return outwriter.Options{}, fmt.Errorf("--limit must not be negative")
	}
	return outwriter.Options{Format: f, OutputFile: file, Limit: limit}, nil
}
