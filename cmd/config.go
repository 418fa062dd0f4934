package cmd

import (
	"fmt"
	"strconv"
	"strings"

	cfgpkg "github.com/Earthpatel/Business-Operations-Bot/internal/config"
	"github.com/Earthpatel/Business-Operations-Bot/internal/history"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View or set opsbot configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		if cfg == nil {
			fmt.Fprintln(out, "No config loaded")
			return nil
		}
		for _, key := range cfgpkg.Keys {
			fmt.Fprintf(out, "%s: %s\n", key, configValue(cfg, key))
		}
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a config value and save to disk",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, val := args[0], args[1]
		// Save the loaded values, not the --sheet/--delimiter overrides applied to cfg.
		c, err := cfgpkg.Load(cfgFile)
		if err != nil {
			return err
		}
		switch key {
		case "data_dir":
			c.DataDir = val
		case "data_file":
			c.DataFile = val
		case "sheet_name":
			c.SheetName = val
		case "csv_delimiter":
			if val == "" {
				return fmt.Errorf("csv_delimiter must not be empty")
			}
			c.CSVDelimiter = val
		case "logs_dir":
			c.LogsDir = val
		case "history_file":
			c.HistoryFile = val
		case "history_backend":
			switch b := history.Backend(strings.ToLower(val)); b {
			case history.BackendJSON, history.BackendSQLite, history.BackendNone:
				c.HistoryBackend = string(b)
			default:
				return fmt.Errorf("invalid history_backend: %s (use json, sqlite or none)", val)
			}
		case "leaderboard_rows", "head_rows":
			i, err := strconv.Atoi(val)
			if err != nil || i < 1 {
				return fmt.Errorf("invalid positive int for %s: %v", key, val)
			}
			if key == "head_rows" {
				c.HeadRows = i
			} else {
				c.LeaderboardRows = i
			}
		case "color":
			switch strings.ToLower(val) {
			case "auto", "yes", "no":
				c.Color = strings.ToLower(val)
			default:
				return fmt.Errorf("invalid color: %s (use auto, yes or no)", val)
			}
		default:
			return fmt.Errorf("unknown key: %s", key)
		}
		if err := cfgpkg.Save(c, cfgFile); err != nil {
			return err
		}
		cfg = c
		fmt.Fprintln(cmd.OutOrStdout(), "Saved config")
		return nil
	},
}

func configValue(c *cfgpkg.Global, key string) string {
	switch key {
	case "data_dir":
		return c.DataDir
	case "data_file":
		return c.DataFile
	case "sheet_name":
		return c.SheetName
	case "csv_delimiter":
		return strconv.Quote(c.CSVDelimiter)
	case "logs_dir":
		return c.LogsDir
	case "history_file":
		return c.HistoryFile
	case "history_backend":
		return c.HistoryBackend
	case "leaderboard_rows":
		return strconv.Itoa(c.LeaderboardRows)
	case "head_rows":
		return strconv.Itoa(c.HeadRows)
	case "color":
		return c.Color
	}
	return ""
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
}
