package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Global configuration structure.
type Global struct {
	DataDir      string `mapstructure:"data_dir" yaml:"data_dir"`
	DataFile     string `mapstructure:"data_file" yaml:"data_file"`
	SheetName    string `mapstructure:"sheet_name" yaml:"sheet_name"`
	CSVDelimiter string `mapstructure:"csv_delimiter" yaml:"csv_delimiter"`

	// Chat transcript
	LogsDir        string `mapstructure:"logs_dir" yaml:"logs_dir"`
	HistoryFile    string `mapstructure:"history_file" yaml:"history_file"`
	HistoryBackend string `mapstructure:"history_backend" yaml:"history_backend"`

	// Output
	LeaderboardRows int    `mapstructure:"leaderboard_rows" yaml:"leaderboard_rows"`
	HeadRows        int    `mapstructure:"head_rows" yaml:"head_rows"`
	Color           string `mapstructure:"color" yaml:"color"`
}

// Keys lists every configuration key in display order.
var Keys = []string{
	"data_dir",
	"data_file",
	"sheet_name",
	"csv_delimiter",
	"logs_dir",
	"history_file",
	"history_backend",
	"leaderboard_rows",
	"head_rows",
	"color",
}

// DataPath returns the configured KPI file location.
func (c *Global) DataPath() string { return filepath.Join(c.DataDir, c.DataFile) }

// HistoryPath returns the configured transcript location.
func (c *Global) HistoryPath() string { return filepath.Join(c.LogsDir, c.HistoryFile) }

// Delimiter returns the first rune of CSVDelimiter, or ',' when unset.
// "\t" and "tab" select a tab.
func (c *Global) Delimiter() rune {
	switch c.CSVDelimiter {
	case "":
		return ','
	case `\t`, "tab":
		return '\t'
	}
	return []rune(c.CSVDelimiter)[0]
}

func configPath(cfgFile string) (string, error) {
	if cfgFile != "" {
		return cfgFile, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	return filepath.Join(home, ".opsbot", "config.yaml"), nil
}

// Save writes the given configuration to the cfgFile path. If cfgFile is empty,
// it writes to ~/.opsbot/config.yaml, creating the directory if necessary.
func Save(c *Global, cfgFile string) error {
	path, err := configPath(cfgFile)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir config dir: %w", err)
	}
	b, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal yaml: %w", err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Load loads configuration from file, env, and defaults.
// Precedence: env > config file > defaults.
func Load(cfgFile string) (*Global, error) {
	v := viper.New()
	v.SetEnvPrefix("OPSBOT")
	v.AutomaticEnv()

	v.SetDefault("data_dir", "data")
	v.SetDefault("data_file", "KPI_Report.xlsx")
	v.SetDefault("sheet_name", "")
	v.SetDefault("csv_delimiter", ",")
	v.SetDefault("logs_dir", "logs")
	v.SetDefault("history_file", "chat_history.json")
	v.SetDefault("history_backend", "json")
	v.SetDefault("leaderboard_rows", 5)
	v.SetDefault("head_rows", 5)
	v.SetDefault("color", "auto")

	path, err := configPath(cfgFile)
	if err != nil {
		return nil, err
	}
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	// optional read
	if err := v.ReadInConfig(); err != nil && cfgFile != "" {
		if _, statErr := os.Stat(cfgFile); statErr == nil {
			return nil, fmt.Errorf("read config %s: %w", cfgFile, err)
		}
	}

	var c Global
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if c.LeaderboardRows <= 0 {
		c.LeaderboardRows = 5
	}
	if c.HeadRows <= 0 {
		c.HeadRows = 5
	}
	return &c, nil
}
