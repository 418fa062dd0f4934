package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Earthpatel/Business-Operations-Bot/internal/analysis"
	"github.com/Earthpatel/Business-Operations-Bot/internal/bot"
	"github.com/Earthpatel/Business-Operations-Bot/internal/history"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// resetFlags restores every flag in the command tree to its default so values
// do not leak between invocations.
func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

// runCmd executes the root command with args and returns stdout.
func runCmd(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func mustRun(t *testing.T, args ...string) string {
	t.Helper()
	out, err := runCmd(t, args...)
	if err != nil {
		t.Fatalf("command %v failed: %v", args, err)
	}
	return out
}

// setupEnv isolates config and transcript under a temp HOME and writes a KPI fixture.
func setupEnv(t *testing.T) (home, data string) {
	t.Helper()
	home = t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("OPSBOT_LOGS_DIR", filepath.Join(home, "logs"))
	t.Setenv("OPSBOT_COLOR", "no")

	data = filepath.Join(home, "KPI_Report.csv")
	lines := []string{
		"Shop,WeekEndingCY,Sales / Day,CPD - PY,Customers Repeat % - CY,BayTime,CPD,Net Sales - YoY %",
		`North,2024-01-06,"$1,200.00",30,0.4,25,30,12.5 %`,
		`North,2024-01-13,"$1,269.00",30,0.4,26,32,12.5 %`,
		"South,2024-01-06,$900,28,0.3,31,22,4%",
		"East,2024-01-06,$0,28,0.3,20,40,40%",
	}
	require.NoError(t, os.WriteFile(data, []byte(strings.Join(lines, "\n")+"\n"), 0o644))
	return home, data
}

func TestCLI_AskRecordsHistory(t *testing.T) {
	home, data := setupEnv(t)

	out := mustRun(t, "ask", "--data", data, "highest", "revenue")
	assert.Equal(t,
		"The shop with the highest average daily sales is **North** with an average of **$1,234.50** per day.\n",
		out)

	raw, err := os.ReadFile(filepath.Join(home, "logs", "chat_history.json"))
	require.NoError(t, err)
	var msgs []history.Message
	require.NoError(t, json.Unmarshal(raw, &msgs))
	require.Len(t, msgs, 3)
	assert.Equal(t, history.Greeting, msgs[0].Content)
	assert.Equal(t, "highest revenue", msgs[1].Content)
	assert.Equal(t, history.RoleAssistant, msgs[2].Role)

	shown := mustRun(t, "history", "show")
	assert.Contains(t, shown, "You: highest revenue")

	mustRun(t, "history", "clear")
	_, err = os.Stat(filepath.Join(home, "logs", "chat_history.json"))
	assert.True(t, os.IsNotExist(err))
}

func TestCLI_AskMissingDataFile(t *testing.T) {
	home, _ := setupEnv(t)

	out := mustRun(t, "ask", "--data", filepath.Join(home, "nope.csv"), "leaderboard")
	assert.Equal(t, bot.FailedToLoad+"\n", out)
}

func TestCLI_MetricCSV(t *testing.T) {
	home, data := setupEnv(t)
	dest := filepath.Join(home, "revenue.csv")

	mustRun(t, "metric", "revenue", "--data", data, "--output", "csv", "--output-file", dest)

	b, err := os.ReadFile(dest)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(b)), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "rank,metric,shop,value,label", lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "1,revenue,North,1234.50,"), lines[1])
	assert.True(t, strings.HasPrefix(lines[2], "2,revenue,South,900.00,"), lines[2])
}

func TestCLI_MetricUnknown(t *testing.T) {
	_, data := setupEnv(t)

	_, err := runCmd(t, "metric", "profit", "--data", data)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown metric")
}

func TestCLI_MissingDataFileIsLoadError(t *testing.T) {
	home, _ := setupEnv(t)
	missing := filepath.Join(home, "nope.csv")

	for _, args := range [][]string{
		{"metric", "revenue", "--data", missing},
		{"leaderboard", "--data", missing},
		{"head", "--data", missing},
		{"report", "--data", missing},
	} {
		_, err := runCmd(t, args...)
		require.Error(t, err, args[0])
		var le *analysis.LoadError
		require.True(t, errors.As(err, &le), args[0])
		assert.Equal(t, missing, le.Path)
		assert.True(t, errors.Is(err, os.ErrNotExist), args[0])
	}
}

func TestCLI_LeaderboardJSON(t *testing.T) {
	home, data := setupEnv(t)
	dest := filepath.Join(home, "leaderboard.json")

	mustRun(t, "leaderboard", "--data", data, "-o", "json", "--output-file", dest)

	b, err := os.ReadFile(dest)
	require.NoError(t, err)
	var rows []struct {
		Rank int    `json:"rank"`
		Shop string `json:"shop"`
		Top1 int    `json:"top1_count"`
		Top3 int    `json:"top3_count"`
		Top5 int    `json:"top5_count"`
	}
	require.NoError(t, json.Unmarshal(b, &rows))
	require.Len(t, rows, 2)
	assert.Equal(t, "North", rows[0].Shop)
	assert.Equal(t, 4, rows[0].Top1)
	assert.Equal(t, "South", rows[1].Shop)
	assert.Equal(t, 0, rows[1].Top1)
	assert.Equal(t, 4, rows[1].Top5)
}

func TestCLI_ReportToFile(t *testing.T) {
	home, data := setupEnv(t)
	dest := filepath.Join(home, "report.md")

	out := mustRun(t, "report", "--data", data, "-o", dest)
	assert.Contains(t, out, "✓ Wrote report to")

	b, err := os.ReadFile(dest)
	require.NoError(t, err)
	md := string(b)
	assert.Contains(t, md, "[DATASET SUMMARY]")
	assert.Contains(t, md, "Rows: 3 (of 4 loaded)")
	assert.Contains(t, md, "[LEADERBOARD]")
}

func TestCLI_ConfigSetAndShow(t *testing.T) {
	home, _ := setupEnv(t)

	mustRun(t, "config", "set", "head_rows", "3")
	_, err := os.Stat(filepath.Join(home, ".opsbot", "config.yaml"))
	require.NoError(t, err)

	out := mustRun(t, "config", "show")
	assert.Contains(t, out, "head_rows: 3")

	_, err = runCmd(t, "config", "set", "history_backend", "postgres")
	require.Error(t, err)
	_, err = runCmd(t, "config", "set", "nope", "1")
	require.Error(t, err)
}

func TestRunChat(t *testing.T) {
	_, data := setupEnv(t)
	// runChat is called directly, so load config the way cobra would.
	resetFlags(rootCmd)
	loadConfig()
	flagData = data
	t.Cleanup(func() { flagData = "" })

	store, err := openHistory()
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	in := strings.NewReader("lowest bay time\n\nquit\nleaderboard\n")
	var out, errOut bytes.Buffer
	require.NoError(t, runChat(context.Background(), in, &out, &errOut, newBot(store), false))

	assert.Equal(t, "The shop with the lowest average bay time is **North** with **25.5 minutes**.\n", out.String())
	assert.Empty(t, errOut.String())

	msgs, err := store.Load()
	require.NoError(t, err)
	assert.Len(t, msgs, 3)
}

func TestRunChat_InteractiveOpensWithGreeting(t *testing.T) {
	_, data := setupEnv(t)
	resetFlags(rootCmd)
	loadConfig()
	flagData = data
	t.Cleanup(func() { flagData = "" })

	store, err := openHistory()
	require.NoError(t, err)
	defer func() { _ = store.Close() }()
	b := newBot(store)

	// an earlier session leaves a bot answer at the end of the transcript
	_, err = b.Respond("highest revenue")
	require.NoError(t, err)

	var out, errOut bytes.Buffer
	require.NoError(t, runChat(context.Background(), strings.NewReader("exit\n"), &out, &errOut, b, true))
	assert.Equal(t, history.Greeting+"\n> ", out.String())
}
