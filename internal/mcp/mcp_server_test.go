package mcp_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Earthpatel/Business-Operations-Bot/internal/analysis"
	"github.com/Earthpatel/Business-Operations-Bot/internal/bot"
	"github.com/Earthpatel/Business-Operations-Bot/internal/history"
	mcp_internal "github.com/Earthpatel/Business-Operations-Bot/internal/mcp"
	"github.com/Earthpatel/Business-Operations-Bot/internal/outwriter"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newServer(t *testing.T, path string) (*server.MCPServer, history.Store) {
	t.Helper()
	store := history.NewFileStore(filepath.Join(t.TempDir(), "chat_history.json"))
	b := bot.New(bot.FileSource(path, analysis.DefaultLoadOptions()), store, slog.New(slog.NewTextHandler(io.Discard, nil)))
	return mcp_internal.NewMCPServer(b, "test"), store
}

func kpiFile(t *testing.T) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "kpi.csv")
	lines := []string{
		"Shop,WeekEndingCY,Sales / Day,CPD - PY,Customers Repeat % - CY,CPD",
		"North,2024-01-06,900,30,0.4,30",
		"South,2024-01-06,700,30,0.4,40",
		"East,2024-01-06,800,30,0.4,20",
	}
	require.NoError(t, os.WriteFile(p, []byte(strings.Join(lines, "\n")+"\n"), 0o644))
	return p
}

func call(t *testing.T, s *server.MCPServer, name string, args map[string]any) *mcp.CallToolResult {
	t.Helper()
	tool := s.GetTool(name)
	require.NotNil(t, tool, "tool %s should exist", name)
	res, err := tool.Handler(context.Background(), mcp.CallToolRequest{
		Params: mcp.CallToolParams{Name: name, Arguments: args},
	})
	require.NoError(t, err, "handlers report failures as error results")
	return res
}

func text(res *mcp.CallToolResult) string { return res.Content[0].(mcp.TextContent).Text }

func TestAskQuestion(t *testing.T) {
	s, store := newServer(t, kpiFile(t))

	res := call(t, s, "ask_question", map[string]any{"question": "top sales"})
	assert.False(t, res.IsError)
	assert.Equal(t, "The shop with the highest average daily sales is **North** with an average of **$900.00** per day.", text(res))

	msgs, err := store.Load()
	require.NoError(t, err)
	assert.Len(t, msgs, 3)

	res = call(t, s, "ask_question", map[string]any{"question": "  "})
	assert.True(t, res.IsError)
	assert.Contains(t, text(res), "question is required")
}

func TestGetMetricRanking(t *testing.T) {
	s, _ := newServer(t, kpiFile(t))

	res := call(t, s, "get_metric_ranking", map[string]any{"metric": "cpd", "limit": 2.0})
	require.False(t, res.IsError, text(res))
	var doc outwriter.MetricDocument
	require.NoError(t, json.Unmarshal([]byte(text(res)), &doc))
	assert.True(t, doc.Available)
	require.Len(t, doc.Entries, 2)
	assert.Equal(t, "South", doc.Entries[0].Shop)
	assert.Equal(t, "North", doc.Entries[1].Shop)

	res = call(t, s, "get_metric_ranking", map[string]any{"metric": "baytime"})
	require.False(t, res.IsError)
	require.NoError(t, json.Unmarshal([]byte(text(res)), &doc))
	assert.False(t, doc.Available)
	assert.Empty(t, doc.Entries)

	res = call(t, s, "get_metric_ranking", map[string]any{"metric": "profit"})
	assert.True(t, res.IsError)
	assert.Contains(t, text(res), "unknown metric")
}

func TestGetLeaderboard(t *testing.T) {
	s, _ := newServer(t, kpiFile(t))
	res := call(t, s, "get_leaderboard", map[string]any{"limit": 1.0})
	require.False(t, res.IsError, text(res))

	var rows []outwriter.LeaderboardRow
	require.NoError(t, json.Unmarshal([]byte(text(res)), &rows))
	require.Len(t, rows, 1)
	assert.Equal(t, int32(1), rows[0].Top1)
	assert.Equal(t, int32(2), rows[0].Top3)
	assert.Equal(t, "North", rows[0].Shop)
}

func TestToolsReportLoadFailure(t *testing.T) {
	s, _ := newServer(t, filepath.Join(t.TempDir(), "missing.xlsx"))

	res := call(t, s, "get_leaderboard", nil)
	assert.True(t, res.IsError)
	assert.Contains(t, text(res), "load data failed")

	res = call(t, s, "ask_question", map[string]any{"question": "leaderboard"})
	assert.False(t, res.IsError)
	assert.Equal(t, bot.FailedToLoad, text(res))
}
