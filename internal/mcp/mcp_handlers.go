package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/Earthpatel/Business-Operations-Bot/internal/analysis"
	"github.com/Earthpatel/Business-Operations-Bot/internal/bot"
	"github.com/Earthpatel/Business-Operations-Bot/internal/outwriter"
	"github.com/mark3labs/mcp-go/mcp"
)

type toolHandler struct {
	bot *bot.Bot
}

func (h *toolHandler) handleAskQuestion(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	q := strings.TrimSpace(request.GetString("question", ""))
	if q == "" {
		return mcp.NewToolResultError("question is required"), nil
	}
	answer, err := h.bot.Respond(q)
	if err != nil {
		h.bot.Logger.Warn("transcript not saved", "err", err)
	}
	return mcp.NewToolResultText(answer), nil
}

func (h *toolHandler) handleGetMetricRanking(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	key := request.GetString("metric", "")
	spec, ok := analysis.MetricByKey(key)
	if !ok {
		return mcp.NewToolResultError(fmt.Sprintf("unknown metric %q: must be revenue, baytime, cpd, or growth", key)), nil
	}
	limit := request.GetInt("limit", 0)
	if limit < 0 {
		return mcp.NewToolResultError("limit must not be negative"), nil
	}

	t, err := h.bot.Load()
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("load data failed: %v", err)), nil
	}
	doc := outwriter.NewMetricDocument(analysis.Aggregate(t, spec), limit)
	return jsonResult(doc)
}

func (h *toolHandler) handleGetLeaderboard(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	limit := request.GetInt("limit", h.bot.LeaderboardRows)
	if limit < 0 {
		return mcp.NewToolResultError("limit must not be negative"), nil
	}

	t, err := h.bot.Load()
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("load data failed: %v", err)), nil
	}
	s := analysis.Summarize(t)
	return jsonResult(outwriter.LeaderboardRows(s.Leaderboard, limit))
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("encode result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(b)), nil
}
