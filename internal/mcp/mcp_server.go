// Package mcp exposes the operations bot over the Model Context Protocol (MCP).
package mcp

import (
	"context"

	"github.com/Earthpatel/Business-Operations-Bot/internal/bot"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// NewMCPServer initializes and configures the MCP server without starting it.
func NewMCPServer(b *bot.Bot, version string) *server.MCPServer {
	s := server.NewMCPServer(
		"Business Operations Bot",
		version,
		server.WithLogging(),
	)

	h := &toolHandler{bot: b}

	s.AddTool(mcp.NewTool("ask_question",
		mcp.WithDescription("Ask a question about shop performance, e.g. 'top sales', 'lowest bay time', 'leaderboard'."),
		mcp.WithString("question", mcp.Description("The question to answer."), mcp.Required()),
	), h.handleAskQuestion)

	s.AddTool(mcp.NewTool("get_metric_ranking",
		mcp.WithDescription("Rank shops by the average of one KPI metric."),
		mcp.WithString("metric", mcp.Description("Metric to rank by."), mcp.Required(), mcp.Enum("revenue", "baytime", "cpd", "growth")),
		mcp.WithNumber("limit", mcp.Description("Limit the number of shops returned.")),
	), h.handleGetMetricRanking)

	s.AddTool(mcp.NewTool("get_leaderboard",
		mcp.WithDescription("Cross-metric leaderboard counting top-1, top-3 and top-5 placements per shop."),
		mcp.WithNumber("limit", mcp.Description("Limit the number of rows returned.")),
	), h.handleGetLeaderboard)

	return s
}

// StartMCPServer serves the tools over stdio until the client disconnects.
func StartMCPServer(_ context.Context, b *bot.Bot, version string) error {
	return server.ServeStdio(NewMCPServer(b, version))
}
