package cmd

import (
	"context"

	"github.com/Earthpatel/Business-Operations-Bot/internal/mcp"
	"github.com/spf13/cobra"
)

// mcpCmd represents the mcp command.
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the opsbot MCP server",
	Long:  `Launch an MCP server on stdio so AI agents can ask KPI questions and fetch rankings as tools.`,
	Args:  cobra.NoArgs,
	RunE: func(_ *cobra.Command, _ []string) error {
		store, err := openHistory()
		if err != nil {
			return err
		}
		defer func() { _ = store.Close() }()
		return mcp.StartMCPServer(context.Background(), newBot(store), version)
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
