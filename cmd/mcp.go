package cmd

import (
	"github.com/huangsam/clonecache/internal/mcp"
	"github.com/spf13/cobra"
)

// mcpCmd represents the mcp command.
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the Clonecache MCP server",
	Long:  `Launch an MCP server that allows AI agents to fetch and manage cached repositories via standard tools.`,
	PreRunE: func(cmd *cobra.Command, args []string) error {
		// Stdout carries the protocol, so setup must not write to it.
		return sharedSetup(rootCtx, cmd, args)
	},
	RunE: func(_ *cobra.Command, _ []string) error {
		return mcp.StartMCPServer(rootCtx, cfg, manager)
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
