package cli

import (
	"github.com/spf13/cobra"

	"github.com/custodia-labs/menumem/internal/adapters/driving/mcp"
)

var mcpHTTPAddr string

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the MCP server",
	Long: `Start the Model Context Protocol server so AI assistants can quiz you,
read the stored menu and structure menu text.

By default the server communicates over stdio using JSON-RPC. Use --http to
serve the streamable HTTP transport instead, e.g. for MCP Inspector.

Examples:
  # Stdio mode (default)
  menumem mcp

  # HTTP mode
  menumem mcp --http :8090

Claude Desktop configuration (claude_desktop_config.json):
  {
    "mcpServers": {
      "menumem": {
        "command": "/path/to/menumem",
        "args": ["mcp"]
      }
    }
  }`,
	Annotations: map[string]string{annotationStore: "true", annotationIngest: "true"},
	RunE:        runMCP,
}

func init() {
	mcpCmd.Flags().StringVar(&mcpHTTPAddr, "http", "", "HTTP listen address (empty = use stdio)")
	rootCmd.AddCommand(mcpCmd)
}

func runMCP(cmd *cobra.Command, _ []string) error {
	ports := &mcp.Ports{
		Quiz:   quizService,
		Menu:   menuService,
		Ingest: ingestService,
	}

	server, err := mcp.NewServer(ports)
	if err != nil {
		return err
	}

	if mcpHTTPAddr != "" {
		cmd.Printf("MCP server listening on http://localhost%s\n", mcpHTTPAddr)
		return server.RunHTTP(cmd.Context(), mcpHTTPAddr)
	}

	return server.Run(cmd.Context())
}
