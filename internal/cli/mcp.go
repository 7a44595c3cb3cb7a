package cli

import (
	"github.com/spf13/cobra"

	"github.com/dekleptocracy/campaign-agent/internal/mcpserver"
)

func init() {
	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "Serve the pipeline as MCP tools over stdio",
		Run:   runMCP,
	}

	RootCmd.AddCommand(cmd)
}

func runMCP(cmd *cobra.Command, args []string) {
	// stdin carries the protocol, so the key must come from config or env.
	if cfg.APIKey == "" {
		exitErr("start", errNoKeyForStdio)
	}

	a, err := newApp(cmd)
	if err != nil {
		exitErr("start", err)
	}
	defer a.close()

	if err := mcpserver.New(a.pipeline, Version, logger).Run(); err != nil {
		exitErr("mcp", err)
	}
}
