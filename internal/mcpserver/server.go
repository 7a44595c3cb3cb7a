// Package mcpserver exposes the pipeline as MCP tools over stdio so agents can
// drive the list, investigate and campaign steps directly.
package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"github.com/dekleptocracy/campaign-agent/internal/logging"
	"github.com/dekleptocracy/campaign-agent/internal/model"
	srv "github.com/dekleptocracy/campaign-agent/internal/server"
	"github.com/dekleptocracy/campaign-agent/internal/store"
)

// Server is the MCP server for campaign-agent.
type Server struct {
	mcpServer *server.MCPServer
	pipeline  srv.Pipeline
	logger    *zap.Logger
}

// New creates the server and registers its tools.
func New(p srv.Pipeline, version string, logger *zap.Logger) *Server {
	s := &Server{
		mcpServer: server.NewMCPServer(
			"campaign-agent",
			version,
			server.WithToolCapabilities(true),
		),
		pipeline: p,
		logger:   logging.OrNop(logger),
	}
	s.registerTools()
	return s
}

func (s *Server) registerTools() {
	listTool := mcp.NewTool("list_candidates",
		mcp.WithDescription("List multinational companies known for US lobbying that have not been investigated yet. Each entry is 'name || industry and country'."),
	)

	investigateTool := mcp.NewTool("investigate_company",
		mcp.WithDescription("Research one company's environmental, labor and tax record. The company is remembered and excluded from future candidate lists, even if research fails."),
		mcp.WithString("company",
			mcp.Required(),
			mcp.Description("Company name"),
		),
	)

	campaignTool := mcp.NewTool("generate_campaign",
		mcp.WithDescription("Generate a bilingual X thread and video script about a company for a target market, based on earlier findings."),
		mcp.WithString("company", mcp.Required(), mcp.Description("Company name")),
		mcp.WithString("findings", mcp.Description("Investigation text returned by investigate_company")),
		mcp.WithString("market", mcp.Required(), mcp.Description("Target country or market, e.g. Denmark")),
		mcp.WithString("language", mcp.Required(), mcp.Description("Second output language, e.g. Danish")),
	)

	resetTool := mcp.NewTool("reset_memory",
		mcp.WithDescription("Forget every investigated company. Irreversible."),
	)

	memoryTool := mcp.NewTool("list_memory",
		mcp.WithDescription("Show the companies already investigated, with repeat counts."),
	)

	s.mcpServer.AddTool(listTool, s.handleList)
	s.mcpServer.AddTool(investigateTool, s.handleInvestigate)
	s.mcpServer.AddTool(campaignTool, s.handleCampaign)
	s.mcpServer.AddTool(resetTool, s.handleReset)
	s.mcpServer.AddTool(memoryTool, s.handleMemory)
}

// Run serves on stdin/stdout until the client disconnects.
func (s *Server) Run() error {
	return server.ServeStdio(s.mcpServer)
}

func (s *Server) handleList(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	companies, err := s.pipeline.ListCandidates(ctx)
	if err != nil {
		return s.toolError("list_candidates", err), nil
	}
	return jsonResult(map[string]any{"companies": companies})
}

func (s *Server) handleInvestigate(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	company := request.GetString("company", "")
	details, err := s.pipeline.Investigate(ctx, company)
	if err != nil {
		return s.toolError("investigate_company", err), nil
	}
	return mcp.NewToolResultText(details), nil
}

func (s *Server) handleCampaign(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	content, err := s.pipeline.GenerateCampaign(ctx, model.CampaignRequest{
		Company:  request.GetString("company", ""),
		Findings: request.GetString("findings", ""),
		Market:   request.GetString("market", ""),
		Language: request.GetString("language", ""),
	})
	if err != nil {
		return s.toolError("generate_campaign", err), nil
	}
	return mcp.NewToolResultText(content), nil
}

func (s *Server) handleReset(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if err := s.pipeline.ResetMemory(ctx); err != nil {
		return s.toolError("reset_memory", err), nil
	}
	return mcp.NewToolResultText("Memory has been reset."), nil
}

func (s *Server) handleMemory(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	names, err := s.pipeline.Memory(ctx)
	if err != nil {
		return s.toolError("list_memory", err), nil
	}
	return jsonResult(map[string]any{"companies": names, "stats": store.Summarize(names)})
}

func (s *Server) toolError(tool string, err error) *mcp.CallToolResult {
	s.logger.Warn("tool failed", zap.String("tool", tool), zap.Error(err))
	return mcp.NewToolResultError(fmt.Sprintf("%s failed: %v", tool, err))
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal response: %v", err)), nil
	}
	return mcp.NewToolResultText(string(b)), nil
}
