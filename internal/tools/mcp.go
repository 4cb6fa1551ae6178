package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
)

// RegisterMCP exposes every registered tool on an MCP server, so external
// agents can drive the scheduler directly instead of going through the
// built-in chat loop.
func RegisterMCP(s *mcpserver.MCPServer, reg *Registry) {
	for _, t := range reg.All() {
		opts := []mcp.ToolOption{mcp.WithDescription(t.Description)}
		for _, p := range t.Params {
			var propOpts []mcp.PropertyOption
			if p.Description != "" {
				propOpts = append(propOpts, mcp.Description(p.Description))
			}
			if p.Required {
				propOpts = append(propOpts, mcp.Required())
			}
			if len(p.Enum) > 0 {
				propOpts = append(propOpts, mcp.Enum(p.Enum...))
			}
			opts = append(opts, mcp.WithString(p.Name, propOpts...))
		}

		tool := mcp.NewTool(t.Name, opts...)
		name := t.Name
		s.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			result := reg.Execute(ctx, name, request.GetArguments())
			if IsFailure(result) {
				return mcp.NewToolResultError(result), nil
			}
			return mcp.NewToolResultText(result), nil
		})
	}
}
