package tools

import (
	"context"

	"github.com/RickAtSnowcap/lucyapi/internal/store"
	"github.com/mark3labs/mcp-go/mcp"
)

// ContextTool handles the get_context MCP tool.
type ContextTool struct {
	store *store.Store
}

// NewContextTool creates a ContextTool.
func NewContextTool(s *store.Store) *ContextTool {
	return &ContextTool{store: s}
}

// Definition returns the MCP tool definition for get_context.
func (t *ContextTool) Definition() mcp.Tool {
	return mcp.NewTool("get_context",
		mcp.WithDescription(
			"Load the agent's full context payload at session start: always-load titles, "+
				"memory titles for ambient recall, plus manifests of preferences and "+
				"projects for on-demand loading. Creates the agent on first use.",
		),
		mcp.WithString("agent",
			mcp.Required(),
			mcp.Description("Agent name"),
		),
	)
}

// Handle processes the get_context tool call.
func (t *ContextTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	agent := req.GetString("agent", "")
	if agent == "" {
		return mcp.NewToolResultError("'agent' is required"), nil
	}

	payload, err := t.store.GetContext(agent)
	if err != nil {
		return storeError("get context", err), nil
	}
	return jsonResult(payload), nil
}
