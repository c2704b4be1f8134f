package tools

import (
	"context"

	"github.com/RickAtSnowcap/lucyapi/internal/store"
	"github.com/mark3labs/mcp-go/mcp"
)

// CreateSessionTool handles the create_session MCP tool.
type CreateSessionTool struct {
	store *store.Store
}

// NewCreateSessionTool creates a CreateSessionTool.
func NewCreateSessionTool(s *store.Store) *CreateSessionTool {
	return &CreateSessionTool{store: s}
}

// Definition returns the MCP tool definition for create_session.
func (t *CreateSessionTool) Definition() mcp.Tool {
	return mcp.NewTool("create_session",
		mcp.WithDescription("Record the start of a work session for an agent."),
		mcp.WithString("agent", mcp.Required(), mcp.Description("Agent name")),
		mcp.WithString("project", mcp.Description("Project the session is focused on")),
	)
}

// Handle processes the create_session tool call.
func (t *CreateSessionTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	agent := req.GetString("agent", "")
	if agent == "" {
		return mcp.NewToolResultError("'agent' is required"), nil
	}

	sess, err := t.store.CreateSession(agent, req.GetString("project", ""))
	if err != nil {
		return storeError("create session", err), nil
	}
	return jsonResult(sess), nil
}

// ─── LastSessionTool ────────────────────────────────────────────────────────

// LastSessionTool handles the get_last_session MCP tool.
type LastSessionTool struct {
	store *store.Store
}

// NewLastSessionTool creates a LastSessionTool.
func NewLastSessionTool(s *store.Store) *LastSessionTool {
	return &LastSessionTool{store: s}
}

// Definition returns the MCP tool definition for get_last_session.
func (t *LastSessionTool) Definition() mcp.Tool {
	return mcp.NewTool("get_last_session",
		mcp.WithDescription("Fetch the most recently started session for an agent."),
		mcp.WithString("agent", mcp.Required(), mcp.Description("Agent name")),
	)
}

// Handle processes the get_last_session tool call.
func (t *LastSessionTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	agent := req.GetString("agent", "")
	if agent == "" {
		return mcp.NewToolResultError("'agent' is required"), nil
	}

	sess, err := t.store.LastSession(agent)
	if err != nil {
		return storeError("get last session", err), nil
	}
	if sess == nil {
		return mcp.NewToolResultText("No sessions recorded yet."), nil
	}
	return jsonResult(sess), nil
}
