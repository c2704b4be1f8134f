package tools

import (
	"context"
	"fmt"

	"github.com/RickAtSnowcap/lucyapi/internal/store"
	"github.com/mark3labs/mcp-go/mcp"
)

// ListAlwaysLoadTool handles the get_always_load MCP tool.
type ListAlwaysLoadTool struct {
	store *store.Store
}

// NewListAlwaysLoadTool creates a ListAlwaysLoadTool.
func NewListAlwaysLoadTool(s *store.Store) *ListAlwaysLoadTool {
	return &ListAlwaysLoadTool{store: s}
}

// Definition returns the MCP tool definition for get_always_load.
func (t *ListAlwaysLoadTool) Definition() mcp.Tool {
	return mcp.NewTool("get_always_load",
		mcp.WithDescription(
			"Fetch the agent's full always-load tree with descriptions: core identity "+
				"and standards content loaded at every session start.",
		),
		mcp.WithString("agent", mcp.Required(), mcp.Description("Agent name")),
	)
}

// Handle processes the get_always_load tool call.
func (t *ListAlwaysLoadTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	agent := req.GetString("agent", "")
	if agent == "" {
		return mcp.NewToolResultError("'agent' is required"), nil
	}

	nodes, err := t.store.ListAlwaysLoad(agent)
	if err != nil {
		return storeError("list always-load", err), nil
	}
	return jsonResult(map[string]any{"agent": agent, "always_load": nodes}), nil
}

// ─── GetAlwaysLoadTool ──────────────────────────────────────────────────────

// GetAlwaysLoadTool handles the get_always_load_item MCP tool.
type GetAlwaysLoadTool struct {
	store *store.Store
}

// NewGetAlwaysLoadTool creates a GetAlwaysLoadTool.
func NewGetAlwaysLoadTool(s *store.Store) *GetAlwaysLoadTool {
	return &GetAlwaysLoadTool{store: s}
}

// Definition returns the MCP tool definition for get_always_load_item.
func (t *GetAlwaysLoadTool) Definition() mcp.Tool {
	return mcp.NewTool("get_always_load_item",
		mcp.WithDescription("Fetch an always-load node and its immediate children."),
		mcp.WithString("agent", mcp.Required(), mcp.Description("Agent name")),
		mcp.WithNumber("id", mcp.Required(), mcp.Description("Always-load node ID")),
	)
}

// Handle processes the get_always_load_item tool call.
func (t *GetAlwaysLoadTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	agent := req.GetString("agent", "")
	id := int64Arg(req, "id", 0)
	if agent == "" || id == 0 {
		return mcp.NewToolResultError("'agent' and 'id' are required"), nil
	}

	branch, err := t.store.GetAlwaysLoad(agent, id)
	if err != nil {
		return storeError("get always-load item", err), nil
	}
	return jsonResult(branch), nil
}

// ─── CreateAlwaysLoadTool ───────────────────────────────────────────────────

// CreateAlwaysLoadTool handles the create_always_load MCP tool.
type CreateAlwaysLoadTool struct {
	store *store.Store
}

// NewCreateAlwaysLoadTool creates a CreateAlwaysLoadTool.
func NewCreateAlwaysLoadTool(s *store.Store) *CreateAlwaysLoadTool {
	return &CreateAlwaysLoadTool{store: s}
}

// Definition returns the MCP tool definition for create_always_load.
func (t *CreateAlwaysLoadTool) Definition() mcp.Tool {
	return mcp.NewTool("create_always_load",
		mcp.WithDescription("Create an always-load node. parent_id 0 (the default) makes a top-level node."),
		mcp.WithString("agent", mcp.Required(), mcp.Description("Agent name")),
		mcp.WithString("title", mcp.Required(), mcp.Description("Node title")),
		mcp.WithString("description", mcp.Description("Node body")),
		mcp.WithNumber("parent_id", mcp.Description("Parent node ID (0 for top level)")),
	)
}

// Handle processes the create_always_load tool call.
func (t *CreateAlwaysLoadTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	agent := req.GetString("agent", "")
	title := req.GetString("title", "")
	if agent == "" {
		return mcp.NewToolResultError("'agent' is required"), nil
	}
	if title == "" {
		return mcp.NewToolResultError("'title' is required"), nil
	}

	id, err := t.store.CreateAlwaysLoad(agent, int64Arg(req, "parent_id", 0), title, req.GetString("description", ""))
	if err != nil {
		return storeError("create always-load node", err), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("Always-load node created: %q (ID: %d)", title, id)), nil
}

// ─── UpdateAlwaysLoadTool ───────────────────────────────────────────────────

// UpdateAlwaysLoadTool handles the update_always_load MCP tool.
type UpdateAlwaysLoadTool struct {
	store *store.Store
}

// NewUpdateAlwaysLoadTool creates an UpdateAlwaysLoadTool.
func NewUpdateAlwaysLoadTool(s *store.Store) *UpdateAlwaysLoadTool {
	return &UpdateAlwaysLoadTool{store: s}
}

// Definition returns the MCP tool definition for update_always_load.
func (t *UpdateAlwaysLoadTool) Definition() mcp.Tool {
	return mcp.NewTool("update_always_load",
		mcp.WithDescription("Update an always-load node's title and/or description."),
		mcp.WithString("agent", mcp.Required(), mcp.Description("Agent name")),
		mcp.WithNumber("id", mcp.Required(), mcp.Description("Always-load node ID")),
		mcp.WithString("title", mcp.Description("New title")),
		mcp.WithString("description", mcp.Description("New description")),
	)
}

// Handle processes the update_always_load tool call.
func (t *UpdateAlwaysLoadTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	agent := req.GetString("agent", "")
	id := int64Arg(req, "id", 0)
	if agent == "" || id == 0 {
		return mcp.NewToolResultError("'agent' and 'id' are required"), nil
	}

	params := store.UpdateAlwaysLoadParams{
		Title:       stringPtrArg(req, "title"),
		Description: stringPtrArg(req, "description"),
	}
	if params.Title == nil && params.Description == nil {
		return mcp.NewToolResultError("no fields to update"), nil
	}

	node, err := t.store.UpdateAlwaysLoad(agent, id, params)
	if err != nil {
		return storeError("update always-load node", err), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("Always-load node %d updated: %q", node.ID, node.Title)), nil
}

// ─── DeleteAlwaysLoadTool ───────────────────────────────────────────────────

// DeleteAlwaysLoadTool handles the delete_always_load MCP tool.
type DeleteAlwaysLoadTool struct {
	store *store.Store
}

// NewDeleteAlwaysLoadTool creates a DeleteAlwaysLoadTool.
func NewDeleteAlwaysLoadTool(s *store.Store) *DeleteAlwaysLoadTool {
	return &DeleteAlwaysLoadTool{store: s}
}

// Definition returns the MCP tool definition for delete_always_load.
func (t *DeleteAlwaysLoadTool) Definition() mcp.Tool {
	return mcp.NewTool("delete_always_load",
		mcp.WithDescription("Delete an always-load node and its whole subtree."),
		mcp.WithString("agent", mcp.Required(), mcp.Description("Agent name")),
		mcp.WithNumber("id", mcp.Required(), mcp.Description("Always-load node ID")),
	)
}

// Handle processes the delete_always_load tool call.
func (t *DeleteAlwaysLoadTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	agent := req.GetString("agent", "")
	id := int64Arg(req, "id", 0)
	if agent == "" || id == 0 {
		return mcp.NewToolResultError("'agent' and 'id' are required"), nil
	}

	descendants, err := t.store.DeleteAlwaysLoad(agent, id)
	if err != nil {
		return storeError("delete always-load node", err), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("Always-load node %d deleted (%d descendants)", id, descendants)), nil
}
