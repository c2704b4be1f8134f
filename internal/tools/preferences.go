package tools

import (
	"context"
	"fmt"

	"github.com/RickAtSnowcap/lucyapi/internal/store"
	"github.com/mark3labs/mcp-go/mcp"
)

// ListPreferencesTool handles the get_preferences MCP tool.
type ListPreferencesTool struct {
	store *store.Store
}

// NewListPreferencesTool creates a ListPreferencesTool.
func NewListPreferencesTool(s *store.Store) *ListPreferencesTool {
	return &ListPreferencesTool{store: s}
}

// Definition returns the MCP tool definition for get_preferences.
func (t *ListPreferencesTool) Definition() mcp.Tool {
	return mcp.NewTool("get_preferences",
		mcp.WithDescription(
			"List the agent's top-level preference categories. Drill into a branch "+
				"with get_preference.",
		),
		mcp.WithString("agent", mcp.Required(), mcp.Description("Agent name")),
	)
}

// Handle processes the get_preferences tool call.
func (t *ListPreferencesTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	agent := req.GetString("agent", "")
	if agent == "" {
		return mcp.NewToolResultError("'agent' is required"), nil
	}

	prefs, err := t.store.ListPreferences(agent)
	if err != nil {
		return storeError("list preferences", err), nil
	}
	return jsonResult(map[string]any{"agent": agent, "preferences": prefs}), nil
}

// ─── GetPreferenceTool ──────────────────────────────────────────────────────

// GetPreferenceTool handles the get_preference MCP tool.
type GetPreferenceTool struct {
	store *store.Store
}

// NewGetPreferenceTool creates a GetPreferenceTool.
func NewGetPreferenceTool(s *store.Store) *GetPreferenceTool {
	return &GetPreferenceTool{store: s}
}

// Definition returns the MCP tool definition for get_preference.
func (t *GetPreferenceTool) Definition() mcp.Tool {
	return mcp.NewTool("get_preference",
		mcp.WithDescription("Fetch a preference node and its immediate children."),
		mcp.WithString("agent", mcp.Required(), mcp.Description("Agent name")),
		mcp.WithNumber("id", mcp.Required(), mcp.Description("Preference node ID")),
	)
}

// Handle processes the get_preference tool call.
func (t *GetPreferenceTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	agent := req.GetString("agent", "")
	id := int64Arg(req, "id", 0)
	if agent == "" || id == 0 {
		return mcp.NewToolResultError("'agent' and 'id' are required"), nil
	}

	branch, err := t.store.GetPreference(agent, id)
	if err != nil {
		return storeError("get preference", err), nil
	}
	return jsonResult(branch), nil
}

// ─── CreatePreferenceTool ───────────────────────────────────────────────────

// CreatePreferenceTool handles the create_preference MCP tool.
type CreatePreferenceTool struct {
	store *store.Store
}

// NewCreatePreferenceTool creates a CreatePreferenceTool.
func NewCreatePreferenceTool(s *store.Store) *CreatePreferenceTool {
	return &CreatePreferenceTool{store: s}
}

// Definition returns the MCP tool definition for create_preference.
func (t *CreatePreferenceTool) Definition() mcp.Tool {
	return mcp.NewTool("create_preference",
		mcp.WithDescription("Create a preference node. parent_id 0 (the default) makes a top-level category."),
		mcp.WithString("agent", mcp.Required(), mcp.Description("Agent name")),
		mcp.WithString("title", mcp.Required(), mcp.Description("Node title")),
		mcp.WithString("description", mcp.Description("Node body")),
		mcp.WithNumber("parent_id", mcp.Description("Parent node ID (0 for top level)")),
	)
}

// Handle processes the create_preference tool call.
func (t *CreatePreferenceTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	agent := req.GetString("agent", "")
	title := req.GetString("title", "")
	if agent == "" {
		return mcp.NewToolResultError("'agent' is required"), nil
	}
	if title == "" {
		return mcp.NewToolResultError("'title' is required"), nil
	}

	id, err := t.store.CreatePreference(agent, int64Arg(req, "parent_id", 0), title, req.GetString("description", ""))
	if err != nil {
		return storeError("create preference", err), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("Preference created: %q (ID: %d)", title, id)), nil
}

// ─── UpdatePreferenceTool ───────────────────────────────────────────────────

// UpdatePreferenceTool handles the update_preference MCP tool.
type UpdatePreferenceTool struct {
	store *store.Store
}

// NewUpdatePreferenceTool creates an UpdatePreferenceTool.
func NewUpdatePreferenceTool(s *store.Store) *UpdatePreferenceTool {
	return &UpdatePreferenceTool{store: s}
}

// Definition returns the MCP tool definition for update_preference.
func (t *UpdatePreferenceTool) Definition() mcp.Tool {
	return mcp.NewTool("update_preference",
		mcp.WithDescription("Update a preference node's title and/or description."),
		mcp.WithString("agent", mcp.Required(), mcp.Description("Agent name")),
		mcp.WithNumber("id", mcp.Required(), mcp.Description("Preference node ID")),
		mcp.WithString("title", mcp.Description("New title")),
		mcp.WithString("description", mcp.Description("New description")),
	)
}

// Handle processes the update_preference tool call.
func (t *UpdatePreferenceTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	agent := req.GetString("agent", "")
	id := int64Arg(req, "id", 0)
	if agent == "" || id == 0 {
		return mcp.NewToolResultError("'agent' and 'id' are required"), nil
	}

	params := store.UpdatePreferenceParams{
		Title:       stringPtrArg(req, "title"),
		Description: stringPtrArg(req, "description"),
	}
	if params.Title == nil && params.Description == nil {
		return mcp.NewToolResultError("no fields to update"), nil
	}

	node, err := t.store.UpdatePreference(agent, id, params)
	if err != nil {
		return storeError("update preference", err), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("Preference %d updated: %q", node.ID, node.Title)), nil
}

// ─── DeletePreferenceTool ───────────────────────────────────────────────────

// DeletePreferenceTool handles the delete_preference MCP tool.
type DeletePreferenceTool struct {
	store *store.Store
}

// NewDeletePreferenceTool creates a DeletePreferenceTool.
func NewDeletePreferenceTool(s *store.Store) *DeletePreferenceTool {
	return &DeletePreferenceTool{store: s}
}

// Definition returns the MCP tool definition for delete_preference.
func (t *DeletePreferenceTool) Definition() mcp.Tool {
	return mcp.NewTool("delete_preference",
		mcp.WithDescription("Delete a preference node and its whole subtree."),
		mcp.WithString("agent", mcp.Required(), mcp.Description("Agent name")),
		mcp.WithNumber("id", mcp.Required(), mcp.Description("Preference node ID")),
	)
}

// Handle processes the delete_preference tool call.
func (t *DeletePreferenceTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	agent := req.GetString("agent", "")
	id := int64Arg(req, "id", 0)
	if agent == "" || id == 0 {
		return mcp.NewToolResultError("'agent' and 'id' are required"), nil
	}

	descendants, err := t.store.DeletePreference(agent, id)
	if err != nil {
		return storeError("delete preference", err), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("Preference %d deleted (%d descendants)", id, descendants)), nil
}
