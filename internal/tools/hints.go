package tools

import (
	"context"
	"fmt"

	"github.com/RickAtSnowcap/lucyapi/internal/store"
	"github.com/mark3labs/mcp-go/mcp"
)

// ListHintsTool handles the get_hints MCP tool.
type ListHintsTool struct {
	store *store.Store
}

// NewListHintsTool creates a ListHintsTool.
func NewListHintsTool(s *store.Store) *ListHintsTool {
	return &ListHintsTool{store: s}
}

// Definition returns the MCP tool definition for get_hints.
func (t *ListHintsTool) Definition() mcp.Tool {
	return mcp.NewTool("get_hints",
		mcp.WithDescription(
			"Fetch the full hints tree with descriptions. Hints are operator guidance "+
				"shared across all agents.",
		),
	)
}

// Handle processes the get_hints tool call.
func (t *ListHintsTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	hints, err := t.store.ListHints()
	if err != nil {
		return storeError("list hints", err), nil
	}
	return jsonResult(map[string]any{"hints": hints}), nil
}

// ─── GetHintTool ────────────────────────────────────────────────────────────

// GetHintTool handles the get_hint MCP tool.
type GetHintTool struct {
	store *store.Store
}

// NewGetHintTool creates a GetHintTool.
func NewGetHintTool(s *store.Store) *GetHintTool {
	return &GetHintTool{store: s}
}

// Definition returns the MCP tool definition for get_hint.
func (t *GetHintTool) Definition() mcp.Tool {
	return mcp.NewTool("get_hint",
		mcp.WithDescription("Fetch a hint node and its immediate children."),
		mcp.WithNumber("id", mcp.Required(), mcp.Description("Hint node ID")),
	)
}

// Handle processes the get_hint tool call.
func (t *GetHintTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id := int64Arg(req, "id", 0)
	if id == 0 {
		return mcp.NewToolResultError("'id' is required"), nil
	}

	branch, err := t.store.GetHint(id)
	if err != nil {
		return storeError("get hint", err), nil
	}
	return jsonResult(branch), nil
}

// ─── CreateHintTool ─────────────────────────────────────────────────────────

// CreateHintTool handles the create_hint MCP tool.
type CreateHintTool struct {
	store *store.Store
}

// NewCreateHintTool creates a CreateHintTool.
func NewCreateHintTool(s *store.Store) *CreateHintTool {
	return &CreateHintTool{store: s}
}

// Definition returns the MCP tool definition for create_hint.
func (t *CreateHintTool) Definition() mcp.Tool {
	return mcp.NewTool("create_hint",
		mcp.WithDescription("Create a hint node. parent_id 0 (the default) makes a top-level hint."),
		mcp.WithString("title", mcp.Required(), mcp.Description("Hint title")),
		mcp.WithString("description", mcp.Description("Hint body")),
		mcp.WithNumber("parent_id", mcp.Description("Parent node ID (0 for top level)")),
	)
}

// Handle processes the create_hint tool call.
func (t *CreateHintTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	title := req.GetString("title", "")
	if title == "" {
		return mcp.NewToolResultError("'title' is required"), nil
	}

	id, err := t.store.CreateHint(int64Arg(req, "parent_id", 0), title, req.GetString("description", ""))
	if err != nil {
		return storeError("create hint", err), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("Hint created: %q (ID: %d)", title, id)), nil
}

// ─── UpdateHintTool ─────────────────────────────────────────────────────────

// UpdateHintTool handles the update_hint MCP tool.
type UpdateHintTool struct {
	store *store.Store
}

// NewUpdateHintTool creates an UpdateHintTool.
func NewUpdateHintTool(s *store.Store) *UpdateHintTool {
	return &UpdateHintTool{store: s}
}

// Definition returns the MCP tool definition for update_hint.
func (t *UpdateHintTool) Definition() mcp.Tool {
	return mcp.NewTool("update_hint",
		mcp.WithDescription("Update a hint node's title and/or description."),
		mcp.WithNumber("id", mcp.Required(), mcp.Description("Hint node ID")),
		mcp.WithString("title", mcp.Description("New title")),
		mcp.WithString("description", mcp.Description("New description")),
	)
}

// Handle processes the update_hint tool call.
func (t *UpdateHintTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id := int64Arg(req, "id", 0)
	if id == 0 {
		return mcp.NewToolResultError("'id' is required"), nil
	}

	params := store.UpdateHintParams{
		Title:       stringPtrArg(req, "title"),
		Description: stringPtrArg(req, "description"),
	}
	if params.Title == nil && params.Description == nil {
		return mcp.NewToolResultError("no fields to update"), nil
	}

	hint, err := t.store.UpdateHint(id, params)
	if err != nil {
		return storeError("update hint", err), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("Hint %d updated: %q", hint.ID, hint.Title)), nil
}

// ─── DeleteHintTool ─────────────────────────────────────────────────────────

// DeleteHintTool handles the delete_hint MCP tool.
type DeleteHintTool struct {
	store *store.Store
}

// NewDeleteHintTool creates a DeleteHintTool.
func NewDeleteHintTool(s *store.Store) *DeleteHintTool {
	return &DeleteHintTool{store: s}
}

// Definition returns the MCP tool definition for delete_hint.
func (t *DeleteHintTool) Definition() mcp.Tool {
	return mcp.NewTool("delete_hint",
		mcp.WithDescription("Delete a hint node and its whole subtree."),
		mcp.WithNumber("id", mcp.Required(), mcp.Description("Hint node ID")),
	)
}

// Handle processes the delete_hint tool call.
func (t *DeleteHintTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id := int64Arg(req, "id", 0)
	if id == 0 {
		return mcp.NewToolResultError("'id' is required"), nil
	}

	descendants, err := t.store.DeleteHint(id)
	if err != nil {
		return storeError("delete hint", err), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("Hint %d deleted (%d descendants)", id, descendants)), nil
}
