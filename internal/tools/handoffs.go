package tools

import (
	"context"
	"fmt"

	"github.com/RickAtSnowcap/lucyapi/internal/store"
	"github.com/mark3labs/mcp-go/mcp"
)

// CreateHandoffTool handles the create_handoff MCP tool.
type CreateHandoffTool struct {
	store *store.Store
}

// NewCreateHandoffTool creates a CreateHandoffTool.
func NewCreateHandoffTool(s *store.Store) *CreateHandoffTool {
	return &CreateHandoffTool{store: s}
}

// Definition returns the MCP tool definition for create_handoff.
func (t *CreateHandoffTool) Definition() mcp.Tool {
	return mcp.NewTool("create_handoff",
		mcp.WithDescription("Queue a handoff prompt for an agent to pick up in a later session."),
		mcp.WithString("agent", mcp.Required(), mcp.Description("Agent the handoff is addressed to")),
		mcp.WithString("title", mcp.Required(), mcp.Description("Short handoff title")),
		mcp.WithString("prompt", mcp.Required(), mcp.Description("Full prompt to deliver at pickup")),
		mcp.WithString("created_by", mcp.Description("Who queued the handoff")),
	)
}

// Handle processes the create_handoff tool call.
func (t *CreateHandoffTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	agent := req.GetString("agent", "")
	title := req.GetString("title", "")
	prompt := req.GetString("prompt", "")
	if agent == "" || title == "" || prompt == "" {
		return mcp.NewToolResultError("'agent', 'title' and 'prompt' are required"), nil
	}

	id, err := t.store.CreateHandoff(agent, title, prompt, req.GetString("created_by", ""))
	if err != nil {
		return storeError("create handoff", err), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("Handoff queued: %q (ID: %d)", title, id)), nil
}

// ─── ListHandoffsTool ───────────────────────────────────────────────────────

// ListHandoffsTool handles the get_handoffs MCP tool.
type ListHandoffsTool struct {
	store *store.Store
}

// NewListHandoffsTool creates a ListHandoffsTool.
func NewListHandoffsTool(s *store.Store) *ListHandoffsTool {
	return &ListHandoffsTool{store: s}
}

// Definition returns the MCP tool definition for get_handoffs.
func (t *ListHandoffsTool) Definition() mcp.Tool {
	return mcp.NewTool("get_handoffs",
		mcp.WithDescription("List an agent's pending (not yet picked up) handoffs, oldest first."),
		mcp.WithString("agent", mcp.Required(), mcp.Description("Agent name")),
	)
}

// Handle processes the get_handoffs tool call.
func (t *ListHandoffsTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	agent := req.GetString("agent", "")
	if agent == "" {
		return mcp.NewToolResultError("'agent' is required"), nil
	}

	handoffs, err := t.store.ListPendingHandoffs(agent)
	if err != nil {
		return storeError("list handoffs", err), nil
	}
	if len(handoffs) == 0 {
		return mcp.NewToolResultText("No pending handoffs."), nil
	}
	return jsonResult(map[string]any{"handoffs": handoffs}), nil
}

// ─── GetHandoffTool ─────────────────────────────────────────────────────────

// GetHandoffTool handles the get_handoff MCP tool.
type GetHandoffTool struct {
	store *store.Store
}

// NewGetHandoffTool creates a GetHandoffTool.
func NewGetHandoffTool(s *store.Store) *GetHandoffTool {
	return &GetHandoffTool{store: s}
}

// Definition returns the MCP tool definition for get_handoff.
func (t *GetHandoffTool) Definition() mcp.Tool {
	return mcp.NewTool("get_handoff",
		mcp.WithDescription("Fetch a handoff without marking it picked up."),
		mcp.WithString("agent", mcp.Required(), mcp.Description("Agent name")),
		mcp.WithNumber("id", mcp.Required(), mcp.Description("Handoff ID")),
	)
}

// Handle processes the get_handoff tool call.
func (t *GetHandoffTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	agent := req.GetString("agent", "")
	id := int64Arg(req, "id", 0)
	if agent == "" || id == 0 {
		return mcp.NewToolResultError("'agent' and 'id' are required"), nil
	}

	h, err := t.store.GetHandoff(agent, id)
	if err != nil {
		return storeError("get handoff", err), nil
	}
	return jsonResult(h), nil
}

// ─── PickupHandoffTool ──────────────────────────────────────────────────────

// PickupHandoffTool handles the pickup_handoff MCP tool.
type PickupHandoffTool struct {
	store *store.Store
}

// NewPickupHandoffTool creates a PickupHandoffTool.
func NewPickupHandoffTool(s *store.Store) *PickupHandoffTool {
	return &PickupHandoffTool{store: s}
}

// Definition returns the MCP tool definition for pickup_handoff.
func (t *PickupHandoffTool) Definition() mcp.Tool {
	return mcp.NewTool("pickup_handoff",
		mcp.WithDescription("Claim a pending handoff and return its prompt. A handoff can only be picked up once."),
		mcp.WithString("agent", mcp.Required(), mcp.Description("Agent name")),
		mcp.WithNumber("id", mcp.Required(), mcp.Description("Handoff ID")),
	)
}

// Handle processes the pickup_handoff tool call.
func (t *PickupHandoffTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	agent := req.GetString("agent", "")
	id := int64Arg(req, "id", 0)
	if agent == "" || id == 0 {
		return mcp.NewToolResultError("'agent' and 'id' are required"), nil
	}

	h, err := t.store.PickupHandoff(agent, id)
	if err != nil {
		return storeError("pickup handoff", err), nil
	}
	return jsonResult(h), nil
}

// ─── DeleteHandoffTool ──────────────────────────────────────────────────────

// DeleteHandoffTool handles the delete_handoff MCP tool.
type DeleteHandoffTool struct {
	store *store.Store
}

// NewDeleteHandoffTool creates a DeleteHandoffTool.
func NewDeleteHandoffTool(s *store.Store) *DeleteHandoffTool {
	return &DeleteHandoffTool{store: s}
}

// Definition returns the MCP tool definition for delete_handoff.
func (t *DeleteHandoffTool) Definition() mcp.Tool {
	return mcp.NewTool("delete_handoff",
		mcp.WithDescription("Delete a handoff whether or not it was picked up."),
		mcp.WithString("agent", mcp.Required(), mcp.Description("Agent name")),
		mcp.WithNumber("id", mcp.Required(), mcp.Description("Handoff ID")),
	)
}

// Handle processes the delete_handoff tool call.
func (t *DeleteHandoffTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	agent := req.GetString("agent", "")
	id := int64Arg(req, "id", 0)
	if agent == "" || id == 0 {
		return mcp.NewToolResultError("'agent' and 'id' are required"), nil
	}

	if err := t.store.DeleteHandoff(agent, id); err != nil {
		return storeError("delete handoff", err), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("Handoff %d deleted", id)), nil
}
