package tools

import (
	"context"
	"fmt"

	"github.com/RickAtSnowcap/lucyapi/internal/store"
	"github.com/mark3labs/mcp-go/mcp"
)

// ListMemoriesTool handles the get_memories MCP tool.
type ListMemoriesTool struct {
	store *store.Store
}

// NewListMemoriesTool creates a ListMemoriesTool.
func NewListMemoriesTool(s *store.Store) *ListMemoriesTool {
	return &ListMemoriesTool{store: s}
}

// Definition returns the MCP tool definition for get_memories.
func (t *ListMemoriesTool) Definition() mcp.Tool {
	return mcp.NewTool("get_memories",
		mcp.WithDescription("List all of the agent's memories with full descriptions."),
		mcp.WithString("agent", mcp.Required(), mcp.Description("Agent name")),
	)
}

// Handle processes the get_memories tool call.
func (t *ListMemoriesTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	agent := req.GetString("agent", "")
	if agent == "" {
		return mcp.NewToolResultError("'agent' is required"), nil
	}

	memories, err := t.store.ListMemories(agent)
	if err != nil {
		return storeError("list memories", err), nil
	}
	return jsonResult(map[string]any{"agent": agent, "memories": memories}), nil
}

// ─── GetMemoryTool ──────────────────────────────────────────────────────────

// GetMemoryTool handles the get_memory MCP tool.
type GetMemoryTool struct {
	store *store.Store
}

// NewGetMemoryTool creates a GetMemoryTool.
func NewGetMemoryTool(s *store.Store) *GetMemoryTool {
	return &GetMemoryTool{store: s}
}

// Definition returns the MCP tool definition for get_memory.
func (t *GetMemoryTool) Definition() mcp.Tool {
	return mcp.NewTool("get_memory",
		mcp.WithDescription("Fetch a single memory by ID with its full description."),
		mcp.WithString("agent", mcp.Required(), mcp.Description("Agent name")),
		mcp.WithNumber("id", mcp.Required(), mcp.Description("Memory ID")),
	)
}

// Handle processes the get_memory tool call.
func (t *GetMemoryTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	agent := req.GetString("agent", "")
	id := int64Arg(req, "id", 0)
	if agent == "" || id == 0 {
		return mcp.NewToolResultError("'agent' and 'id' are required"), nil
	}

	m, err := t.store.GetMemory(agent, id)
	if err != nil {
		return storeError("get memory", err), nil
	}
	return jsonResult(m), nil
}

// ─── CreateMemoryTool ───────────────────────────────────────────────────────

// CreateMemoryTool handles the create_memory MCP tool.
type CreateMemoryTool struct {
	store *store.Store
}

// NewCreateMemoryTool creates a CreateMemoryTool.
func NewCreateMemoryTool(s *store.Store) *CreateMemoryTool {
	return &CreateMemoryTool{store: s}
}

// Definition returns the MCP tool definition for create_memory.
func (t *CreateMemoryTool) Definition() mcp.Tool {
	return mcp.NewTool("create_memory",
		mcp.WithDescription(
			"Save a new memory for the agent. Use for durable facts worth recalling "+
				"across sessions — user preferences, decisions, recurring context.",
		),
		mcp.WithString("agent", mcp.Required(), mcp.Description("Agent name")),
		mcp.WithString("title", mcp.Required(), mcp.Description("Short, searchable title")),
		mcp.WithString("description", mcp.Description("Full memory body")),
	)
}

// Handle processes the create_memory tool call.
func (t *CreateMemoryTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	agent := req.GetString("agent", "")
	title := req.GetString("title", "")
	if agent == "" {
		return mcp.NewToolResultError("'agent' is required"), nil
	}
	if title == "" {
		return mcp.NewToolResultError("'title' is required"), nil
	}

	id, err := t.store.CreateMemory(agent, title, req.GetString("description", ""))
	if err != nil {
		return storeError("create memory", err), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("Memory saved: %q (ID: %d)", title, id)), nil
}

// ─── UpdateMemoryTool ───────────────────────────────────────────────────────

// UpdateMemoryTool handles the update_memory MCP tool.
type UpdateMemoryTool struct {
	store *store.Store
}

// NewUpdateMemoryTool creates an UpdateMemoryTool.
func NewUpdateMemoryTool(s *store.Store) *UpdateMemoryTool {
	return &UpdateMemoryTool{store: s}
}

// Definition returns the MCP tool definition for update_memory.
func (t *UpdateMemoryTool) Definition() mcp.Tool {
	return mcp.NewTool("update_memory",
		mcp.WithDescription("Update a memory's title and/or description. Omitted fields keep their value."),
		mcp.WithString("agent", mcp.Required(), mcp.Description("Agent name")),
		mcp.WithNumber("id", mcp.Required(), mcp.Description("Memory ID")),
		mcp.WithString("title", mcp.Description("New title")),
		mcp.WithString("description", mcp.Description("New description")),
	)
}

// Handle processes the update_memory tool call.
func (t *UpdateMemoryTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	agent := req.GetString("agent", "")
	id := int64Arg(req, "id", 0)
	if agent == "" || id == 0 {
		return mcp.NewToolResultError("'agent' and 'id' are required"), nil
	}

	params := store.UpdateMemoryParams{
		Title:       stringPtrArg(req, "title"),
		Description: stringPtrArg(req, "description"),
	}
	if params.Title == nil && params.Description == nil {
		return mcp.NewToolResultError("no fields to update"), nil
	}

	m, err := t.store.UpdateMemory(agent, id, params)
	if err != nil {
		return storeError("update memory", err), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("Memory %d updated: %q", m.ID, m.Title)), nil
}

// ─── DeleteMemoryTool ───────────────────────────────────────────────────────

// DeleteMemoryTool handles the delete_memory MCP tool.
type DeleteMemoryTool struct {
	store *store.Store
}

// NewDeleteMemoryTool creates a DeleteMemoryTool.
func NewDeleteMemoryTool(s *store.Store) *DeleteMemoryTool {
	return &DeleteMemoryTool{store: s}
}

// Definition returns the MCP tool definition for delete_memory.
func (t *DeleteMemoryTool) Definition() mcp.Tool {
	return mcp.NewTool("delete_memory",
		mcp.WithDescription("Delete a memory permanently."),
		mcp.WithString("agent", mcp.Required(), mcp.Description("Agent name")),
		mcp.WithNumber("id", mcp.Required(), mcp.Description("Memory ID")),
	)
}

// Handle processes the delete_memory tool call.
func (t *DeleteMemoryTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	agent := req.GetString("agent", "")
	id := int64Arg(req, "id", 0)
	if agent == "" || id == 0 {
		return mcp.NewToolResultError("'agent' and 'id' are required"), nil
	}

	if err := t.store.DeleteMemory(agent, id); err != nil {
		return storeError("delete memory", err), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("Memory %d deleted", id)), nil
}

// ─── SearchMemoriesTool ─────────────────────────────────────────────────────

// SearchMemoriesTool handles the search_memories MCP tool.
type SearchMemoriesTool struct {
	store *store.Store
}

// NewSearchMemoriesTool creates a SearchMemoriesTool.
func NewSearchMemoriesTool(s *store.Store) *SearchMemoriesTool {
	return &SearchMemoriesTool{store: s}
}

// Definition returns the MCP tool definition for search_memories.
func (t *SearchMemoriesTool) Definition() mcp.Tool {
	return mcp.NewTool("search_memories",
		mcp.WithDescription(
			"Full-text search over the agent's memories. An empty query returns the "+
				"most recently updated memories.",
		),
		mcp.WithString("agent", mcp.Required(), mcp.Description("Agent name")),
		mcp.WithString("query", mcp.Description("Search terms")),
		mcp.WithNumber("limit", mcp.Description("Max results (default 20)")),
	)
}

// Handle processes the search_memories tool call.
func (t *SearchMemoriesTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	agent := req.GetString("agent", "")
	if agent == "" {
		return mcp.NewToolResultError("'agent' is required"), nil
	}

	results, err := t.store.SearchMemories(agent, req.GetString("query", ""), intArg(req, "limit", 20))
	if err != nil {
		return storeError("search memories", err), nil
	}
	if len(results) == 0 {
		return mcp.NewToolResultText("No memories found matching your query."), nil
	}
	return jsonResult(map[string]any{"agent": agent, "results": results}), nil
}
