package tools

import (
	"context"
	"fmt"

	"github.com/RickAtSnowcap/lucyapi/internal/store"
	"github.com/mark3labs/mcp-go/mcp"
)

// ListProjectsTool handles the get_projects MCP tool.
type ListProjectsTool struct {
	store *store.Store
}

// NewListProjectsTool creates a ListProjectsTool.
func NewListProjectsTool(s *store.Store) *ListProjectsTool {
	return &ListProjectsTool{store: s}
}

// Definition returns the MCP tool definition for get_projects.
func (t *ListProjectsTool) Definition() mcp.Tool {
	return mcp.NewTool("get_projects",
		mcp.WithDescription("List all project headers."),
	)
}

// Handle processes the get_projects tool call.
func (t *ListProjectsTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	projects, err := t.store.ListProjects()
	if err != nil {
		return storeError("list projects", err), nil
	}
	return jsonResult(map[string]any{"projects": projects}), nil
}

// ─── GetProjectTool ─────────────────────────────────────────────────────────

// GetProjectTool handles the get_project MCP tool.
type GetProjectTool struct {
	store *store.Store
}

// NewGetProjectTool creates a GetProjectTool.
func NewGetProjectTool(s *store.Store) *GetProjectTool {
	return &GetProjectTool{store: s}
}

// Definition returns the MCP tool definition for get_project.
func (t *GetProjectTool) Definition() mcp.Tool {
	return mcp.NewTool("get_project",
		mcp.WithDescription("Fetch a project header with its full section tree."),
		mcp.WithNumber("id", mcp.Required(), mcp.Description("Project ID")),
	)
}

// Handle processes the get_project tool call.
func (t *GetProjectTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id := int64Arg(req, "id", 0)
	if id == 0 {
		return mcp.NewToolResultError("'id' is required"), nil
	}

	detail, err := t.store.GetProject(id)
	if err != nil {
		return storeError("get project", err), nil
	}
	return jsonResult(detail), nil
}

// ─── CreateProjectTool ──────────────────────────────────────────────────────

// CreateProjectTool handles the create_project MCP tool.
type CreateProjectTool struct {
	store *store.Store
}

// NewCreateProjectTool creates a CreateProjectTool.
func NewCreateProjectTool(s *store.Store) *CreateProjectTool {
	return &CreateProjectTool{store: s}
}

// Definition returns the MCP tool definition for create_project.
func (t *CreateProjectTool) Definition() mcp.Tool {
	return mcp.NewTool("create_project",
		mcp.WithDescription("Create a project header. Add structure with create_section."),
		mcp.WithString("title", mcp.Required(), mcp.Description("Project title")),
		mcp.WithString("description", mcp.Description("Project description")),
	)
}

// Handle processes the create_project tool call.
func (t *CreateProjectTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	title := req.GetString("title", "")
	if title == "" {
		return mcp.NewToolResultError("'title' is required"), nil
	}

	id, err := t.store.CreateProject(title, req.GetString("description", ""))
	if err != nil {
		return storeError("create project", err), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("Project created: %q (ID: %d)", title, id)), nil
}

// ─── UpdateProjectTool ──────────────────────────────────────────────────────

// UpdateProjectTool handles the update_project MCP tool.
type UpdateProjectTool struct {
	store *store.Store
}

// NewUpdateProjectTool creates an UpdateProjectTool.
func NewUpdateProjectTool(s *store.Store) *UpdateProjectTool {
	return &UpdateProjectTool{store: s}
}

// Definition returns the MCP tool definition for update_project.
func (t *UpdateProjectTool) Definition() mcp.Tool {
	return mcp.NewTool("update_project",
		mcp.WithDescription("Update a project's title and/or description."),
		mcp.WithNumber("id", mcp.Required(), mcp.Description("Project ID")),
		mcp.WithString("title", mcp.Description("New title")),
		mcp.WithString("description", mcp.Description("New description")),
	)
}

// Handle processes the update_project tool call.
func (t *UpdateProjectTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id := int64Arg(req, "id", 0)
	if id == 0 {
		return mcp.NewToolResultError("'id' is required"), nil
	}

	params := store.UpdateProjectParams{
		Title:       stringPtrArg(req, "title"),
		Description: stringPtrArg(req, "description"),
	}
	if params.Title == nil && params.Description == nil {
		return mcp.NewToolResultError("no fields to update"), nil
	}

	p, err := t.store.UpdateProject(id, params)
	if err != nil {
		return storeError("update project", err), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("Project %d updated: %q", p.ID, p.Title)), nil
}

// ─── DeleteProjectTool ──────────────────────────────────────────────────────

// DeleteProjectTool handles the delete_project MCP tool.
type DeleteProjectTool struct {
	store *store.Store
}

// NewDeleteProjectTool creates a DeleteProjectTool.
func NewDeleteProjectTool(s *store.Store) *DeleteProjectTool {
	return &DeleteProjectTool{store: s}
}

// Definition returns the MCP tool definition for delete_project.
func (t *DeleteProjectTool) Definition() mcp.Tool {
	return mcp.NewTool("delete_project",
		mcp.WithDescription("Delete a project and all its sections."),
		mcp.WithNumber("id", mcp.Required(), mcp.Description("Project ID")),
	)
}

// Handle processes the delete_project tool call.
func (t *DeleteProjectTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id := int64Arg(req, "id", 0)
	if id == 0 {
		return mcp.NewToolResultError("'id' is required"), nil
	}

	sections, err := t.store.DeleteProject(id)
	if err != nil {
		return storeError("delete project", err), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("Project %d deleted (%d sections)", id, sections)), nil
}

// ─── CreateSectionTool ──────────────────────────────────────────────────────

// CreateSectionTool handles the create_section MCP tool.
type CreateSectionTool struct {
	store *store.Store
}

// NewCreateSectionTool creates a CreateSectionTool.
func NewCreateSectionTool(s *store.Store) *CreateSectionTool {
	return &CreateSectionTool{store: s}
}

// Definition returns the MCP tool definition for create_section.
func (t *CreateSectionTool) Definition() mcp.Tool {
	return mcp.NewTool("create_section",
		mcp.WithDescription("Create a section under a project. parent_id 0 (the default) makes a top-level section."),
		mcp.WithNumber("project_id", mcp.Required(), mcp.Description("Project ID")),
		mcp.WithString("title", mcp.Required(), mcp.Description("Section title")),
		mcp.WithString("description", mcp.Description("Section body")),
		mcp.WithNumber("parent_id", mcp.Description("Parent section ID (0 for top level)")),
		mcp.WithNumber("position", mcp.Description("Sort position among siblings")),
	)
}

// Handle processes the create_section tool call.
func (t *CreateSectionTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	projectID := int64Arg(req, "project_id", 0)
	title := req.GetString("title", "")
	if projectID == 0 {
		return mcp.NewToolResultError("'project_id' is required"), nil
	}
	if title == "" {
		return mcp.NewToolResultError("'title' is required"), nil
	}

	id, err := t.store.CreateSection(projectID, int64Arg(req, "parent_id", 0),
		title, req.GetString("description", ""), intArg(req, "position", 0))
	if err != nil {
		return storeError("create section", err), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("Section created: %q (ID: %d)", title, id)), nil
}

// ─── GetSectionTool ─────────────────────────────────────────────────────────

// GetSectionTool handles the get_section MCP tool.
type GetSectionTool struct {
	store *store.Store
}

// NewGetSectionTool creates a GetSectionTool.
func NewGetSectionTool(s *store.Store) *GetSectionTool {
	return &GetSectionTool{store: s}
}

// Definition returns the MCP tool definition for get_section.
func (t *GetSectionTool) Definition() mcp.Tool {
	return mcp.NewTool("get_section",
		mcp.WithDescription("Fetch a project section and its immediate children."),
		mcp.WithNumber("project_id", mcp.Required(), mcp.Description("Project ID")),
		mcp.WithNumber("id", mcp.Required(), mcp.Description("Section ID")),
	)
}

// Handle processes the get_section tool call.
func (t *GetSectionTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	projectID := int64Arg(req, "project_id", 0)
	id := int64Arg(req, "id", 0)
	if projectID == 0 || id == 0 {
		return mcp.NewToolResultError("'project_id' and 'id' are required"), nil
	}

	branch, err := t.store.GetSection(projectID, id)
	if err != nil {
		return storeError("get section", err), nil
	}
	return jsonResult(branch), nil
}

// ─── UpdateSectionTool ──────────────────────────────────────────────────────

// UpdateSectionTool handles the update_section MCP tool.
type UpdateSectionTool struct {
	store *store.Store
}

// NewUpdateSectionTool creates an UpdateSectionTool.
func NewUpdateSectionTool(s *store.Store) *UpdateSectionTool {
	return &UpdateSectionTool{store: s}
}

// Definition returns the MCP tool definition for update_section.
func (t *UpdateSectionTool) Definition() mcp.Tool {
	return mcp.NewTool("update_section",
		mcp.WithDescription("Update a section's title, description, and/or position."),
		mcp.WithNumber("project_id", mcp.Required(), mcp.Description("Project ID")),
		mcp.WithNumber("id", mcp.Required(), mcp.Description("Section ID")),
		mcp.WithString("title", mcp.Description("New title")),
		mcp.WithString("description", mcp.Description("New body")),
		mcp.WithNumber("position", mcp.Description("New sort position")),
	)
}

// Handle processes the update_section tool call.
func (t *UpdateSectionTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	projectID := int64Arg(req, "project_id", 0)
	id := int64Arg(req, "id", 0)
	if projectID == 0 || id == 0 {
		return mcp.NewToolResultError("'project_id' and 'id' are required"), nil
	}

	params := store.UpdateSectionParams{
		Title:       stringPtrArg(req, "title"),
		Description: stringPtrArg(req, "description"),
	}
	if v, ok := req.GetArguments()["position"].(float64); ok {
		pos := int(v)
		params.Position = &pos
	}
	if params.Title == nil && params.Description == nil && params.Position == nil {
		return mcp.NewToolResultError("no fields to update"), nil
	}

	sec, err := t.store.UpdateSection(projectID, id, params)
	if err != nil {
		return storeError("update section", err), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("Section %d updated: %q", sec.ID, sec.Title)), nil
}

// ─── DeleteSectionTool ──────────────────────────────────────────────────────

// DeleteSectionTool handles the delete_section MCP tool.
type DeleteSectionTool struct {
	store *store.Store
}

// NewDeleteSectionTool creates a DeleteSectionTool.
func NewDeleteSectionTool(s *store.Store) *DeleteSectionTool {
	return &DeleteSectionTool{store: s}
}

// Definition returns the MCP tool definition for delete_section.
func (t *DeleteSectionTool) Definition() mcp.Tool {
	return mcp.NewTool("delete_section",
		mcp.WithDescription("Delete a section and its whole subtree."),
		mcp.WithNumber("project_id", mcp.Required(), mcp.Description("Project ID")),
		mcp.WithNumber("id", mcp.Required(), mcp.Description("Section ID")),
	)
}

// Handle processes the delete_section tool call.
func (t *DeleteSectionTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	projectID := int64Arg(req, "project_id", 0)
	id := int64Arg(req, "id", 0)
	if projectID == 0 || id == 0 {
		return mcp.NewToolResultError("'project_id' and 'id' are required"), nil
	}

	descendants, err := t.store.DeleteSection(projectID, id)
	if err != nil {
		return storeError("delete section", err), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("Section %d deleted (%d descendants)", id, descendants)), nil
}
