package tools

import (
	"context"
	"fmt"

	"github.com/RickAtSnowcap/lucyapi/internal/store"
	"github.com/mark3labs/mcp-go/mcp"
)

// ListWikisTool handles the get_wikis MCP tool.
type ListWikisTool struct {
	store *store.Store
}

// NewListWikisTool creates a ListWikisTool.
func NewListWikisTool(s *store.Store) *ListWikisTool {
	return &ListWikisTool{store: s}
}

// Definition returns the MCP tool definition for get_wikis.
func (t *ListWikisTool) Definition() mcp.Tool {
	return mcp.NewTool("get_wikis",
		mcp.WithDescription("List all wiki headers."),
	)
}

// Handle processes the get_wikis tool call.
func (t *ListWikisTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	wikis, err := t.store.ListWikis()
	if err != nil {
		return storeError("list wikis", err), nil
	}
	return jsonResult(map[string]any{"wikis": wikis}), nil
}

// ─── GetWikiTool ────────────────────────────────────────────────────────────

// GetWikiTool handles the get_wiki MCP tool.
type GetWikiTool struct {
	store *store.Store
}

// NewGetWikiTool creates a GetWikiTool.
func NewGetWikiTool(s *store.Store) *GetWikiTool {
	return &GetWikiTool{store: s}
}

// Definition returns the MCP tool definition for get_wiki.
func (t *GetWikiTool) Definition() mcp.Tool {
	return mcp.NewTool("get_wiki",
		mcp.WithDescription("Fetch a wiki header with its full section tree."),
		mcp.WithNumber("id", mcp.Required(), mcp.Description("Wiki ID")),
	)
}

// Handle processes the get_wiki tool call.
func (t *GetWikiTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id := int64Arg(req, "id", 0)
	if id == 0 {
		return mcp.NewToolResultError("'id' is required"), nil
	}

	detail, err := t.store.GetWiki(id)
	if err != nil {
		return storeError("get wiki", err), nil
	}
	return jsonResult(detail), nil
}

// ─── CreateWikiTool ─────────────────────────────────────────────────────────

// CreateWikiTool handles the create_wiki MCP tool.
type CreateWikiTool struct {
	store *store.Store
}

// NewCreateWikiTool creates a CreateWikiTool.
func NewCreateWikiTool(s *store.Store) *CreateWikiTool {
	return &CreateWikiTool{store: s}
}

// Definition returns the MCP tool definition for create_wiki.
func (t *CreateWikiTool) Definition() mcp.Tool {
	return mcp.NewTool("create_wiki",
		mcp.WithDescription("Create a wiki header. Add content with create_wiki_section."),
		mcp.WithString("title", mcp.Required(), mcp.Description("Wiki title")),
		mcp.WithString("description", mcp.Description("Wiki description")),
	)
}

// Handle processes the create_wiki tool call.
func (t *CreateWikiTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	title := req.GetString("title", "")
	if title == "" {
		return mcp.NewToolResultError("'title' is required"), nil
	}

	id, err := t.store.CreateWiki(title, req.GetString("description", ""))
	if err != nil {
		return storeError("create wiki", err), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("Wiki created: %q (ID: %d)", title, id)), nil
}

// ─── UpdateWikiTool ─────────────────────────────────────────────────────────

// UpdateWikiTool handles the update_wiki MCP tool.
type UpdateWikiTool struct {
	store *store.Store
}

// NewUpdateWikiTool creates an UpdateWikiTool.
func NewUpdateWikiTool(s *store.Store) *UpdateWikiTool {
	return &UpdateWikiTool{store: s}
}

// Definition returns the MCP tool definition for update_wiki.
func (t *UpdateWikiTool) Definition() mcp.Tool {
	return mcp.NewTool("update_wiki",
		mcp.WithDescription("Update a wiki's title and/or description."),
		mcp.WithNumber("id", mcp.Required(), mcp.Description("Wiki ID")),
		mcp.WithString("title", mcp.Description("New title")),
		mcp.WithString("description", mcp.Description("New description")),
	)
}

// Handle processes the update_wiki tool call.
func (t *UpdateWikiTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id := int64Arg(req, "id", 0)
	if id == 0 {
		return mcp.NewToolResultError("'id' is required"), nil
	}

	params := store.UpdateWikiParams{
		Title:       stringPtrArg(req, "title"),
		Description: stringPtrArg(req, "description"),
	}
	if params.Title == nil && params.Description == nil {
		return mcp.NewToolResultError("no fields to update"), nil
	}

	w, err := t.store.UpdateWiki(id, params)
	if err != nil {
		return storeError("update wiki", err), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("Wiki %d updated: %q", w.ID, w.Title)), nil
}

// ─── DeleteWikiTool ─────────────────────────────────────────────────────────

// DeleteWikiTool handles the delete_wiki MCP tool.
type DeleteWikiTool struct {
	store *store.Store
}

// NewDeleteWikiTool creates a DeleteWikiTool.
func NewDeleteWikiTool(s *store.Store) *DeleteWikiTool {
	return &DeleteWikiTool{store: s}
}

// Definition returns the MCP tool definition for delete_wiki.
func (t *DeleteWikiTool) Definition() mcp.Tool {
	return mcp.NewTool("delete_wiki",
		mcp.WithDescription("Delete a wiki and all its sections."),
		mcp.WithNumber("id", mcp.Required(), mcp.Description("Wiki ID")),
	)
}

// Handle processes the delete_wiki tool call.
func (t *DeleteWikiTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id := int64Arg(req, "id", 0)
	if id == 0 {
		return mcp.NewToolResultError("'id' is required"), nil
	}

	sections, err := t.store.DeleteWiki(id)
	if err != nil {
		return storeError("delete wiki", err), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("Wiki %d deleted (%d sections)", id, sections)), nil
}

// ─── CreateWikiSectionTool ──────────────────────────────────────────────────

// CreateWikiSectionTool handles the create_wiki_section MCP tool.
type CreateWikiSectionTool struct {
	store *store.Store
}

// NewCreateWikiSectionTool creates a CreateWikiSectionTool.
func NewCreateWikiSectionTool(s *store.Store) *CreateWikiSectionTool {
	return &CreateWikiSectionTool{store: s}
}

// Definition returns the MCP tool definition for create_wiki_section.
func (t *CreateWikiSectionTool) Definition() mcp.Tool {
	return mcp.NewTool("create_wiki_section",
		mcp.WithDescription("Create a section under a wiki. parent_id 0 (the default) makes a top-level section."),
		mcp.WithNumber("wiki_id", mcp.Required(), mcp.Description("Wiki ID")),
		mcp.WithString("title", mcp.Required(), mcp.Description("Section title")),
		mcp.WithString("description", mcp.Description("Section body")),
		mcp.WithNumber("parent_id", mcp.Description("Parent section ID (0 for top level)")),
		mcp.WithArray("tags", mcp.Description("Tags to attach to the section")),
	)
}

// Handle processes the create_wiki_section tool call.
func (t *CreateWikiSectionTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	wikiID := int64Arg(req, "wiki_id", 0)
	title := req.GetString("title", "")
	if wikiID == 0 {
		return mcp.NewToolResultError("'wiki_id' is required"), nil
	}
	if title == "" {
		return mcp.NewToolResultError("'title' is required"), nil
	}

	id, err := t.store.CreateWikiSection(wikiID, int64Arg(req, "parent_id", 0),
		title, req.GetString("description", ""), stringSliceArg(req, "tags"))
	if err != nil {
		return storeError("create wiki section", err), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("Wiki section created: %q (ID: %d)", title, id)), nil
}

// ─── GetWikiSectionTool ─────────────────────────────────────────────────────

// GetWikiSectionTool handles the get_wiki_section MCP tool.
type GetWikiSectionTool struct {
	store *store.Store
}

// NewGetWikiSectionTool creates a GetWikiSectionTool.
func NewGetWikiSectionTool(s *store.Store) *GetWikiSectionTool {
	return &GetWikiSectionTool{store: s}
}

// Definition returns the MCP tool definition for get_wiki_section.
func (t *GetWikiSectionTool) Definition() mcp.Tool {
	return mcp.NewTool("get_wiki_section",
		mcp.WithDescription("Fetch a wiki section and its immediate children."),
		mcp.WithNumber("wiki_id", mcp.Required(), mcp.Description("Wiki ID")),
		mcp.WithNumber("id", mcp.Required(), mcp.Description("Section ID")),
	)
}

// Handle processes the get_wiki_section tool call.
func (t *GetWikiSectionTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	wikiID := int64Arg(req, "wiki_id", 0)
	id := int64Arg(req, "id", 0)
	if wikiID == 0 || id == 0 {
		return mcp.NewToolResultError("'wiki_id' and 'id' are required"), nil
	}

	branch, err := t.store.GetWikiSection(wikiID, id)
	if err != nil {
		return storeError("get wiki section", err), nil
	}
	return jsonResult(branch), nil
}

// ─── UpdateWikiSectionTool ──────────────────────────────────────────────────

// UpdateWikiSectionTool handles the update_wiki_section MCP tool.
type UpdateWikiSectionTool struct {
	store *store.Store
}

// NewUpdateWikiSectionTool creates an UpdateWikiSectionTool.
func NewUpdateWikiSectionTool(s *store.Store) *UpdateWikiSectionTool {
	return &UpdateWikiSectionTool{store: s}
}

// Definition returns the MCP tool definition for update_wiki_section.
func (t *UpdateWikiSectionTool) Definition() mcp.Tool {
	return mcp.NewTool("update_wiki_section",
		mcp.WithDescription("Update a wiki section. Providing 'tags' replaces the section's full tag set."),
		mcp.WithNumber("wiki_id", mcp.Required(), mcp.Description("Wiki ID")),
		mcp.WithNumber("id", mcp.Required(), mcp.Description("Section ID")),
		mcp.WithString("title", mcp.Description("New title")),
		mcp.WithString("description", mcp.Description("New body")),
		mcp.WithArray("tags", mcp.Description("Replacement tag set")),
	)
}

// Handle processes the update_wiki_section tool call.
func (t *UpdateWikiSectionTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	wikiID := int64Arg(req, "wiki_id", 0)
	id := int64Arg(req, "id", 0)
	if wikiID == 0 || id == 0 {
		return mcp.NewToolResultError("'wiki_id' and 'id' are required"), nil
	}

	params := store.UpdateWikiSectionParams{
		Title:       stringPtrArg(req, "title"),
		Description: stringPtrArg(req, "description"),
	}
	// An absent tags argument leaves tags alone; a present one (even
	// empty) replaces the set.
	if _, ok := req.GetArguments()["tags"]; ok {
		tags := stringSliceArg(req, "tags")
		if tags == nil {
			tags = []string{}
		}
		params.Tags = tags
	}
	if params.Title == nil && params.Description == nil && params.Tags == nil {
		return mcp.NewToolResultError("no fields to update"), nil
	}

	sec, err := t.store.UpdateWikiSection(wikiID, id, params)
	if err != nil {
		return storeError("update wiki section", err), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("Wiki section %d updated: %q", sec.ID, sec.Title)), nil
}

// ─── DeleteWikiSectionTool ──────────────────────────────────────────────────

// DeleteWikiSectionTool handles the delete_wiki_section MCP tool.
type DeleteWikiSectionTool struct {
	store *store.Store
}

// NewDeleteWikiSectionTool creates a DeleteWikiSectionTool.
func NewDeleteWikiSectionTool(s *store.Store) *DeleteWikiSectionTool {
	return &DeleteWikiSectionTool{store: s}
}

// Definition returns the MCP tool definition for delete_wiki_section.
func (t *DeleteWikiSectionTool) Definition() mcp.Tool {
	return mcp.NewTool("delete_wiki_section",
		mcp.WithDescription("Delete a wiki section and its whole subtree."),
		mcp.WithNumber("wiki_id", mcp.Required(), mcp.Description("Wiki ID")),
		mcp.WithNumber("id", mcp.Required(), mcp.Description("Section ID")),
	)
}

// Handle processes the delete_wiki_section tool call.
func (t *DeleteWikiSectionTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	wikiID := int64Arg(req, "wiki_id", 0)
	id := int64Arg(req, "id", 0)
	if wikiID == 0 || id == 0 {
		return mcp.NewToolResultError("'wiki_id' and 'id' are required"), nil
	}

	descendants, err := t.store.DeleteWikiSection(wikiID, id)
	if err != nil {
		return storeError("delete wiki section", err), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("Wiki section %d deleted (%d descendants)", id, descendants)), nil
}

// ─── ListWikiTagsTool ───────────────────────────────────────────────────────

// ListWikiTagsTool handles the get_wiki_tags MCP tool.
type ListWikiTagsTool struct {
	store *store.Store
}

// NewListWikiTagsTool creates a ListWikiTagsTool.
func NewListWikiTagsTool(s *store.Store) *ListWikiTagsTool {
	return &ListWikiTagsTool{store: s}
}

// Definition returns the MCP tool definition for get_wiki_tags.
func (t *ListWikiTagsTool) Definition() mcp.Tool {
	return mcp.NewTool("get_wiki_tags",
		mcp.WithDescription("List the distinct tags used within a wiki."),
		mcp.WithNumber("wiki_id", mcp.Required(), mcp.Description("Wiki ID")),
	)
}

// Handle processes the get_wiki_tags tool call.
func (t *ListWikiTagsTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	wikiID := int64Arg(req, "wiki_id", 0)
	if wikiID == 0 {
		return mcp.NewToolResultError("'wiki_id' is required"), nil
	}

	tags, err := t.store.ListWikiTags(wikiID)
	if err != nil {
		return storeError("list wiki tags", err), nil
	}
	return jsonResult(map[string]any{"tags": tags}), nil
}

// ─── SearchWikiTagTool ──────────────────────────────────────────────────────

// SearchWikiTagTool handles the search_wiki_tag MCP tool.
type SearchWikiTagTool struct {
	store *store.Store
}

// NewSearchWikiTagTool creates a SearchWikiTagTool.
func NewSearchWikiTagTool(s *store.Store) *SearchWikiTagTool {
	return &SearchWikiTagTool{store: s}
}

// Definition returns the MCP tool definition for search_wiki_tag.
func (t *SearchWikiTagTool) Definition() mcp.Tool {
	return mcp.NewTool("search_wiki_tag",
		mcp.WithDescription("Find all wiki sections carrying a tag, across every wiki."),
		mcp.WithString("tag", mcp.Required(), mcp.Description("Exact tag to look up")),
	)
}

// Handle processes the search_wiki_tag tool call.
func (t *SearchWikiTagTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	tag := req.GetString("tag", "")
	if tag == "" {
		return mcp.NewToolResultError("'tag' is required"), nil
	}

	sections, err := t.store.SearchWikiTag(tag)
	if err != nil {
		return storeError("search wiki tag", err), nil
	}
	if len(sections) == 0 {
		return mcp.NewToolResultText(fmt.Sprintf("No wiki sections tagged %q.", tag)), nil
	}
	return jsonResult(map[string]any{"sections": sections}), nil
}

// ─── SearchWikiSectionsTool ─────────────────────────────────────────────────

// SearchWikiSectionsTool handles the search_wiki_sections MCP tool.
type SearchWikiSectionsTool struct {
	store *store.Store
}

// NewSearchWikiSectionsTool creates a SearchWikiSectionsTool.
func NewSearchWikiSectionsTool(s *store.Store) *SearchWikiSectionsTool {
	return &SearchWikiSectionsTool{store: s}
}

// Definition returns the MCP tool definition for search_wiki_sections.
func (t *SearchWikiSectionsTool) Definition() mcp.Tool {
	return mcp.NewTool("search_wiki_sections",
		mcp.WithDescription("Full-text search across wiki section titles and bodies."),
		mcp.WithString("query", mcp.Required(), mcp.Description("Search terms")),
		mcp.WithNumber("limit", mcp.Description("Maximum results (default 10)")),
	)
}

// Handle processes the search_wiki_sections tool call.
func (t *SearchWikiSectionsTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query := req.GetString("query", "")
	if query == "" {
		return mcp.NewToolResultError("'query' is required"), nil
	}

	sections, err := t.store.SearchWikiSections(query, intArg(req, "limit", 10))
	if err != nil {
		return storeError("search wiki sections", err), nil
	}
	if len(sections) == 0 {
		return mcp.NewToolResultText("No wiki sections found matching your query."), nil
	}
	return jsonResult(map[string]any{"sections": sections}), nil
}
