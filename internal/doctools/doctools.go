// Package doctools provides MCP tools for creating and editing formatted
// documents through the document service.
//
// Content is supplied as a JSON array of blocks, e.g.:
//
//	[{"type":"heading","level":1,"text":"Report"},
//	 {"type":"paragraph","text":"Summary with **bold** parts."},
//	 {"type":"list","style":"bullet","items":["one","two"]},
//	 {"type":"table","headers":["A","B"],"rows":[["1","2"]]}]
package doctools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/RickAtSnowcap/lucyapi/internal/compose"
	"github.com/RickAtSnowcap/lucyapi/internal/docs"
	"github.com/mark3labs/mcp-go/mcp"
)

const contentDescription = "JSON array of content blocks. Block types: heading (level, text), " +
	"paragraph (text, inline **bold** *italic* [link](url)), " +
	"list (style bullet|numbered, items), table (headers, rows), page_break, image (uri, width_pt)."

// decodeBlocks parses the content argument into content blocks.
// An absent or empty argument yields nil blocks.
func decodeBlocks(req mcp.CallToolRequest) ([]compose.ContentBlock, error) {
	raw := req.GetString("content", "")
	if raw == "" {
		return nil, nil
	}
	var blocks []compose.ContentBlock
	if err := json.Unmarshal([]byte(raw), &blocks); err != nil {
		return nil, fmt.Errorf("'content' must be a JSON array of blocks: %w", err)
	}
	return blocks, nil
}

// jsonResult marshals a payload as an indented JSON tool result.
func jsonResult(v any) *mcp.CallToolResult {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to encode result: %v", err))
	}
	return mcp.NewToolResultText(string(data))
}

// ─── CreateDocTool ──────────────────────────────────────────────────────────

// CreateDocTool handles the create_doc MCP tool.
type CreateDocTool struct {
	service  *docs.Service
	branding string
}

// NewCreateDocTool creates a CreateDocTool with a default branding profile.
func NewCreateDocTool(service *docs.Service, branding string) *CreateDocTool {
	return &CreateDocTool{service: service, branding: branding}
}

// Definition returns the MCP tool definition for create_doc.
func (t *CreateDocTool) Definition() mcp.Tool {
	return mcp.NewTool("create_doc",
		mcp.WithDescription("Create a document, filled with formatted content blocks or a plain text body."),
		mcp.WithString("title", mcp.Required(), mcp.Description("Document title")),
		mcp.WithString("content", mcp.Description(contentDescription)),
		mcp.WithString("body", mcp.Description("Plain text body, inserted verbatim (ignored when 'content' is given)")),
		mcp.WithString("branding", mcp.Description("Branding profile ('none' disables the default)")),
	)
}

// Handle processes the create_doc tool call.
func (t *CreateDocTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	title := req.GetString("title", "")
	if title == "" {
		return mcp.NewToolResultError("'title' is required"), nil
	}

	blocks, err := decodeBlocks(req)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var doc *docs.Document
	if len(blocks) > 0 {
		doc, err = t.service.CreateFormatted(ctx, title, blocks, req.GetString("branding", t.branding))
	} else {
		doc, err = t.service.CreatePlain(ctx, title, req.GetString("body", ""))
	}
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("create document: %v", err)), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("Document created: %q (ID: %s)", doc.Title, doc.ID)), nil
}

// ─── ReadDocTool ────────────────────────────────────────────────────────────

// ReadDocTool handles the read_doc MCP tool.
type ReadDocTool struct {
	service *docs.Service
}

// NewReadDocTool creates a ReadDocTool.
func NewReadDocTool(service *docs.Service) *ReadDocTool {
	return &ReadDocTool{service: service}
}

// Definition returns the MCP tool definition for read_doc.
func (t *ReadDocTool) Definition() mcp.Tool {
	return mcp.NewTool("read_doc",
		mcp.WithDescription("Read a document's plain text."),
		mcp.WithString("id", mcp.Required(), mcp.Description("Document ID")),
	)
}

// Handle processes the read_doc tool call.
func (t *ReadDocTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id := req.GetString("id", "")
	if id == "" {
		return mcp.NewToolResultError("'id' is required"), nil
	}

	doc, err := t.service.Read(ctx, id)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("read document: %v", err)), nil
	}
	return jsonResult(doc), nil
}

// ─── UpdateDocTool ──────────────────────────────────────────────────────────

// UpdateDocTool handles the update_doc MCP tool.
type UpdateDocTool struct {
	service  *docs.Service
	branding string
}

// NewUpdateDocTool creates an UpdateDocTool with a default branding profile.
func NewUpdateDocTool(service *docs.Service, branding string) *UpdateDocTool {
	return &UpdateDocTool{service: service, branding: branding}
}

// Definition returns the MCP tool definition for update_doc.
func (t *UpdateDocTool) Definition() mcp.Tool {
	return mcp.NewTool("update_doc",
		mcp.WithDescription("Replace a document's body with new formatted content."),
		mcp.WithString("id", mcp.Required(), mcp.Description("Document ID")),
		mcp.WithString("content", mcp.Required(), mcp.Description(contentDescription)),
		mcp.WithString("branding", mcp.Description("Branding profile ('none' disables the default)")),
	)
}

// Handle processes the update_doc tool call.
func (t *UpdateDocTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id := req.GetString("id", "")
	if id == "" {
		return mcp.NewToolResultError("'id' is required"), nil
	}

	blocks, err := decodeBlocks(req)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if len(blocks) == 0 {
		return mcp.NewToolResultError("'content' is required"), nil
	}

	if err := t.service.Replace(ctx, id, blocks, req.GetString("branding", t.branding)); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("update document: %v", err)), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("Document %s updated (%d blocks)", id, len(blocks))), nil
}

// ─── AppendDocTool ──────────────────────────────────────────────────────────

// AppendDocTool handles the append_doc MCP tool.
type AppendDocTool struct {
	service  *docs.Service
	branding string
}

// NewAppendDocTool creates an AppendDocTool with a default branding profile.
func NewAppendDocTool(service *docs.Service, branding string) *AppendDocTool {
	return &AppendDocTool{service: service, branding: branding}
}

// Definition returns the MCP tool definition for append_doc.
func (t *AppendDocTool) Definition() mcp.Tool {
	return mcp.NewTool("append_doc",
		mcp.WithDescription("Append formatted content to the end of a document."),
		mcp.WithString("id", mcp.Required(), mcp.Description("Document ID")),
		mcp.WithString("content", mcp.Required(), mcp.Description(contentDescription)),
		mcp.WithString("branding", mcp.Description("Branding profile ('none' disables the default)")),
	)
}

// Handle processes the append_doc tool call.
func (t *AppendDocTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id := req.GetString("id", "")
	if id == "" {
		return mcp.NewToolResultError("'id' is required"), nil
	}

	blocks, err := decodeBlocks(req)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if len(blocks) == 0 {
		return mcp.NewToolResultError("'content' is required"), nil
	}

	if err := t.service.Append(ctx, id, blocks, req.GetString("branding", t.branding)); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("append to document: %v", err)), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("Document %s appended (%d blocks)", id, len(blocks))), nil
}
