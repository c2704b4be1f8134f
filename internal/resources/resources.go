// Package resources implements MCP resource handlers for the context store.
//
// Resources provide read-only data that the host can consume for context.
// They use URI-based addressing (lucy://...) following MCP conventions.
package resources

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/RickAtSnowcap/lucyapi/internal/store"
	"github.com/mark3labs/mcp-go/mcp"
)

// Handler manages store resource endpoints.
type Handler struct {
	store *store.Store
}

// NewHandler creates a resource Handler with its dependencies.
func NewHandler(s *store.Store) *Handler {
	return &Handler{store: s}
}

// StatusResource returns the MCP resource definition for store status.
func (h *Handler) StatusResource() mcp.Resource {
	return mcp.NewResource(
		"lucy://store/status",
		"Context Store Status",
		mcp.WithResourceDescription("Row counts for every entity in the context store"),
		mcp.WithMIMEType("application/json"),
	)
}

// HandleStatus returns the current store status as JSON.
func (h *Handler) HandleStatus(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	status, err := h.store.GetStatus()
	if err != nil {
		return errorResource(req.Params.URI, err.Error()), nil
	}

	data, err := json.MarshalIndent(status, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling status: %w", err)
	}

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}

// errorResource returns a resource with an error message.
func errorResource(uri, message string) []mcp.ResourceContents {
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      uri,
			MIMEType: "text/plain",
			Text:     fmt.Sprintf("Error: %s", message),
		},
	}
}
