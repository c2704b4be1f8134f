package docs

import (
	"context"
	"fmt"

	"github.com/RickAtSnowcap/lucyapi/internal/compose"
)

// Service runs the composition flows against a document service client.
type Service struct {
	client Client
}

// NewService returns a Service using the given client.
func NewService(client Client) *Service {
	return &Service{client: client}
}

// CreateFormatted creates a document and fills it with composed content.
// A document body always starts at offset 1.
func (s *Service) CreateFormatted(ctx context.Context, title string, blocks []compose.ContentBlock, branding string) (*Document, error) {
	doc, err := s.client.CreateDocument(ctx, title)
	if err != nil {
		return nil, err
	}

	if len(blocks) > 0 {
		requests, err := compose.Compose(blocks, branding, 1)
		if err != nil {
			return nil, fmt.Errorf("compose content: %w", err)
		}
		if err := s.client.BatchUpdate(ctx, doc.ID, requests); err != nil {
			return nil, err
		}
	}
	return doc, nil
}

// CreatePlain creates a document with an optional unformatted text body.
// The body is inserted verbatim: no branding, no inline markup.
func (s *Service) CreatePlain(ctx context.Context, title, body string) (*Document, error) {
	doc, err := s.client.CreateDocument(ctx, title)
	if err != nil {
		return nil, err
	}

	if body != "" {
		requests := []compose.Request{{
			InsertText: &compose.InsertTextRequest{
				Location: compose.Location{Index: 1},
				Text:     body,
			},
		}}
		if err := s.client.BatchUpdate(ctx, doc.ID, requests); err != nil {
			return nil, err
		}
	}
	return doc, nil
}

// Replace swaps a document's whole body for newly composed content.
// Existing content is deleted up to the trailing newline, which the
// remote document always keeps.
func (s *Service) Replace(ctx context.Context, id string, blocks []compose.ContentBlock, branding string) error {
	doc, err := s.client.GetDocument(ctx, id)
	if err != nil {
		return err
	}

	if doc.EndIndex > 2 {
		wipe := []compose.Request{{
			DeleteContentRange: &compose.DeleteContentRangeRequest{
				Range: compose.Range{StartIndex: 1, EndIndex: doc.EndIndex - 1},
			},
		}}
		if err := s.client.BatchUpdate(ctx, id, wipe); err != nil {
			return err
		}
	}

	if len(blocks) == 0 {
		return nil
	}
	requests, err := compose.Compose(blocks, branding, 1)
	if err != nil {
		return fmt.Errorf("compose content: %w", err)
	}
	return s.client.BatchUpdate(ctx, id, requests)
}

// Append composes new content just before the document's trailing newline.
func (s *Service) Append(ctx context.Context, id string, blocks []compose.ContentBlock, branding string) error {
	if len(blocks) == 0 {
		return nil
	}

	doc, err := s.client.GetDocument(ctx, id)
	if err != nil {
		return err
	}
	start := doc.EndIndex - 1
	if start < 1 {
		start = 1
	}

	requests, err := compose.Compose(blocks, branding, start)
	if err != nil {
		return fmt.Errorf("compose content: %w", err)
	}
	return s.client.BatchUpdate(ctx, id, requests)
}

// Read returns the document with its extracted plain text.
func (s *Service) Read(ctx context.Context, id string) (*Document, error) {
	return s.client.GetDocument(ctx, id)
}
