// Package docs talks to the remote document service and drives the
// composition engine against it.
package docs

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/RickAtSnowcap/lucyapi/internal/compose"
)

// Document is the relevant slice of a remote document: its identity,
// extracted plain text, and the end index of its body content.
type Document struct {
	ID        string `json:"document_id"`
	Title     string `json:"title"`
	PlainText string `json:"text"`
	EndIndex  int64  `json:"end_index"`
}

// Client is the document service surface the composition flows need.
type Client interface {
	CreateDocument(ctx context.Context, title string) (*Document, error)
	GetDocument(ctx context.Context, id string) (*Document, error)
	BatchUpdate(ctx context.Context, id string, requests []compose.Request) error
}

// APIError is a non-2xx response from the document service.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("document service: %s (status %d)", e.Message, e.StatusCode)
}

// HTTPClient implements Client against a Docs-style REST endpoint.
type HTTPClient struct {
	baseURL string
	token   string
	http    *http.Client
}

// NewHTTPClient returns a client for the given endpoint using bearer
// token auth.
func NewHTTPClient(baseURL, token string) *HTTPClient {
	return &HTTPClient{
		baseURL: baseURL,
		token:   token,
		http:    &http.Client{Timeout: 30 * time.Second},
	}
}

// CreateDocument creates an empty document with the given title.
func (c *HTTPClient) CreateDocument(ctx context.Context, title string) (*Document, error) {
	body, err := json.Marshal(map[string]string{"title": title})
	if err != nil {
		return nil, err
	}
	var payload docPayload
	if err := c.do(ctx, http.MethodPost, "/v1/documents", body, &payload); err != nil {
		return nil, fmt.Errorf("create document: %w", err)
	}
	return payload.toDocument(), nil
}

// GetDocument fetches a document and extracts its plain text and end index.
func (c *HTTPClient) GetDocument(ctx context.Context, id string) (*Document, error) {
	var payload docPayload
	if err := c.do(ctx, http.MethodGet, "/v1/documents/"+id, nil, &payload); err != nil {
		return nil, fmt.Errorf("get document: %w", err)
	}
	return payload.toDocument(), nil
}

// BatchUpdate submits an edit operation batch. Empty batches are a no-op.
func (c *HTTPClient) BatchUpdate(ctx context.Context, id string, requests []compose.Request) error {
	if len(requests) == 0 {
		return nil
	}
	body, err := json.Marshal(map[string]any{"requests": requests})
	if err != nil {
		return err
	}
	if err := c.do(ctx, http.MethodPost, "/v1/documents/"+id+":batchUpdate", body, nil); err != nil {
		return fmt.Errorf("batchUpdate: %w", err)
	}
	return nil
}

func (c *HTTPClient) do(ctx context.Context, method, path string, body []byte, out any) error {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return apiError(resp)
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func apiError(resp *http.Response) *APIError {
	switch resp.StatusCode {
	case http.StatusNotFound:
		return &APIError{StatusCode: 404, Message: "Not found"}
	case http.StatusForbidden:
		return &APIError{StatusCode: 403, Message: "Permission denied"}
	}

	data, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	var wrapped struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	msg := string(data)
	if err := json.Unmarshal(data, &wrapped); err == nil && wrapped.Error.Message != "" {
		msg = wrapped.Error.Message
	}
	return &APIError{StatusCode: resp.StatusCode, Message: msg}
}

// docPayload is the wire shape of a document, trimmed to the fields the
// flows read.
type docPayload struct {
	DocumentID string `json:"documentId"`
	Title      string `json:"title"`
	Body       struct {
		Content []struct {
			EndIndex  int64 `json:"endIndex"`
			Paragraph *struct {
				Elements []struct {
					TextRun *struct {
						Content string `json:"content"`
					} `json:"textRun"`
				} `json:"elements"`
			} `json:"paragraph"`
		} `json:"content"`
	} `json:"body"`
}

func (p *docPayload) toDocument() *Document {
	doc := &Document{ID: p.DocumentID, Title: p.Title, EndIndex: 1}

	content := p.Body.Content
	if len(content) > 0 {
		doc.EndIndex = content[len(content)-1].EndIndex
	}
	for _, elem := range content {
		if elem.Paragraph == nil {
			continue
		}
		for _, pe := range elem.Paragraph.Elements {
			if pe.TextRun != nil {
				doc.PlainText += pe.TextRun.Content
			}
		}
	}
	return doc
}
