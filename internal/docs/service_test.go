package docs

import (
	"context"
	"errors"
	"testing"

	"github.com/RickAtSnowcap/lucyapi/internal/compose"
)

// fakeClient records calls and plays back canned documents.
type fakeClient struct {
	doc     *Document
	created []string
	batches [][]compose.Request
	err     error
}

func (f *fakeClient) CreateDocument(_ context.Context, title string) (*Document, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.created = append(f.created, title)
	return &Document{ID: "doc-1", Title: title, EndIndex: 2}, nil
}

func (f *fakeClient) GetDocument(_ context.Context, id string) (*Document, error) {
	if f.err != nil {
		return nil, f.err
	}
	doc := *f.doc
	doc.ID = id
	return &doc, nil
}

func (f *fakeClient) BatchUpdate(_ context.Context, _ string, requests []compose.Request) error {
	if f.err != nil {
		return f.err
	}
	f.batches = append(f.batches, requests)
	return nil
}

func TestCreateFormatted(t *testing.T) {
	fc := &fakeClient{}
	svc := NewService(fc)

	blocks := []compose.ContentBlock{{Type: compose.BlockHeading, Level: 1, Text: "Title"}}
	doc, err := svc.CreateFormatted(context.Background(), "Report", blocks, "none")
	if err != nil {
		t.Fatalf("CreateFormatted: %v", err)
	}
	if doc.ID != "doc-1" || len(fc.created) != 1 {
		t.Errorf("doc = %+v, created = %v", doc, fc.created)
	}

	if len(fc.batches) != 1 {
		t.Fatalf("batches = %d, want 1", len(fc.batches))
	}
	first := fc.batches[0][0].InsertText
	if first == nil || first.Location.Index != 1 {
		t.Errorf("first request = %+v, want insertText at 1", fc.batches[0][0])
	}
}

func TestCreateFormatted_NoBlocksSkipsBatch(t *testing.T) {
	fc := &fakeClient{}
	svc := NewService(fc)

	if _, err := svc.CreateFormatted(context.Background(), "Empty", nil, "none"); err != nil {
		t.Fatal(err)
	}
	if len(fc.batches) != 0 {
		t.Errorf("batches = %d, want 0", len(fc.batches))
	}
}

func TestCreateFormatted_ComposeFailureBeforeBatch(t *testing.T) {
	fc := &fakeClient{}
	svc := NewService(fc)

	blocks := []compose.ContentBlock{{Type: "bogus"}}
	_, err := svc.CreateFormatted(context.Background(), "Bad", blocks, "none")
	if !errors.Is(err, compose.ErrUnknownBlockType) {
		t.Fatalf("err = %v, want ErrUnknownBlockType", err)
	}
	if len(fc.batches) != 0 {
		t.Errorf("batches = %d, want 0 (nothing sent on compose failure)", len(fc.batches))
	}
}

func TestReplace_WipesBeforeComposing(t *testing.T) {
	fc := &fakeClient{doc: &Document{EndIndex: 42}}
	svc := NewService(fc)

	blocks := []compose.ContentBlock{{Type: compose.BlockParagraph, Text: "fresh"}}
	if err := svc.Replace(context.Background(), "doc-9", blocks, "none"); err != nil {
		t.Fatalf("Replace: %v", err)
	}

	if len(fc.batches) != 2 {
		t.Fatalf("batches = %d, want wipe then content", len(fc.batches))
	}
	wipe := fc.batches[0][0].DeleteContentRange
	if wipe == nil {
		t.Fatalf("first batch = %+v, want deleteContentRange", fc.batches[0][0])
	}
	// Keep the trailing newline: delete [1, end-1).
	if wipe.Range.StartIndex != 1 || wipe.Range.EndIndex != 41 {
		t.Errorf("wipe range = [%d,%d), want [1,41)", wipe.Range.StartIndex, wipe.Range.EndIndex)
	}
	if insert := fc.batches[1][0].InsertText; insert == nil || insert.Location.Index != 1 {
		t.Errorf("content batch starts with %+v, want insertText at 1", fc.batches[1][0])
	}
}

func TestReplace_EmptyDocSkipsWipe(t *testing.T) {
	// End index 2 is an empty document: only the trailing newline.
	fc := &fakeClient{doc: &Document{EndIndex: 2}}
	svc := NewService(fc)

	blocks := []compose.ContentBlock{{Type: compose.BlockParagraph, Text: "x"}}
	if err := svc.Replace(context.Background(), "doc-2", blocks, "none"); err != nil {
		t.Fatal(err)
	}
	if len(fc.batches) != 1 {
		t.Fatalf("batches = %d, want 1 (no wipe)", len(fc.batches))
	}
	if fc.batches[0][0].DeleteContentRange != nil {
		t.Error("empty document should not be wiped")
	}
}

func TestAppend_StartsBeforeTrailingNewline(t *testing.T) {
	fc := &fakeClient{doc: &Document{EndIndex: 10}}
	svc := NewService(fc)

	blocks := []compose.ContentBlock{{Type: compose.BlockParagraph, Text: "more"}}
	if err := svc.Append(context.Background(), "doc-3", blocks, "none"); err != nil {
		t.Fatalf("Append: %v", err)
	}

	if len(fc.batches) != 1 {
		t.Fatalf("batches = %d, want 1", len(fc.batches))
	}
	insert := fc.batches[0][0].InsertText
	if insert == nil || insert.Location.Index != 9 {
		t.Errorf("append starts at %+v, want insertText at end-1 = 9", fc.batches[0][0])
	}
}

func TestAppend_NoBlocksIsNoop(t *testing.T) {
	fc := &fakeClient{doc: &Document{EndIndex: 10}}
	svc := NewService(fc)

	if err := svc.Append(context.Background(), "doc-4", nil, "none"); err != nil {
		t.Fatal(err)
	}
	if len(fc.batches) != 0 {
		t.Errorf("batches = %d, want 0", len(fc.batches))
	}
}

func TestService_PropagatesClientErrors(t *testing.T) {
	apiErr := &APIError{StatusCode: 404, Message: "Not found"}
	fc := &fakeClient{err: apiErr}
	svc := NewService(fc)

	if _, err := svc.Read(context.Background(), "missing"); !errors.Is(err, apiErr) {
		t.Errorf("Read err = %v, want the API error", err)
	}
	if err := svc.Replace(context.Background(), "missing", nil, "none"); !errors.Is(err, apiErr) {
		t.Errorf("Replace err = %v, want the API error", err)
	}
}
