package compose

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestComposeUnknownBlockType(t *testing.T) {
	tests := []struct {
		name      string
		blockType string
	}{
		{"empty type", ""},
		{"unknown type", "quote"},
		{"case sensitive", "Heading"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reqs, err := Compose([]ContentBlock{{Type: tt.blockType}}, "none", 1)
			if !errors.Is(err, ErrUnknownBlockType) {
				t.Errorf("err = %v, want ErrUnknownBlockType", err)
			}
			if reqs != nil {
				t.Errorf("got %d requests on failure, want none", len(reqs))
			}
		})
	}
}

func TestComposeFailureReturnsNoPartialBatch(t *testing.T) {
	// The failing block is last; nothing composed before it may leak out.
	reqs, err := Compose([]ContentBlock{
		{Type: BlockParagraph, Text: "fine"},
		{Type: BlockImage}, // missing uri
	}, "none", 1)
	if err == nil {
		t.Fatal("expected an error")
	}
	if reqs != nil {
		t.Errorf("got %d requests on failure, want none", len(reqs))
	}
}

func TestComposeStartOffsetValidation(t *testing.T) {
	for _, start := range []int64{0, -1} {
		if _, err := Compose(nil, "none", start); err == nil {
			t.Errorf("start offset %d: expected an error", start)
		}
	}
	if _, err := Compose(nil, "none", 1); err != nil {
		t.Errorf("start offset 1: unexpected error %v", err)
	}
}

func TestComposeBrandingSelection(t *testing.T) {
	blocks := []ContentBlock{{Type: BlockParagraph, Text: "body"}}

	countBranding := func(branding string) int {
		reqs, err := Compose(blocks, branding, 1)
		if err != nil {
			t.Fatal(err)
		}
		n := 0
		for _, req := range reqs {
			if uts := req.UpdateTextStyle; uts != nil && uts.TextStyle.WeightedFontFamily != nil {
				n++
			}
		}
		return n
	}

	if n := countBranding("snowcap"); n != 1 {
		t.Errorf("snowcap: %d branding requests, want 1", n)
	}
	if n := countBranding("none"); n != 0 {
		t.Errorf("none: %d branding requests, want 0", n)
	}
	if n := countBranding(""); n != 0 {
		t.Errorf("empty: %d branding requests, want 0", n)
	}
	// Unknown preset names disable branding rather than failing.
	if n := countBranding("mystery"); n != 0 {
		t.Errorf("unknown preset: %d branding requests, want 0", n)
	}
}

func TestComposeSnowcapBodyTier(t *testing.T) {
	reqs, err := Compose([]ContentBlock{
		{Type: BlockParagraph, Text: "body"},
	}, "snowcap", 1)
	if err != nil {
		t.Fatal(err)
	}
	uts := reqs[1].UpdateTextStyle
	if uts == nil || uts.TextStyle.WeightedFontFamily == nil {
		t.Fatalf("request = %+v, want branding updateTextStyle", reqs[1])
	}
	if uts.TextStyle.WeightedFontFamily.FontFamily != "Lexend" {
		t.Errorf("font = %q, want Lexend", uts.TextStyle.WeightedFontFamily.FontFamily)
	}
	if uts.TextStyle.FontSize.Magnitude != 11 {
		t.Errorf("size = %v, want 11", uts.TextStyle.FontSize.Magnitude)
	}
	if uts.Fields != "weightedFontFamily,fontSize,foregroundColor" {
		t.Errorf("fields = %q", uts.Fields)
	}
}

// trailingCursor composes the blocks followed by a page break and returns
// the break's location: the cursor value after the last real block.
func trailingCursor(t *testing.T, blocks []ContentBlock, start int64) int64 {
	t.Helper()
	reqs, err := Compose(append(append([]ContentBlock{}, blocks...),
		ContentBlock{Type: BlockPageBreak}), "snowcap", start)
	if err != nil {
		t.Fatal(err)
	}
	pb := reqs[len(reqs)-1].InsertPageBreak
	if pb == nil {
		t.Fatal("last request is not the sentinel page break")
	}
	return pb.Location.Index
}

// The cursor a composer returns must equal the true occupied footprint of
// its block, so the total advance over a sequence is the sum of each
// block's individual advance — independent of block order.
func TestComposeCursorAdditivity(t *testing.T) {
	blocks := []ContentBlock{
		{Type: BlockHeading, Level: 2, Text: "Report for *Q3*"},
		{Type: BlockParagraph, Text: "Intro with [link](https://example.com)."},
		{Type: BlockList, Style: "numbered", Items: []string{"first", "second", "third"}},
		{Type: BlockTable, Headers: []string{"K", "V"}, Rows: [][]string{{"a", "1"}, {"bb", "22"}}},
		{Type: BlockPageBreak},
		{Type: BlockImage, URI: "https://example.com/i.png"},
	}

	const start = int64(7)

	var sum int64
	for _, b := range blocks {
		sum += trailingCursor(t, []ContentBlock{b}, start) - start
	}

	sequential := trailingCursor(t, blocks, start) - start
	if sequential != sum {
		t.Errorf("sequential advance = %d, sum of individual advances = %d", sequential, sum)
	}

	// Reordering the blocks does not change the total advance.
	reversed := make([]ContentBlock, 0, len(blocks))
	for i := len(blocks) - 1; i >= 0; i-- {
		reversed = append(reversed, blocks[i])
	}
	if got := trailingCursor(t, reversed, start) - start; got != sequential {
		t.Errorf("reversed advance = %d, want %d", got, sequential)
	}
}

func TestComposeCursorMonotonic(t *testing.T) {
	blocks := []ContentBlock{
		{Type: BlockParagraph, Text: ""},
		{Type: BlockList}, // empty list: zero advance is allowed
		{Type: BlockHeading, Text: "h"},
	}

	prev := int64(1)
	for i := 1; i <= len(blocks); i++ {
		cur := trailingCursor(t, blocks[:i], 1)
		if cur < prev {
			t.Fatalf("cursor decreased after block %d: %d < %d", i-1, cur, prev)
		}
		prev = cur
	}
}

func TestRequestWireFormat(t *testing.T) {
	tests := []struct {
		name string
		req  Request
		want string
	}{
		{
			name: "insert text",
			req: Request{InsertText: &InsertTextRequest{
				Location: Location{Index: 1}, Text: "Hi\n",
			}},
			want: `{"insertText":{"location":{"index":1},"text":"Hi\n"}}`,
		},
		{
			name: "update text style with explicit zero color channel",
			req: Request{UpdateTextStyle: &UpdateTextStyleRequest{
				Range:     Range{StartIndex: 1, EndIndex: 3},
				TextStyle: TextStyle{ForegroundColor: rgb(RGBColor{Red: 0, Green: 0.5, Blue: 1})},
				Fields:    "foregroundColor",
			}},
			want: `{"updateTextStyle":{"range":{"startIndex":1,"endIndex":3},` +
				`"textStyle":{"foregroundColor":{"color":{"rgbColor":{"red":0,"green":0.5,"blue":1}}}},` +
				`"fields":"foregroundColor"}}`,
		},
		{
			name: "paragraph style",
			req: Request{UpdateParagraphStyle: &UpdateParagraphStyleRequest{
				Range:          Range{StartIndex: 1, EndIndex: 7},
				ParagraphStyle: ParagraphStyle{NamedStyleType: "HEADING_1"},
				Fields:         "namedStyleType",
			}},
			want: `{"updateParagraphStyle":{"range":{"startIndex":1,"endIndex":7},` +
				`"paragraphStyle":{"namedStyleType":"HEADING_1"},"fields":"namedStyleType"}}`,
		},
		{
			name: "bullets",
			req: Request{CreateParagraphBullets: &CreateParagraphBulletsRequest{
				Range:        Range{StartIndex: 1, EndIndex: 9},
				BulletPreset: "BULLET_DISC_CIRCLE_SQUARE",
			}},
			want: `{"createParagraphBullets":{"range":{"startIndex":1,"endIndex":9},` +
				`"bulletPreset":"BULLET_DISC_CIRCLE_SQUARE"}}`,
		},
		{
			name: "insert table",
			req: Request{InsertTable: &InsertTableRequest{
				Rows: 2, Columns: 3, Location: Location{Index: 10},
			}},
			want: `{"insertTable":{"rows":2,"columns":3,"location":{"index":10}}}`,
		},
		{
			name: "table cell style",
			req:  cellBackground(11, 0, 2, RGBColor{Red: 1, Green: 1, Blue: 1}),
			want: `{"updateTableCellStyle":{"tableRange":{"tableCellLocation":` +
				`{"tableStartLocation":{"index":11},"rowIndex":0,"columnIndex":0},` +
				`"rowSpan":1,"columnSpan":2},"tableCellStyle":{"backgroundColor":` +
				`{"color":{"rgbColor":{"red":1,"green":1,"blue":1}}}},"fields":"backgroundColor"}}`,
		},
		{
			name: "page break",
			req:  Request{InsertPageBreak: &InsertPageBreakRequest{Location: Location{Index: 5}}},
			want: `{"insertPageBreak":{"location":{"index":5}}}`,
		},
		{
			name: "inline image with size",
			req: Request{InsertInlineImage: &InsertInlineImageRequest{
				URI:        "https://example.com/i.png",
				Location:   Location{Index: 1},
				ObjectSize: &Size{Width: pt(320)},
			}},
			want: `{"insertInlineImage":{"uri":"https://example.com/i.png",` +
				`"location":{"index":1},"objectSize":{"width":{"magnitude":320,"unit":"PT"}}}}`,
		},
		{
			name: "delete content range",
			req: Request{DeleteContentRange: &DeleteContentRangeRequest{
				Range: Range{StartIndex: 1, EndIndex: 42},
			}},
			want: `{"deleteContentRange":{"range":{"startIndex":1,"endIndex":42}}}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := json.Marshal(tt.req)
			if err != nil {
				t.Fatal(err)
			}
			if string(data) != tt.want {
				t.Errorf("marshaled:\n%s\nwant:\n%s", data, tt.want)
			}
		})
	}
}
