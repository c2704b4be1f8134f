package compose

import "fmt"

// blocks.go implements the simple block composers. Each consumes the
// current cursor and a block, emits the block's requests, and returns the
// cursor advanced by exactly the number of offset units the block will
// occupy once applied. That returned cursor is the correctness contract:
// every later block's requests are computed from it without ever reading
// the remote document.

// blockRuns extracts the styled runs for a block: explicit runs when the
// caller supplied them, otherwise the inline parse of the raw text.
func blockRuns(b ContentBlock) []Run {
	if b.Runs != nil {
		return b.Runs
	}
	return ParseInline(b.Text)
}

// composeHeading inserts the heading text plus a trailing line break, names
// the paragraph style for the declared level (clamped to 6), and applies
// the branding tier for min(level, 3).
func composeHeading(cursor int64, b ContentBlock, brand *BrandPreset) ([]Request, int64) {
	level := b.Level
	if level < 1 {
		level = 1
	}
	runs := blockRuns(b)
	fullLen := runsLength(runs) + 1

	reqs := []Request{{InsertText: &InsertTextRequest{
		Location: Location{Index: cursor},
		Text:     runsText(runs) + "\n",
	}}}

	named := level
	if named > 6 {
		named = 6
	}
	reqs = append(reqs, Request{UpdateParagraphStyle: &UpdateParagraphStyleRequest{
		Range:          Range{StartIndex: cursor, EndIndex: cursor + fullLen},
		ParagraphStyle: ParagraphStyle{NamedStyleType: fmt.Sprintf("HEADING_%d", named)},
		Fields:         "namedStyleType",
	}})

	if brand != nil {
		reqs = append(reqs, brandStyleOps(cursor, runs, brand, brand.Heading(level))...)
	} else {
		reqs = append(reqs, BuildStyleOps(cursor, runs, "", 0, nil)...)
	}

	return reqs, cursor + fullLen
}

// composeParagraph is the heading composer without the paragraph-style
// request; body branding applies instead of a heading tier.
func composeParagraph(cursor int64, b ContentBlock, brand *BrandPreset) ([]Request, int64) {
	runs := blockRuns(b)
	fullLen := runsLength(runs) + 1

	reqs := []Request{{InsertText: &InsertTextRequest{
		Location: Location{Index: cursor},
		Text:     runsText(runs) + "\n",
	}}}

	if brand != nil {
		reqs = append(reqs, brandStyleOps(cursor, runs, brand, brand.Body)...)
	} else {
		reqs = append(reqs, BuildStyleOps(cursor, runs, "", 0, nil)...)
	}

	return reqs, cursor + fullLen
}

// composeList inserts all items joined by line breaks, applies the bullet
// or number preset over the full span, then styles each item
// independently. Each item's start offset is the previous item's start
// plus its text length plus one for the separator.
func composeList(cursor int64, b ContentBlock, brand *BrandPreset) ([]Request, int64) {
	if len(b.Items) == 0 {
		return nil, cursor
	}

	itemRuns := make([][]Run, len(b.Items))
	fullText := ""
	for i, item := range b.Items {
		itemRuns[i] = ParseInline(item)
		fullText += runsText(itemRuns[i]) + "\n"
	}
	fullLen := int64(len(fullText))

	reqs := []Request{{InsertText: &InsertTextRequest{
		Location: Location{Index: cursor},
		Text:     fullText,
	}}}

	preset := "BULLET_DISC_CIRCLE_SQUARE"
	if b.Style == "numbered" {
		preset = "NUMBERED_DECIMAL_ALPHA_ROMAN"
	}
	reqs = append(reqs, Request{CreateParagraphBullets: &CreateParagraphBulletsRequest{
		Range:        Range{StartIndex: cursor, EndIndex: cursor + fullLen},
		BulletPreset: preset,
	}})

	pos := cursor
	for _, runs := range itemRuns {
		if brand != nil {
			reqs = append(reqs, brandStyleOps(pos, runs, brand, brand.Body)...)
		} else {
			reqs = append(reqs, BuildStyleOps(pos, runs, "", 0, nil)...)
		}
		pos += runsLength(runs) + 1 // +1 for the separator
	}

	return reqs, cursor + fullLen
}

// composePageBreak emits one request. The break occupies two offset units:
// the break marker plus the paragraph terminator the remote format always
// appends after it.
func composePageBreak(cursor int64, _ ContentBlock) ([]Request, int64) {
	reqs := []Request{{InsertPageBreak: &InsertPageBreakRequest{
		Location: Location{Index: cursor},
	}}}
	return reqs, cursor + 2
}

// composeImage inserts the image and an explicit line break right after it
// to terminate the paragraph: two offset units total.
func composeImage(cursor int64, b ContentBlock) ([]Request, int64, error) {
	if b.URI == "" {
		return nil, cursor, fmt.Errorf("%w: uri", ErrMissingField)
	}

	img := &InsertInlineImageRequest{
		URI:      b.URI,
		Location: Location{Index: cursor},
	}
	if b.WidthPT != 0 {
		img.ObjectSize = &Size{Width: pt(b.WidthPT)}
	}

	reqs := []Request{
		{InsertInlineImage: img},
		{InsertText: &InsertTextRequest{
			Location: Location{Index: cursor + 1},
			Text:     "\n",
		}},
	}
	return reqs, cursor + 2, nil
}
