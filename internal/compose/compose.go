// Package compose implements the document composition engine.
//
// It translates an ordered list of abstract content blocks (headings,
// paragraphs, lists, tables, page breaks, images) into an ordered list of
// edit requests for a remote rich-text document addressed by a single flat
// integer offset. The engine never observes the remote document: each
// block's requests are computed purely from the cursor the previous block
// returned, so every composer must predict the exact number of offset
// units its block will occupy once applied.
//
// The engine is a pure, synchronous computation with no I/O and no shared
// mutable state beyond the read-only preset tables in presets.go; calls
// for different documents may run concurrently without coordination.
package compose

import (
	"errors"
	"fmt"
)

// Block type discriminators.
const (
	BlockHeading   = "heading"
	BlockParagraph = "paragraph"
	BlockList      = "list"
	BlockTable     = "table"
	BlockPageBreak = "page_break"
	BlockImage     = "image"
)

// Input validation error kinds. Both abort the whole composition; no
// partial request list is ever returned.
var (
	// ErrUnknownBlockType reports a block type outside the closed set.
	ErrUnknownBlockType = errors.New("unknown content block type")
	// ErrMissingField reports a block missing a structurally required field.
	ErrMissingField = errors.New("missing required field")
)

// ContentBlock is one abstract content element, discriminated by Type.
// Blocks are immutable inputs supplied whole by the caller. Text and Runs
// are alternatives: explicit Runs win, otherwise Text is parsed for inline
// markup.
type ContentBlock struct {
	Type    string     `json:"type"`
	Level   int        `json:"level,omitempty"`
	Text    string     `json:"text,omitempty"`
	Runs    []Run      `json:"runs,omitempty"`
	Style   string     `json:"style,omitempty"`
	Items   []string   `json:"items,omitempty"`
	Headers []string   `json:"headers,omitempty"`
	Rows    [][]string `json:"rows,omitempty"`
	URI     string     `json:"uri,omitempty"`
	WidthPT float64    `json:"width_pt,omitempty"`
}

// Compose translates content blocks into one flat request batch.
//
// branding selects a preset by name ("snowcap"); "none" or the empty
// string disables branding. startOffset is the first free offset in the
// remote buffer: 1 for a brand-new document, the prior end offset minus
// one for an in-place append. The cursor threads through the composers and
// is monotonically non-decreasing across the whole composition.
func Compose(blocks []ContentBlock, branding string, startOffset int64) ([]Request, error) {
	if startOffset < 1 {
		return nil, fmt.Errorf("compose: start offset must be >= 1, got %d", startOffset)
	}

	brand := PresetByName(branding)
	var reqs []Request
	cursor := startOffset

	for i, block := range blocks {
		var (
			blockReqs []Request
			err       error
		)
		switch block.Type {
		case BlockHeading:
			blockReqs, cursor = composeHeading(cursor, block, brand)
		case BlockParagraph:
			blockReqs, cursor = composeParagraph(cursor, block, brand)
		case BlockList:
			blockReqs, cursor = composeList(cursor, block, brand)
		case BlockTable:
			blockReqs, cursor, err = composeTable(cursor, block)
		case BlockPageBreak:
			blockReqs, cursor = composePageBreak(cursor, block)
		case BlockImage:
			blockReqs, cursor, err = composeImage(cursor, block)
		default:
			return nil, fmt.Errorf("compose: block %d: %w: %q", i, ErrUnknownBlockType, block.Type)
		}
		if err != nil {
			return nil, fmt.Errorf("compose: block %d (%s): %w", i, block.Type, err)
		}
		reqs = append(reqs, blockReqs...)
	}

	return reqs, nil
}
