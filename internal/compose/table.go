package compose

import "fmt"

// table.go implements the table composer and its layout calculator. Tables
// are the hard case of offset accounting: an empty table reserves fixed
// structural positions per row and per cell that the content model never
// sees, and those constants are an undocumented, versioned contract with
// the remote format. Verify them against a live document whenever the
// remote table representation changes — do not re-derive them on paper.

// tableCell is one cell in reading order.
type tableCell struct {
	row  int
	col  int
	text string
}

// cellRange is a cell with its final post-insertion offsets.
type cellRange struct {
	tableCell
	start int64
	end   int64
}

// composeTable emits the full request sequence for a table block:
//
//  1. Insert the empty table. This also inserts one implicit preceding
//     paragraph marker, so the table element itself starts at cursor+1.
//  2. Compute every cell's pre-insertion offset analytically:
//     cellPos(r, c) = cursor + 4 + r*(2C+1) + c*2.
//  3. Insert cell text back-to-front. Inserting at an offset shifts every
//     later offset forward, so walking from the last cell backwards keeps
//     the analytic formula valid for every cell not yet processed.
//  4. Reconstruct each cell's true final range by walking forward and
//     accumulating the lengths of all cells already inserted before it.
//  5. Style from the final ranges: whole-table font/size, header bold +
//     foreground, per-header-cell center alignment.
//  6. Background fills for the header row and every even-indexed data row,
//     addressed through the table start location.
func composeTable(cursor int64, b ContentBlock) ([]Request, int64, error) {
	if len(b.Headers) == 0 {
		return nil, cursor, fmt.Errorf("%w: headers", ErrMissingField)
	}

	numCols := len(b.Headers)
	numRows := len(b.Rows) + 1 // header counts as row 0
	style := DefaultTableStyle

	reqs := []Request{{InsertTable: &InsertTableRequest{
		Rows:     numRows,
		Columns:  numCols,
		Location: Location{Index: cursor},
	}}}

	// Cell content in reading order.
	var cells []tableCell
	for c, header := range b.Headers {
		cells = append(cells, tableCell{row: 0, col: c, text: header})
	}
	for r, row := range b.Rows {
		for c, text := range row {
			cells = append(cells, tableCell{row: r + 1, col: c, text: text})
		}
	}

	// Pre-insertion offset of a cell in the still-empty table.
	cellPos := func(r, c int) int64 {
		return cursor + 4 + int64(r)*int64(2*numCols+1) + int64(c)*2
	}

	// Insert back-to-front so earlier offsets stay untouched until used.
	for i := len(cells) - 1; i >= 0; i-- {
		reqs = append(reqs, Request{InsertText: &InsertTextRequest{
			Location: Location{Index: cellPos(cells[i].row, cells[i].col)},
			Text:     cells[i].text,
		}})
	}

	// Final ranges: the analytic formula is only valid pre-insertion, so
	// shift each cell by the cumulative length of everything inserted
	// before it in reading order.
	var cumulative int64
	ranges := make([]cellRange, 0, len(cells))
	for _, cell := range cells {
		start := cellPos(cell.row, cell.col) + cumulative
		end := start + int64(len(cell.text))
		ranges = append(ranges, cellRange{tableCell: cell, start: start, end: end})
		cumulative += int64(len(cell.text))
	}

	// Whole-table font and size.
	if len(ranges) > 0 {
		reqs = append(reqs, Request{UpdateTextStyle: &UpdateTextStyleRequest{
			Range: Range{
				StartIndex: ranges[0].start,
				EndIndex:   ranges[len(ranges)-1].end,
			},
			TextStyle: TextStyle{
				WeightedFontFamily: &WeightedFontFamily{FontFamily: style.Font, Weight: 400},
				FontSize:           pt(style.Size),
			},
			Fields: "weightedFontFamily,fontSize",
		}})
	}

	// Header row text: bold, foreground color.
	var headerCells []cellRange
	for _, cr := range ranges {
		if cr.row == 0 {
			headerCells = append(headerCells, cr)
		}
	}
	if len(headerCells) > 0 {
		reqs = append(reqs, Request{UpdateTextStyle: &UpdateTextStyleRequest{
			Range: Range{
				StartIndex: headerCells[0].start,
				EndIndex:   headerCells[len(headerCells)-1].end,
			},
			TextStyle: TextStyle{
				Bold:            true,
				ForegroundColor: rgb(style.HeaderFG),
			},
			Fields: "bold,foregroundColor",
		}})
	}

	// Center-align each header cell.
	for _, cr := range headerCells {
		reqs = append(reqs, Request{UpdateParagraphStyle: &UpdateParagraphStyleRequest{
			Range:          Range{StartIndex: cr.start, EndIndex: cr.end},
			ParagraphStyle: ParagraphStyle{Alignment: "CENTER"},
			Fields:         "alignment",
		}})
	}

	// Cell backgrounds are addressed via the table element, which starts
	// one past the cursor because of the implicit preceding paragraph.
	tableStart := cursor + 1
	reqs = append(reqs, cellBackground(tableStart, 0, numCols, style.HeaderBG))
	for r := 2; r < numRows; r += 2 {
		reqs = append(reqs, cellBackground(tableStart, r, numCols, style.AltRowBG))
	}

	// Total footprint: the implicit preceding paragraph, the structural
	// skeleton the empty table reserves, and all inserted cell text.
	skeleton := int64(5 + (numRows-1)*(2*numCols+1) + (numCols-1)*2)
	return reqs, cursor + 1 + skeleton + cumulative, nil
}

// cellBackground builds a background-color request spanning one full row.
func cellBackground(tableStart int64, rowIndex, columnSpan int, color RGBColor) Request {
	return Request{UpdateTableCellStyle: &UpdateTableCellStyleRequest{
		TableRange: TableRange{
			TableCellLocation: TableCellLocation{
				TableStartLocation: Location{Index: tableStart},
				RowIndex:           rowIndex,
				ColumnIndex:        0,
			},
			RowSpan:    1,
			ColumnSpan: columnSpan,
		},
		TableCellStyle: TableCellStyle{BackgroundColor: rgb(color)},
		Fields:         "backgroundColor",
	}}
}
