package compose

import (
	"errors"
	"testing"
)

// Two columns, one data row, composed at offset 10. The analytic empty-table
// formula places the cells at 14, 16, 19, 21, the skeleton is
// 5 + 1*(2*2+1) + 1*2 = 12, and with 4 characters of cell text the next
// block lands at 10 + 1 + 12 + 4 = 27.
func TestComposeTableOffsets(t *testing.T) {
	reqs, err := Compose([]ContentBlock{
		{Type: BlockTable, Headers: []string{"A", "B"}, Rows: [][]string{{"1", "2"}}},
		{Type: BlockPageBreak},
	}, "none", 10)
	if err != nil {
		t.Fatal(err)
	}

	ins := reqs[0].InsertTable
	if ins == nil || ins.Rows != 2 || ins.Columns != 2 || ins.Location.Index != 10 {
		t.Fatalf("insertTable = %+v, want 2x2 at 10", reqs[0])
	}

	// Cell text is inserted back-to-front at the pre-insertion offsets.
	wantInserts := []struct {
		index int64
		text  string
	}{
		{21, "2"},
		{19, "1"},
		{16, "B"},
		{14, "A"},
	}
	for i, want := range wantInserts {
		it := reqs[1+i].InsertText
		if it == nil || it.Location.Index != want.index || it.Text != want.text {
			t.Errorf("cell insert %d = %+v, want %q at %d", i, reqs[1+i], want.text, want.index)
		}
	}

	// The page break after the table observes the predicted footprint.
	pb := reqs[len(reqs)-1].InsertPageBreak
	if pb == nil || pb.Location.Index != 27 {
		t.Errorf("next block = %+v, want index 27", reqs[len(reqs)-1])
	}
}

func TestComposeTableFinalRanges(t *testing.T) {
	// Final styling ranges are reconstructed by shifting each cell's
	// pre-insertion offset by the cumulative length of all earlier cells
	// in reading order: A [14,15), B [17,18), 1 [21,22), 2 [24,25).
	reqs, err := Compose([]ContentBlock{
		{Type: BlockTable, Headers: []string{"A", "B"}, Rows: [][]string{{"1", "2"}}},
	}, "none", 10)
	if err != nil {
		t.Fatal(err)
	}

	var tableStyle, headerStyle *UpdateTextStyleRequest
	var alignRanges []Range
	for _, req := range reqs {
		if uts := req.UpdateTextStyle; uts != nil {
			if uts.TextStyle.WeightedFontFamily != nil {
				tableStyle = uts
			} else {
				headerStyle = uts
			}
		}
		if ps := req.UpdateParagraphStyle; ps != nil {
			alignRanges = append(alignRanges, ps.Range)
		}
	}

	if tableStyle == nil {
		t.Fatal("no whole-table font/size request")
	}
	if tableStyle.Range.StartIndex != 14 || tableStyle.Range.EndIndex != 25 {
		t.Errorf("table style range = [%d, %d), want [14, 25)",
			tableStyle.Range.StartIndex, tableStyle.Range.EndIndex)
	}
	if tableStyle.TextStyle.WeightedFontFamily.FontFamily != "Calibri" ||
		tableStyle.TextStyle.FontSize.Magnitude != 12 {
		t.Errorf("table style = %+v, want Calibri 12pt", tableStyle.TextStyle)
	}

	if headerStyle == nil {
		t.Fatal("no header row style request")
	}
	if headerStyle.Range.StartIndex != 14 || headerStyle.Range.EndIndex != 18 {
		t.Errorf("header style range = [%d, %d), want [14, 18)",
			headerStyle.Range.StartIndex, headerStyle.Range.EndIndex)
	}
	if !headerStyle.TextStyle.Bold || headerStyle.Fields != "bold,foregroundColor" {
		t.Errorf("header style = %+v fields %q, want bold plus foreground",
			headerStyle.TextStyle, headerStyle.Fields)
	}

	// One center-alignment request per header cell.
	if len(alignRanges) != 2 {
		t.Fatalf("got %d alignment requests, want 2", len(alignRanges))
	}
	if alignRanges[0].StartIndex != 14 || alignRanges[0].EndIndex != 15 {
		t.Errorf("header cell 0 alignment range = %+v, want [14, 15)", alignRanges[0])
	}
	if alignRanges[1].StartIndex != 17 || alignRanges[1].EndIndex != 18 {
		t.Errorf("header cell 1 alignment range = %+v, want [17, 18)", alignRanges[1])
	}
}

func TestComposeTableRowBackgrounds(t *testing.T) {
	// Header row plus even-indexed data rows (table rows 2, 4, ...) get a
	// background fill, addressed via tableStartLocation = cursor + 1.
	reqs, err := Compose([]ContentBlock{
		{Type: BlockTable, Headers: []string{"H"}, Rows: [][]string{
			{"r1"}, {"r2"}, {"r3"}, {"r4"}, {"r5"},
		}},
	}, "none", 1)
	if err != nil {
		t.Fatal(err)
	}

	var fills []*UpdateTableCellStyleRequest
	for _, req := range reqs {
		if req.UpdateTableCellStyle != nil {
			fills = append(fills, req.UpdateTableCellStyle)
		}
	}
	if len(fills) != 3 {
		t.Fatalf("got %d background requests, want 3 (header + rows 2 and 4)", len(fills))
	}

	wantRows := []int{0, 2, 4}
	for i, fill := range fills {
		loc := fill.TableRange.TableCellLocation
		if loc.TableStartLocation.Index != 2 {
			t.Errorf("fill %d tableStartLocation = %d, want 2", i, loc.TableStartLocation.Index)
		}
		if loc.RowIndex != wantRows[i] {
			t.Errorf("fill %d rowIndex = %d, want %d", i, loc.RowIndex, wantRows[i])
		}
		if loc.ColumnIndex != 0 || fill.TableRange.RowSpan != 1 || fill.TableRange.ColumnSpan != 1 {
			t.Errorf("fill %d range = %+v, want full single row", i, fill.TableRange)
		}
		if fill.Fields != "backgroundColor" || fill.TableCellStyle.BackgroundColor == nil {
			t.Errorf("fill %d = %+v, want backgroundColor", i, fill)
		}
	}

	// Header and alternating fills use different colors.
	headerBG := fills[0].TableCellStyle.BackgroundColor.Color.RGBColor
	altBG := fills[1].TableCellStyle.BackgroundColor.Color.RGBColor
	if headerBG == altBG {
		t.Error("header and alternating rows share a background color")
	}
}

func TestComposeTableFootprint(t *testing.T) {
	tests := []struct {
		name    string
		headers []string
		rows    [][]string
		start   int64
		want    int64 // next free offset
	}{
		{
			name:    "2x2 from the worked example",
			headers: []string{"A", "B"},
			rows:    [][]string{{"1", "2"}},
			start:   10,
			want:    27,
		},
		{
			name:    "header only",
			headers: []string{"Name", "Role"},
			rows:    nil,
			start:   1,
			// skeleton = 5 + 0 + 2 = 7; text = 8; 1 + 1 + 7 + 8
			want: 17,
		},
		{
			name:    "single column",
			headers: []string{"X"},
			rows:    [][]string{{"aa"}, {"bbb"}},
			start:   1,
			// skeleton = 5 + 2*3 + 0 = 11; text = 1+2+3 = 6; 1 + 1 + 11 + 6
			want: 19,
		},
		{
			name:    "ragged row shorter than headers",
			headers: []string{"A", "B", "C"},
			rows:    [][]string{{"only"}},
			start:   1,
			// skeleton = 5 + 1*7 + 2*2 = 16; text = 3 + 4 = 7; 1 + 1 + 16 + 7
			want: 25,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reqs, err := Compose([]ContentBlock{
				{Type: BlockTable, Headers: tt.headers, Rows: tt.rows},
				{Type: BlockPageBreak},
			}, "none", tt.start)
			if err != nil {
				t.Fatal(err)
			}
			pb := reqs[len(reqs)-1].InsertPageBreak
			if pb == nil || pb.Location.Index != tt.want {
				t.Errorf("next block = %+v, want index %d", reqs[len(reqs)-1], tt.want)
			}
		})
	}
}

func TestComposeTableMissingHeaders(t *testing.T) {
	_, err := Compose([]ContentBlock{
		{Type: BlockTable, Rows: [][]string{{"1"}}},
	}, "none", 1)
	if !errors.Is(err, ErrMissingField) {
		t.Errorf("err = %v, want ErrMissingField", err)
	}
}
