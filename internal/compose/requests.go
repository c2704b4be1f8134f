package compose

// requests.go defines the wire format of the operation batch. Field names
// and nesting are consumed verbatim by the remote document service, so the
// JSON tags here are a contract — do not rename them.

// Request is one atomic edit instruction. Exactly one field is set.
type Request struct {
	InsertText             *InsertTextRequest             `json:"insertText,omitempty"`
	UpdateTextStyle        *UpdateTextStyleRequest        `json:"updateTextStyle,omitempty"`
	UpdateParagraphStyle   *UpdateParagraphStyleRequest   `json:"updateParagraphStyle,omitempty"`
	CreateParagraphBullets *CreateParagraphBulletsRequest `json:"createParagraphBullets,omitempty"`
	InsertTable            *InsertTableRequest            `json:"insertTable,omitempty"`
	UpdateTableCellStyle   *UpdateTableCellStyleRequest   `json:"updateTableCellStyle,omitempty"`
	InsertPageBreak        *InsertPageBreakRequest        `json:"insertPageBreak,omitempty"`
	InsertInlineImage      *InsertInlineImageRequest      `json:"insertInlineImage,omitempty"`
	DeleteContentRange     *DeleteContentRangeRequest     `json:"deleteContentRange,omitempty"`
}

// Location is an absolute offset into the document's linear buffer.
type Location struct {
	Index int64 `json:"index"`
}

// Range is a half-open [startIndex, endIndex) span of the buffer.
type Range struct {
	StartIndex int64 `json:"startIndex"`
	EndIndex   int64 `json:"endIndex"`
}

// InsertTextRequest inserts text at a location.
type InsertTextRequest struct {
	Location Location `json:"location"`
	Text     string   `json:"text"`
}

// WeightedFontFamily names a font family with a weight.
type WeightedFontFamily struct {
	FontFamily string `json:"fontFamily"`
	Weight     int    `json:"weight"`
}

// Dimension is a magnitude in a named unit (always points here).
type Dimension struct {
	Magnitude float64 `json:"magnitude"`
	Unit      string  `json:"unit"`
}

// RGBColor is a normalized {red, green, blue} triple in [0, 1].
// The components are always serialized, even at zero — omitting a zero
// channel would change the color on the remote side.
type RGBColor struct {
	Red   float64 `json:"red"`
	Green float64 `json:"green"`
	Blue  float64 `json:"blue"`
}

// Color wraps an RGBColor in the remote service's color structure.
type Color struct {
	RGBColor RGBColor `json:"rgbColor"`
}

// OptionalColor is the outer color wrapper used by text and cell styles.
type OptionalColor struct {
	Color Color `json:"color"`
}

// Link is a hyperlink target.
type Link struct {
	URL string `json:"url"`
}

// TextStyle carries the character-level style fields a request may set.
// Which fields are actually applied is controlled by the comma-joined
// Fields list on the enclosing request, so zero values here are inert.
type TextStyle struct {
	Bold               bool                `json:"bold,omitempty"`
	Italic             bool                `json:"italic,omitempty"`
	WeightedFontFamily *WeightedFontFamily `json:"weightedFontFamily,omitempty"`
	FontSize           *Dimension          `json:"fontSize,omitempty"`
	ForegroundColor    *OptionalColor      `json:"foregroundColor,omitempty"`
	Link               *Link               `json:"link,omitempty"`
}

// UpdateTextStyleRequest applies a text style over a range.
type UpdateTextStyleRequest struct {
	Range     Range     `json:"range"`
	TextStyle TextStyle `json:"textStyle"`
	Fields    string    `json:"fields"`
}

// ParagraphStyle carries paragraph-level style fields.
type ParagraphStyle struct {
	NamedStyleType string `json:"namedStyleType,omitempty"`
	Alignment      string `json:"alignment,omitempty"`
}

// UpdateParagraphStyleRequest applies a paragraph style over a range.
type UpdateParagraphStyleRequest struct {
	Range          Range          `json:"range"`
	ParagraphStyle ParagraphStyle `json:"paragraphStyle"`
	Fields         string         `json:"fields"`
}

// CreateParagraphBulletsRequest turns the paragraphs in a range into a
// bulleted or numbered list using a named preset.
type CreateParagraphBulletsRequest struct {
	Range        Range  `json:"range"`
	BulletPreset string `json:"bulletPreset"`
}

// InsertTableRequest inserts an empty table at a location.
type InsertTableRequest struct {
	Rows     int      `json:"rows"`
	Columns  int      `json:"columns"`
	Location Location `json:"location"`
}

// TableCellLocation addresses a cell within a table by the table's start
// location and the cell's row/column indices.
type TableCellLocation struct {
	TableStartLocation Location `json:"tableStartLocation"`
	RowIndex           int      `json:"rowIndex"`
	ColumnIndex        int      `json:"columnIndex"`
}

// TableRange is a rectangular span of cells.
type TableRange struct {
	TableCellLocation TableCellLocation `json:"tableCellLocation"`
	RowSpan           int               `json:"rowSpan"`
	ColumnSpan        int               `json:"columnSpan"`
}

// TableCellStyle carries the cell-level style fields a request may set.
type TableCellStyle struct {
	BackgroundColor *OptionalColor `json:"backgroundColor,omitempty"`
}

// UpdateTableCellStyleRequest applies a cell style over a table range.
type UpdateTableCellStyleRequest struct {
	TableRange     TableRange     `json:"tableRange"`
	TableCellStyle TableCellStyle `json:"tableCellStyle"`
	Fields         string         `json:"fields"`
}

// InsertPageBreakRequest inserts a page break at a location.
type InsertPageBreakRequest struct {
	Location Location `json:"location"`
}

// Size is an optional explicit object size.
type Size struct {
	Width  *Dimension `json:"width,omitempty"`
	Height *Dimension `json:"height,omitempty"`
}

// InsertInlineImageRequest inserts an inline image at a location.
type InsertInlineImageRequest struct {
	URI        string   `json:"uri"`
	Location   Location `json:"location"`
	ObjectSize *Size    `json:"objectSize,omitempty"`
}

// DeleteContentRangeRequest deletes a range of the buffer. The engine
// never emits this; it exists for the document service collaborator's
// replace flow.
type DeleteContentRangeRequest struct {
	Range Range `json:"range"`
}

// rgb wraps an RGBColor into the full color structure.
func rgb(c RGBColor) *OptionalColor {
	return &OptionalColor{Color: Color{RGBColor: c}}
}

// pt builds a dimension in points.
func pt(magnitude float64) *Dimension {
	return &Dimension{Magnitude: magnitude, Unit: "PT"}
}
