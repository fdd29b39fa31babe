package termgrid

// Cursor tracks the current write position (0-based). Col may momentarily
// equal the column count: that is the pending-wrap state after writing into
// the last column, resolved by the next write or cursor motion.
type Cursor struct {
	Row     int
	Col     int
	Visible bool
}

// NewCursor creates a visible cursor at (0, 0).
func NewCursor() *Cursor {
	return &Cursor{Visible: true}
}

// SavedCursor stores cursor position, cell attributes, and charset state for
// restoration. Used by ESC 7 / ESC 8 and when switching to the alternate screen.
type SavedCursor struct {
	Row          int
	Col          int
	Attrs        CellTemplate
	OriginMode   bool
	CharsetIndex int
	Charsets     [4]Charset
}

// CellTemplate defines the attributes applied to newly written characters.
// Modified by SGR (Select Graphic Rendition) escape sequences.
type CellTemplate struct {
	Cell
}

// NewCellTemplate creates a template with default attributes (no colors, no flags).
func NewCellTemplate() CellTemplate {
	return CellTemplate{}
}

// Charset selects the character encoding variant.
type Charset int

const (
	CharsetASCII Charset = iota
	CharsetLineDrawing
)

// CharsetIndex selects one of four character set slots (G0-G3).
type CharsetIndex int

const (
	CharsetIndexG0 CharsetIndex = iota
	CharsetIndexG1
	CharsetIndexG2
	CharsetIndexG3
)
