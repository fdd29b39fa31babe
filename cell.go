package termgrid

import "image/color"

// StyleFlags is a bitmask of text attributes. The numeric values are part of
// the serialized output contract and must not change across versions.
type StyleFlags uint8

const (
	StyleBold          StyleFlags = 1
	StyleItalic        StyleFlags = 2
	StyleUnderline     StyleFlags = 4
	StyleStrikethrough StyleFlags = 8
	StyleInverse       StyleFlags = 16
	StyleFaint         StyleFlags = 32
)

// styleMask covers every defined attribute bit.
const styleMask = StyleBold | StyleItalic | StyleUnderline | StyleStrikethrough | StyleInverse | StyleFaint

// CellClass describes how many display columns a cell occupies.
type CellClass uint8

const (
	// ClassNarrow is a regular single-column cell.
	ClassNarrow CellClass = iota
	// ClassWide is the left half of a character that occupies two columns.
	ClassWide
	// ClassSpacer is the right half of a wide character. It is never styled
	// independently and always follows a ClassWide cell in the same row.
	ClassSpacer
)

// Cell stores the character, colors, and attributes for one grid position.
// A zero Cell means "never written": Char 0, no colors, no attributes.
type Cell struct {
	Char  rune
	Fg    color.Color
	Bg    color.Color
	Flags StyleFlags
	Class CellClass
}

// Reset returns the cell to the never-written state, keeping only the given
// background. Erase operations paint the current background into the cells
// they clear; a nil background leaves the cell fully default.
func (c *Cell) Reset(bg color.Color) {
	*c = Cell{Bg: bg}
}

// HasFlag returns true if the specified attribute is set.
func (c *Cell) HasFlag(flag StyleFlags) bool {
	return c.Flags&flag != 0
}

// SetFlag enables the specified attribute without affecting others.
func (c *Cell) SetFlag(flag StyleFlags) {
	c.Flags |= flag
}

// ClearFlag disables the specified attribute without affecting others.
func (c *Cell) ClearFlag(flag StyleFlags) {
	c.Flags &^= flag
}

// IsWide returns true if this cell holds a two-column character.
func (c *Cell) IsWide() bool {
	return c.Class == ClassWide
}

// IsWideSpacer returns true if this is the second half of a wide character
// (skipped during span construction).
func (c *Cell) IsWideSpacer() bool {
	return c.Class == ClassSpacer
}

// width returns the number of display columns the cell contributes to a span.
func (c *Cell) width() int {
	switch c.Class {
	case ClassWide:
		return 2
	case ClassSpacer:
		return 0
	default:
		return 1
	}
}

// Row is one line of the grid: exactly cols cells plus a flag noting whether
// the line was produced by wrapping rather than an explicit newline.
type Row struct {
	Cells   []Cell
	Wrapped bool
}
