package termgrid

import "github.com/unilibs/uniwidth"

// runeWidth returns the display width: 2 for wide characters (CJK, emoji), 1 for normal, 0 for zero-width (combining marks, control chars).
// Ambiguous-width characters are treated as narrow.
func runeWidth(r rune) int {
	return uniwidth.RuneWidth(r)
}

// isWideRune returns true if the rune occupies 2 terminal columns.
func isWideRune(r rune) bool {
	return uniwidth.RuneWidth(r) == 2
}

// stringWidth returns the total display width of a string.
func stringWidth(s string) int {
	return uniwidth.StringWidth(s)
}
