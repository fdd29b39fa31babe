package termgrid

import "image/color"

// Input writes a character to the buffer at the cursor position.
// Handles wide characters, line wrapping, insert mode, and charset translation.
func (t *Terminal) Input(r rune) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.activeCharset >= 0 && t.activeCharset < 4 && t.charsets[t.activeCharset] == CharsetLineDrawing {
		r = translateLineDrawing(r)
	}

	width := runeWidth(r)

	// Zero-width characters (combining marks) are dropped rather than
	// combined with the previous cell.
	if width == 0 {
		return
	}

	// Resolve a pending wrap, or wrap early when a wide character cannot fit.
	if t.cursor.Col+width > t.cols {
		if t.modes&ModeLineWrap != 0 {
			t.activeBuffer.SetWrapped(t.cursor.Row, true)
			t.cursor.Col = 0
			t.cursor.Row++
			if t.cursor.Row >= t.rows {
				t.scrollIfNeeded()
			}
		} else {
			// Wide characters that cannot fit at end of line are dropped.
			if width == 2 {
				return
			}
			t.cursor.Col = t.cols - 1
		}
	}

	if t.modes&ModeInsert != 0 {
		t.activeBuffer.InsertBlanks(t.cursor.Row, t.cursor.Col, width, t.template.Bg)
	}

	if t.cursor.Row < 0 || t.cursor.Row >= t.rows || t.cursor.Col < 0 {
		return
	}

	if cell := t.activeBuffer.Cell(t.cursor.Row, t.cursor.Col); cell != nil {
		cell.Char = r
		cell.Fg = t.template.Fg
		cell.Bg = t.template.Bg
		cell.Flags = t.template.Flags
		if width == 2 {
			cell.Class = ClassWide
		} else {
			cell.Class = ClassNarrow
		}
	}

	t.cursor.Col++

	// For wide characters, add the spacer cell holding the right half.
	if width == 2 && t.cursor.Col < t.cols {
		if spacer := t.activeBuffer.Cell(t.cursor.Row, t.cursor.Col); spacer != nil {
			spacer.Reset(t.template.Bg)
			spacer.Fg = t.template.Fg
			spacer.Class = ClassSpacer
		}
		t.cursor.Col++
	}
}

// translateLineDrawing translates characters for the DEC special line drawing charset.
func translateLineDrawing(r rune) rune {
	switch r {
	case 'j':
		return '┘'
	case 'k':
		return '┐'
	case 'l':
		return '┌'
	case 'm':
		return '└'
	case 'n':
		return '┼'
	case 'q':
		return '─'
	case 't':
		return '├'
	case 'u':
		return '┤'
	case 'v':
		return '┴'
	case 'w':
		return '┬'
	case 'x':
		return '│'
	default:
		return r
	}
}

// Bell triggers the bell provider if configured.
func (t *Terminal) Bell() {
	if t.bellProvider != nil {
		t.bellProvider.Ring()
	}
}

// Backspace moves the cursor one column left, stopping at column 0.
func (t *Terminal) Backspace() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.cursor.Col > 0 {
		t.cursor.Col--
	}
}

// CarriageReturn moves the cursor to column 0 of the current row.
func (t *Terminal) CarriageReturn() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.cursor.Col = 0
}

// LineFeed moves the cursor down one row, scrolling at the bottom margin.
// In line-feed/new-line mode (the default) it also moves to column 0.
func (t *Terminal) LineFeed() {
	t.mu.Lock()
	defer t.mu.Unlock()

	// Explicit newline clears the wrapped flag for this line
	t.activeBuffer.SetWrapped(t.cursor.Row, false)

	if t.modes&ModeLineFeedNewLine != 0 {
		t.cursor.Col = 0
	}

	t.cursor.Row++
	t.scrollIfNeeded()
}

// Tab moves the cursor right to the next n tab stops.
func (t *Terminal) Tab(n int) {
	t.mu.Lock()
	defer t.mu.Unlock()

	for i := 0; i < n; i++ {
		t.cursor.Col = t.activeBuffer.NextTabStop(t.cursor.Col)
	}
}

// Substitute replaces the character at the cursor with '?' (used for error indication).
func (t *Terminal) Substitute() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if cell := t.activeBuffer.Cell(t.cursor.Row, t.cursor.Col); cell != nil {
		cell.Char = '?'
		cell.Class = ClassNarrow
	}
}

// Goto moves the cursor to (row, col), adjusting for origin mode if enabled.
func (t *Terminal) Goto(row, col int) {
	t.mu.Lock()
	defer t.mu.Unlock()

	row = t.effectiveRow(row)
	t.cursor.Row = clamp(row, 0, t.rows-1)
	t.cursor.Col = clamp(col, 0, t.cols-1)
}

// GotoCol moves the cursor to the specified column, keeping the current row.
func (t *Terminal) GotoCol(col int) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.cursor.Col = clamp(col, 0, t.cols-1)
}

// GotoLine moves the cursor to the specified row, adjusting for origin mode if enabled.
func (t *Terminal) GotoLine(row int) {
	t.mu.Lock()
	defer t.mu.Unlock()

	row = t.effectiveRow(row)
	t.cursor.Row = clamp(row, 0, t.rows-1)
}

// MoveUp moves the cursor up n rows, stopping at row 0.
func (t *Terminal) MoveUp(n int) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.cursor.Row = clamp(t.cursor.Row-n, 0, t.rows-1)
}

// MoveDown moves the cursor down n rows, stopping at the last row.
func (t *Terminal) MoveDown(n int) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.cursor.Row = clamp(t.cursor.Row+n, 0, t.rows-1)
}

// MoveForward moves the cursor right n columns, stopping at the last column.
func (t *Terminal) MoveForward(n int) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.cursor.Col = clamp(t.cursor.Col+n, 0, t.cols-1)
}

// MoveBackward moves the cursor left n columns, stopping at column 0.
func (t *Terminal) MoveBackward(n int) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.cursor.Col = clamp(t.cursor.Col-n, 0, t.cols-1)
}

// MoveDownCr moves the cursor down n rows and to column 0.
func (t *Terminal) MoveDownCr(n int) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.cursor.Row = clamp(t.cursor.Row+n, 0, t.rows-1)
	t.cursor.Col = 0
}

// MoveUpCr moves the cursor up n rows and to column 0.
func (t *Terminal) MoveUpCr(n int) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.cursor.Row = clamp(t.cursor.Row-n, 0, t.rows-1)
	t.cursor.Col = 0
}

// MoveForwardTabs moves the cursor right to the next n tab stops.
func (t *Terminal) MoveForwardTabs(n int) {
	t.mu.Lock()
	defer t.mu.Unlock()

	for i := 0; i < n; i++ {
		t.cursor.Col = t.activeBuffer.NextTabStop(t.cursor.Col)
	}
}

// MoveBackwardTabs moves the cursor left to the previous n tab stops.
func (t *Terminal) MoveBackwardTabs(n int) {
	t.mu.Lock()
	defer t.mu.Unlock()

	for i := 0; i < n; i++ {
		t.cursor.Col = t.activeBuffer.PrevTabStop(t.cursor.Col)
	}
}

// ClearLine clears portions of the current line based on mode (right of
// cursor, left of cursor, or entire line), painting the current background.
func (t *Terminal) ClearLine(mode LineClearMode) {
	t.mu.Lock()
	defer t.mu.Unlock()

	switch mode {
	case LineClearModeRight:
		t.activeBuffer.ClearRowRange(t.cursor.Row, t.cursor.Col, t.cols, t.template.Bg)
	case LineClearModeLeft:
		t.activeBuffer.ClearRowRange(t.cursor.Row, 0, t.cursor.Col+1, t.template.Bg)
	case LineClearModeAll:
		t.activeBuffer.ClearRow(t.cursor.Row, t.template.Bg)
	}
}

// ClearScreen clears screen regions based on mode (below cursor, above
// cursor, entire screen, or saved lines), painting the current background.
func (t *Terminal) ClearScreen(mode ClearMode) {
	t.mu.Lock()
	defer t.mu.Unlock()

	switch mode {
	case ClearModeBelow:
		t.activeBuffer.ClearRowRange(t.cursor.Row, t.cursor.Col, t.cols, t.template.Bg)
		for row := t.cursor.Row + 1; row < t.rows; row++ {
			t.activeBuffer.ClearRow(row, t.template.Bg)
		}
	case ClearModeAbove:
		for row := 0; row < t.cursor.Row; row++ {
			t.activeBuffer.ClearRow(row, t.template.Bg)
		}
		t.activeBuffer.ClearRowRange(t.cursor.Row, 0, t.cursor.Col+1, t.template.Bg)
	case ClearModeAll:
		t.activeBuffer.ClearAll(t.template.Bg)
	case ClearModeSaved:
		t.activeBuffer.ClearScrollback()
	}
}

// EraseChars resets n characters at the cursor without shifting, painting the
// current background.
func (t *Terminal) EraseChars(n int) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.activeBuffer.ClearRowRange(t.cursor.Row, t.cursor.Col, t.cursor.Col+n, t.template.Bg)
}

// DeleteChars removes n characters at the cursor, shifting remaining characters left.
func (t *Terminal) DeleteChars(n int) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.activeBuffer.DeleteChars(t.cursor.Row, t.cursor.Col, n, t.template.Bg)
}

// InsertBlank inserts n blank cells at the cursor, shifting existing characters right.
func (t *Terminal) InsertBlank(n int) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.activeBuffer.InsertBlanks(t.cursor.Row, t.cursor.Col, n, t.template.Bg)
}

// InsertBlankLines inserts n blank lines at the cursor within the scroll
// region, shifting remaining lines down.
func (t *Terminal) InsertBlankLines(n int) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.cursor.Row >= t.scrollTop && t.cursor.Row < t.scrollBottom {
		t.activeBuffer.InsertLines(t.cursor.Row, n, t.scrollBottom)
	}
}

// DeleteLines removes n lines at the cursor within the scroll region,
// shifting remaining lines up.
func (t *Terminal) DeleteLines(n int) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.cursor.Row >= t.scrollTop && t.cursor.Row < t.scrollBottom {
		t.activeBuffer.DeleteLines(t.cursor.Row, n, t.scrollBottom)
	}
}

// ScrollUp shifts lines up within the scroll region, pushing top lines to
// scrollback when the region starts at the top of the screen.
func (t *Terminal) ScrollUp(n int) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.activeBuffer.ScrollUp(t.scrollTop, t.scrollBottom, n)
}

// ScrollDown shifts lines down within the scroll region, clearing top lines.
func (t *Terminal) ScrollDown(n int) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.activeBuffer.ScrollDown(t.scrollTop, t.scrollBottom, n)
}

// SetScrollingRegion sets the scroll boundaries (1-based, inclusive) and moves
// the cursor to the home position. Internally the region is 0-based with an
// exclusive bottom, so the 1-based bottom row is used unchanged.
func (t *Terminal) SetScrollingRegion(top, bottom int) {
	t.mu.Lock()
	defer t.mu.Unlock()

	top--

	if top < 0 {
		top = 0
	}
	if bottom <= 0 || bottom > t.rows {
		bottom = t.rows
	}
	if top >= bottom {
		return
	}

	t.scrollTop = top
	t.scrollBottom = bottom

	if t.modes&ModeOrigin != 0 {
		t.cursor.Row = t.scrollTop
	} else {
		t.cursor.Row = 0
	}
	t.cursor.Col = 0
}

// SaveCursorPosition saves cursor position, attributes, charset state, and
// origin mode for later restoration.
func (t *Terminal) SaveCursorPosition() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.saveCursorPositionLocked()
}

func (t *Terminal) saveCursorPositionLocked() {
	t.savedCursor = &SavedCursor{
		Row:          t.cursor.Row,
		Col:          t.cursor.Col,
		Attrs:        t.template,
		OriginMode:   t.modes&ModeOrigin != 0,
		CharsetIndex: t.activeCharset,
		Charsets:     t.charsets,
	}
}

// RestoreCursorPosition restores cursor position, attributes, and charset
// state from the saved cursor.
func (t *Terminal) RestoreCursorPosition() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.restoreCursorPositionLocked()
}

func (t *Terminal) restoreCursorPositionLocked() {
	if t.savedCursor == nil {
		return
	}

	t.cursor.Row = clamp(t.savedCursor.Row, 0, t.rows-1)
	t.cursor.Col = clamp(t.savedCursor.Col, 0, t.cols-1)
	t.template = t.savedCursor.Attrs

	if t.savedCursor.OriginMode {
		t.modes |= ModeOrigin
	} else {
		t.modes &^= ModeOrigin
	}

	t.activeCharset = t.savedCursor.CharsetIndex
	t.charsets = t.savedCursor.Charsets
}

// ReverseIndex moves the cursor up one row. If at the top of the scroll
// region, scrolls down instead.
func (t *Terminal) ReverseIndex() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.cursor.Row == t.scrollTop {
		t.activeBuffer.ScrollDown(t.scrollTop, t.scrollBottom, 1)
	} else if t.cursor.Row > 0 {
		t.cursor.Row--
	}
}

// HorizontalTabSet enables a tab stop at the current column.
func (t *Terminal) HorizontalTabSet() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.activeBuffer.SetTabStop(t.cursor.Col)
}

// ClearTabs removes tab stops at the current column or all columns based on mode.
func (t *Terminal) ClearTabs(mode TabClearMode) {
	t.mu.Lock()
	defer t.mu.Unlock()

	switch mode {
	case TabClearModeCurrent:
		t.activeBuffer.ClearTabStop(t.cursor.Col)
	case TabClearModeAll:
		t.activeBuffer.ClearAllTabStops()
	}
}

// SetMode enables a terminal mode flag. Some modes have side effects (e.g.,
// ModeOrigin moves the cursor to the scroll region top).
func (t *Terminal) SetMode(mode TerminalMode) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.setModeLocked(mode, true)
}

// UnsetMode disables a terminal mode flag.
func (t *Terminal) UnsetMode(mode TerminalMode) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.setModeLocked(mode, false)
}

// setModeLocked sets or unsets a terminal mode (caller must hold lock).
func (t *Terminal) setModeLocked(mode TerminalMode, set bool) {
	switch mode {
	case ModeOrigin:
		if set {
			t.cursor.Row = t.scrollTop
			t.cursor.Col = 0
		}
	case ModeShowCursor:
		t.cursor.Visible = set
	case ModeAltScreen:
		if set {
			t.activeBuffer = t.alternateBuffer
			t.activeBuffer.ClearAll(nil)
		} else {
			t.activeBuffer = t.primaryBuffer
		}
	case ModeSwapScreenAndSetRestoreCursor:
		if set {
			t.saveCursorPositionLocked()
			t.activeBuffer = t.alternateBuffer
			t.activeBuffer.ClearAll(nil)
		} else {
			t.activeBuffer = t.primaryBuffer
			t.restoreCursorPositionLocked()
		}
	}

	if set {
		t.modes |= mode
	} else {
		t.modes &^= mode
	}
}

// SetCharAttribute applies one SGR attribute to the cell template.
func (t *Terminal) SetCharAttribute(attr CharAttribute) {
	t.mu.Lock()
	defer t.mu.Unlock()

	switch attr.Attr {
	case AttrReset:
		t.template = NewCellTemplate()
	case AttrBold:
		t.template.SetFlag(StyleBold)
	case AttrFaint:
		t.template.SetFlag(StyleFaint)
	case AttrItalic:
		t.template.SetFlag(StyleItalic)
	case AttrUnderline:
		t.template.SetFlag(StyleUnderline)
	case AttrStrikethrough:
		t.template.SetFlag(StyleStrikethrough)
	case AttrInverse:
		t.template.SetFlag(StyleInverse)
	case AttrCancelBoldFaint:
		t.template.ClearFlag(StyleBold | StyleFaint)
	case AttrCancelItalic:
		t.template.ClearFlag(StyleItalic)
	case AttrCancelUnderline:
		t.template.ClearFlag(StyleUnderline)
	case AttrCancelInverse:
		t.template.ClearFlag(StyleInverse)
	case AttrCancelStrikethrough:
		t.template.ClearFlag(StyleStrikethrough)
	case AttrForeground:
		t.template.Fg = attr.Color
	case AttrBackground:
		t.template.Bg = attr.Color
	}
}

// SetColor stores a palette override at the given index (OSC 4). Cells
// referencing the index pick up the new color on the next extraction.
func (t *Terminal) SetColor(index int, c color.Color) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.colors[index] = c
}

// ResetColor removes a palette override (OSC 104). Index -1 resets all.
func (t *Terminal) ResetColor(index int) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if index < 0 {
		t.colors = make(map[int]color.Color)
		return
	}
	delete(t.colors, index)
}

// SetForegroundColor changes the default text color (OSC 10).
// A nil color restores the configured default (OSC 110).
func (t *Terminal) SetForegroundColor(c color.Color) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if c == nil {
		t.defaultFg = t.cfgDefaultFg
		return
	}
	t.defaultFg = toRGBA(c)
}

// SetBackgroundColor changes the default background color (OSC 11).
// A nil color restores the configured default (OSC 111).
func (t *Terminal) SetBackgroundColor(c color.Color) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if c == nil {
		t.defaultBg = t.cfgDefaultBg
		return
	}
	t.defaultBg = toRGBA(c)
}

// SetTitle updates the window title and notifies the title provider.
func (t *Terminal) SetTitle(title string) {
	t.mu.Lock()
	t.title = title
	provider := t.titleProvider
	t.mu.Unlock()

	if provider != nil {
		provider.SetTitle(title)
	}
}

// ConfigureCharset sets the character set for one of the four slots (G0-G3).
func (t *Terminal) ConfigureCharset(index CharsetIndex, charset Charset) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if index >= 0 && index <= CharsetIndexG3 {
		t.charsets[index] = charset
	}
}

// SetActiveCharset selects which charset slot (0-3, G0-G3) is currently active.
func (t *Terminal) SetActiveCharset(n int) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if n >= 0 && n < 4 {
		t.activeCharset = n
	}
}

// Decaln fills the entire screen with 'E' characters (DEC screen alignment test).
func (t *Terminal) Decaln() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.activeBuffer.FillWithE()
}

// ResetState performs a full reset (RIS): clears screen and scrollback,
// restores default modes, palette, and attributes.
func (t *Terminal) ResetState() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.resetLocked()
}

// toRGBA converts a concrete color to RGBA at 8 bits per channel.
func toRGBA(c color.Color) color.RGBA {
	if rgba, ok := c.(color.RGBA); ok {
		return rgba
	}
	r, g, b, a := c.RGBA()
	return color.RGBA{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8), A: uint8(a >> 8)}
}
