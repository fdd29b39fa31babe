package termgrid

import (
	"strings"
	"testing"
)

func TestNewTerminal(t *testing.T) {
	term := New()

	if term.Rows() != 24 {
		t.Errorf("expected 24 rows, got %d", term.Rows())
	}
	if term.Cols() != 80 {
		t.Errorf("expected 80 cols, got %d", term.Cols())
	}
	if !term.HasMode(ModeLineFeedNewLine) {
		t.Error("expected line-feed/new-line mode on by default")
	}
	if !term.HasMode(ModeLineWrap) {
		t.Error("expected line wrap on by default")
	}
}

func TestTerminalWithSize(t *testing.T) {
	term := New(WithSize(40, 120))

	if term.Rows() != 40 {
		t.Errorf("expected 40 rows, got %d", term.Rows())
	}
	if term.Cols() != 120 {
		t.Errorf("expected 120 cols, got %d", term.Cols())
	}
}

func TestTerminalWrite(t *testing.T) {
	term := New(WithSize(24, 80))

	term.WriteString("Hello")

	if term.LineContent(0) != "Hello" {
		t.Errorf("expected 'Hello', got %q", term.LineContent(0))
	}

	x, y, _ := term.Cursor()
	if x != 5 || y != 0 {
		t.Errorf("expected cursor at (5, 0), got (%d, %d)", x, y)
	}
}

func TestTerminalBareLineFeedResetsColumn(t *testing.T) {
	term := New(WithSize(24, 80))

	// PTY streams commonly omit the CR; LNM is on by default.
	term.WriteString("line1\nline2\nline3")

	if term.LineContent(0) != "line1" {
		t.Errorf("expected 'line1', got %q", term.LineContent(0))
	}
	if term.LineContent(1) != "line2" {
		t.Errorf("expected 'line2', got %q", term.LineContent(1))
	}
	if term.LineContent(2) != "line3" {
		t.Errorf("expected 'line3', got %q", term.LineContent(2))
	}

	x, y, _ := term.Cursor()
	if x != 5 || y != 2 {
		t.Errorf("expected cursor at (5, 2), got (%d, %d)", x, y)
	}
}

func TestTerminalLineFeedWithoutLNM(t *testing.T) {
	term := New(WithSize(24, 80))

	term.WriteString("\x1b[20labc\ndef")

	if term.LineContent(0) != "abc" {
		t.Errorf("expected 'abc', got %q", term.LineContent(0))
	}
	// Without LNM the next line starts at the old column.
	if term.LineContent(1) != "   def" {
		t.Errorf("expected '   def', got %q", term.LineContent(1))
	}
}

func TestTerminalCursorPositioning(t *testing.T) {
	term := New(WithSize(24, 80))

	term.WriteString("\x1b[6;6H")
	x, y, _ := term.Cursor()
	if x != 5 || y != 5 {
		t.Errorf("expected cursor at (5, 5), got (%d, %d)", x, y)
	}

	term.WriteString("X")
	x, y, _ = term.Cursor()
	if x != 6 || y != 5 {
		t.Errorf("expected cursor at (6, 5) after write, got (%d, %d)", x, y)
	}

	cell := term.Cell(5, 5)
	if cell == nil || cell.Char != 'X' {
		t.Error("expected 'X' at (row 5, col 5)")
	}
}

func TestTerminalCursorMotion(t *testing.T) {
	term := New(WithSize(24, 80))

	term.WriteString("\x1b[10;10H") // row 9, col 9
	term.WriteString("\x1b[3A")     // up 3
	term.WriteString("\x1b[2C")     // right 2
	x, y, _ := term.Cursor()
	if x != 11 || y != 6 {
		t.Errorf("expected (11, 6), got (%d, %d)", x, y)
	}

	term.WriteString("\x1b[4B") // down 4
	term.WriteString("\x1b[5D") // left 5
	x, y, _ = term.Cursor()
	if x != 6 || y != 10 {
		t.Errorf("expected (6, 10), got (%d, %d)", x, y)
	}

	term.WriteString("\x1b[G") // CHA column 1
	x, _, _ = term.Cursor()
	if x != 0 {
		t.Errorf("expected column 0 after CHA, got %d", x)
	}

	term.WriteString("\x1b[3d") // VPA row 3
	_, y, _ = term.Cursor()
	if y != 2 {
		t.Errorf("expected row 2 after VPA, got %d", y)
	}
}

func TestTerminalCursorClamping(t *testing.T) {
	term := New(WithSize(10, 20))

	term.WriteString("\x1b[99;99H")
	x, y, _ := term.Cursor()
	if x != 19 || y != 9 {
		t.Errorf("expected clamped cursor (19, 9), got (%d, %d)", x, y)
	}

	term.WriteString("\x1b[99A\x1b[99D")
	x, y, _ = term.Cursor()
	if x != 0 || y != 0 {
		t.Errorf("expected clamped cursor (0, 0), got (%d, %d)", x, y)
	}
}

func TestTerminalBackspaceNoUnderflow(t *testing.T) {
	term := New(WithSize(24, 80))

	term.WriteString("\b\b\bab\b")
	x, y, _ := term.Cursor()
	if x != 1 || y != 0 {
		t.Errorf("expected cursor (1, 0), got (%d, %d)", x, y)
	}
}

func TestTerminalTabStops(t *testing.T) {
	term := New(WithSize(24, 80))

	term.WriteString("\tx")
	if term.LineContent(0) != "        x" {
		t.Errorf("expected tab to column 8, got %q", term.LineContent(0))
	}

	x, _, _ := term.Cursor()
	if x != 9 {
		t.Errorf("expected cursor at 9, got %d", x)
	}
}

func TestTerminalClearScreen(t *testing.T) {
	term := New(WithSize(24, 80))

	term.WriteString("Hello")
	term.WriteString("\x1b[2J")

	if term.LineContent(0) != "" {
		t.Errorf("expected empty line after clear, got %q", term.LineContent(0))
	}
}

func TestTerminalEraseLine(t *testing.T) {
	term := New(WithSize(24, 80))

	term.WriteString("abcdef")
	term.WriteString("\x1b[3G") // column 2
	term.WriteString("\x1b[K")  // erase right

	if term.LineContent(0) != "ab" {
		t.Errorf("expected 'ab' after EL 0, got %q", term.LineContent(0))
	}

	term.WriteString("\x1b[2J\x1b[Habcdef\x1b[3G\x1b[1K")
	if term.LineContent(0) != "   def" {
		t.Errorf("expected '   def' after EL 1, got %q", term.LineContent(0))
	}
}

func TestTerminalEraseBelowAbove(t *testing.T) {
	term := New(WithSize(5, 10))

	term.WriteString("aaa\nbbb\nccc\nddd")
	term.WriteString("\x1b[3;1H") // row 2
	term.WriteString("\x1b[J")    // erase below

	if term.LineContent(1) != "bbb" {
		t.Errorf("expected 'bbb' untouched, got %q", term.LineContent(1))
	}
	if term.LineContent(2) != "" || term.LineContent(3) != "" {
		t.Error("expected rows below cursor erased")
	}

	term.WriteString("\x1b[2;2H")
	term.WriteString("\x1b[1J") // erase above
	if term.LineContent(0) != "" {
		t.Errorf("expected first row erased, got %q", term.LineContent(0))
	}
	if term.LineContent(1) != "  b" {
		t.Errorf("expected partial erase up to cursor, got %q", term.LineContent(1))
	}
}

func TestTerminalEraseChars(t *testing.T) {
	term := New(WithSize(24, 80))

	term.WriteString("abcdef\x1b[2;1H") // park cursor elsewhere
	term.WriteString("\x1b[1;2H\x1b[3X")

	if term.LineContent(0) != "a   ef" {
		t.Errorf("expected 'a   ef' after ECH, got %q", term.LineContent(0))
	}
}

func TestTerminalInsertDelete(t *testing.T) {
	term := New(WithSize(24, 80))

	term.WriteString("abcdef")
	term.WriteString("\x1b[1;3H\x1b[2@") // insert 2 blanks at col 2

	if term.LineContent(0) != "ab  cdef" {
		t.Errorf("expected 'ab  cdef' after ICH, got %q", term.LineContent(0))
	}

	term.WriteString("\x1b[2P") // delete 2 chars
	if term.LineContent(0) != "abcdef" {
		t.Errorf("expected 'abcdef' after DCH, got %q", term.LineContent(0))
	}
}

func TestTerminalInsertDeleteLines(t *testing.T) {
	term := New(WithSize(5, 10))

	term.WriteString("one\ntwo\nthree")
	term.WriteString("\x1b[2;1H\x1b[1L") // insert line at row 1

	if term.LineContent(1) != "" {
		t.Errorf("expected blank inserted line, got %q", term.LineContent(1))
	}
	if term.LineContent(2) != "two" {
		t.Errorf("expected 'two' shifted down, got %q", term.LineContent(2))
	}

	term.WriteString("\x1b[1M") // delete it again
	if term.LineContent(1) != "two" {
		t.Errorf("expected 'two' back at row 1, got %q", term.LineContent(1))
	}
}

func TestTerminalScrollingPushesScrollback(t *testing.T) {
	term := New(WithSize(5, 80))

	for i := 0; i < 10; i++ {
		term.WriteString("Line\n")
	}

	if term.ScrollbackLen() < 5 {
		t.Errorf("expected at least 5 scrollback rows, got %d", term.ScrollbackLen())
	}
	if term.RowCount() != term.ScrollbackLen()+5 {
		t.Errorf("RowCount = %d, want scrollback+rows", term.RowCount())
	}
	if !term.HasAtLeast(10) {
		t.Error("expected at least 10 retained rows")
	}
}

func TestTerminalScrollRegion(t *testing.T) {
	term := New(WithSize(6, 10))

	term.WriteString("a\nb\nc\nd\ne\nf")
	term.WriteString("\x1b[2;4r") // region rows 1-3

	top, bottom := term.ScrollRegion()
	if top != 1 || bottom != 4 {
		t.Fatalf("expected region [1,4), got [%d,%d)", top, bottom)
	}

	// Cursor homes after DECSTBM.
	x, y, _ := term.Cursor()
	if x != 0 || y != 0 {
		t.Errorf("expected home after DECSTBM, got (%d, %d)", x, y)
	}

	term.WriteString("\x1b[2S") // scroll region up 2

	if term.LineContent(0) != "a" {
		t.Errorf("expected row 0 outside region untouched, got %q", term.LineContent(0))
	}
	if term.LineContent(1) != "d" {
		t.Errorf("expected 'd' scrolled to region top, got %q", term.LineContent(1))
	}
	if term.LineContent(4) != "e" {
		t.Errorf("expected row 4 outside region untouched, got %q", term.LineContent(4))
	}

	// Scrolling an inner region must not leak rows into scrollback.
	if term.ScrollbackLen() != 0 {
		t.Errorf("expected no scrollback from inner region, got %d", term.ScrollbackLen())
	}
}

func TestTerminalScrollDownSD(t *testing.T) {
	term := New(WithSize(4, 10))

	term.WriteString("a\nb\nc")
	term.WriteString("\x1b[1T")

	if term.LineContent(0) != "" {
		t.Errorf("expected blank top after SD, got %q", term.LineContent(0))
	}
	if term.LineContent(1) != "a" {
		t.Errorf("expected 'a' shifted down, got %q", term.LineContent(1))
	}
}

func TestTerminalReverseIndex(t *testing.T) {
	term := New(WithSize(4, 10))

	term.WriteString("top\x1b[1;1H\x1bM")

	if term.LineContent(1) != "top" {
		t.Errorf("expected 'top' pushed down by RI, got %q", term.LineContent(1))
	}
}

func TestTerminalWrap(t *testing.T) {
	term := New(WithSize(24, 10))

	term.WriteString("0123456789AB")

	if term.LineContent(0) != "0123456789" {
		t.Errorf("expected full first row, got %q", term.LineContent(0))
	}
	if term.LineContent(1) != "AB" {
		t.Errorf("expected wrapped tail, got %q", term.LineContent(1))
	}
	if !term.IsWrapped(0) {
		t.Error("expected row 0 marked wrapped")
	}
	if term.IsWrapped(1) {
		t.Error("expected row 1 not marked wrapped")
	}
}

func TestTerminalPendingWrap(t *testing.T) {
	term := New(WithSize(24, 10))

	term.WriteString("0123456789")

	// After filling the row the cursor sits in the pending-wrap column.
	x, y, _ := term.Cursor()
	if x != 10 || y != 0 {
		t.Errorf("expected pending-wrap cursor (10, 0), got (%d, %d)", x, y)
	}

	term.WriteString("x")
	x, y, _ = term.Cursor()
	if x != 1 || y != 1 {
		t.Errorf("expected cursor (1, 1) after wrap, got (%d, %d)", x, y)
	}
}

func TestTerminalNoWrapMode(t *testing.T) {
	term := New(WithSize(24, 10))

	term.WriteString("\x1b[?7l0123456789AB")

	if term.LineContent(0) != "012345678B" {
		t.Errorf("expected overwrite at last column, got %q", term.LineContent(0))
	}
	if term.LineContent(1) != "" {
		t.Errorf("expected no wrapped line, got %q", term.LineContent(1))
	}
}

func TestTerminalWideCharacters(t *testing.T) {
	term := New(WithSize(24, 80))

	term.WriteString("中b")

	cell := term.Cell(0, 0)
	if cell == nil || cell.Char != '中' || !cell.IsWide() {
		t.Fatal("expected wide cell at (0, 0)")
	}
	spacer := term.Cell(0, 1)
	if spacer == nil || !spacer.IsWideSpacer() {
		t.Fatal("expected spacer at (0, 1)")
	}
	if term.Cell(0, 2).Char != 'b' {
		t.Error("expected 'b' after the spacer")
	}

	x, _, _ := term.Cursor()
	if x != 3 {
		t.Errorf("expected cursor at 3, got %d", x)
	}
}

func TestTerminalWideCharacterWrapsEarly(t *testing.T) {
	term := New(WithSize(24, 10))

	term.WriteString("012345678中")

	if term.LineContent(0) != "012345678" {
		t.Errorf("expected wide char to wrap, got %q", term.LineContent(0))
	}
	if term.LineContent(1) != "中" {
		t.Errorf("expected wide char on next row, got %q", term.LineContent(1))
	}
}

func TestTerminalCursorVisibility(t *testing.T) {
	term := New(WithSize(24, 80))

	if _, _, visible := term.Cursor(); !visible {
		t.Error("expected cursor visible by default")
	}

	term.WriteString("\x1b[?25l")
	if _, _, visible := term.Cursor(); visible {
		t.Error("expected cursor hidden after DECTCEM reset")
	}

	term.WriteString("\x1b[?25h")
	if _, _, visible := term.Cursor(); !visible {
		t.Error("expected cursor visible after DECTCEM set")
	}
}

func TestTerminalAlternateScreen(t *testing.T) {
	term := New(WithSize(24, 80))

	term.WriteString("primary")
	term.WriteString("\x1b[?1049h")

	if !term.IsAlternateScreen() {
		t.Fatal("expected alternate screen active")
	}
	if term.LineContent(0) != "" {
		t.Errorf("expected cleared alternate screen, got %q", term.LineContent(0))
	}

	term.WriteString("\x1b[1;1Halt content")
	term.WriteString("\x1b[?1049l")

	if term.IsAlternateScreen() {
		t.Fatal("expected primary screen restored")
	}
	if term.LineContent(0) != "primary" {
		t.Errorf("expected primary content back, got %q", term.LineContent(0))
	}

	x, y, _ := term.Cursor()
	if x != 7 || y != 0 {
		t.Errorf("expected cursor restored to (7, 0), got (%d, %d)", x, y)
	}
}

func TestTerminalSaveRestoreCursor(t *testing.T) {
	term := New(WithSize(24, 80))

	term.WriteString("\x1b[5;9H\x1b[1m\x1b7")
	term.WriteString("\x1b[1;1H\x1b[0m")
	term.WriteString("\x1b8x")

	cell := term.Cell(4, 8)
	if cell == nil || cell.Char != 'x' {
		t.Fatal("expected restored cursor position")
	}
	if !cell.HasFlag(StyleBold) {
		t.Error("expected restored bold attribute")
	}
}

func TestTerminalOriginMode(t *testing.T) {
	term := New(WithSize(10, 20))

	term.WriteString("\x1b[3;8r\x1b[?6h") // region rows 2-7, origin mode
	term.WriteString("\x1b[1;1Hx")

	cell := term.Cell(2, 0)
	if cell == nil || cell.Char != 'x' {
		t.Error("expected origin-relative positioning into the region")
	}
}

func TestTerminalDecaln(t *testing.T) {
	term := New(WithSize(3, 4))

	term.WriteString("\x1b#8")

	for row := 0; row < 3; row++ {
		if term.LineContent(row) != "EEEE" {
			t.Errorf("expected row %d filled with E, got %q", row, term.LineContent(row))
		}
	}
}

func TestTerminalLineDrawingCharset(t *testing.T) {
	term := New(WithSize(24, 80))

	term.WriteString("\x1b(0qx\x1b(Bq")

	if term.LineContent(0) != "─│q" {
		t.Errorf("expected line drawing translation, got %q", term.LineContent(0))
	}
}

func TestTerminalInsertMode(t *testing.T) {
	term := New(WithSize(24, 80))

	term.WriteString("abc\x1b[1;1H\x1b[4hX\x1b[4l")

	if term.LineContent(0) != "Xabc" {
		t.Errorf("expected insert mode shift, got %q", term.LineContent(0))
	}
}

func TestTerminalReset(t *testing.T) {
	term := New(WithSize(5, 80))

	for i := 0; i < 10; i++ {
		term.WriteString("Old Content\n")
	}
	term.WriteString("\x1b[1;31m\x1b]4;2;#010203\x07\x1b[?25l")

	term.Reset()

	if term.Text() != "" {
		t.Errorf("expected empty screen after reset, got %q", term.Text())
	}
	if term.ScrollbackLen() != 0 {
		t.Errorf("expected empty scrollback after reset, got %d", term.ScrollbackLen())
	}
	x, y, visible := term.Cursor()
	if x != 0 || y != 0 {
		t.Errorf("expected cursor (0, 0), got (%d, %d)", x, y)
	}
	if !visible {
		t.Error("expected cursor visible after reset")
	}

	term.WriteString("New Content")
	if term.Text() != "New Content" {
		t.Errorf("expected only new content, got %q", term.Text())
	}
	x, _, _ = term.Cursor()
	if x != 11 {
		t.Errorf("expected cursor x 11, got %d", x)
	}

	// Palette override must not survive the reset.
	term.WriteString("\n\x1b[32mg\x1b[0m")
	doc := term.Document(0, 0)
	var gSpan *Span
	for _, line := range doc.Lines {
		for i := range line {
			if line[i].Text == "g" {
				gSpan = &line[i]
			}
		}
	}
	if gSpan == nil {
		t.Fatal("expected span for 'g'")
	}
	if gSpan.Fg != "#0dbc79" {
		t.Errorf("expected default green after reset, got %q", gSpan.Fg)
	}
}

func TestTerminalResetIdempotent(t *testing.T) {
	term := New(WithSize(5, 80))

	term.WriteString("data\ndata\ndata")
	term.Reset()
	once, err := term.JSON(0, 0)
	if err != nil {
		t.Fatal(err)
	}

	term.Reset()
	twice, err := term.JSON(0, 0)
	if err != nil {
		t.Fatal(err)
	}

	if once != twice {
		t.Error("expected reset to be idempotent")
	}

	fresh, err := New(WithSize(5, 80)).JSON(0, 0)
	if err != nil {
		t.Fatal(err)
	}
	if once != fresh {
		t.Error("expected reset screen to match a fresh instance")
	}
}

func TestTerminalResetMidSequence(t *testing.T) {
	term := New(WithSize(24, 80))

	term.WriteString("\x1b[3")
	if term.IsReady() {
		t.Fatal("expected mid-sequence state")
	}

	term.Reset()
	if !term.IsReady() {
		t.Error("expected ground state after reset")
	}

	term.WriteString("1m")
	if term.LineContent(0) != "1m" {
		t.Errorf("expected literal text after reset discarded the partial sequence, got %q", term.LineContent(0))
	}
}

func TestTerminalResize(t *testing.T) {
	term := New(WithSize(10, 40))

	term.WriteString("keep me\n\n\n\n\n\n\n\n\nlast row")
	term.Resize(5, 20)

	if term.Rows() != 5 || term.Cols() != 20 {
		t.Fatalf("expected 5x20, got %dx%d", term.Rows(), term.Cols())
	}

	// Shrinking scrolled rows into scrollback to keep the cursor visible.
	if term.ScrollbackLen() == 0 {
		t.Error("expected shrink to preserve rows in scrollback")
	}
	if !strings.Contains(term.Text(), "keep me") {
		t.Error("expected content preserved across resize")
	}

	x, y, _ := term.Cursor()
	if y >= 5 || x >= 20 {
		t.Errorf("expected clamped cursor, got (%d, %d)", x, y)
	}
}

func TestTerminalResizeInvalid(t *testing.T) {
	term := New(WithSize(10, 40))

	term.Resize(0, -3)

	if term.Rows() != 10 || term.Cols() != 40 {
		t.Error("expected invalid resize to be ignored")
	}
}

func TestTerminalTitleProvider(t *testing.T) {
	var got string
	term := New(WithTitle(titleFunc(func(title string) { got = title })))

	term.WriteString("\x1b]2;hello\x07")

	if got != "hello" {
		t.Errorf("expected provider notified, got %q", got)
	}
	if term.Title() != "hello" {
		t.Errorf("expected title stored, got %q", term.Title())
	}
}

type titleFunc func(string)

func (f titleFunc) SetTitle(title string) { f(title) }

func TestTerminalBellProvider(t *testing.T) {
	rings := 0
	term := New(WithBell(bellFunc(func() { rings++ })))

	term.WriteString("a\x07b\x07")

	if rings != 2 {
		t.Errorf("expected 2 rings, got %d", rings)
	}
	if term.LineContent(0) != "ab" {
		t.Errorf("expected BEL to leave no mark, got %q", term.LineContent(0))
	}
}

type bellFunc func()

func (f bellFunc) Ring() { f() }
