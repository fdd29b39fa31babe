package termgrid

import (
	"image/color"
	"sync"
)

// Ensure Terminal implements Handler
var _ Handler = (*Terminal)(nil)

// TerminalMode is a bitmask of terminal behavior flags.
// Multiple modes can be active simultaneously.
type TerminalMode uint32

const (
	// ModeInsert enables insert mode (characters shift right instead of overwrite).
	ModeInsert TerminalMode = 1 << iota
	// ModeOrigin enables origin mode (cursor positioning relative to scroll region).
	ModeOrigin
	// ModeLineWrap enables automatic line wrapping at column boundaries (DECAWM).
	ModeLineWrap
	// ModeLineFeedNewLine makes line feed also move to column 0 (LNM).
	ModeLineFeedNewLine
	// ModeShowCursor makes the cursor visible (DECTCEM).
	ModeShowCursor
	// ModeAltScreen switches to the alternate buffer without saving the cursor.
	ModeAltScreen
	// ModeSwapScreenAndSetRestoreCursor swaps to alternate screen and saves cursor.
	// When unset, restores primary screen and cursor position.
	ModeSwapScreenAndSetRestoreCursor
)

// defaultModes is the state after construction and after a reset. Line feed
// performing an implicit carriage return is deliberate: PTY streams commonly
// emit a bare LF after styled output and expect the next line at column 0.
const defaultModes = ModeLineWrap | ModeShowCursor | ModeLineFeedNewLine

const (
	// DEFAULT_ROWS is the default number of terminal rows.
	DEFAULT_ROWS = 24
	// DEFAULT_COLS is the default number of terminal columns.
	DEFAULT_COLS = 80
)

// Terminal emulates a VT-compatible terminal without a display. It maintains
// two buffers: primary (with scrollback) and alternate (no scrollback). The
// escape-sequence decoder persists its state across Write calls, so a
// sequence split over chunk boundaries resumes correctly.
// Screen mutations and read accessors lock internally. Write, WriteString,
// IsReady and Reset use the decoder without a lock, so they are not safe to
// call concurrently with each other.
type Terminal struct {
	mu sync.RWMutex

	// Dimensions
	rows int
	cols int

	// Buffers
	primaryBuffer   *Buffer
	alternateBuffer *Buffer
	activeBuffer    *Buffer

	// Cursor
	cursor      *Cursor
	savedCursor *SavedCursor

	// Current cell attributes
	template CellTemplate

	// Charsets
	charsets      [4]Charset
	activeCharset int

	// Scrolling region
	scrollTop    int
	scrollBottom int

	// Modes
	modes TerminalMode

	// Title
	title string

	// Palette overrides (OSC 4), resolved at extraction time
	colors map[int]color.Color

	// Default colors; cfg values are restored on reset
	defaultFg    color.RGBA
	defaultBg    color.RGBA
	cfgDefaultFg color.RGBA
	cfgDefaultBg color.RGBA

	// Internal escape-sequence decoder
	decoder *Decoder

	// Scrollback storage (primary buffer only)
	scrollbackStorage ScrollbackProvider

	// Providers for external events
	titleProvider TitleProvider
	bellProvider  BellProvider
}

// Option configures a Terminal during construction.
type Option func(*Terminal)

// WithSize sets the terminal dimensions.
// Values <= 0 are replaced with defaults (24x80).
func WithSize(rows, cols int) Option {
	if rows <= 0 {
		rows = DEFAULT_ROWS
	}

	if cols <= 0 {
		cols = DEFAULT_COLS
	}

	return func(t *Terminal) {
		t.rows = rows
		t.cols = cols
	}
}

// WithScrollback sets the storage for rows scrolled off the top of the
// primary buffer. Defaults to an unbounded in-memory store.
func WithScrollback(storage ScrollbackProvider) Option {
	return func(t *Terminal) {
		t.scrollbackStorage = storage
	}
}

// WithMaxScrollback bounds the default in-memory scrollback store.
// Values <= 0 keep retention unbounded.
func WithMaxScrollback(max int) Option {
	return func(t *Terminal) {
		if t.scrollbackStorage == nil {
			t.scrollbackStorage = NewMemoryScrollback()
		}
		t.scrollbackStorage.SetMaxRows(max)
	}
}

// WithDefaultForeground sets the color reported for text with no explicit foreground.
func WithDefaultForeground(c color.RGBA) Option {
	return func(t *Terminal) {
		t.cfgDefaultFg = c
	}
}

// WithDefaultBackground sets the terminal's default background. Span
// backgrounds that resolve to this color are reported as absent.
func WithDefaultBackground(c color.RGBA) Option {
	return func(t *Terminal) {
		t.cfgDefaultBg = c
	}
}

// WithTitle sets the handler for window title changes (OSC 0/2).
// Defaults to a no-op if not set.
func WithTitle(p TitleProvider) Option {
	return func(t *Terminal) {
		t.titleProvider = p
	}
}

// WithBell sets the handler for bell events.
// Defaults to a no-op if not set.
func WithBell(p BellProvider) Option {
	return func(t *Terminal) {
		t.bellProvider = p
	}
}

// New creates a terminal with the given options.
// Defaults to 24x80 with line wrap, visible cursor, and line-feed/new-line mode.
func New(opts ...Option) *Terminal {
	t := &Terminal{
		rows:          DEFAULT_ROWS,
		cols:          DEFAULT_COLS,
		colors:        make(map[int]color.Color),
		cfgDefaultFg:  DefaultForeground,
		cfgDefaultBg:  DefaultBackground,
		titleProvider: NoopTitle{},
		bellProvider:  NoopBell{},
	}

	for _, opt := range opts {
		opt(t)
	}

	if t.scrollbackStorage == nil {
		t.scrollbackStorage = NewMemoryScrollback()
	}
	t.primaryBuffer = NewBufferWithStorage(t.rows, t.cols, t.scrollbackStorage)
	t.alternateBuffer = NewBuffer(t.rows, t.cols) // Alternate buffer has no scrollback
	t.activeBuffer = t.primaryBuffer

	t.cursor = NewCursor()
	t.template = NewCellTemplate()

	t.scrollTop = 0
	t.scrollBottom = t.rows

	t.modes = defaultModes

	t.defaultFg = t.cfgDefaultFg
	t.defaultBg = t.cfgDefaultBg

	t.decoder = NewDecoder(t)

	return t
}

// Rows returns the terminal height in character rows.
func (t *Terminal) Rows() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.rows
}

// Cols returns the terminal width in character columns.
func (t *Terminal) Cols() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.cols
}

// Cell returns the cell at (row, col) in the active buffer.
// Returns nil if coordinates are out of bounds.
func (t *Terminal) Cell(row, col int) *Cell {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.activeBuffer.Cell(row, col)
}

// Cursor returns the current cursor position as (x, y) plus visibility.
// x is the column and may momentarily equal Cols (pending wrap).
func (t *Terminal) Cursor() (x, y int, visible bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.cursor.Col, t.cursor.Row, t.cursor.Visible
}

// Title returns the current window title string.
func (t *Terminal) Title() string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.title
}

// HasMode returns true if the specified mode flag is enabled.
func (t *Terminal) HasMode(mode TerminalMode) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.modes&mode != 0
}

// IsAlternateScreen returns true if the alternate buffer is currently active.
func (t *Terminal) IsAlternateScreen() bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.activeBuffer == t.alternateBuffer
}

// IsReady returns true iff the decoder is in ground state: no escape sequence
// is in progress and extracted output reflects complete input only.
func (t *Terminal) IsReady() bool {
	return t.decoder.Ready()
}

// Write processes raw bytes, parsing ANSI escape sequences and updating the
// terminal state. Implements io.Writer. A partial escape sequence at the end
// of the slice is resumed by the next Write.
func (t *Terminal) Write(data []byte) (int, error) {
	return t.decoder.Write(data)
}

// WriteString is a convenience method that converts the string to bytes and calls Write.
func (t *Terminal) WriteString(s string) (int, error) {
	return t.Write([]byte(s))
}

// Resize changes the terminal dimensions. Content is not reflowed: rows keep
// their cells, shrinking clips, growing adds never-written cells. When
// shrinking rows on the primary buffer, lines are scrolled into scrollback so
// content near the cursor survives. Scrollback itself is preserved; the
// cursor is clamped. Invalid dimensions (<= 0) are ignored.
func (t *Terminal) Resize(rows, cols int) {
	if rows <= 0 || cols <= 0 {
		return
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	oldRows := t.rows

	if rows < oldRows && t.activeBuffer == t.primaryBuffer && t.cursor.Row >= rows {
		linesToScroll := oldRows - rows
		t.primaryBuffer.ScrollUp(0, oldRows, linesToScroll)
		t.cursor.Row -= linesToScroll
		if t.cursor.Row < 0 {
			t.cursor.Row = 0
		}
	}

	t.rows = rows
	t.cols = cols
	t.primaryBuffer.Resize(rows, cols)
	t.alternateBuffer.Resize(rows, cols)

	t.cursor.Row = clamp(t.cursor.Row, 0, rows-1)
	t.cursor.Col = clamp(t.cursor.Col, 0, cols-1)

	t.scrollTop = 0
	t.scrollBottom = rows
}

// Reset clears the active screen and scrollback, moves the cursor to (0,0),
// restores default modes and palette, and forces the decoder to ground state.
func (t *Terminal) Reset() {
	t.mu.Lock()
	t.resetLocked()
	t.mu.Unlock()
	t.decoder.Reset()
}

// resetLocked performs the reset without locking (caller must hold lock).
func (t *Terminal) resetLocked() {
	t.primaryBuffer.ClearAll(nil)
	t.primaryBuffer.ClearScrollback()
	t.alternateBuffer.ClearAll(nil)
	t.activeBuffer = t.primaryBuffer

	t.cursor = NewCursor()
	t.savedCursor = nil
	t.template = NewCellTemplate()

	t.scrollTop = 0
	t.scrollBottom = t.rows
	t.modes = defaultModes

	t.charsets = [4]Charset{CharsetASCII, CharsetASCII, CharsetASCII, CharsetASCII}
	t.activeCharset = 0

	t.colors = make(map[int]color.Color)
	t.defaultFg = t.cfgDefaultFg
	t.defaultBg = t.cfgDefaultBg
	t.title = ""
}

// ScrollbackLen returns the number of rows stored in scrollback (primary buffer only).
func (t *Terminal) ScrollbackLen() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.primaryBuffer.ScrollbackLen()
}

// RowCount returns the total number of retained rows: scrollback plus the
// active screen.
func (t *Terminal) RowCount() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.primaryBuffer.ScrollbackLen() + t.rows
}

// HasAtLeast returns true as soon as the first n rows can be enumerated.
// Used by the chunked feed loop to stop early once a row limit is satisfied.
func (t *Terminal) HasAtLeast(n int) bool {
	return t.RowCount() >= n
}

// row returns the cells and wrapped flag of the index-th retained row,
// counting from the oldest scrollback row. Caller must hold the lock.
func (t *Terminal) row(index int) Row {
	sbLen := t.primaryBuffer.ScrollbackLen()
	if index < sbLen {
		return t.primaryBuffer.ScrollbackRow(index)
	}
	active := index - sbLen
	return Row{Cells: t.activeBuffer.Line(active), Wrapped: t.activeBuffer.IsWrapped(active)}
}

// Row returns the index-th retained row, counting from the oldest scrollback
// row; the last active row sits at RowCount()-1. The returned cells alias the
// live grid and must be treated as read-only.
func (t *Terminal) Row(index int) Row {
	t.mu.RLock()
	defer t.mu.RUnlock()

	if index < 0 || index >= t.primaryBuffer.ScrollbackLen()+t.rows {
		return Row{}
	}
	return t.row(index)
}

// LineContent returns the text content of an active-screen line, trimming
// trailing never-written cells (written spaces are kept). Internal
// never-written cells render as spaces; wide-character spacers are skipped.
func (t *Terminal) LineContent(row int) string {
	t.mu.RLock()
	defer t.mu.RUnlock()

	cells := t.activeBuffer.Line(row)
	if cells == nil {
		return ""
	}
	return rowText(cells)
}

// ScrollRegion returns the current scrolling boundaries (0-based, exclusive bottom).
func (t *Terminal) ScrollRegion() (top, bottom int) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.scrollTop, t.scrollBottom
}

// IsWrapped returns true if the active-screen line was wrapped due to column
// overflow, false if it ended with an explicit newline.
func (t *Terminal) IsWrapped(row int) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.activeBuffer.IsWrapped(row)
}

// clamp ensures the value is within the given range.
func clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// effectiveRow returns the effective row considering origin mode.
func (t *Terminal) effectiveRow(row int) int {
	if t.modes&ModeOrigin != 0 {
		return row + t.scrollTop
	}
	return row
}

// scrollIfNeeded performs scrolling if the cursor moved outside the scroll region.
func (t *Terminal) scrollIfNeeded() {
	if t.cursor.Row >= t.scrollBottom {
		linesToScroll := t.cursor.Row - t.scrollBottom + 1
		t.activeBuffer.ScrollUp(t.scrollTop, t.scrollBottom, linesToScroll)
		t.cursor.Row = t.scrollBottom - 1
	} else if t.cursor.Row < t.scrollTop {
		linesToScroll := t.scrollTop - t.cursor.Row
		t.activeBuffer.ScrollDown(t.scrollTop, t.scrollBottom, linesToScroll)
		t.cursor.Row = t.scrollTop
	}
}
