package termgrid

import (
	"encoding/json"
	"image/color"
	"strings"
)

// Span is a maximal run of adjacent cells within a row sharing the same
// resolved style. It serializes as the fixed 5-tuple
// [text, fg, bg, flags, width] with colors as lowercase "#rrggbb" or null.
type Span struct {
	Text  string
	Fg    string // "" means absent
	Bg    string // "" means absent
	Flags StyleFlags
	Width int
}

// MarshalJSON implements the fixed array form of the span contract.
func (s Span) MarshalJSON() ([]byte, error) {
	var fg, bg *string
	if s.Fg != "" {
		fg = &s.Fg
	}
	if s.Bg != "" {
		bg = &s.Bg
	}
	return json.Marshal([]any{s.Text, fg, bg, s.Flags, s.Width})
}

// Document is the structured projection of the terminal contents. Lines are
// ordered from the oldest scrollback row to the last active row; Offset and
// TotalLines let callers relate the window to the full retained history.
type Document struct {
	Cols          int      `json:"cols"`
	Rows          int      `json:"rows"`
	Cursor        [2]int   `json:"cursor"`
	CursorVisible bool     `json:"cursorVisible"`
	Offset        int      `json:"offset"`
	TotalLines    int      `json:"totalLines"`
	Lines         [][]Span `json:"lines"`
}

// Document extracts the structured projection. Offset skips that many rows
// from the start of scrollback; limit caps the number of emitted rows
// (0 = no limit). The cursor position is screen-relative: callers needing a
// scrollback-relative line compute (totalLines - rows) + cursor[1] - offset.
func (t *Terminal) Document(offset, limit int) *Document {
	t.mu.RLock()
	defer t.mu.RUnlock()

	if offset < 0 {
		offset = 0
	}

	total := t.primaryBuffer.ScrollbackLen() + t.rows

	start := offset
	if start > total {
		start = total
	}
	end := total
	if limit > 0 && start+limit < end {
		end = start + limit
	}

	defaultBgHex := colorHex(t.defaultBg)

	lines := make([][]Span, 0, end-start)
	for i := start; i < end; i++ {
		lines = append(lines, t.rowSpans(t.row(i).Cells, defaultBgHex))
	}

	return &Document{
		Cols:          t.cols,
		Rows:          t.rows,
		Cursor:        [2]int{t.cursor.Col, t.cursor.Row},
		CursorVisible: t.cursor.Visible,
		Offset:        offset,
		TotalLines:    total,
		Lines:         lines,
	}
}

// JSON extracts the structured projection and serializes it.
func (t *Terminal) JSON(offset, limit int) (string, error) {
	data, err := json.Marshal(t.Document(offset, limit))
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// Text returns the plain-text projection: every retained row from oldest
// scrollback to the last active row, trailing never-written cells trimmed,
// rows separated by LF. Trailing fully-empty rows are omitted.
func (t *Terminal) Text() string {
	t.mu.RLock()
	defer t.mu.RUnlock()

	total := t.primaryBuffer.ScrollbackLen() + t.rows

	lines := make([]string, 0, total)
	lastNonEmpty := -1
	for i := 0; i < total; i++ {
		line := rowText(t.row(i).Cells)
		lines = append(lines, line)
		if line != "" {
			lastNonEmpty = i
		}
	}

	if lastNonEmpty < 0 {
		return ""
	}

	return strings.Join(lines[:lastNonEmpty+1], "\n")
}

// trimRow returns the row without its trailing never-written cells. Internal
// never-written cells (e.g. produced by HT) are preserved so column alignment
// survives; a wide character's spacer is never trimmed away from its cell.
func trimRow(cells []Cell) []Cell {
	end := len(cells)
	for end > 0 {
		c := cells[end-1]
		if c.Char != 0 || c.Class == ClassSpacer {
			break
		}
		end--
	}
	return cells[:end]
}

// rowText renders the row as plain text: trailing never-written cells
// trimmed, internal ones mapped to spaces, spacers skipped.
func rowText(cells []Cell) string {
	cells = trimRow(cells)

	var sb strings.Builder
	sb.Grow(len(cells))
	for i := range cells {
		c := &cells[i]
		if c.Class == ClassSpacer {
			continue
		}
		if c.Char == 0 {
			sb.WriteByte(' ')
		} else {
			sb.WriteRune(c.Char)
		}
	}
	return sb.String()
}

// spanStyle is the resolved style key used for run merging. Empty color
// strings mean absent; concrete colors are resolved through the palette so
// representation differences cannot split or join runs incorrectly.
type spanStyle struct {
	fg    string
	bg    string
	flags StyleFlags
}

// rowSpans merges the row's cells into spans. Caller must hold the lock.
func (t *Terminal) rowSpans(cells []Cell, defaultBgHex string) []Span {
	cells = trimRow(cells)

	spans := make([]Span, 0, 1)
	var current spanStyle
	var text strings.Builder
	width := 0
	open := false

	flush := func() {
		if open {
			spans = append(spans, Span{
				Text:  text.String(),
				Fg:    current.fg,
				Bg:    current.bg,
				Flags: current.flags,
				Width: width,
			})
			text.Reset()
			width = 0
		}
	}

	for i := range cells {
		c := &cells[i]
		if c.Class == ClassSpacer {
			continue
		}

		style := spanStyle{
			fg:    t.resolveColorHex(c.Fg),
			bg:    t.resolveColorHex(c.Bg),
			flags: c.Flags & styleMask,
		}
		// A background equal to the terminal default is reported as absent.
		if style.bg == defaultBgHex {
			style.bg = ""
		}

		if !open || style != current {
			flush()
			current = style
			open = true
		}

		if c.Char == 0 {
			text.WriteByte(' ')
		} else {
			text.WriteRune(c.Char)
		}
		width += c.width()
	}
	flush()

	return spans
}

// resolveColorHex resolves a cell color to its lowercase hex form, applying
// palette overrides. Absent colors resolve to "". Caller must hold the lock.
func (t *Terminal) resolveColorHex(c color.Color) string {
	if c == nil {
		return ""
	}

	switch v := c.(type) {
	case *IndexedColor:
		if v.Index < 0 || v.Index > 255 {
			return ""
		}
		if override, ok := t.colors[v.Index]; ok {
			return colorHex(toRGBA(override))
		}
		return colorHex(DefaultPalette[v.Index])
	case color.RGBA:
		return colorHex(v)
	default:
		return colorHex(toRGBA(c))
	}
}
