package termgrid

import (
	"image/color"
	"strconv"
	"strings"
	"unicode/utf8"
)

// LineClearMode selects which part of the current line EL erases.
type LineClearMode int

const (
	LineClearModeRight LineClearMode = iota
	LineClearModeLeft
	LineClearModeAll
)

// ClearMode selects which part of the screen ED erases.
type ClearMode int

const (
	ClearModeBelow ClearMode = iota
	ClearModeAbove
	ClearModeAll
	ClearModeSaved
)

// TabClearMode selects which tab stops TBC removes.
type TabClearMode int

const (
	TabClearModeCurrent TabClearMode = iota
	TabClearModeAll
)

// CharAttr identifies an SGR attribute change.
type CharAttr int

const (
	AttrReset CharAttr = iota
	AttrBold
	AttrFaint
	AttrItalic
	AttrUnderline
	AttrStrikethrough
	AttrInverse
	AttrCancelBoldFaint
	AttrCancelItalic
	AttrCancelUnderline
	AttrCancelInverse
	AttrCancelStrikethrough
	AttrForeground
	AttrBackground
)

// CharAttribute is one decoded SGR parameter. For AttrForeground and
// AttrBackground, Color carries the new color; nil means default.
type CharAttribute struct {
	Attr  CharAttr
	Color color.Color
}

// Handler receives the decoded terminal commands. Terminal implements it;
// the decoder never touches the screen directly.
type Handler interface {
	Input(r rune)
	Bell()
	Backspace()
	CarriageReturn()
	LineFeed()
	Tab(count int)
	Substitute()
	Goto(row, col int)
	GotoCol(col int)
	GotoLine(row int)
	MoveUp(n int)
	MoveDown(n int)
	MoveForward(n int)
	MoveBackward(n int)
	MoveDownCr(n int)
	MoveUpCr(n int)
	MoveForwardTabs(n int)
	MoveBackwardTabs(n int)
	ClearLine(mode LineClearMode)
	ClearScreen(mode ClearMode)
	EraseChars(n int)
	DeleteChars(n int)
	InsertBlank(n int)
	InsertBlankLines(n int)
	DeleteLines(n int)
	ScrollUp(n int)
	ScrollDown(n int)
	SetScrollingRegion(top, bottom int)
	SaveCursorPosition()
	RestoreCursorPosition()
	ReverseIndex()
	HorizontalTabSet()
	ClearTabs(mode TabClearMode)
	SetMode(mode TerminalMode)
	UnsetMode(mode TerminalMode)
	SetCharAttribute(attr CharAttribute)
	SetColor(index int, c color.Color)
	ResetColor(index int)
	SetForegroundColor(c color.Color)
	SetBackgroundColor(c color.Color)
	SetTitle(title string)
	ConfigureCharset(index CharsetIndex, charset Charset)
	SetActiveCharset(n int)
	Decaln()
	ResetState()
}

type decoderState uint8

const (
	stateGround decoderState = iota
	stateEscape
	stateEscapeIntermediate
	stateCSIEntry
	stateCSIParam
	stateCSIIntermediate
	stateCSIIgnore
	stateOSCString
	stateStringConsume // DCS, SOS, PM, APC: swallowed until ST
	stateUTF8Collect
)

const (
	maxParams        = 32
	maxIntermediates = 2
	maxOSCBytes      = 4096
)

// csiParam is one CSI parameter. sub marks parameters introduced by ':'
// (sub-parameters of the preceding parameter).
type csiParam struct {
	value int
	sub   bool
}

// Decoder is the DEC-derived escape sequence state machine. Its state
// persists across Write calls, so a sequence split over chunk boundaries
// resumes correctly on the next Write.
type Decoder struct {
	handler Handler

	state         decoderState
	params        []csiParam
	param         int
	paramSub      bool
	intermediates []byte
	prefix        byte // '<', '=', '>' or '?' when present
	osc           []byte
	strESC        bool // saw ESC inside a string sequence, expecting '\'
	utf8Buf       []byte
	utf8Need      int

	err error
}

// NewDecoder creates a decoder in ground state that dispatches to handler.
func NewDecoder(handler Handler) *Decoder {
	return &Decoder{
		handler: handler,
		params:  make([]csiParam, 0, maxParams),
		utf8Buf: make([]byte, 0, 4),
	}
}

// Ready returns true iff the decoder is in ground state: no escape sequence
// or multi-byte character is in progress, and the screen is safe to read.
func (d *Decoder) Ready() bool {
	return d.state == stateGround
}

// Reset forces the decoder back to ground state, discarding any partial sequence.
func (d *Decoder) Reset() {
	d.state = stateGround
	d.params = d.params[:0]
	d.param = 0
	d.paramSub = false
	d.intermediates = d.intermediates[:0]
	d.prefix = 0
	d.osc = d.osc[:0]
	d.strESC = false
	d.utf8Buf = d.utf8Buf[:0]
	d.utf8Need = 0
}

// Write consumes bytes, dispatching decoded commands to the handler.
// Implements io.Writer. On error the count reports how many bytes were
// consumed; the decoder remains usable and later Writes may continue.
func (d *Decoder) Write(data []byte) (int, error) {
	d.err = nil
	for i := 0; i < len(data); i++ {
		d.step(data[i])
		if d.err != nil {
			return i + 1, d.err
		}
	}
	return len(data), nil
}

func (d *Decoder) step(b byte) {
	switch d.state {
	case stateGround:
		switch {
		case b == 0x1b:
			d.enterEscape()
		case b == 0x7f:
			// DEL is ignored
		case b < 0x20:
			d.execute(b)
		case b < 0x80:
			d.handler.Input(rune(b))
		default:
			d.beginUTF8(b)
		}

	case stateUTF8Collect:
		if b&0xc0 == 0x80 {
			d.utf8Buf = append(d.utf8Buf, b)
			if len(d.utf8Buf) == d.utf8Need {
				r, _ := utf8.DecodeRune(d.utf8Buf)
				d.handler.Input(r) // RuneError for overlong/surrogate encodings
				d.utf8Buf = d.utf8Buf[:0]
				d.utf8Need = 0
				d.state = stateGround
			}
			return
		}
		// Truncated sequence: emit a replacement and reprocess the byte.
		d.handler.Input(utf8.RuneError)
		d.utf8Buf = d.utf8Buf[:0]
		d.utf8Need = 0
		d.state = stateGround
		d.step(b)

	case stateEscape:
		switch {
		case b == '[':
			d.enterCSI()
		case b == ']':
			d.osc = d.osc[:0]
			d.strESC = false
			d.state = stateOSCString
		case b == 'P' || b == 'X' || b == '^' || b == '_':
			d.strESC = false
			d.state = stateStringConsume
		case b >= 0x20 && b <= 0x2f:
			d.appendIntermediate(b)
			d.state = stateEscapeIntermediate
		case b == 0x1b:
			d.enterEscape()
		case b == 0x18:
			d.state = stateGround
		case b == 0x1a:
			d.handler.Substitute()
			d.state = stateGround
		case b < 0x20:
			d.execute(b)
		case b >= 0x30 && b <= 0x7e:
			d.state = stateGround
			d.escDispatch(b)
		default:
			d.state = stateGround
		}

	case stateEscapeIntermediate:
		switch {
		case b >= 0x20 && b <= 0x2f:
			d.appendIntermediate(b)
		case b >= 0x30 && b <= 0x7e:
			d.state = stateGround
			d.escDispatch(b)
		case b == 0x1b:
			d.enterEscape()
		case b == 0x18 || b == 0x1a:
			d.state = stateGround
		case b < 0x20:
			d.execute(b)
		default:
			d.state = stateGround
		}

	case stateCSIEntry:
		switch {
		case b >= '0' && b <= '9':
			d.param = int(b - '0')
			d.state = stateCSIParam
		case b == ';':
			d.pushParam(false)
			d.state = stateCSIParam
		case b == ':':
			d.pushParam(true)
			d.state = stateCSIParam
		case b >= 0x3c && b <= 0x3f:
			d.prefix = b
		case b >= 0x20 && b <= 0x2f:
			d.appendIntermediate(b)
			d.state = stateCSIIntermediate
		case b >= 0x40 && b <= 0x7e:
			d.state = stateGround
			d.csiDispatch(b)
		case b == 0x1b:
			d.enterEscape()
		case b == 0x18 || b == 0x1a:
			d.state = stateGround
		case b < 0x20:
			d.execute(b)
		default:
			d.state = stateCSIIgnore
		}

	case stateCSIParam:
		switch {
		case b >= '0' && b <= '9':
			if d.param < 0xffff {
				d.param = d.param*10 + int(b-'0')
			}
		case b == ';':
			d.pushParam(false)
		case b == ':':
			d.pushParam(true)
		case b >= 0x20 && b <= 0x2f:
			d.pushParam(false)
			d.appendIntermediate(b)
			d.state = stateCSIIntermediate
		case b >= 0x40 && b <= 0x7e:
			d.pushParam(false)
			d.state = stateGround
			d.csiDispatch(b)
		case b == 0x1b:
			d.enterEscape()
		case b == 0x18 || b == 0x1a:
			d.state = stateGround
		case b < 0x20:
			d.execute(b)
		default:
			d.state = stateCSIIgnore
		}

	case stateCSIIntermediate:
		switch {
		case b >= 0x20 && b <= 0x2f:
			d.appendIntermediate(b)
		case b >= 0x40 && b <= 0x7e:
			d.state = stateGround
			d.csiDispatch(b)
		case b == 0x1b:
			d.enterEscape()
		case b == 0x18 || b == 0x1a:
			d.state = stateGround
		case b < 0x20:
			d.execute(b)
		default:
			d.state = stateCSIIgnore
		}

	case stateCSIIgnore:
		switch {
		case b >= 0x40 && b <= 0x7e:
			d.state = stateGround
		case b == 0x1b:
			d.enterEscape()
		case b == 0x18 || b == 0x1a:
			d.state = stateGround
		}

	case stateOSCString:
		switch {
		case d.strESC:
			d.strESC = false
			if b == '\\' {
				d.state = stateGround
				d.oscDispatch()
				return
			}
			// Aborted OSC: the ESC starts a new sequence.
			d.enterEscape()
			d.step(b)
		case b == 0x07:
			d.state = stateGround
			d.oscDispatch()
		case b == 0x1b:
			d.strESC = true
		case b == 0x18 || b == 0x1a:
			d.state = stateGround
		default:
			if len(d.osc) < maxOSCBytes {
				d.osc = append(d.osc, b)
			}
		}

	case stateStringConsume:
		switch {
		case d.strESC:
			d.strESC = false
			if b == '\\' {
				d.state = stateGround
				return
			}
			d.enterEscape()
			d.step(b)
		case b == 0x07:
			d.state = stateGround
		case b == 0x1b:
			d.strESC = true
		case b == 0x18 || b == 0x1a:
			d.state = stateGround
		}
	}
}

func (d *Decoder) enterEscape() {
	d.state = stateEscape
	d.intermediates = d.intermediates[:0]
	d.prefix = 0
	d.strESC = false
}

func (d *Decoder) enterCSI() {
	d.state = stateCSIEntry
	d.params = d.params[:0]
	d.param = 0
	d.paramSub = false
	d.intermediates = d.intermediates[:0]
	d.prefix = 0
}

func (d *Decoder) appendIntermediate(b byte) {
	if len(d.intermediates) < maxIntermediates {
		d.intermediates = append(d.intermediates, b)
	}
}

// pushParam finalizes the accumulating parameter. nextSub marks whether the
// separator was ':' so the following parameter becomes a sub-parameter.
func (d *Decoder) pushParam(nextSub bool) {
	if len(d.params) < maxParams {
		d.params = append(d.params, csiParam{value: d.param, sub: d.paramSub})
	}
	d.param = 0
	d.paramSub = nextSub
}

func (d *Decoder) beginUTF8(b byte) {
	var need int
	switch {
	case b >= 0xc2 && b <= 0xdf:
		need = 2
	case b >= 0xe0 && b <= 0xef:
		need = 3
	case b >= 0xf0 && b <= 0xf4:
		need = 4
	default:
		// Invalid leading byte (continuation byte, 0xc0/0xc1, > 0xf4)
		d.handler.Input(utf8.RuneError)
		return
	}
	d.utf8Buf = append(d.utf8Buf[:0], b)
	d.utf8Need = need
	d.state = stateUTF8Collect
}

func (d *Decoder) execute(b byte) {
	switch b {
	case 0x07:
		d.handler.Bell()
	case 0x08:
		d.handler.Backspace()
	case 0x09:
		d.handler.Tab(1)
	case 0x0a, 0x0b, 0x0c:
		d.handler.LineFeed()
	case 0x0d:
		d.handler.CarriageReturn()
	case 0x0e:
		d.handler.SetActiveCharset(1)
	case 0x0f:
		d.handler.SetActiveCharset(0)
	case 0x1a:
		d.handler.Substitute()
	}
}

func (d *Decoder) escDispatch(final byte) {
	if len(d.intermediates) == 0 {
		switch final {
		case 'D': // IND
			d.handler.LineFeed()
		case 'E': // NEL
			d.handler.CarriageReturn()
			d.handler.LineFeed()
		case 'M': // RI
			d.handler.ReverseIndex()
		case '7': // DECSC
			d.handler.SaveCursorPosition()
		case '8': // DECRC
			d.handler.RestoreCursorPosition()
		case 'H': // HTS
			d.handler.HorizontalTabSet()
		case 'c': // RIS
			d.handler.ResetState()
		}
		return
	}

	switch d.intermediates[0] {
	case '#':
		if final == '8' {
			d.handler.Decaln()
		}
	case '(', ')', '*', '+':
		index := CharsetIndex(d.intermediates[0] - '(')
		charset := CharsetASCII
		if final == '0' {
			charset = CharsetLineDrawing
		}
		d.handler.ConfigureCharset(index, charset)
	}
}

// tops returns the top-level parameters (sub-parameters skipped).
func (d *Decoder) tops() []int {
	values := make([]int, 0, len(d.params))
	for _, p := range d.params {
		if !p.sub {
			values = append(values, p.value)
		}
	}
	return values
}

func paramOr(params []int, i, def int) int {
	if i >= len(params) || params[i] == 0 {
		return def
	}
	return params[i]
}

func (d *Decoder) csiDispatch(final byte) {
	if len(d.intermediates) > 0 {
		// DECSCUSR and friends carry intermediates; none affect the grid.
		return
	}

	params := d.tops()
	n1 := paramOr(params, 0, 1)

	if d.prefix != 0 {
		switch final {
		case 'h', 'l':
			if d.prefix == '?' {
				d.dispatchPrivateModes(params, final == 'h')
			}
		}
		return
	}

	switch final {
	case 'A':
		d.handler.MoveUp(n1)
	case 'B', 'e':
		d.handler.MoveDown(n1)
	case 'C', 'a':
		d.handler.MoveForward(n1)
	case 'D':
		d.handler.MoveBackward(n1)
	case 'E':
		d.handler.MoveDownCr(n1)
	case 'F':
		d.handler.MoveUpCr(n1)
	case 'G', '`':
		d.handler.GotoCol(n1 - 1)
	case 'd':
		d.handler.GotoLine(n1 - 1)
	case 'H', 'f':
		d.handler.Goto(paramOr(params, 0, 1)-1, paramOr(params, 1, 1)-1)
	case 'I':
		d.handler.MoveForwardTabs(n1)
	case 'Z':
		d.handler.MoveBackwardTabs(n1)
	case 'J':
		switch firstParam(params) {
		case 0:
			d.handler.ClearScreen(ClearModeBelow)
		case 1:
			d.handler.ClearScreen(ClearModeAbove)
		case 2:
			d.handler.ClearScreen(ClearModeAll)
		case 3:
			d.handler.ClearScreen(ClearModeSaved)
		}
	case 'K':
		switch firstParam(params) {
		case 0:
			d.handler.ClearLine(LineClearModeRight)
		case 1:
			d.handler.ClearLine(LineClearModeLeft)
		case 2:
			d.handler.ClearLine(LineClearModeAll)
		}
	case 'L':
		d.handler.InsertBlankLines(n1)
	case 'M':
		d.handler.DeleteLines(n1)
	case 'P':
		d.handler.DeleteChars(n1)
	case '@':
		d.handler.InsertBlank(n1)
	case 'X':
		d.handler.EraseChars(n1)
	case 'S':
		d.handler.ScrollUp(n1)
	case 'T':
		if len(params) <= 1 {
			d.handler.ScrollDown(n1)
		}
	case 'g':
		switch firstParam(params) {
		case 0:
			d.handler.ClearTabs(TabClearModeCurrent)
		case 3:
			d.handler.ClearTabs(TabClearModeAll)
		}
	case 'h':
		d.dispatchModes(params, true)
	case 'l':
		d.dispatchModes(params, false)
	case 'm':
		d.dispatchSGR()
	case 'r':
		d.handler.SetScrollingRegion(paramOr(params, 0, 1), paramOr(params, 1, 0))
	case 's':
		d.handler.SaveCursorPosition()
	case 'u':
		d.handler.RestoreCursorPosition()
	}
}

func firstParam(params []int) int {
	if len(params) == 0 {
		return 0
	}
	return params[0]
}

func (d *Decoder) dispatchModes(params []int, set bool) {
	for _, p := range params {
		var mode TerminalMode
		switch p {
		case 4:
			mode = ModeInsert
		case 20:
			mode = ModeLineFeedNewLine
		default:
			continue
		}
		if set {
			d.handler.SetMode(mode)
		} else {
			d.handler.UnsetMode(mode)
		}
	}
}

func (d *Decoder) dispatchPrivateModes(params []int, set bool) {
	for _, p := range params {
		var mode TerminalMode
		switch p {
		case 6:
			mode = ModeOrigin
		case 7:
			mode = ModeLineWrap
		case 25:
			mode = ModeShowCursor
		case 47, 1047:
			mode = ModeAltScreen
		case 1048:
			if set {
				d.handler.SaveCursorPosition()
			} else {
				d.handler.RestoreCursorPosition()
			}
			continue
		case 1049:
			mode = ModeSwapScreenAndSetRestoreCursor
		default:
			continue
		}
		if set {
			d.handler.SetMode(mode)
		} else {
			d.handler.UnsetMode(mode)
		}
	}
}

func (d *Decoder) dispatchSGR() {
	if len(d.params) == 0 {
		d.handler.SetCharAttribute(CharAttribute{Attr: AttrReset})
		return
	}

	for i := 0; i < len(d.params); i++ {
		p := d.params[i]
		if p.sub {
			// Sub-parameter of an attribute handled below; skip strays.
			continue
		}

		switch v := p.value; {
		case v == 0:
			d.handler.SetCharAttribute(CharAttribute{Attr: AttrReset})
		case v == 1:
			d.handler.SetCharAttribute(CharAttribute{Attr: AttrBold})
		case v == 2:
			d.handler.SetCharAttribute(CharAttribute{Attr: AttrFaint})
		case v == 3:
			d.handler.SetCharAttribute(CharAttribute{Attr: AttrItalic})
		case v == 4:
			// 4:0 disables, any other sub selects an underline style.
			if i+1 < len(d.params) && d.params[i+1].sub && d.params[i+1].value == 0 {
				d.handler.SetCharAttribute(CharAttribute{Attr: AttrCancelUnderline})
			} else {
				d.handler.SetCharAttribute(CharAttribute{Attr: AttrUnderline})
			}
		case v == 7:
			d.handler.SetCharAttribute(CharAttribute{Attr: AttrInverse})
		case v == 9:
			d.handler.SetCharAttribute(CharAttribute{Attr: AttrStrikethrough})
		case v == 21:
			d.handler.SetCharAttribute(CharAttribute{Attr: AttrUnderline})
		case v == 22:
			d.handler.SetCharAttribute(CharAttribute{Attr: AttrCancelBoldFaint})
		case v == 23:
			d.handler.SetCharAttribute(CharAttribute{Attr: AttrCancelItalic})
		case v == 24:
			d.handler.SetCharAttribute(CharAttribute{Attr: AttrCancelUnderline})
		case v == 27:
			d.handler.SetCharAttribute(CharAttribute{Attr: AttrCancelInverse})
		case v == 29:
			d.handler.SetCharAttribute(CharAttribute{Attr: AttrCancelStrikethrough})
		case v >= 30 && v <= 37:
			d.handler.SetCharAttribute(CharAttribute{Attr: AttrForeground, Color: &IndexedColor{Index: v - 30}})
		case v == 38:
			c, next := d.extendedColor(i)
			if c != nil {
				d.handler.SetCharAttribute(CharAttribute{Attr: AttrForeground, Color: c})
			}
			i = next
		case v == 39:
			d.handler.SetCharAttribute(CharAttribute{Attr: AttrForeground})
		case v >= 40 && v <= 47:
			d.handler.SetCharAttribute(CharAttribute{Attr: AttrBackground, Color: &IndexedColor{Index: v - 40}})
		case v == 48:
			c, next := d.extendedColor(i)
			if c != nil {
				d.handler.SetCharAttribute(CharAttribute{Attr: AttrBackground, Color: c})
			}
			i = next
		case v == 49:
			d.handler.SetCharAttribute(CharAttribute{Attr: AttrBackground})
		case v == 58:
			// Underline color: consume arguments, no grid effect.
			_, next := d.extendedColor(i)
			i = next
		case v == 59:
			// Default underline color, no arguments and no grid effect.
		case v >= 90 && v <= 97:
			d.handler.SetCharAttribute(CharAttribute{Attr: AttrForeground, Color: &IndexedColor{Index: v - 90 + 8}})
		case v >= 100 && v <= 107:
			d.handler.SetCharAttribute(CharAttribute{Attr: AttrBackground, Color: &IndexedColor{Index: v - 100 + 8}})
		}
	}
}

// extendedColor parses the arguments of SGR 38/48 in both the semicolon form
// (38;5;n and 38;2;r;g;b) and the colon sub-parameter form (38:5:n,
// 38:2:r:g:b, 38:2:colorspace:r:g:b). It returns the parsed color (nil when
// malformed) and the index of the last parameter consumed.
func (d *Decoder) extendedColor(i int) (color.Color, int) {
	// Colon form: collect the run of sub-parameters following i.
	if i+1 < len(d.params) && d.params[i+1].sub {
		subs := make([]int, 0, 6)
		last := i
		for j := i + 1; j < len(d.params) && d.params[j].sub; j++ {
			subs = append(subs, d.params[j].value)
			last = j
		}
		switch {
		case len(subs) >= 2 && subs[0] == 5:
			return paletteIndexColor(subs[1]), last
		case len(subs) >= 5 && subs[0] == 2:
			// With colorspace id: 2:cs:r:g:b
			return rgbColor(subs[2], subs[3], subs[4]), last
		case len(subs) >= 4 && subs[0] == 2:
			return rgbColor(subs[1], subs[2], subs[3]), last
		}
		return nil, last
	}

	// Semicolon form: arguments are ordinary parameters.
	if i+1 >= len(d.params) {
		return nil, i
	}
	switch d.params[i+1].value {
	case 5:
		if i+2 < len(d.params) {
			return paletteIndexColor(d.params[i+2].value), i + 2
		}
		return nil, i + 1
	case 2:
		if i+4 < len(d.params) {
			return rgbColor(d.params[i+2].value, d.params[i+3].value, d.params[i+4].value), i + 4
		}
		return nil, len(d.params) - 1
	}
	return nil, i + 1
}

func paletteIndexColor(index int) color.Color {
	if index < 0 || index > 255 {
		return nil
	}
	return &IndexedColor{Index: index}
}

func rgbColor(r, g, b int) color.Color {
	if r < 0 || r > 255 || g < 0 || g > 255 || b < 0 || b > 255 {
		return nil
	}
	return color.RGBA{R: uint8(r), G: uint8(g), B: uint8(b), A: 255}
}

func (d *Decoder) oscDispatch() {
	payload := d.osc
	d.osc = d.osc[:0]

	data := string(payload)
	code, rest, _ := strings.Cut(data, ";")

	switch code {
	case "0", "2":
		if !utf8.ValidString(rest) {
			d.err = ErrInvalidUTF8
			return
		}
		d.handler.SetTitle(rest)
	case "4":
		// index;spec pairs
		parts := strings.Split(rest, ";")
		for i := 0; i+1 < len(parts); i += 2 {
			index, err := strconv.Atoi(parts[i])
			if err != nil || index < 0 || index > 255 {
				continue
			}
			if c, ok := parseColorSpec(parts[i+1]); ok {
				d.handler.SetColor(index, c)
			}
		}
	case "10":
		if c, ok := parseColorSpec(rest); ok {
			d.handler.SetForegroundColor(c)
		}
	case "11":
		if c, ok := parseColorSpec(rest); ok {
			d.handler.SetBackgroundColor(c)
		}
	case "104":
		if rest == "" {
			d.handler.ResetColor(-1)
			return
		}
		for _, part := range strings.Split(rest, ";") {
			if index, err := strconv.Atoi(part); err == nil {
				d.handler.ResetColor(index)
			}
		}
	case "110":
		d.handler.SetForegroundColor(nil)
	case "111":
		d.handler.SetBackgroundColor(nil)
	}
	// Unknown OSCs are parsed away harmlessly.
}
