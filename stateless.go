package termgrid

const (
	// Default geometry for stateless JSON extraction.
	jsonDefaultRows = 40
	jsonDefaultCols = 120

	// Default geometry for stateless text and HTML extraction. Wide rows
	// minimize false wraps when the producing program assumed a wider screen.
	textDefaultRows = 256
	textDefaultCols = 500

	// feedChunkSize is how much input the limited feed loop consumes between
	// early-exit polls.
	feedChunkSize = 4096

	// limitSlack keeps feeding this many rows past the requested window so a
	// late sequence that still modifies a visible line is not lost.
	limitSlack = 16
)

// ToJSON interprets data with a transient emulator and returns the structured
// JSON document. cols and rows <= 0 fall back to 120x40. offset skips rows,
// limit caps emitted rows (0 = no limit). When a limit is set, input is fed
// in chunks and feeding stops at the first safe boundary after enough rows
// exist, which makes previewing the head of a huge stream cheap.
func ToJSON(data []byte, cols, rows, offset, limit int) (string, error) {
	if cols <= 0 {
		cols = jsonDefaultCols
	}
	if rows <= 0 {
		rows = jsonDefaultRows
	}

	term := New(WithSize(rows, cols))
	if err := feed(term, data, offset, limit); err != nil {
		return "", err
	}
	return term.JSON(offset, limit)
}

// ToText interprets data with a transient emulator and returns the plain-text
// projection with all escape sequences applied. cols and rows <= 0 fall back
// to 500x256.
func ToText(data []byte, cols, rows int) (string, error) {
	if cols <= 0 {
		cols = textDefaultCols
	}
	if rows <= 0 {
		rows = textDefaultRows
	}

	term := New(WithSize(rows, cols))
	if err := feed(term, data, 0, 0); err != nil {
		return "", err
	}
	return term.Text(), nil
}

// ToHTML interprets data with a transient emulator and returns the styled
// HTML projection. cols and rows <= 0 fall back to 500x256.
func ToHTML(data []byte, cols, rows int) (string, error) {
	if cols <= 0 {
		cols = textDefaultCols
	}
	if rows <= 0 {
		rows = textDefaultRows
	}

	term := New(WithSize(rows, cols))
	if err := feed(term, data, 0, 0); err != nil {
		return "", err
	}
	return term.HTML(), nil
}

// feed writes data into the terminal. With an active limit it feeds in
// chunks, polling at safe boundaries (decoder in ground state) and stopping
// once offset+limit+slack rows are retained.
func feed(term *Terminal, data []byte, offset, limit int) error {
	if limit <= 0 {
		_, err := term.Write(data)
		return err
	}

	target := offset + limit + limitSlack
	for len(data) > 0 {
		chunk := data
		if len(chunk) > feedChunkSize {
			chunk = chunk[:feedChunkSize]
		}
		if _, err := term.Write(chunk); err != nil {
			return err
		}
		data = data[len(chunk):]

		if term.IsReady() && term.HasAtLeast(target) {
			break
		}
	}
	return nil
}
