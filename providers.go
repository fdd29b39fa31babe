package termgrid

// ScrollbackProvider stores rows scrolled off the top of the primary buffer.
// Implementations can use in-memory storage, disk, database, etc.
type ScrollbackProvider interface {
	// Push appends a row to scrollback. Oldest rows should be removed if MaxRows is exceeded.
	Push(row Row)
	// Len returns the current number of stored rows.
	Len() int
	// Row returns the row at index, where 0 is the oldest row. Returns a zero Row if out of range.
	Row(index int) Row
	// Clear removes all stored rows.
	Clear()
	// SetMaxRows sets the maximum capacity. Values <= 0 mean unbounded.
	SetMaxRows(max int)
	// MaxRows returns the current maximum capacity (<= 0 means unbounded).
	MaxRows() int
}

// memoryScrollback is the default in-memory ScrollbackProvider. Retention is
// unbounded unless a maximum is set.
type memoryScrollback struct {
	rows    []Row
	maxRows int
}

// NewMemoryScrollback creates an unbounded in-memory scrollback store.
func NewMemoryScrollback() ScrollbackProvider {
	return &memoryScrollback{}
}

func (s *memoryScrollback) Push(row Row) {
	s.rows = append(s.rows, row)
	if s.maxRows > 0 && len(s.rows) > s.maxRows {
		drop := len(s.rows) - s.maxRows
		s.rows = append(s.rows[:0], s.rows[drop:]...)
	}
}

func (s *memoryScrollback) Len() int {
	return len(s.rows)
}

func (s *memoryScrollback) Row(index int) Row {
	if index < 0 || index >= len(s.rows) {
		return Row{}
	}
	return s.rows[index]
}

func (s *memoryScrollback) Clear() {
	s.rows = nil
}

func (s *memoryScrollback) SetMaxRows(max int) {
	s.maxRows = max
	if max > 0 && len(s.rows) > max {
		drop := len(s.rows) - max
		s.rows = append(s.rows[:0], s.rows[drop:]...)
	}
}

func (s *memoryScrollback) MaxRows() int {
	return s.maxRows
}

// NoopScrollback discards every pushed row.
type NoopScrollback struct{}

func (NoopScrollback) Push(row Row)     {}
func (NoopScrollback) Len() int         { return 0 }
func (NoopScrollback) Row(index int) Row { return Row{} }
func (NoopScrollback) Clear()           {}
func (NoopScrollback) SetMaxRows(max int) {}
func (NoopScrollback) MaxRows() int     { return 0 }

// TitleProvider handles window title changes (OSC 0, 2).
type TitleProvider interface {
	// SetTitle is called when the title changes.
	SetTitle(title string)
}

// NoopTitle ignores all title changes.
type NoopTitle struct{}

func (NoopTitle) SetTitle(title string) {}

// BellProvider handles bell events triggered by BEL (0x07) characters.
type BellProvider interface {
	// Ring is called when a bell character is received.
	Ring()
}

// NoopBell ignores all bell events.
type NoopBell struct{}

func (NoopBell) Ring() {}

var (
	_ ScrollbackProvider = (*memoryScrollback)(nil)
	_ ScrollbackProvider = NoopScrollback{}
	_ TitleProvider      = NoopTitle{}
	_ BellProvider       = NoopBell{}
)
