// Package termgrid converts raw byte streams carrying ANSI/VT escape
// sequences, as produced by a pseudo-terminal attached to interactive
// programs, into structured, styled, grid-addressable data.
//
// The package emulates a terminal without any display, making it ideal for:
//   - Feeding interpreted terminal output to log processors and LLM pipelines
//   - Rendering program output as JSON, plain text, or HTML
//   - Capturing streaming PTY output incrementally
//   - Automated testing of CLI tools
//
// # Quick Start
//
// Convert a captured stream in one call:
//
//	doc, err := termgrid.ToJSON(data, 0, 0, 0, 0)   // 120x40 screen
//	text, err := termgrid.ToText(data, 0, 0)        // escape sequences applied, not stripped
//	html, err := termgrid.ToHTML(data, 0, 0)
//
// Or keep a long-lived terminal and feed it incrementally:
//
//	term := termgrid.New(termgrid.WithSize(40, 120))
//	term.Write(chunk1)
//	term.Write(chunk2) // escape sequences may be split anywhere
//	fmt.Println(term.Text())
//
// # Architecture
//
// The package is organized around these core types:
//
//   - [Terminal]: the emulator; owns the grid and implements [Handler]
//   - [Decoder]: the escape-sequence state machine driving a [Handler]
//   - [Buffer]: a 2D grid of cells with scrollback support
//   - [Cell]: a single character with colors and attributes
//   - [Document]: the structured projection with per-row styled spans
//   - [Registry]: a process-wide, id-keyed store of live instances
//
// Terminal implements [io.Writer], so process output can be piped straight
// into it:
//
//	cmd := exec.Command("ls", "-la", "--color=always")
//	cmd.Stdout = term
//	cmd.Run()
//
// # Chunked Input
//
// The decoder's state survives across Write calls. Feeding a stream byte by
// byte produces exactly the same screen as feeding it in one call, including
// escape sequences and UTF-8 characters split across chunk boundaries.
// [Terminal.IsReady] reports whether the decoder is at a safe boundary
// (ground state) so readers never observe a half-applied sequence.
//
// # Output Contract
//
// [Terminal.JSON] emits one top-level object with cols, rows, cursor [x,y],
// cursorVisible, offset, totalLines, and lines. Each line is an array of
// spans and each span is the fixed 5-tuple [text, fg, bg, flags, width].
// Colors are lowercase "#rrggbb" strings or null; flags use the encoding
// bold=1, italic=2, underline=4, strikethrough=8, inverse=16, faint=32.
// Adjacent cells with the same resolved style merge into a single span.
//
// # Scrollback
//
// Rows scrolled off the top of the primary screen are retained, by default
// without bound. Extraction walks rows from the oldest scrollback row to the
// last active row; offset and limit paginate that sequence, and a limit
// enables an early-exit feed that stops interpreting input at a safe
// boundary once the retained rows (scrollback plus the whole active screen)
// cover the requested window plus a margin of 16 rows.
//
// # Line Feed Behavior
//
// Line-feed/new-line mode (LNM) defaults to on: a bare LF also returns the
// cursor to column 0. PTY streams routinely end styled lines with a lone
// "\n", and interpreting it VT100-style would start the next line at the old
// column. Disable with CSI 20 l for strict VT100 behavior.
package termgrid
