package termgrid

import "errors"

// ErrNotFound is returned by registry operations when no instance is
// registered under the given id.
var ErrNotFound = errors.New("termgrid: instance not found")

// ErrInvalidUTF8 is returned by Write when an OSC string field that must be
// valid text contains malformed UTF-8. The screen keeps the state produced by
// the bytes consumed before the failure and the parser stays usable.
var ErrInvalidUTF8 = errors.New("termgrid: invalid utf-8 in string sequence")
