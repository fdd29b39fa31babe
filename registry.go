package termgrid

import (
	"fmt"
	"sync"

	"pkt.systems/pslog"
)

// Registry is a process-wide store of long-lived emulator instances keyed by
// caller-chosen ids. Each instance retains its decoder state across feeds, so
// streaming PTY output may be split at arbitrary byte boundaries. A single
// lock guards the map and the instances: operations are linearizable and hold
// the lock for their full duration.
type Registry struct {
	mu        sync.Mutex
	terminals map[uint64]*Terminal
	logger    pslog.Logger
}

// RegistryOption configures a Registry during construction.
type RegistryOption func(*Registry)

// WithRegistryLogger attaches a structured logger. Without one the registry
// is silent.
func WithRegistryLogger(logger pslog.Logger) RegistryOption {
	return func(r *Registry) {
		r.logger = logger
	}
}

// NewRegistry creates an empty registry.
func NewRegistry(opts ...RegistryOption) *Registry {
	r := &Registry{
		terminals: make(map[uint64]*Terminal),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// DefaultRegistry is the shared process-wide registry.
var DefaultRegistry = NewRegistry()

// Create allocates an instance under id with the given geometry. If the id is
// already taken, the previous instance is destroyed first. Dimensions <= 0
// fall back to 24x80.
func (r *Registry) Create(id uint64, cols, rows int) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.terminals[id]; ok && r.logger != nil {
		r.logger.Debug("replacing terminal instance", "id", id)
	}
	r.terminals[id] = New(WithSize(rows, cols))
	if r.logger != nil {
		r.logger.Debug("created terminal instance", "id", id, "cols", cols, "rows", rows)
	}
}

// Destroy drops the instance under id. Destroying an unknown id is a no-op.
func (r *Registry) Destroy(id uint64) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.terminals[id]; ok {
		delete(r.terminals, id)
		if r.logger != nil {
			r.logger.Debug("destroyed terminal instance", "id", id)
		}
	}
}

// Len returns the number of live instances.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.terminals)
}

// get looks up an instance. Caller must hold the lock.
func (r *Registry) get(id uint64) (*Terminal, error) {
	term, ok := r.terminals[id]
	if !ok {
		return nil, fmt.Errorf("%w: id %d", ErrNotFound, id)
	}
	return term, nil
}

// Feed appends bytes to the instance's input stream. A partial escape
// sequence at the end of data is resumed by the next Feed.
func (r *Registry) Feed(id uint64, data []byte) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	term, err := r.get(id)
	if err != nil {
		return err
	}
	if _, err := term.Write(data); err != nil {
		if r.logger != nil {
			r.logger.Warn("feed failed", "id", id, "err", err)
		}
		return err
	}
	return nil
}

// Resize changes the instance's grid dimensions. The cursor is clamped and
// scrollback is preserved.
func (r *Registry) Resize(id uint64, cols, rows int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	term, err := r.get(id)
	if err != nil {
		return err
	}
	term.Resize(rows, cols)
	return nil
}

// Reset clears the instance's screen and scrollback and forces its decoder
// back to ground state.
func (r *Registry) Reset(id uint64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	term, err := r.get(id)
	if err != nil {
		return err
	}
	term.Reset()
	return nil
}

// JSON extracts the structured JSON document from the instance.
func (r *Registry) JSON(id uint64, offset, limit int) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	term, err := r.get(id)
	if err != nil {
		return "", err
	}
	return term.JSON(offset, limit)
}

// Text extracts the plain-text projection from the instance.
func (r *Registry) Text(id uint64) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	term, err := r.get(id)
	if err != nil {
		return "", err
	}
	return term.Text(), nil
}

// HTML extracts the styled HTML projection from the instance.
func (r *Registry) HTML(id uint64) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	term, err := r.get(id)
	if err != nil {
		return "", err
	}
	return term.HTML(), nil
}

// Cursor returns the instance's screen-relative cursor position as [x, y].
func (r *Registry) Cursor(id uint64) ([2]int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	term, err := r.get(id)
	if err != nil {
		return [2]int{}, err
	}
	x, y, _ := term.Cursor()
	return [2]int{x, y}, nil
}

// Ready reports whether the instance's decoder is in ground state, i.e. the
// screen can be read without observing a half-applied sequence.
func (r *Registry) Ready(id uint64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	term, err := r.get(id)
	if err != nil {
		return false, err
	}
	return term.IsReady(), nil
}
