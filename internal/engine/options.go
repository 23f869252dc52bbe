package engine

import (
	"github.com/dshills/lineup/internal/engine/buffer"
)

// DefaultMaxUndoEntries is the default undo depth.
const DefaultMaxUndoEntries = 1000

// Option configures an Engine during creation.
type Option func(*Engine)

// WithLineEnding forces the export line ending style.
func WithLineEnding(ending buffer.LineEnding) Option {
	return func(e *Engine) {
		e.bufOpts = append(e.bufOpts, buffer.WithLineEnding(ending))
	}
}

// WithMaxUndoEntries sets the maximum number of undo groups.
func WithMaxUndoEntries(max int) Option {
	return func(e *Engine) {
		if max > 0 {
			e.maxUndoEntries = max
		}
	}
}

// WithReadOnly creates a read-only engine.
// Edit, Undo and Redo return ErrReadOnly.
func WithReadOnly() Option {
	return func(e *Engine) {
		e.readOnly = true
	}
}
