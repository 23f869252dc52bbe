package engine

import (
	"io"
	"sync"

	"github.com/dshills/lineup/internal/engine/buffer"
	"github.com/dshills/lineup/internal/engine/cursor"
	"github.com/dshills/lineup/internal/engine/history"
)

// Re-export commonly used types for convenience.
type (
	ByteOffset = buffer.ByteOffset
	Point      = buffer.Point
	Range      = buffer.Range
	Selection  = cursor.Selection
)

// Engine is a single document: text, selections and undo history.
//
// Reads may run concurrently. Edit, Undo and Redo are serialized.
type Engine struct {
	mu sync.Mutex

	buf     *buffer.Buffer
	cursors *cursor.CursorSet
	history *history.History

	bufOpts        []buffer.Option
	maxUndoEntries int
	readOnly       bool
}

func newEngine(opts []Option) *Engine {
	e := &Engine{maxUndoEntries: DefaultMaxUndoEntries}
	for _, opt := range opts {
		opt(e)
	}
	e.cursors = cursor.NewCursorSet(cursor.NewCursorSelection(0))
	e.history = history.NewHistory(e.maxUndoEntries)
	return e
}

// New creates an Engine holding content.
func New(content string, opts ...Option) *Engine {
	e := newEngine(opts)
	e.buf = buffer.NewBufferFromString(content, e.bufOpts...)
	return e
}

// NewFromReader creates an Engine from an io.Reader.
func NewFromReader(r io.Reader, opts ...Option) (*Engine, error) {
	e := newEngine(opts)
	buf, err := buffer.NewBufferFromReader(r, e.bufOpts...)
	if err != nil {
		return nil, err
	}
	e.buf = buf
	return e, nil
}

// Buffer returns the underlying buffer for read access.
func (e *Engine) Buffer() *buffer.Buffer {
	return e.buf
}

// Text returns the full content with "\n" line endings.
func (e *Engine) Text() string {
	return e.buf.Text()
}

// Export returns the content using the document's line ending style.
func (e *Engine) Export() string {
	return e.buf.Export()
}

// LineCount returns the number of lines.
func (e *Engine) LineCount() uint32 {
	return e.buf.LineCount()
}

// LineText returns the text of a line without its newline.
func (e *Engine) LineText(line uint32) string {
	return e.buf.LineText(line)
}

// OffsetToPoint converts a byte offset to line/column.
func (e *Engine) OffsetToPoint(offset ByteOffset) Point {
	return e.buf.OffsetToPoint(offset)
}

// PointToOffset converts line/column to a byte offset.
func (e *Engine) PointToOffset(p Point) ByteOffset {
	return e.buf.PointToOffset(p)
}

// RevisionID returns the buffer's current revision.
func (e *Engine) RevisionID() buffer.RevisionID {
	return e.buf.RevisionID()
}

// IsReadOnly reports whether edits are refused.
func (e *Engine) IsReadOnly() bool {
	return e.readOnly
}

// ============================================================================
// Edits
// ============================================================================

// Edit runs fn inside a history transaction named name.
// Edits made by fn are pushed as one undo group, including when fn fails.
func (e *Engine) Edit(name string, fn func(tx *history.Transaction) error) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.readOnly {
		return ErrReadOnly
	}

	err := e.history.Transaction(e.buf, name, fn)
	e.cursors.Clamp(e.buf.Len())
	return err
}

// Undo reverts the last edit group.
func (e *Engine) Undo() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.readOnly {
		return ErrReadOnly
	}

	_, err := e.history.Undo(e.buf)
	e.cursors.Clamp(e.buf.Len())
	return err
}

// Redo replays the last undone edit group.
func (e *Engine) Redo() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.readOnly {
		return ErrReadOnly
	}

	_, err := e.history.Redo(e.buf)
	e.cursors.Clamp(e.buf.Len())
	return err
}

// CanUndo returns true if undo is available.
func (e *Engine) CanUndo() bool {
	return e.history.CanUndo()
}

// LastEdit returns info about the edit group Undo would revert.
func (e *Engine) LastEdit() (history.GroupInfo, bool) {
	return e.history.PeekUndo()
}

// ============================================================================
// Selections
// ============================================================================

// Cursors returns a copy of the selection set.
func (e *Engine) Cursors() *cursor.CursorSet {
	e.mu.Lock()
	defer e.mu.Unlock()
	return cursor.NewCursorSetFromSlice(e.cursors.All())
}

// SetSelections replaces the selection set, clamped to the buffer.
func (e *Engine) SetSelections(sels ...Selection) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.cursors.SetAll(sels)
	e.cursors.Clamp(e.buf.Len())
}

// SelectLines selects whole lines first through last inclusive.
func (e *Engine) SelectLines(first, last uint32) {
	start := e.buf.LineStartOffset(first)
	end := e.buf.LineEndOffset(last)
	e.SetSelections(cursor.NewSelection(start, end))
}
