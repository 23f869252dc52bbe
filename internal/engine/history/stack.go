package history

import (
	"errors"
	"sync"

	"github.com/dshills/lineup/internal/engine/buffer"
)

// Common errors for history operations.
var (
	ErrNothingToUndo = errors.New("nothing to undo")
	ErrNothingToRedo = errors.New("nothing to redo")
)

// DefaultMaxEntries is used when NewHistory is given a non-positive limit.
const DefaultMaxEntries = 1000

// History manages undo/redo state for a buffer.
type History struct {
	mu sync.Mutex

	undoStack []*Group
	redoStack []*Group

	maxEntries int
}

// NewHistory creates a new history manager.
func NewHistory(maxEntries int) *History {
	if maxEntries <= 0 {
		maxEntries = DefaultMaxEntries
	}
	return &History{
		maxEntries: maxEntries,
	}
}

// Push adds a group to the undo stack and clears the redo stack.
// Empty groups are ignored.
func (h *History) Push(g *Group) {
	if g == nil || len(g.Operations) == 0 {
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	h.undoStack = append(h.undoStack, g)
	h.redoStack = nil

	if len(h.undoStack) > h.maxEntries {
		excess := len(h.undoStack) - h.maxEntries
		h.undoStack = h.undoStack[excess:]
	}
}

// Undo reverts the most recent group.
// The lock is released while the buffer is edited.
func (h *History) Undo(buf *buffer.Buffer) (GroupInfo, error) {
	h.mu.Lock()
	if len(h.undoStack) == 0 {
		h.mu.Unlock()
		return GroupInfo{}, ErrNothingToUndo
	}
	g := h.undoStack[len(h.undoStack)-1]
	h.undoStack = h.undoStack[:len(h.undoStack)-1]
	h.mu.Unlock()

	if err := g.Undo(buf); err != nil {
		h.mu.Lock()
		h.undoStack = append(h.undoStack, g)
		h.mu.Unlock()
		return GroupInfo{}, err
	}

	h.mu.Lock()
	h.redoStack = append(h.redoStack, g)
	h.mu.Unlock()
	return g.Info(), nil
}

// Redo replays the most recently undone group.
func (h *History) Redo(buf *buffer.Buffer) (GroupInfo, error) {
	h.mu.Lock()
	if len(h.redoStack) == 0 {
		h.mu.Unlock()
		return GroupInfo{}, ErrNothingToRedo
	}
	g := h.redoStack[len(h.redoStack)-1]
	h.redoStack = h.redoStack[:len(h.redoStack)-1]
	h.mu.Unlock()

	if err := g.Redo(buf); err != nil {
		h.mu.Lock()
		h.redoStack = append(h.redoStack, g)
		h.mu.Unlock()
		return GroupInfo{}, err
	}

	h.mu.Lock()
	h.undoStack = append(h.undoStack, g)
	h.mu.Unlock()
	return g.Info(), nil
}

// CanUndo returns true if undo is available.
func (h *History) CanUndo() bool {
	return h.UndoCount() > 0
}

// CanRedo returns true if redo is available.
func (h *History) CanRedo() bool {
	return h.RedoCount() > 0
}

// UndoCount returns the number of undo groups available.
func (h *History) UndoCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.undoStack)
}

// RedoCount returns the number of redo groups available.
func (h *History) RedoCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.redoStack)
}

// PeekUndo returns info about the next undo group without removing it.
func (h *History) PeekUndo() (GroupInfo, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if len(h.undoStack) == 0 {
		return GroupInfo{}, false
	}
	return h.undoStack[len(h.undoStack)-1].Info(), true
}

// Clear removes all undo/redo history.
func (h *History) Clear() {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.undoStack = nil
	h.redoStack = nil
}

// MaxEntries returns the maximum number of undo groups.
func (h *History) MaxEntries() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.maxEntries
}
