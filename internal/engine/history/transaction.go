package history

import (
	"errors"

	"github.com/dshills/lineup/internal/engine/buffer"
)

// ErrTransactionDone is returned when editing through a committed or
// rolled back transaction.
var ErrTransactionDone = errors.New("transaction already finished")

// Transaction records edits made to a buffer so they can be pushed to a
// History as a single group.
//
// Transaction exposes the read side of the buffer as well, so it can be
// handed to code that only knows how to read and edit text.
type Transaction struct {
	history *History
	buf     *buffer.Buffer
	group   *Group
	done    bool
}

// Begin starts a transaction on buf. Call Commit or Rollback to finish it.
func (h *History) Begin(buf *buffer.Buffer, name string) *Transaction {
	return &Transaction{
		history: h,
		buf:     buf,
		group:   NewGroup(name),
	}
}

// Transaction runs fn inside a transaction and commits whatever it edited
// as one group. An error from fn stops the command but does not undo the
// edits already made; they stay in the buffer and can be undone together.
func (h *History) Transaction(buf *buffer.Buffer, name string, fn func(tx *Transaction) error) error {
	tx := h.Begin(buf, name)
	err := fn(tx)
	tx.Commit()
	return err
}

// ID returns the transaction's group ID.
func (tx *Transaction) ID() string {
	return tx.group.ID
}

// Operations returns the number of recorded edits.
func (tx *Transaction) Operations() int {
	return len(tx.group.Operations)
}

// Commit pushes the recorded edits to the history and reports whether
// anything was recorded.
func (tx *Transaction) Commit() bool {
	if tx.done {
		return false
	}
	tx.done = true
	if len(tx.group.Operations) == 0 {
		return false
	}
	tx.history.Push(tx.group)
	return true
}

// Rollback reverts the recorded edits without touching the history.
func (tx *Transaction) Rollback() error {
	if tx.done {
		return nil
	}
	tx.done = true
	return tx.group.Undo(tx.buf)
}

// OffsetToPoint converts a byte offset to line/column.
func (tx *Transaction) OffsetToPoint(offset ByteOffset) buffer.Point {
	return tx.buf.OffsetToPoint(offset)
}

// PointToOffset converts line/column to byte offset.
func (tx *Transaction) PointToOffset(p buffer.Point) ByteOffset {
	return tx.buf.PointToOffset(p)
}

// LineEndOffset returns the offset of the end of line, before the newline.
func (tx *Transaction) LineEndOffset(line uint32) ByteOffset {
	return tx.buf.LineEndOffset(line)
}

// CharAt returns the byte at offset.
func (tx *Transaction) CharAt(offset ByteOffset) byte {
	return tx.buf.CharAt(offset)
}

// FindAllLiteral returns every non-overlapping occurrence of pattern.
func (tx *Transaction) FindAllLiteral(pattern string) []Range {
	return tx.buf.FindAllLiteral(pattern)
}

// Insert inserts text and records the edit.
func (tx *Transaction) Insert(offset ByteOffset, text string) (ByteOffset, error) {
	if tx.done {
		return offset, ErrTransactionDone
	}
	end, err := tx.buf.Insert(offset, text)
	if err != nil {
		return offset, err
	}
	if end > offset {
		tx.group.Operations = append(tx.group.Operations,
			NewInsertOperation(offset, tx.buf.TextRange(offset, end)))
	}
	return end, nil
}

// Delete removes text and records the edit.
func (tx *Transaction) Delete(start, end ByteOffset) error {
	if tx.done {
		return ErrTransactionDone
	}
	old := tx.buf.TextRange(start, end)
	if err := tx.buf.Delete(start, end); err != nil {
		return err
	}
	if end > start {
		tx.group.Operations = append(tx.group.Operations,
			NewDeleteOperation(Range{Start: start, End: end}, old))
	}
	return nil
}
