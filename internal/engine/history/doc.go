// Package history provides undo/redo for buffer edits.
//
// # Operations
//
// An Operation records a single edit: the range that was modified and the
// old and new text. Operations can be inverted and replayed.
//
// # Groups
//
// A Group collects the operations made by one command so that they undo
// together. Every group carries a unique ID.
//
// # Transactions
//
// A Transaction wraps a buffer and records every Insert and Delete made
// through it:
//
//	err := h.Transaction(buf, "Align", func(tx *history.Transaction) error {
//	    _, err := tx.Insert(4, "  ")
//	    return err
//	})
//
// The recorded operations are pushed as one group when the function
// returns, even if it failed part way. Rollback reverts a transaction
// explicitly.
package history
