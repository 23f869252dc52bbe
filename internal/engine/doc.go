// Package engine ties a buffer, its selections and its undo history into
// one document.
//
// The sub-packages do the work:
//
//   - buffer: text storage with line indexing and position conversion
//   - cursor: selections and the lines they cover
//   - history: transactions and undo/redo groups
//
// Edits go through Engine.Edit, which runs one command at a time per
// document and records its edits as a single undo group:
//
//	e := engine.New("a = 1\nbb = 2\n")
//	err := e.Edit("Align", func(tx *history.Transaction) error {
//	    _, err := tx.Insert(1, " ")
//	    return err
//	})
//	_ = e.Undo()
package engine
