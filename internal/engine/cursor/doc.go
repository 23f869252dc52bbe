// Package cursor provides selection management for alignment commands.
//
// Selections use an anchor/head model where:
//   - Anchor: The position where the selection started
//   - Head: The current cursor position
//
// When Anchor == Head, the selection represents just a cursor with no
// selected text. Alignment treats a cursor as selecting its whole line.
//
// CursorSet manages multiple selections that are kept sorted by position
// and merged when they overlap. Each selection is aligned on its own, so
// two selections that cover different blocks produce two independent
// alignments.
//
// Selection is an immutable value type. CursorSet is not thread-safe and
// should be protected by external synchronization if accessed concurrently.
package cursor
