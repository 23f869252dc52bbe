// Package lua runs alignment scripts in a sandboxed gopher-lua state.
//
// Only the base, table, string and math libraries are opened, and the
// functions that load code from files or strings are removed. Scripts drive
// the document through the global "align" table installed by OpenAlign:
//
//	align.left(first, last [, bias_left])  -> changed
//	align.match(first, last [, name])      -> changed
//	align.rules()                          -> { name, ... }
//	align.line(n)                          -> text
//	align.line_count()                     -> n
//
// Line numbers are 1-based and inclusive. Every call runs through the
// dispatcher as a script-sourced action, so each is one undo group.
package lua
