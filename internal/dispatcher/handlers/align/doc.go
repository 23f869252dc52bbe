// Package align provides the user-facing alignment commands.
//
// Actions:
//
//	align.left       bias_left (bool, default false)
//	align.match      match_name (string, default "auto")
//	align.listRules  returns the configured rule names in Data["rules"]
//	align.pick       index (int) into align.listRules; negative cancels
//
// Every selection is aligned on its own. Line spans for all selections are
// read before the first edit, and all edits of one command form a single
// undo group. In a dry run the command runs against a scratch copy of the
// buffer and returns the plans and the resulting text in Data.
package align
