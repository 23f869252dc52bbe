// Package align computes and applies column alignment edits.
//
// Given a set of lines, the package inserts or removes spaces so that either
// the first non-space character of each line (left alignment) or one match of
// a rule's literal patterns on each line (match alignment) lands on a common
// column.
//
// Every operation works in two phases. First a plan is computed: a list of
// Padding values, each a signed number of spaces to insert (positive) or
// remove (negative) at an offset, all measured against the buffer as it was
// before any edit. Then ApplyPaddings issues the edits in ascending offset
// order, carrying the accumulated offset drift forward so later edits land
// where the plan meant them to.
//
// The package never owns the buffer. It talks to the host through the narrow
// Text interface; engine/buffer provides the in-memory implementation and
// engine/history a recording transaction over it.
//
// # Rules
//
// A Rule names the patterns to match plus three policies:
//
//   - multi-match: which match to use when a line has several (first, last, skip)
//   - pre-space: how the space before the match is pruned (remove, keep, one, two, four)
//   - post-space: whether to insert one space after the match
//
// Unset policies are filled from Defaults when the rule is evaluated.
// An unrecognized policy value aborts that rule with a *PolicyError.
//
// # Auto mode
//
// Aligner.MatchAlign with the name Auto evaluates every rule, scores each plan
// by the sum of absolute padding lengths, and applies the highest scoring plan.
// Ties go to the earlier rule in configuration order.
package align
