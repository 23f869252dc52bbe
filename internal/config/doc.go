// Package config builds the alignment rule set from its layers.
//
// Layers apply in order: built-in rules, the user file, then the
// environment. A file rule whose name matches an earlier rule replaces it in
// place; new names are appended. The mapping form of a file is appended after
// its list form, sorted by name.
//
// Policy strings are copied through unchecked. An unknown value is reported
// when a command evaluates the rule, not when the file loads.
//
// A Store holds the active Config. Commands take one snapshot per
// invocation; a reload swaps in a new Config without touching snapshots
// already handed out.
package config
