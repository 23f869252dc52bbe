// Package input defines the actions that drive the dispatcher.
//
// An Action names a command (for example "align.match") and carries its
// arguments. Actions come from the command line, from Lua scripts, or
// from a host editor calling the dispatcher directly.
package input
