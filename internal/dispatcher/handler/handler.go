// Package handler defines how action namespaces are handled and what they
// report back to the dispatcher.
package handler

import (
	"github.com/dshills/lineup/internal/dispatcher/execctx"
	"github.com/dshills/lineup/internal/input"
)

// NamespaceHandler handles every action whose name starts with its
// namespace followed by a dot, e.g. "align" for "align.match".
type NamespaceHandler interface {
	// Namespace returns the prefix this handler owns.
	Namespace() string

	// CanHandle reports whether actionName is one of the handler's actions.
	CanHandle(actionName string) bool

	// HandleAction runs the action against the execution context.
	HandleAction(action input.Action, ctx *execctx.ExecutionContext) Result
}
