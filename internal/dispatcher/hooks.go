package dispatcher

import (
	"log/slog"

	"github.com/dshills/lineup/internal/dispatcher/execctx"
	"github.com/dshills/lineup/internal/dispatcher/handler"
	"github.com/dshills/lineup/internal/input"
)

// PreDispatchHook is called before an action is dispatched.
type PreDispatchHook interface {
	// PreDispatch may modify the action or context.
	// Returns false to cancel the dispatch.
	PreDispatch(action *input.Action, ctx *execctx.ExecutionContext) bool
}

// PostDispatchHook is called after an action is dispatched.
type PostDispatchHook interface {
	// PostDispatch may inspect or modify the result.
	PostDispatch(action *input.Action, ctx *execctx.ExecutionContext, result *handler.Result)
}

// LoggingHook logs every dispatch at debug level and failures at error level.
type LoggingHook struct {
	logger *slog.Logger
}

// NewLoggingHook creates a logging hook. A nil logger discards.
func NewLoggingHook(logger *slog.Logger) *LoggingHook {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &LoggingHook{logger: logger}
}

// PreDispatch logs the action being dispatched.
func (h *LoggingHook) PreDispatch(action *input.Action, ctx *execctx.ExecutionContext) bool {
	h.logger.Debug("dispatching action",
		"action", action.Name,
		"source", action.Source.String(),
		"dry_run", ctx.DryRun,
	)
	return true
}

// PostDispatch logs the dispatch result.
func (h *LoggingHook) PostDispatch(action *input.Action, ctx *execctx.ExecutionContext, result *handler.Result) {
	if result.IsError() {
		h.logger.Error("action failed", "action", action.Name, "error", result.Error)
		return
	}
	h.logger.Debug("dispatch complete", "action", action.Name, "status", result.Status.String())
}

// ReadOnlyGuard cancels actions named in its set when the document is read-only.
type ReadOnlyGuard struct {
	actions map[string]struct{}
}

// NewReadOnlyGuard creates a guard for the given editing actions.
func NewReadOnlyGuard(actions ...string) *ReadOnlyGuard {
	g := &ReadOnlyGuard{actions: make(map[string]struct{}, len(actions))}
	for _, a := range actions {
		g.actions[a] = struct{}{}
	}
	return g
}

// PreDispatch implements PreDispatchHook.
func (g *ReadOnlyGuard) PreDispatch(action *input.Action, ctx *execctx.ExecutionContext) bool {
	if _, ok := g.actions[action.Name]; !ok {
		return true
	}
	return ctx.DryRun || !ctx.IsReadOnly()
}
