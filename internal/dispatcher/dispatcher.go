package dispatcher

import (
	"fmt"
	"log/slog"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/dshills/lineup/internal/dispatcher/execctx"
	"github.com/dshills/lineup/internal/dispatcher/handler"
	"github.com/dshills/lineup/internal/input"
)

// Dispatcher routes actions to namespace handlers and coordinates execution.
type Dispatcher struct {
	mu sync.RWMutex

	namespaces map[string]handler.NamespaceHandler

	document execctx.Document
	rules    execctx.RuleSource
	status   func(msg string)
	logger   *slog.Logger
	filePath string

	config  Config
	metrics *Metrics

	preHooks  []PreDispatchHook
	postHooks []PostDispatchHook
}

// New creates a new dispatcher with the given configuration.
func New(config Config) *Dispatcher {
	d := &Dispatcher{
		namespaces: make(map[string]handler.NamespaceHandler),
		config:     config,
	}
	if config.EnableMetrics {
		d.metrics = NewMetrics()
	}
	return d
}

// NewWithDefaults creates a new dispatcher with default configuration.
func NewWithDefaults() *Dispatcher {
	return New(DefaultConfig())
}

// SetDocument sets the document actions operate on.
func (d *Dispatcher) SetDocument(doc execctx.Document, filePath string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.document = doc
	d.filePath = filePath
}

// SetRules sets the alignment rule source.
func (d *Dispatcher) SetRules(rules execctx.RuleSource) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.rules = rules
}

// SetStatus sets the sink for user-visible status messages.
func (d *Dispatcher) SetStatus(fn func(msg string)) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.status = fn
}

// SetLogger sets the logger handed to handlers.
func (d *Dispatcher) SetLogger(l *slog.Logger) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.logger = l
}

// Document returns the current document.
func (d *Dispatcher) Document() execctx.Document {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.document
}

// RegisterNamespace routes every "<namespace>.*" action to h, replacing any
// handler registered for the same namespace.
func (d *Dispatcher) RegisterNamespace(h handler.NamespaceHandler) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.namespaces[h.Namespace()] = h
}

// RegisterPreHook registers a pre-dispatch hook.
func (d *Dispatcher) RegisterPreHook(hook PreDispatchHook) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.preHooks = append(d.preHooks, hook)
}

// RegisterPostHook registers a post-dispatch hook.
func (d *Dispatcher) RegisterPostHook(hook PostDispatchHook) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.postHooks = append(d.postHooks, hook)
}

// Metrics returns the metrics collector, or nil when disabled.
func (d *Dispatcher) Metrics() *Metrics {
	return d.metrics
}

// Dispatch executes an action synchronously.
func (d *Dispatcher) Dispatch(action input.Action) handler.Result {
	return d.dispatch(action, false)
}

// DryRun executes an action without applying its edits.
func (d *Dispatcher) DryRun(action input.Action) handler.Result {
	return d.dispatch(action, true)
}

func (d *Dispatcher) dispatch(action input.Action, dryRun bool) handler.Result {
	start := time.Now()
	result := d.execute(&action, dryRun)
	if d.metrics != nil {
		d.metrics.RecordDispatch(action.Name, time.Since(start), result.Status)
	}
	return result
}

func (d *Dispatcher) execute(action *input.Action, dryRun bool) handler.Result {
	ctx := d.buildContext()
	ctx.DryRun = dryRun

	if !d.runPreHooks(action, ctx) {
		return handler.Error(fmt.Errorf("%w: %s", ErrActionCancelled, action.Name))
	}

	h := d.route(action.Name)
	if h == nil {
		return handler.Error(fmt.Errorf("%w: %s", ErrNoHandler, action.Name))
	}

	var result handler.Result
	if d.config.RecoverFromPanic {
		result = d.handleWithRecovery(h, *action, ctx)
	} else {
		result = h.HandleAction(*action, ctx)
	}

	d.runPostHooks(action, ctx, &result)
	return result
}

// route returns the handler owning the action's namespace, if it accepts
// the action.
func (d *Dispatcher) route(actionName string) handler.NamespaceHandler {
	ns, _, ok := strings.Cut(actionName, ".")
	if !ok {
		return nil
	}

	d.mu.RLock()
	h := d.namespaces[ns]
	d.mu.RUnlock()

	if h == nil || !h.CanHandle(actionName) {
		return nil
	}
	return h
}

func (d *Dispatcher) handleWithRecovery(h handler.NamespaceHandler, action input.Action, ctx *execctx.ExecutionContext) (result handler.Result) {
	defer func() {
		if r := recover(); r != nil {
			stack := make([]byte, 4096)
			n := runtime.Stack(stack, false)
			result = handler.Error(fmt.Errorf("%w for %s: %v\n%s", ErrPanic, action.Name, r, stack[:n]))
			if d.metrics != nil {
				d.metrics.RecordPanic(action.Name)
			}
		}
	}()
	return h.HandleAction(action, ctx)
}

func (d *Dispatcher) buildContext() *execctx.ExecutionContext {
	d.mu.RLock()
	defer d.mu.RUnlock()

	return &execctx.ExecutionContext{
		Document: d.document,
		Rules:    d.rules,
		Status:   d.status,
		Logger:   d.logger,
		FilePath: d.filePath,
	}
}

func (d *Dispatcher) runPreHooks(action *input.Action, ctx *execctx.ExecutionContext) bool {
	d.mu.RLock()
	hooks := append([]PreDispatchHook(nil), d.preHooks...)
	d.mu.RUnlock()

	for _, h := range hooks {
		if !h.PreDispatch(action, ctx) {
			return false
		}
	}
	return true
}

func (d *Dispatcher) runPostHooks(action *input.Action, ctx *execctx.ExecutionContext, result *handler.Result) {
	d.mu.RLock()
	hooks := append([]PostDispatchHook(nil), d.postHooks...)
	d.mu.RUnlock()

	for _, h := range hooks {
		h.PostDispatch(action, ctx, result)
	}
}
