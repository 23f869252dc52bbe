// Package app wires the document, dispatcher, configuration and scripting
// into one application.
package app

import (
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/dshills/lineup/internal/config"
	"github.com/dshills/lineup/internal/config/loader"
	"github.com/dshills/lineup/internal/config/watcher"
	"github.com/dshills/lineup/internal/dispatcher"
	"github.com/dshills/lineup/internal/dispatcher/handler"
	alignh "github.com/dshills/lineup/internal/dispatcher/handlers/align"
	"github.com/dshills/lineup/internal/engine"
	"github.com/dshills/lineup/internal/input"
	"github.com/dshills/lineup/internal/plugin/lua"
)

// Options configures the application.
type Options struct {
	// ConfigPath is the configuration file. Empty falls back to
	// LINEUP_CONFIG, then to the built-in rules.
	ConfigPath string

	// WatchConfig reloads the configuration file when it changes.
	WatchConfig bool

	// OnReload is called after a watched configuration file was reloaded
	// successfully.
	OnReload func()

	// Stats records per-action dispatch counts and timings.
	Stats bool

	// Env overrides the process environment. Nil reads LINEUP_* variables.
	Env *loader.Env

	// Logger receives diagnostics. Nil discards.
	Logger *slog.Logger

	// Status receives user-visible status messages. Nil discards.
	Status func(msg string)

	// ReadOnly opens documents read-only.
	ReadOnly bool

	// ScriptTimeout bounds each script run. Zero uses the default.
	ScriptTimeout time.Duration
}

// Application coordinates one open document and its commands.
type Application struct {
	mu sync.RWMutex

	logger     *slog.Logger
	status     func(msg string)
	store      *config.Store
	watcher    *watcher.Watcher
	dispatcher *dispatcher.Dispatcher
	script     *lua.State

	doc      *engine.Engine
	readOnly bool
}

// New creates an Application with no document open.
func New(opts Options) (*Application, error) {
	app := &Application{
		logger:   opts.Logger,
		status:   opts.Status,
		readOnly: opts.ReadOnly,
	}
	if app.logger == nil {
		app.logger = slog.New(slog.DiscardHandler)
	}
	if app.status == nil {
		app.status = func(string) {}
	}

	b := &bootstrapper{app: app, opts: opts}
	if err := b.bootstrap(); err != nil {
		return nil, err
	}
	return app, nil
}

// Open replaces the current document with the contents of r.
func (app *Application) Open(r io.Reader, path string) error {
	var opts []engine.Option
	if app.readOnly {
		opts = append(opts, engine.WithReadOnly())
	}

	doc, err := engine.NewFromReader(r, opts...)
	if err != nil {
		return err
	}

	app.mu.Lock()
	app.doc = doc
	app.mu.Unlock()

	app.dispatcher.SetDocument(doc, path)
	app.logger.Debug("document opened", "path", path, "lines", doc.LineCount())
	return nil
}

// Document returns the open document, or nil.
func (app *Application) Document() *engine.Engine {
	app.mu.RLock()
	defer app.mu.RUnlock()
	return app.doc
}

// Dispatcher returns the action dispatcher.
func (app *Application) Dispatcher() *dispatcher.Dispatcher {
	return app.dispatcher
}

// Config returns the configuration store.
func (app *Application) Config() *config.Store {
	return app.store
}

// Stats returns per-action dispatch statistics, or nil when Options.Stats
// was not set.
func (app *Application) Stats() []dispatcher.ActionStats {
	if m := app.dispatcher.Metrics(); m != nil {
		return m.Actions()
	}
	return nil
}

// Rules returns the configured rule names in order.
func (app *Application) Rules() []string {
	return app.store.Config().RuleNames()
}

// AlignLeft left-aligns lines first through last (0-based, inclusive).
func (app *Application) AlignLeft(first, last uint32, biasLeft, dryRun bool) (handler.Result, error) {
	action := input.NewAction(alignh.ActionLeft).
		FromSource(input.SourceCLI).
		With(alignh.ArgBiasLeft, biasLeft)
	return app.runOnLines(first, last, action, dryRun)
}

// AlignMatch match-aligns lines first through last (0-based, inclusive)
// on the rule called name, or on the best rule when name is "auto".
func (app *Application) AlignMatch(first, last uint32, name string, dryRun bool) (handler.Result, error) {
	action := input.NewAction(alignh.ActionMatch).
		FromSource(input.SourceCLI).
		With(alignh.ArgMatchName, name)
	return app.runOnLines(first, last, action, dryRun)
}

func (app *Application) runOnLines(first, last uint32, action input.Action, dryRun bool) (handler.Result, error) {
	doc := app.Document()
	if doc == nil {
		return handler.Result{}, ErrNoDocument
	}
	if last < first || last >= doc.LineCount() {
		return handler.Result{}, ErrLineRange
	}
	doc.SelectLines(first, last)

	var result handler.Result
	if dryRun {
		result = app.dispatcher.DryRun(action)
	} else {
		result = app.dispatcher.Dispatch(action)
	}
	if result.IsError() {
		return result, &ActionError{Action: action.Name, Err: result.Error}
	}
	return result, nil
}

// RunScript executes a Lua script against the open document.
func (app *Application) RunScript(path string) error {
	if app.Document() == nil {
		return ErrNoDocument
	}
	if app.script == nil {
		return lua.ErrStateClosed
	}
	app.logger.Debug("running script", "path", path)
	return app.script.DoFile(path)
}

// LineCount implements lua.Document.
func (app *Application) LineCount() uint32 {
	if doc := app.Document(); doc != nil {
		return doc.LineCount()
	}
	return 0
}

// LineText implements lua.Document.
func (app *Application) LineText(line uint32) string {
	if doc := app.Document(); doc != nil {
		return doc.LineText(line)
	}
	return ""
}

// SelectLines implements lua.Document.
func (app *Application) SelectLines(first, last uint32) {
	if doc := app.Document(); doc != nil {
		doc.SelectLines(first, last)
	}
}

// Shutdown releases the watcher and the script state.
func (app *Application) Shutdown() {
	app.close()
}

func (app *Application) close() {
	if app.watcher != nil {
		_ = app.watcher.Close()
		app.watcher = nil
	}
	if app.script != nil {
		app.script.Close()
		app.script = nil
	}
}

var _ lua.Document = (*Application)(nil)
