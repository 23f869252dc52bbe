package app

import (
	"github.com/dshills/lineup/internal/config"
	"github.com/dshills/lineup/internal/config/loader"
	"github.com/dshills/lineup/internal/config/watcher"
	"github.com/dshills/lineup/internal/dispatcher"
	alignh "github.com/dshills/lineup/internal/dispatcher/handlers/align"
	"github.com/dshills/lineup/internal/plugin/lua"
)

// bootstrapper initializes components in dependency order and closes the
// ones already started when a later step fails.
type bootstrapper struct {
	app  *Application
	opts Options
}

func (b *bootstrapper) bootstrap() error {
	steps := []struct {
		name string
		fn   func() error
	}{
		{"config", b.initConfig},
		{"config watcher", b.initWatcher},
		{"dispatcher", b.initDispatcher},
		{"scripting", b.initScript},
	}

	for _, step := range steps {
		if err := step.fn(); err != nil {
			b.app.close()
			return &InitError{Component: step.name, Err: err}
		}
	}
	return nil
}

func (b *bootstrapper) initConfig() error {
	env := b.opts.Env
	if env == nil {
		e, err := loader.NewEnvLoader(loader.DefaultEnvPrefix).Load()
		if err != nil {
			return err
		}
		env = &e
	}

	path := b.opts.ConfigPath
	if path == "" {
		path = env.ConfigPath
	}

	cfg, err := config.Load(path, *env)
	if err != nil {
		return err
	}
	b.app.store = config.NewStore(cfg, path, *env, b.app.logger)
	return nil
}

func (b *bootstrapper) initWatcher() error {
	path := b.app.store.Path()
	if !b.opts.WatchConfig || path == "" {
		return nil
	}

	w, err := watcher.New(watcher.WithLogger(b.app.logger))
	if err != nil {
		return err
	}
	if err := w.Watch(path); err != nil {
		_ = w.Close()
		return err
	}

	store := b.app.store
	onReload := b.opts.OnReload
	w.OnChange(func(ev watcher.Event) {
		if ev.Op == watcher.OpRemove {
			return
		}
		if err := store.Reload(); err == nil && onReload != nil {
			onReload()
		}
	})
	b.app.watcher = w
	return nil
}

func (b *bootstrapper) initDispatcher() error {
	cfg := dispatcher.DefaultConfig()
	if b.opts.Stats {
		cfg = cfg.WithMetrics()
	}
	d := dispatcher.New(cfg)
	d.RegisterNamespace(alignh.NewAlignHandler())
	d.RegisterPreHook(dispatcher.NewReadOnlyGuard(alignh.ActionLeft, alignh.ActionMatch, alignh.ActionPick))
	hook := dispatcher.NewLoggingHook(b.app.logger)
	d.RegisterPreHook(hook)
	d.RegisterPostHook(hook)

	d.SetRules(b.app.store)
	d.SetStatus(b.app.status)
	d.SetLogger(b.app.logger)

	b.app.dispatcher = d
	return nil
}

func (b *bootstrapper) initScript() error {
	var opts []lua.StateOption
	if b.opts.ScriptTimeout > 0 {
		opts = append(opts, lua.WithExecutionTimeout(b.opts.ScriptTimeout))
	}
	state := lua.NewState(opts...)
	if err := state.OpenAlign(b.app, b.app.dispatcher); err != nil {
		state.Close()
		return err
	}
	b.app.script = state
	return nil
}
