package config

import (
	"log/slog"
	"sync"

	"github.com/dshills/lineup/internal/align"
	"github.com/dshills/lineup/internal/config/loader"
)

// Store holds the active Config and reloads it from disk.
// It is safe for concurrent use.
type Store struct {
	mu     sync.RWMutex
	cfg    *Config
	path   string
	env    loader.Env
	logger *slog.Logger
}

// NewStore creates a store holding cfg. path and env are used by Reload.
func NewStore(cfg *Config, path string, env loader.Env, logger *slog.Logger) *Store {
	if cfg == nil {
		cfg = Default()
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Store{cfg: cfg, path: path, env: env, logger: logger}
}

// Config returns the active configuration. Callers must not modify it.
func (s *Store) Config() *Config {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cfg
}

// Path returns the config file path.
func (s *Store) Path() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.path
}

// AlignSettings returns one consistent snapshot of rules and defaults.
func (s *Store) AlignSettings() ([]align.Rule, align.Defaults) {
	return s.Config().AlignSettings()
}

// Set replaces the active configuration.
func (s *Store) Set(cfg *Config) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cfg = cfg
}

// Reload reads the config file again. On failure the active configuration
// is kept and the error returned.
func (s *Store) Reload() error {
	path := s.Path()
	if path == "" {
		return ErrNoConfigPath
	}

	cfg, err := Load(path, s.env)
	if err != nil {
		s.logger.Error("config reload failed", "path", path, "error", err)
		return err
	}

	s.Set(cfg)
	s.logger.Info("config reloaded", "path", path, "rules", len(cfg.Rules))
	return nil
}
