package dispatcher

// Config holds dispatcher options.
type Config struct {
	// EnableMetrics records per-action counts and timings.
	EnableMetrics bool

	// RecoverFromPanic turns a handler panic into an error result.
	RecoverFromPanic bool
}

// DefaultConfig recovers from panics and collects no metrics.
func DefaultConfig() Config {
	return Config{RecoverFromPanic: true}
}

// WithMetrics returns a copy of the config with metrics enabled.
func (c Config) WithMetrics() Config {
	c.EnableMetrics = true
	return c
}
