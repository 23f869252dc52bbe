package loader

import (
	"fmt"
	"os"
	"strconv"
)

// DefaultEnvPrefix is the prefix of the environment variables read by
// NewEnvLoader.
const DefaultEnvPrefix = "LINEUP_"

// Environment variable suffixes.
const (
	EnvConfig           = "CONFIG"
	EnvLogLevel         = "LOG_LEVEL"
	EnvPreSpacePolicy   = "PRE_SPACE_POLICY"
	EnvAddPostSpace     = "ADD_POST_SPACE"
	EnvMultiMatchPolicy = "MULTI_MATCH_POLICY"
)

// Env holds the settings read from the environment. Empty strings and nil
// pointers mean the variable was not set.
type Env struct {
	ConfigPath string
	LogLevel   string
	Defaults   Defaults
}

// EnvLoader reads settings from environment variables.
// Empty values are treated as set.
type EnvLoader struct {
	prefix string
	lookup func(string) (string, bool)
}

// NewEnvLoader creates a loader for variables named prefix + suffix.
func NewEnvLoader(prefix string) *EnvLoader {
	return &EnvLoader{prefix: prefix, lookup: os.LookupEnv}
}

// NewEnvLoaderWithLookup creates a loader reading from lookup instead of the
// process environment.
func NewEnvLoaderWithLookup(prefix string, lookup func(string) (string, bool)) *EnvLoader {
	return &EnvLoader{prefix: prefix, lookup: lookup}
}

// Load reads the environment.
func (l *EnvLoader) Load() (Env, error) {
	var env Env

	if v, ok := l.get(EnvConfig); ok {
		env.ConfigPath = v
	}
	if v, ok := l.get(EnvLogLevel); ok {
		env.LogLevel = v
	}
	if v, ok := l.get(EnvPreSpacePolicy); ok {
		env.Defaults.PreSpacePolicy = &v
	}
	if v, ok := l.get(EnvMultiMatchPolicy); ok {
		env.Defaults.MultiMatchPolicy = &v
	}
	if v, ok := l.get(EnvAddPostSpace); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return Env{}, fmt.Errorf("%s%s: %w", l.prefix, EnvAddPostSpace, err)
		}
		env.Defaults.AddPostSpace = &b
	}

	return env, nil
}

func (l *EnvLoader) get(suffix string) (string, bool) {
	return l.lookup(l.prefix + suffix)
}
