package config

import (
	"fmt"
	"slices"
	"sort"

	"github.com/dshills/lineup/internal/align"
	"github.com/dshills/lineup/internal/config/loader"
)

// Config is a resolved rule set.
type Config struct {
	Defaults align.Defaults
	Rules    []align.Rule

	// Path is the file the config was loaded from, if any.
	Path string
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Defaults: align.DefaultDefaults(),
		Rules:    BuiltinRules(),
	}
}

// AlignSettings returns the rules and defaults.
func (c *Config) AlignSettings() ([]align.Rule, align.Defaults) {
	return c.Rules, c.Defaults
}

// Clone returns a deep copy of c.
func (c *Config) Clone() *Config {
	out := &Config{Defaults: c.Defaults, Path: c.Path}
	out.Rules = make([]align.Rule, len(c.Rules))
	for i, r := range c.Rules {
		out.Rules[i] = cloneRule(r)
	}
	return out
}

// RuleNames returns the configured rule names in order.
func (c *Config) RuleNames() []string {
	return align.RuleNames(c.Rules)
}

func boolPtr(b bool) *bool {
	return &b
}

// BuiltinRules returns the rules available without a config file.
func BuiltinRules() []align.Rule {
	return []align.Rule{
		{
			Name:           "equals",
			Matches:        []string{"=", "==", "!=", "+=", "-=", ":=", "=>"},
			Prefixes:       []string{"!", "+", "-", "*", "/", ":", "<", ">", "="},
			PreSpacePolicy: align.PreSpaceOne,
			AddPostSpace:   boolPtr(true),
		},
		{
			Name:           "colon",
			Matches:        []string{":"},
			PreSpacePolicy: align.PreSpaceRemove,
			AddPostSpace:   boolPtr(true),
		},
		{
			Name:             "comment",
			Matches:          []string{"//", "#"},
			PreSpacePolicy:   align.PreSpaceOne,
			MultiMatchPolicy: align.MultiMatchFirst,
		},
		{
			Name:           "arrow",
			Matches:        []string{"->"},
			PreSpacePolicy: align.PreSpaceOne,
			AddPostSpace:   boolPtr(true),
		},
	}
}

// ApplyFile layers f over c and returns the result. c is not modified.
// A nil file returns a copy of c.
func (c *Config) ApplyFile(f *loader.File) (*Config, error) {
	out := c.Clone()
	if f == nil {
		return out, nil
	}

	if f.ReplaceDefaults {
		out.Rules = nil
	}
	if f.Defaults != nil {
		out.Defaults = applyDefaults(out.Defaults, *f.Defaults)
	}

	for i, fr := range f.Alignment {
		if fr.Name == "" {
			return nil, fmt.Errorf("alignment %d: %w", i+1, ErrUnnamedRule)
		}
		out.Rules = upsert(out.Rules, toRule(fr.Name, fr))
	}

	names := make([]string, 0, len(f.Alignments))
	for name := range f.Alignments {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fr := f.Alignments[name]
		if fr.Name != "" {
			name = fr.Name
		}
		out.Rules = upsert(out.Rules, toRule(name, fr))
	}

	return out, nil
}

// ApplyEnv layers environment overrides over c and returns the result.
func (c *Config) ApplyEnv(env loader.Env) *Config {
	out := c.Clone()
	out.Defaults = applyDefaults(out.Defaults, env.Defaults)
	return out
}

func applyDefaults(d align.Defaults, fd loader.Defaults) align.Defaults {
	if fd.PreSpacePolicy != nil {
		d.PreSpacePolicy = align.PreSpacePolicy(*fd.PreSpacePolicy)
	}
	if fd.AddPostSpace != nil {
		d.AddPostSpace = *fd.AddPostSpace
	}
	if fd.MultiMatchPolicy != nil {
		d.MultiMatchPolicy = align.MultiMatchPolicy(*fd.MultiMatchPolicy)
	}
	return d
}

func toRule(name string, fr loader.Rule) align.Rule {
	r := align.Rule{
		Name:             name,
		Matches:          slices.Clone(fr.Matches),
		Prefixes:         slices.Clone(fr.Prefixes),
		PreSpacePolicy:   align.PreSpacePolicy(fr.PreSpacePolicy),
		MultiMatchPolicy: align.MultiMatchPolicy(fr.MultiMatchPolicy),
		BiasLeft:         fr.BiasLeft,
	}
	if fr.AddPostSpace != nil {
		r.AddPostSpace = boolPtr(*fr.AddPostSpace)
	}
	return r
}

// upsert replaces the rule named r.Name in place, or appends r.
func upsert(rules []align.Rule, r align.Rule) []align.Rule {
	for i := range rules {
		if rules[i].Name == r.Name {
			rules[i] = r
			return rules
		}
	}
	return append(rules, r)
}

func cloneRule(r align.Rule) align.Rule {
	r.Matches = slices.Clone(r.Matches)
	r.Prefixes = slices.Clone(r.Prefixes)
	if r.AddPostSpace != nil {
		r.AddPostSpace = boolPtr(*r.AddPostSpace)
	}
	return r
}

// Load builds a Config from the built-in rules, the file at path and env.
// An empty path or a missing file contributes nothing.
func Load(path string, env loader.Env) (*Config, error) {
	cfg := Default()

	if path != "" {
		f, err := loader.LoadFile(path)
		if err != nil {
			return nil, err
		}
		if cfg, err = cfg.ApplyFile(f); err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		cfg.Path = path
	}

	return cfg.ApplyEnv(env), nil
}
