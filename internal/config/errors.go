package config

import "errors"

// ErrNoConfigPath indicates a reload was requested without a config file.
var ErrNoConfigPath = errors.New("no config file path")

// ErrUnnamedRule indicates a list-form rule without a name.
var ErrUnnamedRule = errors.New("alignment rule has no name")
