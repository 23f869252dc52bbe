// Package loader reads alignment configuration files.
//
// TOML and YAML files decode into the same File shape; the format is chosen
// by extension. Environment variables are read separately by EnvLoader.
package loader

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// File is a decoded configuration file.
type File struct {
	// ReplaceDefaults drops the built-in rules.
	ReplaceDefaults bool `toml:"replace_defaults" yaml:"replace_defaults"`

	Defaults *Defaults `toml:"defaults" yaml:"defaults"`

	// Alignment is the ordered list form.
	Alignment []Rule `toml:"alignment" yaml:"alignment"`

	// Alignments is the mapping form, keyed by rule name.
	Alignments map[string]Rule `toml:"alignments" yaml:"alignments"`
}

// Defaults holds the default policies. Nil fields are unset.
type Defaults struct {
	PreSpacePolicy   *string `toml:"pre_space_policy" yaml:"pre_space_policy"`
	AddPostSpace     *bool   `toml:"add_post_space" yaml:"add_post_space"`
	MultiMatchPolicy *string `toml:"multi_match_policy" yaml:"multi_match_policy"`
}

// Rule is one alignment rule as written in a file.
type Rule struct {
	Name             string   `toml:"name" yaml:"name"`
	Matches          []string `toml:"matches" yaml:"matches"`
	Prefixes         []string `toml:"prefixes" yaml:"prefixes"`
	PreSpacePolicy   string   `toml:"pre_space_policy" yaml:"pre_space_policy"`
	AddPostSpace     *bool    `toml:"add_post_space" yaml:"add_post_space"`
	MultiMatchPolicy string   `toml:"multi_match_policy" yaml:"multi_match_policy"`
	BiasLeft         bool     `toml:"bias_left" yaml:"bias_left"`
}

// Decoder parses configuration data.
type Decoder interface {
	Decode(source string, data []byte) (*File, error)
}

// FileSystem is the file access the loaders need.
type FileSystem interface {
	ReadFile(path string) ([]byte, error)
	Stat(path string) (fs.FileInfo, error)
}

// OSFS implements FileSystem using the real OS file system.
type OSFS struct{}

// ReadFile reads the entire file at path.
func (OSFS) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

// Stat returns file info for path.
func (OSFS) Stat(path string) (fs.FileInfo, error) {
	return os.Stat(path)
}

// DefaultFS returns the OS file system.
func DefaultFS() FileSystem {
	return OSFS{}
}

// DecoderFor returns the decoder for path's extension.
func DecoderFor(path string) (Decoder, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return TOMLDecoder{}, nil
	case ".yaml", ".yml":
		return YAMLDecoder{}, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
}

// LoadFile reads and decodes path from the OS file system.
// A missing file yields nil, nil.
func LoadFile(path string) (*File, error) {
	return LoadFileFS(DefaultFS(), path)
}

// LoadFileFS reads and decodes path from fsys.
func LoadFileFS(fsys FileSystem, path string) (*File, error) {
	dec, err := DecoderFor(path)
	if err != nil {
		return nil, err
	}

	data, err := fsys.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading config file %s: %w", path, err)
	}
	return dec.Decode(path, data)
}

// LoadReader decodes r using the decoder for name's extension.
func LoadReader(name string, r io.Reader) (*File, error) {
	dec, err := DecoderFor(name)
	if err != nil {
		return nil, err
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	return dec.Decode(name, data)
}
