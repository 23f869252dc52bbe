package loader

import (
	"bytes"
	"errors"
	"io"

	"gopkg.in/yaml.v3"
)

// YAMLDecoder decodes YAML configuration.
type YAMLDecoder struct{}

// Decode implements Decoder. An empty document yields an empty File.
func (YAMLDecoder) Decode(source string, data []byte) (*File, error) {
	var f File
	dec := yaml.NewDecoder(bytes.NewReader(data))
	if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		return nil, &ParseError{Path: source, Message: err.Error(), Err: err}
	}
	return &f, nil
}
