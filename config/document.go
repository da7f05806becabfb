// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package config

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/z5labs/tour/internal/try"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Format names an encoding understood by [Document].
type Format string

const (
	YAML Format = "yaml"
	TOML Format = "toml"
	JSON Format = "json"
)

var decoders = map[Format]func([]byte, any) error{
	YAML: yaml.Unmarshal,
	TOML: toml.Unmarshal,
	JSON: json.Unmarshal,
}

// Document is a Source read in full from an io.Reader and decoded as a
// single nested mapping. If the reader is also an io.Closer, it is
// closed once read.
type Document struct {
	format Format
	r      io.Reader
}

// FromYaml returns a [Document] source for YAML.
func FromYaml(r io.Reader) Document {
	return Document{format: YAML, r: r}
}

// FromToml returns a [Document] source for TOML.
func FromToml(r io.Reader) Document {
	return Document{format: TOML, r: r}
}

// FromJson returns a [Document] source for JSON.
func FromJson(r io.Reader) Document {
	return Document{format: JSON, r: r}
}

// InvalidDocumentError occurs when a [Document] can not be decoded.
type InvalidDocumentError struct {
	Format Format
	Cause  error
}

// Error implements the [error] interface.
func (e InvalidDocumentError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Format, e.Cause)
}

// Unwrap implements the implicit interface used by [errors.Is] and [errors.As].
func (e InvalidDocumentError) Unwrap() error {
	return e.Cause
}

// Apply implements the [Source] interface.
func (src Document) Apply(store Store) (err error) {
	if c, ok := src.r.(io.Closer); ok {
		defer try.Close(&err, c)
	}

	decode, ok := decoders[src.format]
	if !ok {
		return fmt.Errorf("unknown config format: %q", src.format)
	}

	b, err := io.ReadAll(src.r)
	if err != nil {
		return err
	}

	m := make(map[string]any)
	err = decode(b, &m)
	if err != nil {
		return InvalidDocumentError{Format: src.format, Cause: err}
	}
	return Map(m).Apply(store)
}
