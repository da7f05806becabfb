// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package config

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"sync"

	"github.com/spf13/afero"
)

// FileReader is an io.Reader that handles opening a file for reading automatically.
type FileReader struct {
	path string

	openOnce sync.Once
	openErr  error
	fs       afero.Fs
	file     io.ReadCloser
}

// NewFileReader configures a FileReader.
func NewFileReader(fs afero.Fs, path string) *FileReader {
	return &FileReader{
		path: path,
		fs:   fs,
	}
}

// Read implements the io.Reader interface.
func (r *FileReader) Read(b []byte) (int, error) {
	r.openOnce.Do(func() {
		r.file, r.openErr = r.fs.Open(r.path)
	})
	if r.openErr != nil {
		return 0, r.openErr
	}
	if r.file == nil {
		return 0, io.EOF
	}
	return r.file.Read(b)
}

// Close implements the io.Closer interface.
func (r *FileReader) Close() error {
	if r.file == nil {
		return nil
	}

	err := r.file.Close()
	r.file = nil
	return err
}

// UnsupportedFormatError occurs when a config file extension
// does not map to any known format.
type UnsupportedFormatError struct {
	Path string
}

// Error implements the error interface.
func (e UnsupportedFormatError) Error() string {
	return fmt.Sprintf("unsupported config file format: %s", e.Path)
}

// FromFile returns a Source for the file at path, choosing
// the format by extension (.yaml, .yml, .toml or .json).
func FromFile(fs afero.Fs, path string) (Source, error) {
	r := NewFileReader(fs, path)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FromYaml(r), nil
	case ".toml":
		return FromToml(r), nil
	case ".json":
		return FromJson(r), nil
	default:
		return nil, UnsupportedFormatError{Path: path}
	}
}
