// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package fileio reads and writes whole files as text.
package fileio

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"syscall"
	"unicode/utf8"

	"github.com/z5labs/tour/internal/try"

	"github.com/spf13/afero"
)

// Kind classifies an [AccessError].
type Kind int

const (
	Other Kind = iota
	NotFound
	PermissionDenied
	DecodeError
	DiskFull
)

// String implements the [fmt.Stringer] interface.
func (k Kind) String() string {
	switch k {
	case NotFound:
		return "not found"
	case PermissionDenied:
		return "permission denied"
	case DecodeError:
		return "decode error"
	case DiskFull:
		return "disk full"
	default:
		return "other"
	}
}

// ErrInvalidUTF8 is the cause of every [DecodeError].
var ErrInvalidUTF8 = errors.New("content is not valid utf-8")

// AccessError describes a failed file read or write.
type AccessError struct {
	Op   string
	Path string
	Kind Kind
	Err  error
}

// Error implements the [error] interface.
func (e *AccessError) Error() string {
	return fmt.Sprintf("%s %s: %s: %s", e.Op, e.Path, e.Kind, e.Err)
}

// Unwrap implements the implicit interface used by [errors.Is] and [errors.As].
func (e *AccessError) Unwrap() error {
	return e.Err
}

func accessError(op, path string, err error) *AccessError {
	kind := Other
	switch {
	case errors.Is(err, fs.ErrNotExist):
		kind = NotFound
	case errors.Is(err, fs.ErrPermission):
		kind = PermissionDenied
	case errors.Is(err, syscall.ENOSPC):
		kind = DiskFull
	case errors.Is(err, ErrInvalidUTF8):
		kind = DecodeError
	}
	return &AccessError{
		Op:   op,
		Path: path,
		Kind: kind,
		Err:  err,
	}
}

// closeFile must be deferred. A close failure, e.g. a disk filling up
// once buffered writes are flushed, is classified like any other access
// failure.
func closeFile(err *error, op, path string, file afero.File) {
	try.CloseWith(err, file, func(cerr error) error {
		return accessError(op, path, cerr)
	})
}

// Files reads and writes text files on a filesystem.
type Files struct {
	fs afero.Fs
}

// New returns [Files] backed by fs.
func New(fs afero.Fs) *Files {
	return &Files{fs: fs}
}

// ReadString returns the entire content of the file at path.
// The file is always closed before returning.
func (f *Files) ReadString(path string) (s string, err error) {
	file, err := f.fs.Open(path)
	if err != nil {
		return "", accessError("read", path, err)
	}
	defer closeFile(&err, "read", path, file)

	b, err := io.ReadAll(file)
	if err != nil {
		return "", accessError("read", path, err)
	}
	if !utf8.Valid(b) {
		return "", accessError("read", path, ErrInvalidUTF8)
	}
	return string(b), nil
}

// WriteString replaces the content of the file at path with s, creating
// the file if needed. The file is always closed before returning.
func (f *Files) WriteString(path, s string) (err error) {
	file, err := f.fs.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return accessError("write", path, err)
	}
	defer closeFile(&err, "write", path, file)

	_, err = io.WriteString(file, s)
	if err != nil {
		return accessError("write", path, err)
	}
	return nil
}
