// SPDX-License-Identifier: MPL-2.0

package store

import (
	"errors"
	"fmt"
	"io/fs"
)

// Kind sentinels. Every *Error wraps exactly one of them.
var (
	// ErrAlreadyExists is returned when init or copy targets an existing file.
	ErrAlreadyExists = errors.New("already exists")
	// ErrNotFound is returned when a store file or the home directory is absent.
	ErrNotFound = errors.New("not found")
	// ErrCorruptData is returned when a store file is not a JSON object of strings.
	ErrCorruptData = errors.New("corrupt data")
	// ErrIO is returned for any other filesystem failure.
	ErrIO = errors.New("i/o failure")
)

// Operation names reported in error messages.
const (
	OpCreate = "create"
	OpOpen   = "open"
	OpParse  = "deserialize"
	OpWrite  = "write to"
	OpCopy   = "copy"
	OpLocate = "locate"
)

// Error describes a failed store operation on a single path.
type Error struct {
	// Op is the verb that failed, e.g. "create" or "write to".
	Op string
	// Path is the store file involved.
	Path string
	// Kind is one of the package kind sentinels.
	Kind error
	// Err is the underlying cause.
	Err error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("could not %s '%s': %v", e.Op, e.Path, e.Kind)
	}
	return fmt.Sprintf("could not %s '%s': %v", e.Op, e.Path, e.Err)
}

// Unwrap exposes both the kind sentinel and the cause to errors.Is/As.
func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// newError classifies a filesystem error into a kind.
func newError(op, path string, err error) *Error {
	kind := ErrIO
	switch {
	case errors.Is(err, fs.ErrExist):
		kind = ErrAlreadyExists
	case errors.Is(err, fs.ErrNotExist):
		kind = ErrNotFound
	}
	return &Error{Op: op, Path: path, Kind: kind, Err: err}
}

// IsKind reports whether err is a store error of the given kind.
func IsKind(err, kind error) bool {
	var storeErr *Error
	if !errors.As(err, &storeErr) {
		return false
	}
	return storeErr.Kind == kind
}
