// SPDX-License-Identifier: MPL-2.0

package store

import (
	"fmt"
	"os"
	"path/filepath"
)

// FileName is the name of a store file in either scope.
const FileName = ".spitconfig"

const (
	// ScopeLocal selects the store in the working directory.
	ScopeLocal Scope = iota
	// ScopeGlobal selects the store in the user's home directory.
	ScopeGlobal
)

type (
	// Scope selects which of the two store locations an invocation targets.
	Scope int

	// Locator resolves store paths for each scope.
	Locator struct {
		// LocalDir is the directory holding the local store. Empty means the
		// working directory, and paths stay relative.
		LocalDir string
		// HomeDir resolves the directory holding the global store.
		HomeDir func() (string, error)
	}
)

// String returns "local" or "global".
func (s Scope) String() string {
	if s == ScopeGlobal {
		return "global"
	}
	return "local"
}

// NewLocator returns a Locator for the working directory and the invoking
// user's home directory.
func NewLocator() Locator {
	return Locator{HomeDir: os.UserHomeDir}
}

// Path returns the store file path for scope.
// Resolving the global path fails with ErrNotFound when there is no home directory.
func (l Locator) Path(scope Scope) (string, error) {
	if scope == ScopeLocal {
		return filepath.Join(l.LocalDir, FileName), nil
	}

	homeDir := l.HomeDir
	if homeDir == nil {
		homeDir = os.UserHomeDir
	}
	home, err := homeDir()
	if err == nil && home == "" {
		err = fmt.Errorf("home directory is empty")
	}
	if err != nil {
		return "", &Error{
			Op:   OpLocate,
			Path: filepath.Join("~", FileName),
			Kind: ErrNotFound,
			Err:  err,
		}
	}
	return filepath.Join(home, FileName), nil
}

// InFolder returns the store file path inside folder, as used by copy.
func InFolder(folder string) string {
	return filepath.Join(folder, FileName)
}
