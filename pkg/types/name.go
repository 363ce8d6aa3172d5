// SPDX-License-Identifier: MPL-2.0

// Package types defines validated value types shared by the store, resolver
// and CLI layers.
//
// This package is a leaf dependency: it imports only the standard library.
package types

import (
	"errors"
	"fmt"
)

// ErrInvalidName is the sentinel error wrapped by InvalidNameError.
var ErrInvalidName = errors.New("invalid name")

type (
	// Name is the short key an abbreviation is stored under.
	// A valid name is any non-empty string; whitespace is kept verbatim.
	Name string

	// InvalidNameError is returned when a Name is empty.
	InvalidNameError struct {
		Value Name
	}
)

// String returns the string representation of the Name.
func (n Name) String() string { return string(n) }

// IsValid returns whether the Name is valid, and the validation errors if not.
func (n Name) IsValid() (bool, []error) {
	if n == "" {
		return false, []error{&InvalidNameError{Value: n}}
	}
	return true, nil
}

// Validate returns the first validation error for the Name, or nil.
func (n Name) Validate() error {
	if ok, errs := n.IsValid(); !ok {
		return errs[0]
	}
	return nil
}

// Error implements the error interface for InvalidNameError.
func (e *InvalidNameError) Error() string {
	return fmt.Sprintf("invalid name %q: must be non-empty", e.Value)
}

// Unwrap returns ErrInvalidName for errors.Is() compatibility.
func (e *InvalidNameError) Unwrap() error { return ErrInvalidName }
