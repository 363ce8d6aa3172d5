// SPDX-License-Identifier: MPL-2.0

// Package store persists abbreviation mappings as JSON files.
//
// A store is a single file named .spitconfig holding a JSON object whose keys
// are names and whose values are the text each name expands to. Two scopes
// exist: the local store in the working directory and the global store in the
// user's home directory.
//
// Failures on the store an invocation operates on are reported as *Error
// values carrying one of the kind sentinels (ErrAlreadyExists, ErrNotFound,
// ErrCorruptData, ErrIO). The fallback store used for lookups is loaded with
// LoadFallback, which never fails: any problem yields an empty Mapping.
package store
