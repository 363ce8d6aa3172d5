// SPDX-License-Identifier: MPL-2.0

// Package resolve expands requested names into text.
//
// Each name is looked up in the primary mapping first and the fallback
// mapping second. Names found in neither are handled by a Policy: they can be
// passed through verbatim, reported as warnings, or abort the whole request.
// Output is buffered and only returned once every name has been processed, so
// an aborted request never yields partial output.
package resolve
