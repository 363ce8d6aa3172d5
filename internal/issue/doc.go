// SPDX-License-Identifier: MPL-2.0

// Package issue provides actionable error handling with user-friendly messages.
//
// ActionableError attaches an operation, a resource and remediation hints to an
// error. The issue catalog holds Markdown help pages, rendered with glamour,
// that the CLI prints under a fatal error when running in verbose mode.
package issue
