// SPDX-License-Identifier: MPL-2.0

// Package testutil provides test helpers that fail the test on error: home
// directory and environment overrides with cleanup functions, and file
// fixtures.
package testutil
